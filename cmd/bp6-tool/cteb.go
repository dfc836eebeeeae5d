// SPDX-FileCopyrightText: 2026 The dtn7 Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/dtn7/dtn7-bpv6/pkg/acs"
	"github.com/dtn7/dtn7-bpv6/pkg/bpv6"
)

// showCteb for the "cteb" CLI option, which might also take custody.
func showCteb(args []string) {
	if len(args) != 1 && len(args) != 4 {
		printUsage()
	}

	b := readBundle(args[0])

	if len(args) == 4 {
		takeCustody(b, args[1], args[2], args[3])
		return
	}

	cteb, ok, err := acs.ExtractCteb(b)
	if err != nil {
		printFatal(err, "Extracting CTEB errored")
	} else if !ok {
		fmt.Println("no custody transfer enhancement block")
		return
	}

	fmt.Println(cteb)
	if !cteb.ValidFor(b) {
		log.WithFields(log.Fields{
			"cteb":      cteb,
			"custodian": b.PrimaryBlock.Custodian,
		}).Warn("CTEB does not belong to the current custodian")
	}
}

// takeCustody replaces the bundle's custodian and CTEB.
func takeCustody(b bpv6.Bundle, idStr, custodian, outName string) {
	if !b.PrimaryBlock.BundleControlFlags.Has(bpv6.CustodyTransferRequested) {
		printFatal(fmt.Errorf("bundle %v", b.ID()), "Custody transfer was not requested")
	}

	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		printFatal(err, "Parsing custody ID errored")
	}

	custodianEid, err := bpv6.NewEndpointID(custodian)
	if err != nil {
		printFatal(err, "Parsing custodian errored")
	}

	b.PrimaryBlock.Custodian = custodianEid
	b.Blocks.Remove(bpv6.CustodyTransferBlockType)
	b.AddBlock(acs.NewCtebBlock(id, custodianEid.String()))

	if err := b.CheckValid(); err != nil {
		printFatal(err, "Bundle became invalid")
	}

	writeBundle(b, outName)
}
