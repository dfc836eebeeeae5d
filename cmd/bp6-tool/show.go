// SPDX-FileCopyrightText: 2026 The dtn7 Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/dtn7/dtn7-bpv6/pkg/acs"
)

// showBundle for the "show" CLI options.
func showBundle(args []string) {
	if len(args) != 1 {
		printUsage()
	}

	b := readBundle(args[0])

	if err := b.CheckValid(); err != nil {
		log.WithError(err).WithField("bundle", b.ID()).Warn("Bundle is invalid")
	}

	bMsg, err := b.MarshalJSON()
	if err != nil {
		printFatal(err, "Marshaling JSON errored")
	}
	fmt.Println(string(bMsg))

	if !b.IsAdministrativeRecord() {
		return
	}

	if signal, err := acs.FromBundle(b); err == nil {
		fmt.Println(signal)
	} else if !errors.Is(err, acs.ErrNotAcs) {
		log.WithError(err).WithField("bundle", b.ID()).Warn("Administrative record is malformed")
	} else {
		recordType, _, _, _ := b.AdministrativeRecord()
		log.WithField("record", recordType).Info("Bundle carries another administrative record")
	}
}
