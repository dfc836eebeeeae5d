// SPDX-FileCopyrightText: 2026 The dtn7 Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/dtn7/dtn7-bpv6/pkg/acs"
	"github.com/dtn7/dtn7-bpv6/pkg/bpv6"
)

// handleAcs for the "acs" CLI option and its sub commands.
func handleAcs(conf bundleConf, args []string) {
	if len(args) < 1 {
		printUsage()
	}

	switch args[0] {
	case "encode":
		encodeAcs(args[1:])
	case "decode":
		decodeAcs(args[1:])
	case "aggregate":
		aggregateAcs(conf, args[1:])
	default:
		printUsage()
	}
}

func parseCustodyIDs(args []string) []uint64 {
	ids := make([]uint64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseUint(arg, 10, 64)
		if err != nil {
			printFatal(err, "Parsing custody ID errored")
		}
		ids = append(ids, id)
	}
	return ids
}

// encodeAcs prints a hex encoded signal for the "acs encode" CLI option.
func encodeAcs(args []string) {
	signal := acs.NewSignal(true, acs.NoAdditionalInfo)

	if len(args) >= 1 && args[0] == "sack" {
		args = args[1:]
	} else if len(args) >= 2 && args[0] == "snack" {
		reason, err := strconv.ParseUint(args[1], 10, 7)
		if err != nil {
			printFatal(err, "Parsing reason code errored")
		}
		signal = acs.NewSignal(false, acs.Reason(reason))
		args = args[2:]
	}

	if len(args) == 0 {
		printUsage()
	}

	for _, f := range acs.ListToFills(parseCustodyIDs(args)) {
		signal.AddFill(f)
	}

	data, err := signal.MarshalBinary()
	if err != nil {
		printFatal(err, "Serializing signal errored")
	}

	log.WithField("signal", signal).Debug("Encoded aggregate custody signal")
	fmt.Println(hex.EncodeToString(data))
}

// decodeAcs prints a hex encoded signal for the "acs decode" CLI option.
func decodeAcs(args []string) {
	if len(args) != 1 {
		printUsage()
	}

	data, err := hex.DecodeString(args[0])
	if err != nil {
		printFatal(err, "Decoding hex string errored")
	}

	signal, err := acs.Unserialize(data)
	if err != nil {
		printFatal(err, "Unserializing signal errored")
	}

	fmt.Println(signal)
	for _, f := range signal.Fills() {
		fmt.Printf("  %v\n", f)
	}
}

// aggregateAcs accepts custody of bundles for the "acs aggregate" CLI option.
func aggregateAcs(conf bundleConf, args []string) {
	if len(args) < 3 {
		printUsage()
	}

	var (
		source    = args[0]
		directory = args[1]
		inputs    = args[2:]

		agg = acs.NewAggregator()
	)

	sourceEid, err := bpv6.NewEndpointID(source)
	if err != nil {
		printFatal(err, "Parsing source errored")
	}

	lifetime, err := time.ParseDuration(conf.Lifetime)
	if err != nil {
		printFatal(err, "Parsing lifetime errored")
	}

	agg.SetMaxSignalSize(acs.DefaultSignalSize)

	for _, input := range inputs {
		b := readBundle(input)
		if err := agg.Note(b, true, acs.NoAdditionalInfo); err != nil {
			log.WithError(err).WithField("file", input).Warn("Failed to aggregate custody signal")
		}
	}

	bndls, err := agg.Bundles(sourceEid, bpv6.NewSequenceCounter(0), uint64(lifetime/time.Second))
	if err != nil {
		printFatal(err, "Creating aggregate custody signals errored")
	}

	for _, b := range bndls {
		outName := filepath.Join(directory, hex.EncodeToString([]byte(b.ID().String())))
		writeBundle(b, outName)

		log.WithFields(log.Fields{
			"file":      outName,
			"custodian": b.PrimaryBlock.Destination,
		}).Info("Wrote aggregate custody signal")
	}
}
