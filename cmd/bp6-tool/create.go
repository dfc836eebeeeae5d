// SPDX-FileCopyrightText: 2026 The dtn7 Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"encoding/hex"
	"io"
	"io/ioutil"
	"os"

	"github.com/dtn7/dtn7-bpv6/pkg/bpv6"
)

// createBundle for the "create" CLI option.
func createBundle(conf bundleConf, args []string) {
	if len(args) != 3 && len(args) != 4 {
		printUsage()
	}

	var (
		sender    = args[0]
		receiver  = args[1]
		dataInput = args[2]
		outName   = ""

		err  error
		data []byte
		b    bpv6.Bundle
	)

	if dataInput == "-" {
		data, err = ioutil.ReadAll(os.Stdin)
	} else {
		data, err = ioutil.ReadFile(dataInput)
	}
	if err != nil {
		printFatal(err, "Reading input errored")
	}

	b, err = conf.builder(sender, receiver, bpv6.NewSequenceCounter(0)).
		PayloadBlock(data).
		Build()
	if err != nil {
		printFatal(err, "Building Bundle errored")
	}

	if len(args) == 4 {
		outName = args[3]
	} else {
		outName = hex.EncodeToString([]byte(b.ID().String()))
	}

	writeBundle(b, outName)
}

// writeBundle into a file or to stdout for "-".
func writeBundle(b bpv6.Bundle, outName string) {
	var (
		f   io.WriteCloser
		err error
	)

	if outName == "-" {
		f = os.Stdout
	} else if f, err = os.Create(outName); err != nil {
		printFatal(err, "Creating file errored")
	}

	if err = b.WriteBundle(f); err != nil {
		printFatal(err, "Writing Bundle errored")
	}
	if err = f.Close(); err != nil {
		printFatal(err, "Closing file errored")
	}
}

// readBundle from a file or from stdin for "-".
func readBundle(input string) bpv6.Bundle {
	var (
		data []byte
		err  error
		b    bpv6.Bundle
	)

	if input == "-" {
		data, err = ioutil.ReadAll(os.Stdin)
	} else {
		data, err = ioutil.ReadFile(input)
	}
	if err != nil {
		printFatal(err, "Reading Bundle errored")
	}

	if err = b.UnmarshalBinary(data); err != nil {
		printFatal(err, "Unmarshaling Bundle errored")
	}
	return b
}
