// SPDX-FileCopyrightText: 2026 The dtn7 Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
)

// printUsage of bp6-tool and exit with an error code afterwards.
func printUsage() {
	_, _ = fmt.Fprintf(os.Stderr, "Usage of %s [--config file.toml] create|show|cteb|acs:\n\n", os.Args[0])

	_, _ = fmt.Fprintf(os.Stderr, "%s create sender receiver -|filename [-|bundle-name]\n", os.Args[0])
	_, _ = fmt.Fprintf(os.Stderr, "  Creates a new BPv6 Bundle, addressed from sender to receiver, with the stdin (-)\n")
	_, _ = fmt.Fprintf(os.Stderr, "  or the given file (filename) as payload. If no bundle-name is given, the Bundle\n")
	_, _ = fmt.Fprintf(os.Stderr, "  is named after its hex encoded ID. A bundle-name of - writes to stdout.\n\n")

	_, _ = fmt.Fprintf(os.Stderr, "%s show -|filename\n", os.Args[0])
	_, _ = fmt.Fprintf(os.Stderr, "  Prints a JSON version of the given Bundle.\n\n")

	_, _ = fmt.Fprintf(os.Stderr, "%s cteb -|filename [custody-id custodian bundle-name]\n", os.Args[0])
	_, _ = fmt.Fprintf(os.Stderr, "  Prints the Bundle's Custody Transfer Enhancement Block. If a custody-id and a\n")
	_, _ = fmt.Fprintf(os.Stderr, "  custodian are given, the Bundle is taken into custody and saved as bundle-name.\n\n")

	_, _ = fmt.Fprintf(os.Stderr, "%s acs encode [sack|snack reason] custody-id...\n", os.Args[0])
	_, _ = fmt.Fprintf(os.Stderr, "  Prints a hex encoded Aggregate Custody Signal for the given custody IDs.\n\n")

	_, _ = fmt.Fprintf(os.Stderr, "%s acs decode hex-string\n", os.Args[0])
	_, _ = fmt.Fprintf(os.Stderr, "  Prints the content of a hex encoded Aggregate Custody Signal.\n\n")

	_, _ = fmt.Fprintf(os.Stderr, "%s acs aggregate source directory bundle...\n", os.Args[0])
	_, _ = fmt.Fprintf(os.Stderr, "  Accepts custody of all given Bundles and writes one Aggregate Custody Signal\n")
	_, _ = fmt.Fprintf(os.Stderr, "  Bundle per custodian, sent from source, into the directory.\n\n")

	os.Exit(1)
}

// printFatal logs the error and exits with an error code afterwards.
func printFatal(err error, msg string) {
	log.WithError(err).Error(msg)
	os.Exit(1)
}

func main() {
	args := os.Args[1:]
	conf := defaultConfig()

	if len(args) >= 2 && args[0] == "--config" {
		var err error
		if conf, err = parseConfig(args[1]); err != nil {
			printFatal(err, "Failed to parse config")
		}
		args = args[2:]
	}

	setupLogging(conf.Logging)

	if len(args) < 1 {
		printUsage()
	}

	switch args[0] {
	case "create":
		createBundle(conf.Bundle, args[1:])

	case "show":
		showBundle(args[1:])

	case "cteb":
		showCteb(args[1:])

	case "acs":
		handleAcs(conf.Bundle, args[1:])

	default:
		printUsage()
	}
}
