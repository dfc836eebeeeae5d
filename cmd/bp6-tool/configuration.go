// SPDX-FileCopyrightText: 2026 The dtn7 Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/BurntSushi/toml"

	"github.com/dtn7/dtn7-bpv6/pkg/bpv6"
)

// tomlConfig describes the TOML-configuration.
type tomlConfig struct {
	Logging logConf
	Bundle  bundleConf
}

// logConf describes the Logging-configuration block.
type logConf struct {
	Level        string
	ReportCaller bool `toml:"report-caller"`
	Format       string
}

// bundleConf describes the defaults for created bundles.
type bundleConf struct {
	ReportTo  string `toml:"report-to"`
	Custodian string
	Lifetime  string
	Priority  string
	Custody   bool
}

// defaultConfig is used without any configuration file.
func defaultConfig() tomlConfig {
	return tomlConfig{
		Logging: logConf{Level: "info", Format: "text"},
		Bundle:  bundleConf{Lifetime: "24h", Priority: "bulk"},
	}
}

// parseConfig reads the TOML configuration file on top of the defaults.
func parseConfig(filename string) (conf tomlConfig, err error) {
	conf = defaultConfig()
	if _, err = toml.DecodeFile(filename, &conf); err != nil {
		return
	}

	if _, err = parsePriority(conf.Bundle.Priority); err != nil {
		return
	}
	if _, err = time.ParseDuration(conf.Bundle.Lifetime); err != nil {
		err = fmt.Errorf("bundle.lifetime: %w", err)
		return
	}

	return
}

// setupLogging configures logrus based on the Logging-configuration block.
func setupLogging(conf logConf) {
	if conf.Level != "" {
		if lvl, err := log.ParseLevel(conf.Level); err != nil {
			log.WithFields(log.Fields{
				"level":    conf.Level,
				"error":    err,
				"provided": "panic,fatal,error,warn,info,debug,trace",
			}).Warn("Failed to set log level. Please select one of the provided ones")
		} else {
			log.SetLevel(lvl)
		}
	}

	log.SetReportCaller(conf.ReportCaller)

	switch conf.Format {
	case "", "text":
		log.SetFormatter(&log.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05.000",
		})

	case "json":
		log.SetFormatter(&log.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})

	default:
		log.Warn("Unknown logging format")
	}
}

func parsePriority(name string) (bpv6.Priority, error) {
	switch name {
	case "", "bulk":
		return bpv6.Bulk, nil
	case "normal":
		return bpv6.Normal, nil
	case "expedited":
		return bpv6.Expedited, nil
	default:
		return 0, fmt.Errorf("unknown bundle.priority \"%s\"", name)
	}
}

// builder creates a BundleBuilder with the configured defaults.
func (conf bundleConf) builder(sender, receiver string, counter *bpv6.SequenceCounter) *bpv6.BundleBuilder {
	priority, _ := parsePriority(conf.Priority)

	bldr := bpv6.Builder().
		Source(sender).
		Destination(receiver).
		CreationTimestampNow(counter).
		Lifetime(conf.Lifetime).
		Priority(priority)

	if conf.ReportTo != "" {
		bldr.ReportTo(conf.ReportTo)
	}
	if conf.Custodian != "" {
		bldr.Custodian(conf.Custodian)
	}
	if conf.Custody {
		bldr.BundleCtrlFlags(bpv6.CustodyTransferRequested | bpv6.SingletonDestination)
	} else {
		bldr.BundleCtrlFlags(bpv6.SingletonDestination)
	}

	return bldr
}
