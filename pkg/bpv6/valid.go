// SPDX-FileCopyrightText: 2026 The dtn7 Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bpv6

// Valid is implemented by the parts of a Bundle which can be checked for
// semantic errors after decoding or building. A Bundle checks its primary
// block and each canonical block, collecting all findings with multierror.
type Valid interface {
	// CheckValid returns nil or an error, possibly a multierror, describing
	// every violation found.
	CheckValid() error
}
