// SPDX-FileCopyrightText: 2026 The dtn7 Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bpv6

import (
	"errors"
	"fmt"

	"github.com/dtn7/dtn7-bpv6/pkg/sdnv"
)

var (
	// ErrFormat marks structurally invalid input, e.g., a wrong version or an
	// unresolvable dictionary offset.
	ErrFormat = errors.New("malformed input")

	// ErrTruncated marks input ending before a length-prefixed field or SDNV
	// was complete.
	ErrTruncated = sdnv.ErrTruncated

	// ErrAmbiguous marks a bundle carrying multiple instances of a block which
	// must be unique.
	ErrAmbiguous = errors.New("ambiguous block")
)

// newFormatError creates an error wrapping ErrFormat.
func newFormatError(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrFormat, fmt.Sprintf(format, a...))
}
