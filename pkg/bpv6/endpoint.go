// SPDX-FileCopyrightText: 2026 The dtn7 Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bpv6

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	dtnEndpointSchemeName string = "dtn"
	dtnEndpointDtnNoneSsp string = "none"

	ipnEndpointSchemeName string = "ipn"
)

var ipnSspRegexp = regexp.MustCompile(`^(\d+)\.(\d+)$`)

// EndpointID represents an Endpoint ID as defined in RFC 5050, section 4.4.
// It consists of a scheme name and a scheme-specific part (SSP), separated by
// a colon. Two EndpointIDs are equal iff both parts are equal.
type EndpointID struct {
	scheme string
	ssp    string
}

// NewEndpointID parses an URI like "dtn:none", "ipn:23.42" or "dtn://foo/".
func NewEndpointID(uri string) (e EndpointID, err error) {
	idx := strings.IndexByte(uri, ':')
	if idx < 1 {
		err = fmt.Errorf("endpoint %q has no scheme name", uri)
		return
	}

	e = EndpointID{scheme: uri[:idx], ssp: uri[idx+1:]}
	err = e.CheckValid()
	return
}

// MustNewEndpointID returns a new EndpointID like NewEndpointID, but panics
// in case of an error.
func MustNewEndpointID(uri string) EndpointID {
	e, err := NewEndpointID(uri)
	if err != nil {
		panic(err)
	}
	return e
}

// NewIpnEndpoint creates an "ipn" EndpointID for a node and service number.
func NewIpnEndpoint(node, service uint64) EndpointID {
	return EndpointID{
		scheme: ipnEndpointSchemeName,
		ssp:    fmt.Sprintf("%d.%d", node, service),
	}
}

// DtnNone returns the null endpoint "dtn:none".
func DtnNone() EndpointID {
	return EndpointID{scheme: dtnEndpointSchemeName, ssp: dtnEndpointDtnNoneSsp}
}

// SchemeName is the part before the colon, e.g., "ipn" for "ipn:23.42".
func (e EndpointID) SchemeName() string {
	return e.scheme
}

// SchemeSpecificPart is the part after the colon, e.g., "23.42" for "ipn:23.42".
func (e EndpointID) SchemeSpecificPart() string {
	return e.ssp
}

// IsNone checks if this EndpointID is dtn:none.
func (e EndpointID) IsNone() bool {
	return e == DtnNone()
}

// IsZero checks if this EndpointID was never set.
func (e EndpointID) IsZero() bool {
	return e == EndpointID{}
}

// Ipn returns the node and service number for an "ipn" endpoint. The last
// return value is false for other schemes.
func (e EndpointID) Ipn() (node, service uint64, ok bool) {
	if e.scheme != ipnEndpointSchemeName {
		return
	}

	matches := ipnSspRegexp.FindStringSubmatch(e.ssp)
	if len(matches) != 3 {
		return
	}

	var err error
	if node, err = strconv.ParseUint(matches[1], 10, 64); err != nil {
		return 0, 0, false
	}
	if service, err = strconv.ParseUint(matches[2], 10, 64); err != nil {
		return 0, 0, false
	}

	ok = true
	return
}

// cbheCompatible checks if this EndpointID might be encoded as a CBHE tuple.
func (e EndpointID) cbheCompatible() bool {
	if e.IsNone() {
		return true
	}

	// ipn:0.0 would be decoded as dtn:none. A non-canonical SSP like "01.0"
	// would not survive the numeric round trip.
	node, service, ok := e.Ipn()
	return ok && (node != 0 || service != 0) && e == NewIpnEndpoint(node, service)
}

// CheckValid returns an error for incorrect data.
func (e EndpointID) CheckValid() error {
	switch {
	case e.scheme == "":
		return fmt.Errorf("EndpointID: empty scheme name")

	case strings.ContainsAny(e.scheme, ":\x00"):
		return fmt.Errorf("EndpointID: scheme name %q contains an illegal character", e.scheme)

	case strings.ContainsRune(e.ssp, 0):
		return fmt.Errorf("EndpointID: scheme-specific part %q contains a NUL byte", e.ssp)

	case e.scheme == ipnEndpointSchemeName:
		if _, _, ok := e.Ipn(); !ok {
			return fmt.Errorf("EndpointID: %q is no valid ipn endpoint", e.String())
		}
	}

	return nil
}

func (e EndpointID) String() string {
	return e.scheme + ":" + e.ssp
}

// MarshalJSON writes this EndpointID as its URI string.
func (e EndpointID) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.String())
}
