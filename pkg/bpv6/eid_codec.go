// SPDX-FileCopyrightText: 2026 The dtn7 Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bpv6

import "fmt"

// EIDEncoding names the two ways of representing the primary block's
// endpoints on the wire.
type EIDEncoding int

const (
	// DictionaryEncoding references NUL-terminated strings in the dictionary.
	DictionaryEncoding EIDEncoding = iota

	// CBHEEncoding writes "ipn" node and service numbers, RFC 6260.
	CBHEEncoding
)

func (enc EIDEncoding) String() string {
	switch enc {
	case DictionaryEncoding:
		return "dictionary"
	case CBHEEncoding:
		return "cbhe"
	default:
		return fmt.Sprintf("unknown(%d)", int(enc))
	}
}

// eidCodec maps an EndpointID to the pair of SDNVs representing it within a
// primary block and back. The pair is either a dictionary EIDReference or a
// CBHE node and service number tuple.
type eidCodec interface {
	encoding() EIDEncoding
	encodeEID(e EndpointID) (a, b uint64, err error)
	decodeEID(a, b uint64) (EndpointID, error)
	dictionary() *Dictionary
}

// newEIDEncoder picks the codec for the primary block's endpoints. CBHE is
// only possible without extension blocks referencing further endpoints.
func newEIDEncoder(eids []EndpointID, blockRefs bool) eidCodec {
	if blockRefs {
		return newDictionaryCodec(nil)
	}

	for _, eid := range eids {
		if !eid.cbheCompatible() {
			return newDictionaryCodec(nil)
		}
	}

	return cbheCodec{}
}

// newEIDDecoder picks the codec based on the received dictionary, which is
// empty for CBHE.
func newEIDDecoder(dict []byte) eidCodec {
	if len(dict) == 0 {
		return cbheCodec{}
	}
	return newDictionaryCodec(dict)
}

type cbheCodec struct{}

func (cbheCodec) encoding() EIDEncoding {
	return CBHEEncoding
}

func (cbheCodec) encodeEID(e EndpointID) (node, service uint64, err error) {
	if e.IsNone() {
		return 0, 0, nil
	}

	if !e.cbheCompatible() {
		err = fmt.Errorf("endpoint %v cannot be compressed by CBHE", e)
		return
	}

	node, service, _ = e.Ipn()
	return
}

func (cbheCodec) decodeEID(node, service uint64) (EndpointID, error) {
	if node == 0 && service == 0 {
		return DtnNone(), nil
	}
	return NewIpnEndpoint(node, service), nil
}

func (cbheCodec) dictionary() *Dictionary {
	return nil
}

type dictionaryCodec struct {
	dict *Dictionary
}

func newDictionaryCodec(buf []byte) dictionaryCodec {
	if buf == nil {
		return dictionaryCodec{NewDictionary()}
	}
	return dictionaryCodec{loadDictionary(buf)}
}

func (dictionaryCodec) encoding() EIDEncoding {
	return DictionaryEncoding
}

func (dc dictionaryCodec) encodeEID(e EndpointID) (schemeOffset, sspOffset uint64, err error) {
	ref := dc.dict.Reference(e)
	return ref.SchemeOffset, ref.SspOffset, nil
}

func (dc dictionaryCodec) decodeEID(schemeOffset, sspOffset uint64) (EndpointID, error) {
	return dc.dict.Resolve(EIDReference{SchemeOffset: schemeOffset, SspOffset: sspOffset})
}

func (dc dictionaryCodec) dictionary() *Dictionary {
	return dc.dict
}
