// Copyright 2024 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package mac provides implementations of the MAC primitive.
//
// MACs protect the integrity and authenticity of data. The package wraps
// a set of per-key MAC primitives into a single [tink.MAC] that computes
// tags with the primary key and verifies tags against every key whose
// output prefix matches.
package mac

import (
	"errors"
	"fmt"
	"slices"

	"github.com/majacQ/tink/internal/outputprefix"
	"github.com/majacQ/tink/internal/primitiveset"
	"github.com/majacQ/tink/keyset"
	"github.com/majacQ/tink/tink"
)

var errInvalidMAC = errors.New("mac: invalid MAC")

// New creates a [tink.MAC] from a set of MAC primitives.
//
// The set must have a primary entry; computed tags are produced by the
// primary and carry its output prefix.
func New(ps *primitiveset.Set[tink.MAC]) (tink.MAC, error) {
	if ps == nil {
		return nil, fmt.Errorf("mac: primitive set is nil")
	}
	if ps.Primary() == nil {
		return nil, fmt.Errorf("mac: primitive set has no primary")
	}
	return &wrappedMAC{ps: ps}, nil
}

// wrappedMAC is a [tink.MAC] implementation that uses a set of [tink.MAC]
// primitives to compute and verify tags.
type wrappedMAC struct {
	ps *primitiveset.Set[tink.MAC]
}

var _ tink.MAC = (*wrappedMAC)(nil)

// macData returns the bytes the raw primitive authenticates for an entry.
//
// LEGACY keys authenticate the message with a zero byte appended.
func macData(prefixType keyset.OutputPrefixType, data []byte) []byte {
	if prefixType != keyset.OutputPrefixTypeLegacy {
		return data
	}
	d := make([]byte, 0, len(data)+1)
	d = append(d, data...)
	return append(d, 0)
}

// ComputeMAC calculates a MAC over data using the primary primitive and
// returns the concatenation of the primary's output prefix and the
// calculated tag.
func (m *wrappedMAC) ComputeMAC(data []byte) ([]byte, error) {
	primary := m.ps.Primary()
	tag, err := primary.Primitive.ComputeMAC(macData(primary.PrefixType, data))
	if err != nil {
		return nil, err
	}
	return slices.Concat([]byte(primary.Prefix), tag), nil
}

func (m *wrappedMAC) tryVerifyMAC(entries []*primitiveset.Entry[tink.MAC], tagOffset int, mac, data []byte) bool {
	for _, entry := range entries {
		if err := entry.Primitive.VerifyMAC(mac[tagOffset:], macData(entry.PrefixType, data)); err == nil {
			return true
		}
	}
	return false
}

// VerifyMAC verifies whether mac is a correct authentication code for
// data under any key of the set.
//
// All failures collapse into a single error that does not reveal which
// keys were tried.
func (m *wrappedMAC) VerifyMAC(mac, data []byte) error {
	// This also rejects raw MACs of prefix size or fewer bytes; such
	// short tags are insecure and rejected outright.
	prefixSize := outputprefix.NonRawPrefixSize
	if len(mac) <= prefixSize {
		return errInvalidMAC
	}
	if entries := m.ps.EntriesForPrefix(string(mac[:prefixSize])); len(entries) > 0 {
		if m.tryVerifyMAC(entries, prefixSize, mac, data) {
			return nil
		}
	}
	if entries := m.ps.RawEntries(); len(entries) > 0 {
		if m.tryVerifyMAC(entries, 0, mac, data) {
			return nil
		}
	}
	return errInvalidMAC
}
