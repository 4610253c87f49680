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

// Package keyset provides value types describing keysets: ordered
// collections of keys with one primary.
//
// Reading and writing persisted keysets is the responsibility of external
// layers; this package only describes keyset structure and per-key
// metadata.
package keyset

import (
	"fmt"

	"github.com/majacQ/tink/key"
)

// Status is the status of a key in a keyset.
type Status int

const (
	// StatusUnknown is the default and invalid value of Status.
	StatusUnknown Status = iota
	// StatusEnabled means the key may be used for both producing and
	// consuming operations.
	StatusEnabled
	// StatusDisabled means the key must not be used.
	StatusDisabled
)

func (s Status) String() string {
	switch s {
	case StatusEnabled:
		return "ENABLED"
	case StatusDisabled:
		return "DISABLED"
	default:
		return "UNKNOWN"
	}
}

// OutputPrefixType describes how the prefix of a key's output is
// constructed from the key's ID.
type OutputPrefixType int

const (
	// OutputPrefixTypeUnknown is the default and invalid value of
	// OutputPrefixType.
	OutputPrefixTypeUnknown OutputPrefixType = iota
	// OutputPrefixTypeTink prepends '0x01<big endian key id>' to the
	// output.
	OutputPrefixTypeTink
	// OutputPrefixTypeLegacy prepends '0x00<big endian key id>' to the
	// output; some primitives additionally alter the input message.
	OutputPrefixTypeLegacy
	// OutputPrefixTypeRaw adds no prefix to the output.
	OutputPrefixTypeRaw
	// OutputPrefixTypeCrunchy prepends '0x00<big endian key id>' to the
	// output.
	OutputPrefixTypeCrunchy
)

func (t OutputPrefixType) String() string {
	switch t {
	case OutputPrefixTypeTink:
		return "TINK"
	case OutputPrefixTypeLegacy:
		return "LEGACY"
	case OutputPrefixTypeRaw:
		return "RAW"
	case OutputPrefixTypeCrunchy:
		return "CRUNCHY"
	default:
		return "UNKNOWN_PREFIX"
	}
}

// Entry is a single key in a keyset, together with its metadata.
type Entry struct {
	Key        key.Key
	KeyID      uint32
	Status     Status
	PrefixType OutputPrefixType
}

// Keyset is an ordered collection of keys with one primary.
//
// A Keyset value is immutable by convention: it is fully populated on
// construction and only read afterwards.
type Keyset struct {
	PrimaryKeyID uint32
	Entries      []*Entry
}

// Primary returns the entry whose key ID equals PrimaryKeyID.
func (ks *Keyset) Primary() (*Entry, error) {
	for _, e := range ks.Entries {
		if e.KeyID == ks.PrimaryKeyID {
			return e, nil
		}
	}
	return nil, fmt.Errorf("keyset: no entry with primary key ID %d", ks.PrimaryKeyID)
}

// Len returns the number of entries in the keyset.
func (ks *Keyset) Len() int { return len(ks.Entries) }
