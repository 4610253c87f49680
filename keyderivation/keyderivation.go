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

// Package keyderivation provides the keyset deriver primitive: deriving a
// whole keyset of new keys from a salt.
//
// Each key of a derivation keyset independently derives one new key; the
// derived keys are assembled into a keyset that mirrors the structure of
// the original one, so that rotation of the derivation keyset rotates the
// derived keysets with it.
package keyderivation

import (
	"errors"
	"fmt"

	"github.com/majacQ/tink/internal/primitiveset"
	"github.com/majacQ/tink/key"
	"github.com/majacQ/tink/keyset"
)

var errKeysetDerivationFailed = errors.New("keyderivation: keyset derivation failed")

// KeyDeriver derives a single new key from a salt.
type KeyDeriver interface {
	// DeriveKey derives a new key, deterministic in the derivation key and
	// salt.
	DeriveKey(salt []byte) (key.Key, error)
}

// KeysetDeriver derives a new keyset from a salt.
type KeysetDeriver interface {
	// DeriveKeyset derives a new keyset, deterministic in the derivation
	// keyset and salt.
	DeriveKeyset(salt []byte) (*keyset.Keyset, error)
}

// New creates a [KeysetDeriver] from a set of [KeyDeriver] primitives.
//
// The set must have a primary entry.
func New(ps *primitiveset.Set[KeyDeriver]) (KeysetDeriver, error) {
	if ps == nil {
		return nil, fmt.Errorf("keyderivation: primitive set is nil")
	}
	if ps.Primary() == nil {
		return nil, fmt.Errorf("keyderivation: primitive set has no primary")
	}
	return &wrappedKeysetDeriver{ps: ps}, nil
}

// wrappedKeysetDeriver is a [KeysetDeriver] implementation that uses the
// underlying primitive set to derive keysets.
type wrappedKeysetDeriver struct {
	ps *primitiveset.Set[KeyDeriver]
}

var _ KeysetDeriver = (*wrappedKeysetDeriver)(nil)

// DeriveKeyset derives one key per entry of the set, in keyset order.
//
// Each derived key carries the key ID, status and output prefix type of
// the entry that derived it. The primary key ID of the derived keyset
// equals the primary key ID of the derivation keyset.
func (w *wrappedKeysetDeriver) DeriveKeyset(salt []byte) (*keyset.Keyset, error) {
	entries := make([]*keyset.Entry, 0, len(w.ps.EntriesInKeysetOrder()))
	for _, e := range w.ps.EntriesInKeysetOrder() {
		derived, err := e.Primitive.DeriveKey(salt)
		if err != nil {
			return nil, errKeysetDerivationFailed
		}
		entries = append(entries, &keyset.Entry{
			Key:        derived,
			KeyID:      e.KeyID,
			Status:     e.Status,
			PrefixType: e.PrefixType,
		})
	}
	return &keyset.Keyset{
		PrimaryKeyID: w.ps.Primary().KeyID,
		Entries:      entries,
	}, nil
}
