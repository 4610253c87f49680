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

// Package aead provides implementations of the AEAD primitive.
//
// AEAD encryption assures the confidentiality and authenticity of the
// data. This primitive is CPA secure.
package aead

import (
	"errors"
	"fmt"
	"slices"

	"github.com/majacQ/tink/internal/outputprefix"
	"github.com/majacQ/tink/internal/primitiveset"
	"github.com/majacQ/tink/tink"
)

var errDecryptionFailed = errors.New("aead: decryption failed")

// New creates a [tink.AEAD] from a set of AEAD primitives.
//
// The set must have a primary entry; ciphertexts are produced by the
// primary and carry its output prefix.
func New(ps *primitiveset.Set[tink.AEAD]) (tink.AEAD, error) {
	if ps == nil {
		return nil, fmt.Errorf("aead: primitive set is nil")
	}
	if ps.Primary() == nil {
		return nil, fmt.Errorf("aead: primitive set has no primary")
	}
	return &wrappedAEAD{ps: ps}, nil
}

// wrappedAEAD is a [tink.AEAD] implementation that uses a set of
// [tink.AEAD] primitives to encrypt and decrypt.
type wrappedAEAD struct {
	ps *primitiveset.Set[tink.AEAD]
}

var _ tink.AEAD = (*wrappedAEAD)(nil)

// Encrypt encrypts plaintext with associatedData using the primary
// primitive. It returns the concatenation of the primary's output prefix
// and the ciphertext.
func (a *wrappedAEAD) Encrypt(plaintext, associatedData []byte) ([]byte, error) {
	primary := a.ps.Primary()
	ct, err := primary.Primitive.Encrypt(plaintext, associatedData)
	if err != nil {
		return nil, err
	}
	return slices.Concat([]byte(primary.Prefix), ct), nil
}

func (a *wrappedAEAD) tryDecrypt(entries []*primitiveset.Entry[tink.AEAD], ciphertext, associatedData []byte) ([]byte, bool) {
	for _, entry := range entries {
		if pt, err := entry.Primitive.Decrypt(ciphertext, associatedData); err == nil {
			return pt, true
		}
	}
	return nil, false
}

// Decrypt decrypts ciphertext with associatedData, trying first the keys
// whose output prefix matches the ciphertext and then the keys without a
// prefix.
//
// All failures collapse into a single error that does not reveal which
// keys were tried.
func (a *wrappedAEAD) Decrypt(ciphertext, associatedData []byte) ([]byte, error) {
	prefixSize := outputprefix.NonRawPrefixSize
	if len(ciphertext) > prefixSize {
		if entries := a.ps.EntriesForPrefix(string(ciphertext[:prefixSize])); len(entries) > 0 {
			if pt, ok := a.tryDecrypt(entries, ciphertext[prefixSize:], associatedData); ok {
				return pt, nil
			}
		}
	}
	if entries := a.ps.RawEntries(); len(entries) > 0 {
		if pt, ok := a.tryDecrypt(entries, ciphertext, associatedData); ok {
			return pt, nil
		}
	}
	return nil, errDecryptionFailed
}
