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

// Package outputprefix provides constants and shared utility functions for
// computing the prefix applied to the output of a cryptographic function.
package outputprefix

import (
	"encoding/binary"
	"fmt"

	"github.com/majacQ/tink/keyset"
)

const (
	// NonRawPrefixSize is the prefix size of TINK, CRUNCHY and LEGACY key
	// types.
	NonRawPrefixSize = 5
	// legacyStartByte is the first byte of the prefix of legacy key types.
	legacyStartByte = byte(0)
	// tinkStartByte is the first byte of the prefix of Tink key types.
	tinkStartByte = byte(1)
)

// calculatePrefixBytes calculates the bytes prefixed to the output of a
// cryptographic function.
//
// The prefix consists of a start byte and a 4-byte big endian key id.
func calculatePrefixBytes(startByte byte, id uint32) []byte {
	prefix := make([]byte, NonRawPrefixSize)
	prefix[0] = startByte
	binary.BigEndian.PutUint32(prefix[1:], id)
	return prefix
}

// Tink returns the output prefix bytes from keyID for TINK keys.
func Tink(keyID uint32) []byte { return calculatePrefixBytes(tinkStartByte, keyID) }

// Legacy returns the output prefix bytes from keyID for LEGACY and
// CRUNCHY keys.
func Legacy(keyID uint32) []byte { return calculatePrefixBytes(legacyStartByte, keyID) }

// FromPrefixType returns the output prefix bytes for a key with the given
// output prefix type and key ID.
//
// RAW keys have no prefix; an unknown prefix type is an error.
func FromPrefixType(prefixType keyset.OutputPrefixType, keyID uint32) ([]byte, error) {
	switch prefixType {
	case keyset.OutputPrefixTypeTink:
		return Tink(keyID), nil
	case keyset.OutputPrefixTypeLegacy, keyset.OutputPrefixTypeCrunchy:
		return Legacy(keyID), nil
	case keyset.OutputPrefixTypeRaw:
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported output prefix type: %v", prefixType)
	}
}
