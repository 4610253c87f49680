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

package outputprefix_test

import (
	"bytes"
	"testing"

	"github.com/majacQ/tink/internal/outputprefix"
	"github.com/majacQ/tink/keyset"
)

func TestTink(t *testing.T) {
	for _, tc := range []struct {
		keyID uint32
		want  []byte
	}{
		{keyID: 0x01020304, want: []byte{0x01, 0x01, 0x02, 0x03, 0x04}},
		{keyID: 0, want: []byte{0x01, 0x00, 0x00, 0x00, 0x00}},
		{keyID: 0xFFFFFFFF, want: []byte{0x01, 0xFF, 0xFF, 0xFF, 0xFF}},
	} {
		if got := outputprefix.Tink(tc.keyID); !bytes.Equal(got, tc.want) {
			t.Errorf("outputprefix.Tink(0x%08X) = %v, want %v", tc.keyID, got, tc.want)
		}
	}
}

func TestLegacy(t *testing.T) {
	for _, tc := range []struct {
		keyID uint32
		want  []byte
	}{
		{keyID: 0x01020304, want: []byte{0x00, 0x01, 0x02, 0x03, 0x04}},
		{keyID: 0, want: []byte{0x00, 0x00, 0x00, 0x00, 0x00}},
		{keyID: 0xFFFFFFFF, want: []byte{0x00, 0xFF, 0xFF, 0xFF, 0xFF}},
	} {
		if got := outputprefix.Legacy(tc.keyID); !bytes.Equal(got, tc.want) {
			t.Errorf("outputprefix.Legacy(0x%08X) = %v, want %v", tc.keyID, got, tc.want)
		}
	}
}

func TestFromPrefixType(t *testing.T) {
	for _, tc := range []struct {
		name       string
		prefixType keyset.OutputPrefixType
		want       []byte
	}{
		{name: "TINK", prefixType: keyset.OutputPrefixTypeTink, want: []byte{0x01, 0x11, 0x22, 0x33, 0x44}},
		{name: "LEGACY", prefixType: keyset.OutputPrefixTypeLegacy, want: []byte{0x00, 0x11, 0x22, 0x33, 0x44}},
		{name: "CRUNCHY", prefixType: keyset.OutputPrefixTypeCrunchy, want: []byte{0x00, 0x11, 0x22, 0x33, 0x44}},
		{name: "RAW", prefixType: keyset.OutputPrefixTypeRaw, want: nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := outputprefix.FromPrefixType(tc.prefixType, 0x11223344)
			if err != nil {
				t.Fatalf("outputprefix.FromPrefixType(%v, 0x11223344) err = %v, want nil", tc.prefixType, err)
			}
			if !bytes.Equal(got, tc.want) {
				t.Errorf("outputprefix.FromPrefixType(%v, 0x11223344) = %v, want %v", tc.prefixType, got, tc.want)
			}
		})
	}
}

func TestFromPrefixTypeFailsWithUnknownPrefixType(t *testing.T) {
	if _, err := outputprefix.FromPrefixType(keyset.OutputPrefixTypeUnknown, 0x11223344); err == nil {
		t.Errorf("outputprefix.FromPrefixType(Unknown, 0x11223344) err = nil, want error")
	}
}
