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

package hmac_test

import (
	"bytes"
	"testing"

	"github.com/majacQ/tink/insecuresecretdataaccess"
	"github.com/majacQ/tink/mac/hmac"
	"github.com/majacQ/tink/secretdata"
)

func mustCreateParameters(t *testing.T, variant hmac.Variant) *hmac.Parameters {
	t.Helper()
	params, err := hmac.NewParameters(hmac.ParametersOpts{
		KeySizeInBytes: 32,
		TagSizeInBytes: 16,
		HashType:       hmac.SHA256,
		Variant:        variant,
	})
	if err != nil {
		t.Fatalf("hmac.NewParameters() err = %v, want nil", err)
	}
	return params
}

func TestNewKey(t *testing.T) {
	for _, tc := range []struct {
		name          string
		variant       hmac.Variant
		idRequirement uint32
		wantPrefix    []byte
	}{
		{
			name:          "TINK",
			variant:       hmac.VariantTink,
			idRequirement: 0x01020304,
			wantPrefix:    []byte{0x01, 0x01, 0x02, 0x03, 0x04},
		},
		{
			name:          "CRUNCHY",
			variant:       hmac.VariantCrunchy,
			idRequirement: 0x01020304,
			wantPrefix:    []byte{0x00, 0x01, 0x02, 0x03, 0x04},
		},
		{
			name:          "LEGACY",
			variant:       hmac.VariantLegacy,
			idRequirement: 0x01020304,
			wantPrefix:    []byte{0x00, 0x01, 0x02, 0x03, 0x04},
		},
		{
			name:          "NO_PREFIX",
			variant:       hmac.VariantNoPrefix,
			idRequirement: 0,
			wantPrefix:    nil,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			params := mustCreateParameters(t, tc.variant)
			keyBytes, err := secretdata.NewBytesFromRand(32)
			if err != nil {
				t.Fatalf("secretdata.NewBytesFromRand() err = %v, want nil", err)
			}
			k, err := hmac.NewKey(keyBytes, tc.idRequirement, params)
			if err != nil {
				t.Fatalf("hmac.NewKey() err = %v, want nil", err)
			}
			if !bytes.Equal(k.OutputPrefix(), tc.wantPrefix) {
				t.Errorf("k.OutputPrefix() = %x, want %x", k.OutputPrefix(), tc.wantPrefix)
			}
			id, required := k.IDRequirement()
			if id != tc.idRequirement {
				t.Errorf("k.IDRequirement() id = %d, want %d", id, tc.idRequirement)
			}
			if want := tc.variant != hmac.VariantNoPrefix; required != want {
				t.Errorf("k.IDRequirement() required = %v, want %v", required, want)
			}
			if !k.KeyBytes().Equal(keyBytes) {
				t.Errorf("k.KeyBytes() does not match the input key bytes")
			}
			if !k.Parameters().Equal(params) {
				t.Errorf("k.Parameters() does not match the input parameters")
			}
		})
	}
}

func TestNewKeyFails(t *testing.T) {
	params := mustCreateParameters(t, hmac.VariantTink)
	noPrefixParams := mustCreateParameters(t, hmac.VariantNoPrefix)
	keyBytes, err := secretdata.NewBytesFromRand(32)
	if err != nil {
		t.Fatalf("secretdata.NewBytesFromRand() err = %v, want nil", err)
	}
	shortKeyBytes, err := secretdata.NewBytesFromRand(16)
	if err != nil {
		t.Fatalf("secretdata.NewBytesFromRand() err = %v, want nil", err)
	}
	for _, tc := range []struct {
		name          string
		keyBytes      secretdata.Bytes
		idRequirement uint32
		params        *hmac.Parameters
	}{
		{name: "nil parameters", keyBytes: keyBytes, idRequirement: 123, params: nil},
		{name: "key size mismatch", keyBytes: shortKeyBytes, idRequirement: 123, params: params},
		{name: "ID given without requirement", keyBytes: keyBytes, idRequirement: 123, params: noPrefixParams},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := hmac.NewKey(tc.keyBytes, tc.idRequirement, tc.params); err == nil {
				t.Errorf("hmac.NewKey() err = nil, want error")
			}
		})
	}
}

func TestKeyEqual(t *testing.T) {
	params := mustCreateParameters(t, hmac.VariantTink)
	keyBytes := secretdata.NewBytesFromData([]byte("01234567890123456789012345678901"), insecuresecretdataaccess.Token{})
	k1, err := hmac.NewKey(keyBytes, 123, params)
	if err != nil {
		t.Fatalf("hmac.NewKey() err = %v, want nil", err)
	}
	k2, err := hmac.NewKey(keyBytes, 123, params)
	if err != nil {
		t.Fatalf("hmac.NewKey() err = %v, want nil", err)
	}
	if !k1.Equal(k2) {
		t.Errorf("k1.Equal(k2) = false, want true")
	}
	otherID, err := hmac.NewKey(keyBytes, 124, params)
	if err != nil {
		t.Fatalf("hmac.NewKey() err = %v, want nil", err)
	}
	if k1.Equal(otherID) {
		t.Errorf("k1.Equal(otherID) = true, want false")
	}
	otherBytes := secretdata.NewBytesFromData([]byte("10234567890123456789012345678901"), insecuresecretdataaccess.Token{})
	otherKey, err := hmac.NewKey(otherBytes, 123, params)
	if err != nil {
		t.Fatalf("hmac.NewKey() err = %v, want nil", err)
	}
	if k1.Equal(otherKey) {
		t.Errorf("k1.Equal(otherKey) = true, want false")
	}
}
