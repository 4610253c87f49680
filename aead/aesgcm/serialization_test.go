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

package aesgcm_test

import (
	"testing"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/majacQ/tink/aead/aesgcm"
	"github.com/majacQ/tink/insecuresecretdataaccess"
	"github.com/majacQ/tink/internal/serialization"
	"github.com/majacQ/tink/keyset"
	"github.com/majacQ/tink/secretdata"
)

const aesgcmTypeID = "type.googleapis.com/google.crypto.tink.AesGcmKey"

func TestSerializeParseParameters(t *testing.T) {
	for _, tc := range []struct {
		name           string
		variant        aesgcm.Variant
		tagSize        int
		wantPrefixType keyset.OutputPrefixType
	}{
		{name: "TINK", variant: aesgcm.VariantTink, tagSize: 16, wantPrefixType: keyset.OutputPrefixTypeTink},
		{name: "CRUNCHY", variant: aesgcm.VariantCrunchy, tagSize: 14, wantPrefixType: keyset.OutputPrefixTypeCrunchy},
		{name: "NO_PREFIX", variant: aesgcm.VariantNoPrefix, tagSize: 12, wantPrefixType: keyset.OutputPrefixTypeRaw},
	} {
		t.Run(tc.name, func(t *testing.T) {
			params, err := aesgcm.NewParameters(aesgcm.ParametersOpts{
				KeySizeInBytes: 32,
				IVSizeInBytes:  12,
				TagSizeInBytes: tc.tagSize,
				Variant:        tc.variant,
			})
			if err != nil {
				t.Fatalf("aesgcm.NewParameters() err = %v, want nil", err)
			}
			serialized, err := serialization.SerializeParameters(params)
			if err != nil {
				t.Fatalf("serialization.SerializeParameters() err = %v, want nil", err)
			}
			if serialized.TypeID() != aesgcmTypeID {
				t.Errorf("serialized.TypeID() = %q, want %q", serialized.TypeID(), aesgcmTypeID)
			}
			if serialized.OutputPrefixType() != tc.wantPrefixType {
				t.Errorf("serialized.OutputPrefixType() = %v, want %v", serialized.OutputPrefixType(), tc.wantPrefixType)
			}
			parsed, err := serialization.ParseParameters(serialized)
			if err != nil {
				t.Fatalf("serialization.ParseParameters() err = %v, want nil", err)
			}
			if !parsed.Equal(params) {
				t.Errorf("parsed.Equal(params) = false, want true")
			}
		})
	}
}

func TestSerializeParseKey(t *testing.T) {
	for _, tc := range []struct {
		name          string
		variant       aesgcm.Variant
		tagSize       int
		idRequirement uint32
	}{
		{name: "TINK", variant: aesgcm.VariantTink, tagSize: 16, idRequirement: 0x01020304},
		{name: "CRUNCHY", variant: aesgcm.VariantCrunchy, tagSize: 14, idRequirement: 0x01020304},
		{name: "NO_PREFIX", variant: aesgcm.VariantNoPrefix, tagSize: 12, idRequirement: 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			params, err := aesgcm.NewParameters(aesgcm.ParametersOpts{
				KeySizeInBytes: 32,
				IVSizeInBytes:  12,
				TagSizeInBytes: tc.tagSize,
				Variant:        tc.variant,
			})
			if err != nil {
				t.Fatalf("aesgcm.NewParameters() err = %v, want nil", err)
			}
			keyBytes, err := secretdata.NewBytesFromRand(32)
			if err != nil {
				t.Fatalf("secretdata.NewBytesFromRand() err = %v, want nil", err)
			}
			k, err := aesgcm.NewKey(keyBytes, tc.idRequirement, params)
			if err != nil {
				t.Fatalf("aesgcm.NewKey() err = %v, want nil", err)
			}
			serialized, err := serialization.SerializeKey(k, insecuresecretdataaccess.Token{})
			if err != nil {
				t.Fatalf("serialization.SerializeKey() err = %v, want nil", err)
			}
			parsed, err := serialization.ParseKey(serialized, insecuresecretdataaccess.Token{})
			if err != nil {
				t.Fatalf("serialization.ParseKey() err = %v, want nil", err)
			}
			if !parsed.Equal(k) {
				t.Errorf("parsed.Equal(k) = false, want true")
			}
		})
	}
}

func TestKeyCodecsRejectInvalidToken(t *testing.T) {
	params, err := aesgcm.NewParameters(aesgcm.ParametersOpts{
		KeySizeInBytes: 32,
		IVSizeInBytes:  12,
		TagSizeInBytes: 16,
		Variant:        aesgcm.VariantTink,
	})
	if err != nil {
		t.Fatalf("aesgcm.NewParameters() err = %v, want nil", err)
	}
	keyBytes, err := secretdata.NewBytesFromRand(32)
	if err != nil {
		t.Fatalf("secretdata.NewBytesFromRand() err = %v, want nil", err)
	}
	k, err := aesgcm.NewKey(keyBytes, 123, params)
	if err != nil {
		t.Fatalf("aesgcm.NewKey() err = %v, want nil", err)
	}
	if _, err := serialization.SerializeKey(k, nil); err == nil {
		t.Errorf("serialization.SerializeKey() with nil token err = nil, want error")
	}
	serialized, err := serialization.SerializeKey(k, insecuresecretdataaccess.Token{})
	if err != nil {
		t.Fatalf("serialization.SerializeKey() err = %v, want nil", err)
	}
	if _, err := serialization.ParseKey(serialized, "not a token"); err == nil {
		t.Errorf("serialization.ParseKey() with invalid token err = nil, want error")
	}
}

// buildAESGCMKeyValue hand-encodes an AesGcmKey message for parser tests.
func buildAESGCMKeyValue(version uint64, keyValue []byte, ivSize, tagSize uint64) []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, version)
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendBytes(b, keyValue)
	b = protowire.AppendTag(b, 3, protowire.VarintType)
	b = protowire.AppendVarint(b, ivSize)
	b = protowire.AppendTag(b, 4, protowire.VarintType)
	b = protowire.AppendVarint(b, tagSize)
	return b
}

func TestParseKeyFails(t *testing.T) {
	for _, tc := range []struct {
		name  string
		value []byte
	}{
		{name: "unsupported version", value: buildAESGCMKeyValue(1, make([]byte, 32), 12, 16)},
		{name: "invalid key size", value: buildAESGCMKeyValue(0, make([]byte, 20), 12, 16)},
		{name: "invalid tag size", value: buildAESGCMKeyValue(0, make([]byte, 32), 12, 20)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			serialized, err := serialization.NewKey(aesgcmTypeID, tc.value, keyset.OutputPrefixTypeTink, 123, true)
			if err != nil {
				t.Fatalf("serialization.NewKey() err = %v, want nil", err)
			}
			if _, err := serialization.ParseKey(serialized, insecuresecretdataaccess.Token{}); err == nil {
				t.Errorf("serialization.ParseKey() err = nil, want error")
			}
		})
	}
}
