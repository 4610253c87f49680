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

package keyderivation_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/majacQ/tink/internal/primitiveset"
	"github.com/majacQ/tink/key"
	"github.com/majacQ/tink/keyderivation"
	"github.com/majacQ/tink/keyset"
)

// fakeParameters and fakeKey stand in for a real derived key type.
type fakeParameters struct{}

func (p *fakeParameters) HasIDRequirement() bool          { return false }
func (p *fakeParameters) Equal(other key.Parameters) bool { _, ok := other.(*fakeParameters); return ok }

type fakeKey struct {
	Data string
}

func (k *fakeKey) Parameters() key.Parameters    { return &fakeParameters{} }
func (k *fakeKey) IDRequirement() (uint32, bool) { return 0, false }
func (k *fakeKey) Equal(other key.Key) bool {
	that, ok := other.(*fakeKey)
	return ok && k.Data == that.Data
}

// fakeKeyDeriver derives a fakeKey whose data encodes the deriver's name
// and the salt, so tests can tell which deriver produced which key.
type fakeKeyDeriver struct {
	name string
}

func (d *fakeKeyDeriver) DeriveKey(salt []byte) (key.Key, error) {
	return &fakeKey{Data: fmt.Sprintf("%d:%s%s", len(d.name), d.name, salt)}, nil
}

// failingKeyDeriver always fails.
type failingKeyDeriver struct{}

func (d *failingKeyDeriver) DeriveKey(salt []byte) (key.Key, error) {
	return nil, fmt.Errorf("derivation failed")
}

func TestNewFailsWithNilSet(t *testing.T) {
	if _, err := keyderivation.New(nil); err == nil {
		t.Errorf("keyderivation.New(nil) err = nil, want error")
	}
}

func TestNewFailsWithoutPrimary(t *testing.T) {
	ps := primitiveset.New[keyderivation.KeyDeriver]()
	if _, err := ps.Add(&fakeKeyDeriver{name: "k1"}, primitiveset.KeyInfo{
		KeyID: 1, Status: keyset.StatusEnabled, PrefixType: keyset.OutputPrefixTypeTink,
	}); err != nil {
		t.Fatalf("ps.Add() err = %v, want nil", err)
	}
	if _, err := keyderivation.New(ps); err == nil {
		t.Errorf("keyderivation.New() with no primary err = nil, want error")
	}
}

func TestDeriveKeyset(t *testing.T) {
	ps := primitiveset.New[keyderivation.KeyDeriver]()
	infos := []primitiveset.KeyInfo{
		{KeyID: 1, Status: keyset.StatusEnabled, PrefixType: keyset.OutputPrefixTypeTink},
		{KeyID: 2, Status: keyset.StatusEnabled, PrefixType: keyset.OutputPrefixTypeRaw},
		{KeyID: 3, Status: keyset.StatusEnabled, PrefixType: keyset.OutputPrefixTypeCrunchy},
	}
	var entries []*primitiveset.Entry[keyderivation.KeyDeriver]
	for i, info := range infos {
		e, err := ps.Add(&fakeKeyDeriver{name: fmt.Sprintf("k%d", i+1)}, info)
		if err != nil {
			t.Fatalf("ps.Add() err = %v, want nil", err)
		}
		entries = append(entries, e)
	}
	if err := ps.SetPrimary(entries[1]); err != nil {
		t.Fatalf("ps.SetPrimary() err = %v, want nil", err)
	}
	deriver, err := keyderivation.New(ps)
	if err != nil {
		t.Fatalf("keyderivation.New() err = %v, want nil", err)
	}

	derived, err := deriver.DeriveKeyset([]byte("salt"))
	if err != nil {
		t.Fatalf("deriver.DeriveKeyset() err = %v, want nil", err)
	}
	want := &keyset.Keyset{
		PrimaryKeyID: 2,
		Entries: []*keyset.Entry{
			{Key: &fakeKey{Data: "2:k1salt"}, KeyID: 1, Status: keyset.StatusEnabled, PrefixType: keyset.OutputPrefixTypeTink},
			{Key: &fakeKey{Data: "2:k2salt"}, KeyID: 2, Status: keyset.StatusEnabled, PrefixType: keyset.OutputPrefixTypeRaw},
			{Key: &fakeKey{Data: "2:k3salt"}, KeyID: 3, Status: keyset.StatusEnabled, PrefixType: keyset.OutputPrefixTypeCrunchy},
		},
	}
	if diff := cmp.Diff(want, derived); diff != "" {
		t.Errorf("deriver.DeriveKeyset() diff (-want +got):\n%s", diff)
	}
	primary, err := derived.Primary()
	if err != nil {
		t.Fatalf("derived.Primary() err = %v, want nil", err)
	}
	if !primary.Key.Equal(&fakeKey{Data: "2:k2salt"}) {
		t.Errorf("primary.Key = %v, want the key derived by the primary deriver", primary.Key)
	}
}

func TestDeriveKeysetIsDeterministicInSalt(t *testing.T) {
	ps := primitiveset.New[keyderivation.KeyDeriver]()
	e, err := ps.Add(&fakeKeyDeriver{name: "k1"}, primitiveset.KeyInfo{
		KeyID: 1, Status: keyset.StatusEnabled, PrefixType: keyset.OutputPrefixTypeTink,
	})
	if err != nil {
		t.Fatalf("ps.Add() err = %v, want nil", err)
	}
	if err := ps.SetPrimary(e); err != nil {
		t.Fatalf("ps.SetPrimary() err = %v, want nil", err)
	}
	deriver, err := keyderivation.New(ps)
	if err != nil {
		t.Fatalf("keyderivation.New() err = %v, want nil", err)
	}
	ks1, err := deriver.DeriveKeyset([]byte("salt"))
	if err != nil {
		t.Fatalf("deriver.DeriveKeyset() err = %v, want nil", err)
	}
	ks2, err := deriver.DeriveKeyset([]byte("salt"))
	if err != nil {
		t.Fatalf("deriver.DeriveKeyset() err = %v, want nil", err)
	}
	if diff := cmp.Diff(ks1, ks2); diff != "" {
		t.Errorf("same salt produced different keysets, diff:\n%s", diff)
	}
	ks3, err := deriver.DeriveKeyset([]byte("other salt"))
	if err != nil {
		t.Fatalf("deriver.DeriveKeyset() err = %v, want nil", err)
	}
	if ks1.Entries[0].Key.Equal(ks3.Entries[0].Key) {
		t.Errorf("different salts derived the same key")
	}
}

func TestDeriveKeysetFailsIfOneDeriverFails(t *testing.T) {
	ps := primitiveset.New[keyderivation.KeyDeriver]()
	e, err := ps.Add(&fakeKeyDeriver{name: "k1"}, primitiveset.KeyInfo{
		KeyID: 1, Status: keyset.StatusEnabled, PrefixType: keyset.OutputPrefixTypeTink,
	})
	if err != nil {
		t.Fatalf("ps.Add() err = %v, want nil", err)
	}
	if _, err := ps.Add(&failingKeyDeriver{}, primitiveset.KeyInfo{
		KeyID: 2, Status: keyset.StatusEnabled, PrefixType: keyset.OutputPrefixTypeTink,
	}); err != nil {
		t.Fatalf("ps.Add() err = %v, want nil", err)
	}
	if err := ps.SetPrimary(e); err != nil {
		t.Fatalf("ps.SetPrimary() err = %v, want nil", err)
	}
	deriver, err := keyderivation.New(ps)
	if err != nil {
		t.Fatalf("keyderivation.New() err = %v, want nil", err)
	}
	if _, err := deriver.DeriveKeyset([]byte("salt")); err == nil {
		t.Errorf("deriver.DeriveKeyset() err = nil, want error")
	}
}
