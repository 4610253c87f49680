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

package keyset_test

import (
	"testing"

	"github.com/majacQ/tink/keyset"
)

func TestPrimary(t *testing.T) {
	ks := &keyset.Keyset{
		PrimaryKeyID: 2,
		Entries: []*keyset.Entry{
			{KeyID: 1, Status: keyset.StatusEnabled, PrefixType: keyset.OutputPrefixTypeTink},
			{KeyID: 2, Status: keyset.StatusEnabled, PrefixType: keyset.OutputPrefixTypeTink},
			{KeyID: 3, Status: keyset.StatusDisabled, PrefixType: keyset.OutputPrefixTypeRaw},
		},
	}
	if got, want := ks.Len(), 3; got != want {
		t.Errorf("ks.Len() = %d, want %d", got, want)
	}
	primary, err := ks.Primary()
	if err != nil {
		t.Fatalf("ks.Primary() err = %v, want nil", err)
	}
	if primary.KeyID != 2 {
		t.Errorf("primary.KeyID = %d, want 2", primary.KeyID)
	}
}

func TestPrimaryFailsIfMissing(t *testing.T) {
	ks := &keyset.Keyset{
		PrimaryKeyID: 4,
		Entries: []*keyset.Entry{
			{KeyID: 1, Status: keyset.StatusEnabled, PrefixType: keyset.OutputPrefixTypeTink},
		},
	}
	if _, err := ks.Primary(); err == nil {
		t.Errorf("ks.Primary() err = nil, want error")
	}
}

func TestStatusString(t *testing.T) {
	for _, tc := range []struct {
		status keyset.Status
		want   string
	}{
		{status: keyset.StatusEnabled, want: "ENABLED"},
		{status: keyset.StatusDisabled, want: "DISABLED"},
		{status: keyset.StatusUnknown, want: "UNKNOWN"},
	} {
		if got := tc.status.String(); got != tc.want {
			t.Errorf("Status.String() = %q, want %q", got, tc.want)
		}
	}
}

func TestOutputPrefixTypeString(t *testing.T) {
	for _, tc := range []struct {
		prefixType keyset.OutputPrefixType
		want       string
	}{
		{prefixType: keyset.OutputPrefixTypeTink, want: "TINK"},
		{prefixType: keyset.OutputPrefixTypeLegacy, want: "LEGACY"},
		{prefixType: keyset.OutputPrefixTypeRaw, want: "RAW"},
		{prefixType: keyset.OutputPrefixTypeCrunchy, want: "CRUNCHY"},
		{prefixType: keyset.OutputPrefixTypeUnknown, want: "UNKNOWN_PREFIX"},
	} {
		if got := tc.prefixType.String(); got != tc.want {
			t.Errorf("OutputPrefixType.String() = %q, want %q", got, tc.want)
		}
	}
}
