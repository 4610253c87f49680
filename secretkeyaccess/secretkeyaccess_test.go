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

package secretkeyaccess_test

import (
	"testing"

	"github.com/majacQ/tink/insecuresecretdataaccess"
	"github.com/majacQ/tink/secretkeyaccess"
)

func TestValidate(t *testing.T) {
	if err := secretkeyaccess.Validate(insecuresecretdataaccess.Token{}); err != nil {
		t.Errorf("secretkeyaccess.Validate(Token{}) err = %v, want nil", err)
	}
}

func TestValidateFailsIfNotAToken(t *testing.T) {
	for _, tc := range []struct {
		name  string
		token any
	}{
		{name: "nil", token: nil},
		{name: "string", token: "token"},
		{name: "int", token: 42},
		{name: "struct", token: struct{}{}},
		{name: "pointer to token", token: &insecuresecretdataaccess.Token{}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if err := secretkeyaccess.Validate(tc.token); err == nil {
				t.Errorf("secretkeyaccess.Validate(%v) err = nil, want error", tc.token)
			}
		})
	}
}
