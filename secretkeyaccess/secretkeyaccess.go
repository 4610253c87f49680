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

// Package secretkeyaccess provides a function to validate secret key
// access tokens.
//
// APIs that accept a token as an untyped value use this package to check
// that the caller actually holds an [insecuresecretdataaccess.Token]
// before any secret key material is read or written.
package secretkeyaccess

import (
	"fmt"

	"github.com/majacQ/tink/insecuresecretdataaccess"
)

// Validate validates a secret key access token.
//
// It returns nil if token is an [insecuresecretdataaccess.Token] value,
// and an error otherwise. A nil token is never valid.
func Validate(token any) error {
	if _, ok := token.(insecuresecretdataaccess.Token); !ok {
		return fmt.Errorf("secret key access token is not of type insecuresecretdataaccess.Token, got %T", token)
	}
	return nil
}
