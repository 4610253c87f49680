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

// Package keyderivers maps parameters types to functions that derive a
// key of that type from a stream of pseudorandom bytes.
//
// The map is populated at init time and read-only afterwards.
package keyderivers

import (
	"fmt"
	"io"
	"reflect"

	"github.com/majacQ/tink/aead/aesgcm"
	"github.com/majacQ/tink/insecuresecretdataaccess"
	"github.com/majacQ/tink/key"
	"github.com/majacQ/tink/mac/hmac"
	"github.com/majacQ/tink/secretdata"
)

type keyDeriver func(parameters key.Parameters, idRequirement uint32, reader io.Reader, token insecuresecretdataaccess.Token) (key.Key, error)

var keyDerivers = make(map[reflect.Type]keyDeriver)

// DeriveKey derives a new [key.Key] of the type described by params from
// the pseudorandom bytes of reader.
//
// It looks up the appropriate key deriver based on the Go type of params.
func DeriveKey(params key.Parameters, idRequirement uint32, reader io.Reader, token insecuresecretdataaccess.Token) (key.Key, error) {
	pType := reflect.TypeOf(params)
	deriver, ok := keyDerivers[pType]
	if !ok {
		return nil, fmt.Errorf("no key deriver found for %v", pType)
	}
	return deriver(params, idRequirement, reader, token)
}

// CanDeriveKey reports whether a key deriver is registered for the Go
// type of params.
func CanDeriveKey(params key.Parameters) bool {
	_, ok := keyDerivers[reflect.TypeOf(params)]
	return ok
}

func addAESGCMKeyDeriver() {
	parametersType := reflect.TypeFor[*aesgcm.Parameters]()
	keyDerivers[parametersType] = func(p key.Parameters, idRequirement uint32, reader io.Reader, token insecuresecretdataaccess.Token) (key.Key, error) {
		params, ok := p.(*aesgcm.Parameters)
		if !ok {
			return nil, fmt.Errorf("parameters is of type %T; needed %T", p, (*aesgcm.Parameters)(nil))
		}
		keyBytes := make([]byte, params.KeySizeInBytes())
		if _, err := io.ReadFull(reader, keyBytes); err != nil {
			return nil, fmt.Errorf("insufficient pseudorandomness")
		}
		return aesgcm.NewKey(secretdata.NewBytesFromData(keyBytes, token), idRequirement, params)
	}
}

func addHMACKeyDeriver() {
	parametersType := reflect.TypeFor[*hmac.Parameters]()
	keyDerivers[parametersType] = func(p key.Parameters, idRequirement uint32, reader io.Reader, token insecuresecretdataaccess.Token) (key.Key, error) {
		params, ok := p.(*hmac.Parameters)
		if !ok {
			return nil, fmt.Errorf("parameters is of type %T; needed %T", p, (*hmac.Parameters)(nil))
		}
		keyBytes := make([]byte, params.KeySizeInBytes())
		if _, err := io.ReadFull(reader, keyBytes); err != nil {
			return nil, fmt.Errorf("insufficient pseudorandomness")
		}
		return hmac.NewKey(secretdata.NewBytesFromData(keyBytes, token), idRequirement, params)
	}
}

func init() {
	addAESGCMKeyDeriver()
	addHMACKeyDeriver()
}
