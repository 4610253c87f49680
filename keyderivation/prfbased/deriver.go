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

package prfbased

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"

	"golang.org/x/crypto/hkdf"

	"github.com/majacQ/tink/insecuresecretdataaccess"
	"github.com/majacQ/tink/internal/keyderivers"
	"github.com/majacQ/tink/key"
	"github.com/majacQ/tink/keyderivation"
)

func hashFunc(hashType HashType) (func() hash.Hash, error) {
	switch hashType {
	case SHA256:
		return sha256.New, nil
	case SHA512:
		return sha512.New, nil
	default:
		return nil, fmt.Errorf("invalid hash type: %v", hashType)
	}
}

// prfBasedDeriver expands an HKDF PRF keyed with the PRF key and
// materializes a key of the derived parameters from the output stream.
type prfBasedDeriver struct {
	key *Key
}

var _ keyderivation.KeyDeriver = (*prfBasedDeriver)(nil)

// DeriveKey derives a new key from salt.
//
// The derivation is deterministic in the PRF key and salt. The derived
// key carries this key's ID requirement.
func (d *prfBasedDeriver) DeriveKey(salt []byte) (key.Key, error) {
	params := d.key.parameters
	newHash, err := hashFunc(params.PRFHashType())
	if err != nil {
		return nil, fmt.Errorf("prfbased: %v", err)
	}
	prfKey := d.key.PRFKeyBytes().Data(insecuresecretdataaccess.Token{})
	reader := hkdf.New(newHash, prfKey, nil, salt)
	// Zero when the key has no ID requirement.
	idRequirement, _ := d.key.IDRequirement()
	return keyderivers.DeriveKey(params.DerivedKeyParameters(), idRequirement, reader, insecuresecretdataaccess.Token{})
}

// NewKeyDeriver creates a [keyderivation.KeyDeriver] from a PRF-based
// key derivation key.
func NewKeyDeriver(k *Key) (keyderivation.KeyDeriver, error) {
	if k == nil {
		return nil, fmt.Errorf("prfbased.NewKeyDeriver: key is nil")
	}
	if !keyderivers.CanDeriveKey(k.parameters.DerivedKeyParameters()) {
		return nil, fmt.Errorf("prfbased.NewKeyDeriver: no key deriver for derived parameters of type %T", k.parameters.DerivedKeyParameters())
	}
	return &prfBasedDeriver{key: k}, nil
}
