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

package hmac

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"

	"github.com/majacQ/tink/insecuresecretdataaccess"
	"github.com/majacQ/tink/tink"
)

func hashFunc(hashType HashType) (func() hash.Hash, error) {
	switch hashType {
	case SHA1:
		return sha1.New, nil
	case SHA224:
		return sha256.New224, nil
	case SHA256:
		return sha256.New, nil
	case SHA384:
		return sha512.New384, nil
	case SHA512:
		return sha512.New, nil
	default:
		return nil, fmt.Errorf("invalid hash type: %v", hashType)
	}
}

// rawHMAC computes tags without any output prefix. Prefixing and the
// LEGACY message transform belong to the keyset layer.
type rawHMAC struct {
	newHash func() hash.Hash
	keyData []byte
	tagSize int
}

var _ tink.MAC = (*rawHMAC)(nil)

func (m *rawHMAC) ComputeMAC(data []byte) ([]byte, error) {
	h := hmac.New(m.newHash, m.keyData)
	// hash.Hash.Write never returns an error.
	h.Write(data)
	return h.Sum(nil)[:m.tagSize], nil
}

func (m *rawHMAC) VerifyMAC(mac, data []byte) error {
	expected, err := m.ComputeMAC(data)
	if err != nil {
		return err
	}
	if !hmac.Equal(mac, expected) {
		return fmt.Errorf("hmac: invalid MAC")
	}
	return nil
}

// NewMAC creates a raw [tink.MAC] from an HMAC key.
//
// The returned primitive computes tags without an output prefix; it is
// meant to be placed in a primitive set and used through [mac.New].
func NewMAC(k *Key) (tink.MAC, error) {
	if k == nil {
		return nil, fmt.Errorf("hmac.NewMAC: key is nil")
	}
	params := k.parameters
	newHash, err := hashFunc(params.HashType())
	if err != nil {
		return nil, fmt.Errorf("hmac.NewMAC: %v", err)
	}
	return &rawHMAC{
		newHash: newHash,
		keyData: k.KeyBytes().Data(insecuresecretdataaccess.Token{}),
		tagSize: params.CryptographicTagSizeInBytes(),
	}, nil
}
