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

package aesgcm

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"github.com/majacQ/tink/insecuresecretdataaccess"
	"github.com/majacQ/tink/tink"
)

const supportedIVSizeInBytes = 12

// rawAESGCM encrypts without any output prefix. Prefixing belongs to the
// keyset layer.
//
// The ciphertext layout is 'iv || ciphertext || tag'.
type rawAESGCM struct {
	aead   cipher.AEAD
	ivSize int
}

var _ tink.AEAD = (*rawAESGCM)(nil)

func (a *rawAESGCM) Encrypt(plaintext, associatedData []byte) ([]byte, error) {
	iv := make([]byte, a.ivSize)
	if _, err := rand.Read(iv); err != nil {
		return nil, err
	}
	return a.aead.Seal(iv, iv, plaintext, associatedData), nil
}

func (a *rawAESGCM) Decrypt(ciphertext, associatedData []byte) ([]byte, error) {
	if len(ciphertext) < a.ivSize+a.aead.Overhead() {
		return nil, fmt.Errorf("aesgcm: ciphertext too short")
	}
	iv := ciphertext[:a.ivSize]
	return a.aead.Open(nil, iv, ciphertext[a.ivSize:], associatedData)
}

// NewAEAD creates a raw [tink.AEAD] from an AES-GCM key.
//
// The returned primitive produces ciphertexts without an output prefix;
// it is meant to be placed in a primitive set and used through
// [aead.New]. Only 12-byte IVs are supported.
func NewAEAD(k *Key) (tink.AEAD, error) {
	if k == nil {
		return nil, fmt.Errorf("aesgcm.NewAEAD: key is nil")
	}
	params := k.parameters
	if params.IVSizeInBytes() != supportedIVSizeInBytes {
		return nil, fmt.Errorf("aesgcm.NewAEAD: unsupported IV size: %d, want %d", params.IVSizeInBytes(), supportedIVSizeInBytes)
	}
	block, err := aes.NewCipher(k.KeyBytes().Data(insecuresecretdataaccess.Token{}))
	if err != nil {
		return nil, fmt.Errorf("aesgcm.NewAEAD: %v", err)
	}
	gcm, err := cipher.NewGCMWithTagSize(block, params.TagSizeInBytes())
	if err != nil {
		return nil, fmt.Errorf("aesgcm.NewAEAD: %v", err)
	}
	return &rawAESGCM{aead: gcm, ivSize: params.IVSizeInBytes()}, nil
}
