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
	"fmt"

	"github.com/majacQ/tink/key"
)

// Variant is the prefix variant of AES-GCM keys.
//
// It describes how the prefix of the ciphertext is constructed. For AEAD
// there are three options:
//
//   - VariantTink: prepends '0x01<big endian key id>' to the ciphertext.
//   - VariantCrunchy: prepends '0x00<big endian key id>' to the
//     ciphertext.
//   - VariantNoPrefix: adds no prefix to the ciphertext.
type Variant int

const (
	// VariantUnknown is the default and invalid value of Variant.
	VariantUnknown Variant = iota
	// VariantTink prefixes '0x01<big endian key id>' to the ciphertext.
	VariantTink
	// VariantCrunchy prefixes '0x00<big endian key id>' to the ciphertext.
	VariantCrunchy
	// VariantNoPrefix adds no prefix to the ciphertext.
	VariantNoPrefix
)

func (variant Variant) String() string {
	switch variant {
	case VariantTink:
		return "TINK"
	case VariantCrunchy:
		return "CRUNCHY"
	case VariantNoPrefix:
		return "NO_PREFIX"
	default:
		return "UNKNOWN"
	}
}

// Parameters specifies an AES-GCM key.
type Parameters struct {
	keySizeInBytes int
	ivSizeInBytes  int
	tagSizeInBytes int
	variant        Variant
}

var _ key.Parameters = (*Parameters)(nil)

// ParametersOpts specifies options for creating AES-GCM parameters.
type ParametersOpts struct {
	KeySizeInBytes int
	IVSizeInBytes  int
	TagSizeInBytes int
	Variant        Variant
}

func validateOpts(opts ParametersOpts) error {
	if opts.KeySizeInBytes != 16 && opts.KeySizeInBytes != 24 && opts.KeySizeInBytes != 32 {
		return fmt.Errorf("unsupported key size; want 16, 24, or 32, got: %v", opts.KeySizeInBytes)
	}
	if opts.IVSizeInBytes <= 0 {
		return fmt.Errorf("unsupported IV size; want > 0, got: %v", opts.IVSizeInBytes)
	}
	if opts.TagSizeInBytes < 12 || opts.TagSizeInBytes > 16 {
		return fmt.Errorf("unsupported tag size; want >= 12 and <= 16, got: %v", opts.TagSizeInBytes)
	}
	if opts.Variant == VariantUnknown {
		return fmt.Errorf("unsupported variant: %v", opts.Variant)
	}
	return nil
}

// NewParameters creates a new AES-GCM Parameters object.
func NewParameters(opts ParametersOpts) (*Parameters, error) {
	if err := validateOpts(opts); err != nil {
		return nil, fmt.Errorf("aesgcm.NewParameters: %v", err)
	}
	return &Parameters{
		keySizeInBytes: opts.KeySizeInBytes,
		ivSizeInBytes:  opts.IVSizeInBytes,
		tagSizeInBytes: opts.TagSizeInBytes,
		variant:        opts.Variant,
	}, nil
}

// KeySizeInBytes returns the size of the key in bytes.
func (p *Parameters) KeySizeInBytes() int { return p.keySizeInBytes }

// IVSizeInBytes returns the size of the IV in bytes.
func (p *Parameters) IVSizeInBytes() int { return p.ivSizeInBytes }

// TagSizeInBytes returns the size of the tag in bytes.
func (p *Parameters) TagSizeInBytes() int { return p.tagSizeInBytes }

// Variant returns the variant of the key.
func (p *Parameters) Variant() Variant { return p.variant }

// HasIDRequirement returns whether the key has an ID requirement.
func (p *Parameters) HasIDRequirement() bool { return p.variant != VariantNoPrefix }

// Equal returns whether this Parameters object is equal to other.
func (p *Parameters) Equal(other key.Parameters) bool {
	actualParams, ok := other.(*Parameters)
	return ok && p.keySizeInBytes == actualParams.keySizeInBytes &&
		p.ivSizeInBytes == actualParams.ivSizeInBytes &&
		p.tagSizeInBytes == actualParams.tagSizeInBytes &&
		p.variant == actualParams.variant
}
