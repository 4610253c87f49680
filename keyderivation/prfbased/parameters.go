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
	"fmt"

	"github.com/majacQ/tink/key"
)

// HashType is the hash function of the HKDF PRF.
type HashType int

const (
	// UnknownHashType is the default value of HashType.
	UnknownHashType HashType = iota
	// SHA256 is the SHA256 hash type.
	SHA256
	// SHA512 is the SHA512 hash type.
	SHA512
)

func (ht HashType) String() string {
	switch ht {
	case SHA256:
		return "SHA256"
	case SHA512:
		return "SHA512"
	default:
		return "UNKNOWN"
	}
}

// Parameters specifies a PRF-based key derivation key.
//
// A key with these parameters expands an HKDF PRF keyed with the PRF key
// and derives a key of the embedded derived parameters from the output.
type Parameters struct {
	prfHashType          HashType
	prfKeySizeInBytes    int
	derivedKeyParameters key.Parameters
}

var _ key.Parameters = (*Parameters)(nil)

// ParametersOpts specifies options for creating PRF-based derivation
// parameters.
type ParametersOpts struct {
	PRFHashType          HashType
	PRFKeySizeInBytes    int
	DerivedKeyParameters key.Parameters
}

func validateOpts(opts ParametersOpts) error {
	if opts.PRFHashType == UnknownHashType {
		return fmt.Errorf("PRF hash type must be specified")
	}
	if opts.PRFKeySizeInBytes < 16 {
		return fmt.Errorf("PRF key size must be >= 16, got %d", opts.PRFKeySizeInBytes)
	}
	if opts.DerivedKeyParameters == nil {
		return fmt.Errorf("derived key parameters must be specified")
	}
	return nil
}

// NewParameters creates new PRF-based derivation parameters.
func NewParameters(opts ParametersOpts) (*Parameters, error) {
	if err := validateOpts(opts); err != nil {
		return nil, fmt.Errorf("prfbased.NewParameters: %v", err)
	}
	return &Parameters{
		prfHashType:          opts.PRFHashType,
		prfKeySizeInBytes:    opts.PRFKeySizeInBytes,
		derivedKeyParameters: opts.DerivedKeyParameters,
	}, nil
}

// PRFHashType returns the hash function of the HKDF PRF.
func (p *Parameters) PRFHashType() HashType { return p.prfHashType }

// PRFKeySizeInBytes returns the size of the PRF key in bytes.
func (p *Parameters) PRFKeySizeInBytes() int { return p.prfKeySizeInBytes }

// DerivedKeyParameters returns the parameters of the keys this key
// derives.
func (p *Parameters) DerivedKeyParameters() key.Parameters { return p.derivedKeyParameters }

// HasIDRequirement returns whether the key has an ID requirement.
//
// The derivation key mirrors the derived key: derived keys carry the
// derivation key's ID.
func (p *Parameters) HasIDRequirement() bool { return p.derivedKeyParameters.HasIDRequirement() }

// Equal returns whether this Parameters object is equal to other.
func (p *Parameters) Equal(other key.Parameters) bool {
	actualParams, ok := other.(*Parameters)
	return ok && p.prfHashType == actualParams.prfHashType &&
		p.prfKeySizeInBytes == actualParams.prfKeySizeInBytes &&
		p.derivedKeyParameters.Equal(actualParams.derivedKeyParameters)
}
