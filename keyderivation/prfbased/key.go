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
	"github.com/majacQ/tink/secretdata"
)

// Key represents a PRF-based key derivation key.
type Key struct {
	prfKeyBytes secretdata.Bytes
	// idRequirement is the ID the derived keys will carry. Zero if the key
	// has no ID requirement.
	idRequirement uint32
	parameters    *Parameters
}

var _ key.Key = (*Key)(nil)

// NewKey creates a new PRF-based key derivation key.
//
// If parameters.HasIDRequirement() == false, idRequirement must be zero.
func NewKey(prfKeyBytes secretdata.Bytes, idRequirement uint32, parameters *Parameters) (*Key, error) {
	if parameters == nil {
		return nil, fmt.Errorf("prfbased.NewKey: parameters is nil")
	}
	if !parameters.HasIDRequirement() && idRequirement != 0 {
		return nil, fmt.Errorf("prfbased.NewKey: idRequirement = %v and parameters.HasIDRequirement() = false, want 0", idRequirement)
	}
	if prfKeyBytes.Len() != parameters.PRFKeySizeInBytes() {
		return nil, fmt.Errorf("prfbased.NewKey: prfKeyBytes.Len() = %v, want %v", prfKeyBytes.Len(), parameters.PRFKeySizeInBytes())
	}
	return &Key{
		prfKeyBytes:   prfKeyBytes,
		idRequirement: idRequirement,
		parameters:    parameters,
	}, nil
}

// PRFKeyBytes returns the PRF key material.
func (k *Key) PRFKeyBytes() secretdata.Bytes { return k.prfKeyBytes }

// Parameters returns the parameters of this key.
func (k *Key) Parameters() key.Parameters { return k.parameters }

// IDRequirement returns required to indicate if this key requires an
// identifier. If it does, id will contain that identifier.
func (k *Key) IDRequirement() (uint32, bool) {
	return k.idRequirement, k.Parameters().HasIDRequirement()
}

// Equal returns whether this key object is equal to other.
func (k *Key) Equal(other key.Key) bool {
	that, ok := other.(*Key)
	return ok && k.Parameters().Equal(that.Parameters()) &&
		k.idRequirement == that.idRequirement &&
		k.prfKeyBytes.Equal(that.prfKeyBytes)
}
