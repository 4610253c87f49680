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

// Package prfbased implements the PRF-based key derivation key type.
//
// A PRF-based derivation key expands an HKDF PRF with a caller-provided
// salt and materializes a key of the embedded derived parameters from
// the resulting stream.
package prfbased

import (
	"fmt"

	"github.com/majacQ/tink/internal/serialization"
)

func init() {
	if err := serialization.RegisterParametersParser(typeID, &parametersParser{}); err != nil {
		panic(fmt.Sprintf("prfbased.init: %v", err))
	}
	if err := serialization.RegisterParametersSerializer[*Parameters](&parametersSerializer{}); err != nil {
		panic(fmt.Sprintf("prfbased.init: %v", err))
	}
	if err := serialization.RegisterKeyParser(typeID, &keyParser{}); err != nil {
		panic(fmt.Sprintf("prfbased.init: %v", err))
	}
	if err := serialization.RegisterKeySerializer[*Key](&keySerializer{}); err != nil {
		panic(fmt.Sprintf("prfbased.init: %v", err))
	}
}
