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

package serialization

import (
	"reflect"
	"sync"

	"github.com/majacQ/tink/key"
)

var (
	globalOnce     sync.Once
	globalRegistry *Registry
)

// GlobalRegistry returns the process-wide registry.
//
// It is created lazily on first use and lives for the process lifetime.
// Algorithm families populate it from their package init functions.
func GlobalRegistry() *Registry {
	globalOnce.Do(func() { globalRegistry = NewRegistry() })
	return globalRegistry
}

// RegisterParametersParser registers parser in the process-wide registry.
func RegisterParametersParser(typeID string, parser ParametersParser) error {
	return GlobalRegistry().RegisterParametersParser(typeID, parser)
}

// RegisterParametersSerializer registers serializer for the parameters
// type P in the process-wide registry.
func RegisterParametersSerializer[P key.Parameters](serializer ParametersSerializer) error {
	return GlobalRegistry().RegisterParametersSerializer(reflect.TypeFor[P](), serializer)
}

// RegisterKeyParser registers parser in the process-wide registry.
func RegisterKeyParser(typeID string, parser KeyParser) error {
	return GlobalRegistry().RegisterKeyParser(typeID, parser)
}

// RegisterKeySerializer registers serializer for the key type K in the
// process-wide registry.
func RegisterKeySerializer[K key.Key](serializer KeySerializer) error {
	return GlobalRegistry().RegisterKeySerializer(reflect.TypeFor[K](), serializer)
}

// ParseParameters parses a serialized parameters record with the
// process-wide registry.
func ParseParameters(serialized *Parameters) (key.Parameters, error) {
	return GlobalRegistry().ParseParameters(serialized)
}

// SerializeParameters serializes parameters with the process-wide
// registry.
func SerializeParameters(parameters key.Parameters) (*Parameters, error) {
	return GlobalRegistry().SerializeParameters(parameters)
}

// ParseKey parses a serialized key record with the process-wide registry.
func ParseKey(serialized *Key, token any) (key.Key, error) {
	return GlobalRegistry().ParseKey(serialized, token)
}

// SerializeKey serializes a key with the process-wide registry.
func SerializeKey(k key.Key, token any) (*Key, error) {
	return GlobalRegistry().SerializeKey(k, token)
}
