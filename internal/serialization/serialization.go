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

// Package serialization provides the wire-format records for parameters
// and keys, and a registry that dispatches between in-memory types and
// their serialized form.
//
// Each algorithm family registers a parser and a serializer for its
// parameters and its keys. Parsers are keyed by the type identifier
// embedded in the serialized record; serializers are keyed by the Go type
// of the in-memory value. The registry never inspects the opaque value
// bytes itself; version checks and enum remapping are the registered
// codec's responsibility.
package serialization

import (
	"bytes"
	"fmt"
	"reflect"
	"sync"

	"github.com/majacQ/tink/key"
	"github.com/majacQ/tink/keyset"
)

func validPrefixType(t keyset.OutputPrefixType) bool {
	switch t {
	case keyset.OutputPrefixTypeTink, keyset.OutputPrefixTypeLegacy,
		keyset.OutputPrefixTypeRaw, keyset.OutputPrefixTypeCrunchy:
		return true
	default:
		return false
	}
}

// Parameters is the serialized form of key parameters.
//
// It carries the type identifier used for registry dispatch, the opaque
// family-defined value bytes, and the output prefix type keys generated
// from these parameters will use.
type Parameters struct {
	typeID           string
	value            []byte
	outputPrefixType keyset.OutputPrefixType
}

// NewParameters creates a serialized parameters record.
func NewParameters(typeID string, value []byte, outputPrefixType keyset.OutputPrefixType) (*Parameters, error) {
	if typeID == "" {
		return nil, fmt.Errorf("serialization: type identifier must not be empty")
	}
	if !validPrefixType(outputPrefixType) {
		return nil, fmt.Errorf("serialization: unsupported output prefix type: %v", outputPrefixType)
	}
	return &Parameters{
		typeID:           typeID,
		value:            bytes.Clone(value),
		outputPrefixType: outputPrefixType,
	}, nil
}

// TypeID returns the type identifier.
func (s *Parameters) TypeID() string { return s.typeID }

// Value returns a copy of the opaque value bytes.
func (s *Parameters) Value() []byte { return bytes.Clone(s.value) }

// OutputPrefixType returns the output prefix type.
func (s *Parameters) OutputPrefixType() keyset.OutputPrefixType { return s.outputPrefixType }

// Equal reports whether this record is equal to other.
func (s *Parameters) Equal(other *Parameters) bool {
	return other != nil &&
		s.typeID == other.typeID &&
		bytes.Equal(s.value, other.value) &&
		s.outputPrefixType == other.outputPrefixType
}

// Key is the serialized form of a key.
//
// In addition to the fields of a parameters record it carries the key's
// ID requirement. Keys with a RAW output prefix have no ID requirement;
// all other keys must have one.
type Key struct {
	typeID           string
	value            []byte
	outputPrefixType keyset.OutputPrefixType
	idRequirement    uint32
	hasIDRequirement bool
}

// NewKey creates a serialized key record.
func NewKey(typeID string, value []byte, outputPrefixType keyset.OutputPrefixType, idRequirement uint32, hasIDRequirement bool) (*Key, error) {
	if typeID == "" {
		return nil, fmt.Errorf("serialization: type identifier must not be empty")
	}
	if !validPrefixType(outputPrefixType) {
		return nil, fmt.Errorf("serialization: unsupported output prefix type: %v", outputPrefixType)
	}
	if outputPrefixType == keyset.OutputPrefixTypeRaw && hasIDRequirement {
		return nil, fmt.Errorf("serialization: RAW keys must not have an ID requirement")
	}
	if outputPrefixType != keyset.OutputPrefixTypeRaw && !hasIDRequirement {
		return nil, fmt.Errorf("serialization: keys with output prefix type %v must have an ID requirement", outputPrefixType)
	}
	if !hasIDRequirement && idRequirement != 0 {
		return nil, fmt.Errorf("serialization: idRequirement = %d, want 0 when no ID is required", idRequirement)
	}
	return &Key{
		typeID:           typeID,
		value:            bytes.Clone(value),
		outputPrefixType: outputPrefixType,
		idRequirement:    idRequirement,
		hasIDRequirement: hasIDRequirement,
	}, nil
}

// TypeID returns the type identifier.
func (k *Key) TypeID() string { return k.typeID }

// Value returns a copy of the opaque value bytes.
func (k *Key) Value() []byte { return bytes.Clone(k.value) }

// OutputPrefixType returns the output prefix type.
func (k *Key) OutputPrefixType() keyset.OutputPrefixType { return k.outputPrefixType }

// IDRequirement returns the key's required ID and whether one is
// required. The ID is zero if no ID is required.
func (k *Key) IDRequirement() (uint32, bool) { return k.idRequirement, k.hasIDRequirement }

// Equal reports whether this record is equal to other.
func (k *Key) Equal(other *Key) bool {
	return other != nil &&
		k.typeID == other.typeID &&
		bytes.Equal(k.value, other.value) &&
		k.outputPrefixType == other.outputPrefixType &&
		k.idRequirement == other.idRequirement &&
		k.hasIDRequirement == other.hasIDRequirement
}

// ParametersParser parses a serialized parameters record into in-memory
// parameters.
type ParametersParser interface {
	Parse(serialized *Parameters) (key.Parameters, error)
}

// ParametersSerializer serializes in-memory parameters into a serialized
// record.
type ParametersSerializer interface {
	Serialize(parameters key.Parameters) (*Parameters, error)
}

// KeyParser parses a serialized key record into an in-memory key.
//
// Implementations must validate token with [secretkeyaccess.Validate]
// before reading any secret bytes from the record.
type KeyParser interface {
	Parse(serialized *Key, token any) (key.Key, error)
}

// KeySerializer serializes an in-memory key into a serialized record.
//
// Implementations must validate token with [secretkeyaccess.Validate]
// before writing any secret bytes into the record.
type KeySerializer interface {
	Serialize(k key.Key, token any) (*Key, error)
}

// Registry maps type identifiers to parsers and in-memory Go types to
// serializers.
//
// Registrations happen at startup; lookups are frequent and take only a
// read lock. A Registry value is safe for concurrent use.
type Registry struct {
	mu                    sync.RWMutex
	parametersParsers     map[string]ParametersParser
	parametersSerializers map[reflect.Type]ParametersSerializer
	keyParsers            map[string]KeyParser
	keySerializers        map[reflect.Type]KeySerializer
}

// NewRegistry returns an empty registry.
//
// Isolated registries are meant for tests; production code uses the
// process-wide registry through the package-level functions.
func NewRegistry() *Registry {
	return &Registry{
		parametersParsers:     make(map[string]ParametersParser),
		parametersSerializers: make(map[reflect.Type]ParametersSerializer),
		keyParsers:            make(map[string]KeyParser),
		keySerializers:        make(map[reflect.Type]KeySerializer),
	}
}

// sameCodec reports whether two registered codecs are the same
// registration. Codecs are stateless singleton structs, so type identity
// is registration identity.
func sameCodec(a, b any) bool {
	return reflect.TypeOf(a) == reflect.TypeOf(b)
}

// RegisterParametersParser registers parser for the given type
// identifier.
//
// Re-registering the same parser is a no-op; registering a different
// parser for an already registered type identifier is an error.
func (r *Registry) RegisterParametersParser(typeID string, parser ParametersParser) error {
	if parser == nil {
		return fmt.Errorf("serialization: parameters parser must not be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, found := r.parametersParsers[typeID]; found {
		if sameCodec(existing, parser) {
			return nil
		}
		return fmt.Errorf("serialization: a different parameters parser is already registered for %q", typeID)
	}
	r.parametersParsers[typeID] = parser
	return nil
}

// RegisterParametersSerializer registers serializer for the given
// in-memory parameters type.
func (r *Registry) RegisterParametersSerializer(parametersType reflect.Type, serializer ParametersSerializer) error {
	if serializer == nil {
		return fmt.Errorf("serialization: parameters serializer must not be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, found := r.parametersSerializers[parametersType]; found {
		if sameCodec(existing, serializer) {
			return nil
		}
		return fmt.Errorf("serialization: a different parameters serializer is already registered for %v", parametersType)
	}
	r.parametersSerializers[parametersType] = serializer
	return nil
}

// RegisterKeyParser registers parser for the given type identifier.
func (r *Registry) RegisterKeyParser(typeID string, parser KeyParser) error {
	if parser == nil {
		return fmt.Errorf("serialization: key parser must not be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, found := r.keyParsers[typeID]; found {
		if sameCodec(existing, parser) {
			return nil
		}
		return fmt.Errorf("serialization: a different key parser is already registered for %q", typeID)
	}
	r.keyParsers[typeID] = parser
	return nil
}

// RegisterKeySerializer registers serializer for the given in-memory key
// type.
func (r *Registry) RegisterKeySerializer(keyType reflect.Type, serializer KeySerializer) error {
	if serializer == nil {
		return fmt.Errorf("serialization: key serializer must not be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, found := r.keySerializers[keyType]; found {
		if sameCodec(existing, serializer) {
			return nil
		}
		return fmt.Errorf("serialization: a different key serializer is already registered for %v", keyType)
	}
	r.keySerializers[keyType] = serializer
	return nil
}

// ParseParameters parses a serialized parameters record using the parser
// registered for its type identifier.
func (r *Registry) ParseParameters(serialized *Parameters) (key.Parameters, error) {
	if serialized == nil {
		return nil, fmt.Errorf("serialization: serialized parameters are nil")
	}
	r.mu.RLock()
	parser, found := r.parametersParsers[serialized.TypeID()]
	r.mu.RUnlock()
	if !found {
		return nil, fmt.Errorf("serialization: no parameters parser registered for type %q", serialized.TypeID())
	}
	return parser.Parse(serialized)
}

// SerializeParameters serializes parameters using the serializer
// registered for their Go type.
func (r *Registry) SerializeParameters(parameters key.Parameters) (*Parameters, error) {
	if parameters == nil {
		return nil, fmt.Errorf("serialization: parameters are nil")
	}
	parametersType := reflect.TypeOf(parameters)
	r.mu.RLock()
	serializer, found := r.parametersSerializers[parametersType]
	r.mu.RUnlock()
	if !found {
		return nil, fmt.Errorf("serialization: no parameters serializer registered for type %v", parametersType)
	}
	return serializer.Serialize(parameters)
}

// ParseKey parses a serialized key record using the parser registered for
// its type identifier.
//
// token must be an [insecuresecretdataaccess.Token] value; the registered
// parser rejects anything else.
func (r *Registry) ParseKey(serialized *Key, token any) (key.Key, error) {
	if serialized == nil {
		return nil, fmt.Errorf("serialization: serialized key is nil")
	}
	r.mu.RLock()
	parser, found := r.keyParsers[serialized.TypeID()]
	r.mu.RUnlock()
	if !found {
		return nil, fmt.Errorf("serialization: no key parser registered for type %q", serialized.TypeID())
	}
	return parser.Parse(serialized, token)
}

// SerializeKey serializes a key using the serializer registered for its
// Go type.
//
// token must be an [insecuresecretdataaccess.Token] value; the registered
// serializer rejects anything else.
func (r *Registry) SerializeKey(k key.Key, token any) (*Key, error) {
	if k == nil {
		return nil, fmt.Errorf("serialization: key is nil")
	}
	keyType := reflect.TypeOf(k)
	r.mu.RLock()
	serializer, found := r.keySerializers[keyType]
	r.mu.RUnlock()
	if !found {
		return nil, fmt.Errorf("serialization: no key serializer registered for type %v", keyType)
	}
	return serializer.Serialize(k, token)
}
