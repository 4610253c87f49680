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

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/majacQ/tink/insecuresecretdataaccess"
	"github.com/majacQ/tink/internal/serialization"
	"github.com/majacQ/tink/key"
	"github.com/majacQ/tink/keyset"
	"github.com/majacQ/tink/secretdata"
	"github.com/majacQ/tink/secretkeyaccess"
)

const (
	// typeID identifies serialized PRF-based derivation keys and
	// parameters.
	typeID = "type.googleapis.com/google.crypto.tink.PrfBasedDeriverKey"

	// version is the accepted wire-format version.
	//
	// Currently, only version 0 is supported; other versions are rejected.
	version = 0
)

// Wire-format field numbers. The parameters message embeds the derived
// key's serialized parameters record; the key message embeds the whole
// parameters message.
const (
	paramsFieldVersion    = 1
	paramsFieldHash       = 2
	paramsFieldPRFKeySize = 3
	paramsFieldDerived    = 4

	derivedFieldTypeID = 1
	derivedFieldValue  = 2
	derivedFieldPrefix = 3

	keyFieldVersion = 1
	keyFieldPRFKey  = 2
	keyFieldParams  = 3
)

func wireHashFromHashType(hashType HashType) (uint64, error) {
	switch hashType {
	case SHA256:
		return 3, nil
	case SHA512:
		return 5, nil
	default:
		return 0, fmt.Errorf("unknown hash type: %v", hashType)
	}
}

func hashTypeFromWire(wireHash uint64) (HashType, error) {
	switch wireHash {
	case 3:
		return SHA256, nil
	case 5:
		return SHA512, nil
	default:
		return UnknownHashType, fmt.Errorf("unknown hash value on the wire: %d", wireHash)
	}
}

func wirePrefixFromPrefixType(prefixType keyset.OutputPrefixType) (uint64, error) {
	switch prefixType {
	case keyset.OutputPrefixTypeTink:
		return 1, nil
	case keyset.OutputPrefixTypeLegacy:
		return 2, nil
	case keyset.OutputPrefixTypeRaw:
		return 3, nil
	case keyset.OutputPrefixTypeCrunchy:
		return 4, nil
	default:
		return 0, fmt.Errorf("unsupported output prefix type: %v", prefixType)
	}
}

func prefixTypeFromWire(wirePrefix uint64) (keyset.OutputPrefixType, error) {
	switch wirePrefix {
	case 1:
		return keyset.OutputPrefixTypeTink, nil
	case 2:
		return keyset.OutputPrefixTypeLegacy, nil
	case 3:
		return keyset.OutputPrefixTypeRaw, nil
	case 4:
		return keyset.OutputPrefixTypeCrunchy, nil
	default:
		return keyset.OutputPrefixTypeUnknown, fmt.Errorf("unsupported output prefix value on the wire: %d", wirePrefix)
	}
}

// serializeParamsValue encodes the parameters message and returns it
// together with the output prefix type of the derived parameters.
//
// Writing a LEGACY prefix is rejected: old LEGACY derivation keys remain
// readable, but new ones must not be persisted.
func serializeParamsValue(p *Parameters) ([]byte, keyset.OutputPrefixType, error) {
	derivedSerialized, err := serialization.SerializeParameters(p.DerivedKeyParameters())
	if err != nil {
		return nil, keyset.OutputPrefixTypeUnknown, err
	}
	prefixType := derivedSerialized.OutputPrefixType()
	if prefixType == keyset.OutputPrefixTypeLegacy {
		return nil, keyset.OutputPrefixTypeUnknown, fmt.Errorf("LEGACY derived keys cannot be serialized")
	}
	wireHash, err := wireHashFromHashType(p.PRFHashType())
	if err != nil {
		return nil, keyset.OutputPrefixTypeUnknown, err
	}
	wirePrefix, err := wirePrefixFromPrefixType(prefixType)
	if err != nil {
		return nil, keyset.OutputPrefixTypeUnknown, err
	}
	var derived []byte
	derived = protowire.AppendTag(derived, derivedFieldTypeID, protowire.BytesType)
	derived = protowire.AppendString(derived, derivedSerialized.TypeID())
	derived = protowire.AppendTag(derived, derivedFieldValue, protowire.BytesType)
	derived = protowire.AppendBytes(derived, derivedSerialized.Value())
	derived = protowire.AppendTag(derived, derivedFieldPrefix, protowire.VarintType)
	derived = protowire.AppendVarint(derived, wirePrefix)

	var b []byte
	b = protowire.AppendTag(b, paramsFieldVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, version)
	b = protowire.AppendTag(b, paramsFieldHash, protowire.VarintType)
	b = protowire.AppendVarint(b, wireHash)
	b = protowire.AppendTag(b, paramsFieldPRFKeySize, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(p.PRFKeySizeInBytes()))
	b = protowire.AppendTag(b, paramsFieldDerived, protowire.BytesType)
	b = protowire.AppendBytes(b, derived)
	return b, prefixType, nil
}

func parseDerived(b []byte) (*serialization.Parameters, keyset.OutputPrefixType, error) {
	var (
		derivedTypeID string
		derivedValue  []byte
		wirePrefix    uint64
	)
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, keyset.OutputPrefixTypeUnknown, protowire.ParseError(n)
		}
		b = b[n:]
		switch {
		case num == derivedFieldTypeID && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return nil, keyset.OutputPrefixTypeUnknown, protowire.ParseError(n)
			}
			derivedTypeID, b = v, b[n:]
		case num == derivedFieldValue && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, keyset.OutputPrefixTypeUnknown, protowire.ParseError(n)
			}
			derivedValue, b = v, b[n:]
		case num == derivedFieldPrefix && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, keyset.OutputPrefixTypeUnknown, protowire.ParseError(n)
			}
			wirePrefix, b = v, b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, keyset.OutputPrefixTypeUnknown, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	// LEGACY is accepted here on purpose: existing LEGACY derivation keys
	// must remain readable even though they can no longer be written.
	prefixType, err := prefixTypeFromWire(wirePrefix)
	if err != nil {
		return nil, keyset.OutputPrefixTypeUnknown, err
	}
	derivedSerialized, err := serialization.NewParameters(derivedTypeID, derivedValue, prefixType)
	if err != nil {
		return nil, keyset.OutputPrefixTypeUnknown, err
	}
	return derivedSerialized, prefixType, nil
}

// parseParamsValue decodes the parameters message and returns the parsed
// parameters together with the output prefix type of the derived
// parameters.
func parseParamsValue(b []byte) (*Parameters, keyset.OutputPrefixType, error) {
	var (
		gotVersion uint64
		wireHash   uint64
		prfKeySize int
		derivedMsg []byte
	)
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, keyset.OutputPrefixTypeUnknown, protowire.ParseError(n)
		}
		b = b[n:]
		switch {
		case num == paramsFieldVersion && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, keyset.OutputPrefixTypeUnknown, protowire.ParseError(n)
			}
			gotVersion, b = v, b[n:]
		case num == paramsFieldHash && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, keyset.OutputPrefixTypeUnknown, protowire.ParseError(n)
			}
			wireHash, b = v, b[n:]
		case num == paramsFieldPRFKeySize && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, keyset.OutputPrefixTypeUnknown, protowire.ParseError(n)
			}
			prfKeySize, b = int(v), b[n:]
		case num == paramsFieldDerived && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, keyset.OutputPrefixTypeUnknown, protowire.ParseError(n)
			}
			derivedMsg, b = v, b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, keyset.OutputPrefixTypeUnknown, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	if gotVersion != version {
		return nil, keyset.OutputPrefixTypeUnknown, fmt.Errorf("unsupported version: %d, only version %d is supported", gotVersion, version)
	}
	hashType, err := hashTypeFromWire(wireHash)
	if err != nil {
		return nil, keyset.OutputPrefixTypeUnknown, err
	}
	derivedSerialized, prefixType, err := parseDerived(derivedMsg)
	if err != nil {
		return nil, keyset.OutputPrefixTypeUnknown, err
	}
	derivedParams, err := serialization.ParseParameters(derivedSerialized)
	if err != nil {
		return nil, keyset.OutputPrefixTypeUnknown, err
	}
	params, err := NewParameters(ParametersOpts{
		PRFHashType:          hashType,
		PRFKeySizeInBytes:    prfKeySize,
		DerivedKeyParameters: derivedParams,
	})
	if err != nil {
		return nil, keyset.OutputPrefixTypeUnknown, err
	}
	return params, prefixType, nil
}

type parametersSerializer struct{}

var _ serialization.ParametersSerializer = (*parametersSerializer)(nil)

func (s *parametersSerializer) Serialize(parameters key.Parameters) (*serialization.Parameters, error) {
	actualParameters, ok := parameters.(*Parameters)
	if !ok {
		return nil, fmt.Errorf("invalid parameters type: got %T, want %T", parameters, (*Parameters)(nil))
	}
	b, prefixType, err := serializeParamsValue(actualParameters)
	if err != nil {
		return nil, err
	}
	return serialization.NewParameters(typeID, b, prefixType)
}

type parametersParser struct{}

var _ serialization.ParametersParser = (*parametersParser)(nil)

func (p *parametersParser) Parse(serialized *serialization.Parameters) (key.Parameters, error) {
	if serialized == nil {
		return nil, fmt.Errorf("serialized parameters are nil")
	}
	if serialized.TypeID() != typeID {
		return nil, fmt.Errorf("invalid type identifier: got %q, want %q", serialized.TypeID(), typeID)
	}
	params, prefixType, err := parseParamsValue(serialized.Value())
	if err != nil {
		return nil, err
	}
	if serialized.OutputPrefixType() != prefixType {
		return nil, fmt.Errorf("output prefix type mismatch: record has %v, derived parameters have %v", serialized.OutputPrefixType(), prefixType)
	}
	return params, nil
}

type keySerializer struct{}

var _ serialization.KeySerializer = (*keySerializer)(nil)

func (s *keySerializer) Serialize(k key.Key, token any) (*serialization.Key, error) {
	if err := secretkeyaccess.Validate(token); err != nil {
		return nil, err
	}
	actualKey, ok := k.(*Key)
	if !ok {
		return nil, fmt.Errorf("invalid key type: got %T, want %T", k, (*Key)(nil))
	}
	paramsMsg, prefixType, err := serializeParamsValue(actualKey.parameters)
	if err != nil {
		return nil, err
	}
	var b []byte
	b = protowire.AppendTag(b, keyFieldVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, version)
	b = protowire.AppendTag(b, keyFieldPRFKey, protowire.BytesType)
	b = protowire.AppendBytes(b, actualKey.PRFKeyBytes().Data(insecuresecretdataaccess.Token{}))
	b = protowire.AppendTag(b, keyFieldParams, protowire.BytesType)
	b = protowire.AppendBytes(b, paramsMsg)
	idRequirement, hasIDRequirement := actualKey.IDRequirement()
	return serialization.NewKey(typeID, b, prefixType, idRequirement, hasIDRequirement)
}

type keyParser struct{}

var _ serialization.KeyParser = (*keyParser)(nil)

func (p *keyParser) Parse(serialized *serialization.Key, token any) (key.Key, error) {
	if err := secretkeyaccess.Validate(token); err != nil {
		return nil, err
	}
	if serialized == nil {
		return nil, fmt.Errorf("serialized key is nil")
	}
	if serialized.TypeID() != typeID {
		return nil, fmt.Errorf("invalid type identifier: got %q, want %q", serialized.TypeID(), typeID)
	}
	var (
		gotVersion uint64
		prfKey     []byte
		paramsMsg  []byte
	)
	b := serialized.Value()
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		switch {
		case num == keyFieldVersion && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			gotVersion, b = v, b[n:]
		case num == keyFieldPRFKey && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			prfKey, b = v, b[n:]
		case num == keyFieldParams && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			paramsMsg, b = v, b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	if gotVersion != version {
		return nil, fmt.Errorf("unsupported version: %d, only version %d is supported", gotVersion, version)
	}
	params, prefixType, err := parseParamsValue(paramsMsg)
	if err != nil {
		return nil, err
	}
	if serialized.OutputPrefixType() != prefixType {
		return nil, fmt.Errorf("output prefix type mismatch: record has %v, derived parameters have %v", serialized.OutputPrefixType(), prefixType)
	}
	prfKeyBytes := secretdata.NewBytesFromData(prfKey, insecuresecretdataaccess.Token{})
	// IDRequirement returns zero if the key has no ID requirement.
	idRequirement, _ := serialized.IDRequirement()
	return NewKey(prfKeyBytes, idRequirement, params)
}
