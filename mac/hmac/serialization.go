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
	// typeID identifies serialized HMAC keys and parameters.
	typeID = "type.googleapis.com/google.crypto.tink.HmacKey"

	// version is the accepted wire-format version.
	//
	// Currently, only version 0 is supported; other versions are rejected.
	version = 0
)

// Wire-format field numbers. The key message holds the version, the raw
// key bytes and the algorithm parameters; the parameters record (the "key
// format") holds the version, the key size and the same algorithm
// parameters submessage.
const (
	fieldVersion  = 1
	fieldKeyValue = 2
	fieldKeySize  = 2
	fieldParams   = 3

	paramsFieldHash    = 1
	paramsFieldTagSize = 2
)

func prefixTypeFromVariant(variant Variant) (keyset.OutputPrefixType, error) {
	switch variant {
	case VariantTink:
		return keyset.OutputPrefixTypeTink, nil
	case VariantCrunchy:
		return keyset.OutputPrefixTypeCrunchy, nil
	case VariantLegacy:
		return keyset.OutputPrefixTypeLegacy, nil
	case VariantNoPrefix:
		return keyset.OutputPrefixTypeRaw, nil
	default:
		return keyset.OutputPrefixTypeUnknown, fmt.Errorf("unknown output prefix variant: %v", variant)
	}
}

func variantFromPrefixType(prefixType keyset.OutputPrefixType) (Variant, error) {
	switch prefixType {
	case keyset.OutputPrefixTypeTink:
		return VariantTink, nil
	case keyset.OutputPrefixTypeCrunchy:
		return VariantCrunchy, nil
	case keyset.OutputPrefixTypeLegacy:
		return VariantLegacy, nil
	case keyset.OutputPrefixTypeRaw:
		return VariantNoPrefix, nil
	default:
		return VariantUnknown, fmt.Errorf("unsupported output prefix type: %v", prefixType)
	}
}

// Hash values on the wire. Remapped explicitly so that reordering the
// in-memory enum can never change the wire format.
func wireHashFromHashType(hashType HashType) (uint64, error) {
	switch hashType {
	case SHA1:
		return 1, nil
	case SHA224:
		return 2, nil
	case SHA256:
		return 3, nil
	case SHA384:
		return 4, nil
	case SHA512:
		return 5, nil
	default:
		return 0, fmt.Errorf("unknown hash type: %v", hashType)
	}
}

func hashTypeFromWire(wireHash uint64) (HashType, error) {
	switch wireHash {
	case 1:
		return SHA1, nil
	case 2:
		return SHA224, nil
	case 3:
		return SHA256, nil
	case 4:
		return SHA384, nil
	case 5:
		return SHA512, nil
	default:
		return UnknownHashType, fmt.Errorf("unknown hash value on the wire: %d", wireHash)
	}
}

func appendParams(b []byte, wireHash uint64, tagSize int) []byte {
	var msg []byte
	msg = protowire.AppendTag(msg, paramsFieldHash, protowire.VarintType)
	msg = protowire.AppendVarint(msg, wireHash)
	msg = protowire.AppendTag(msg, paramsFieldTagSize, protowire.VarintType)
	msg = protowire.AppendVarint(msg, uint64(tagSize))
	b = protowire.AppendTag(b, fieldParams, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

func parseParams(b []byte) (wireHash uint64, tagSize int, err error) {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return 0, 0, protowire.ParseError(n)
		}
		b = b[n:]
		switch {
		case num == paramsFieldHash && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return 0, 0, protowire.ParseError(n)
			}
			wireHash, b = v, b[n:]
		case num == paramsFieldTagSize && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return 0, 0, protowire.ParseError(n)
			}
			tagSize, b = int(v), b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return 0, 0, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return wireHash, tagSize, nil
}

type parametersSerializer struct{}

var _ serialization.ParametersSerializer = (*parametersSerializer)(nil)

func (s *parametersSerializer) Serialize(parameters key.Parameters) (*serialization.Parameters, error) {
	actualParameters, ok := parameters.(*Parameters)
	if !ok {
		return nil, fmt.Errorf("invalid parameters type: got %T, want %T", parameters, (*Parameters)(nil))
	}
	prefixType, err := prefixTypeFromVariant(actualParameters.Variant())
	if err != nil {
		return nil, err
	}
	wireHash, err := wireHashFromHashType(actualParameters.HashType())
	if err != nil {
		return nil, err
	}
	var b []byte
	b = protowire.AppendTag(b, fieldVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, version)
	b = protowire.AppendTag(b, fieldKeySize, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(actualParameters.KeySizeInBytes()))
	b = appendParams(b, wireHash, actualParameters.CryptographicTagSizeInBytes())
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
	var (
		gotVersion uint64
		keySize    int
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
		case num == fieldVersion && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			gotVersion, b = v, b[n:]
		case num == fieldKeySize && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			keySize, b = int(v), b[n:]
		case num == fieldParams && typ == protowire.BytesType:
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
	wireHash, tagSize, err := parseParams(paramsMsg)
	if err != nil {
		return nil, err
	}
	hashType, err := hashTypeFromWire(wireHash)
	if err != nil {
		return nil, err
	}
	variant, err := variantFromPrefixType(serialized.OutputPrefixType())
	if err != nil {
		return nil, err
	}
	return NewParameters(ParametersOpts{
		KeySizeInBytes: keySize,
		TagSizeInBytes: tagSize,
		HashType:       hashType,
		Variant:        variant,
	})
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
	actualParameters := actualKey.parameters
	prefixType, err := prefixTypeFromVariant(actualParameters.Variant())
	if err != nil {
		return nil, err
	}
	wireHash, err := wireHashFromHashType(actualParameters.HashType())
	if err != nil {
		return nil, err
	}
	var b []byte
	b = protowire.AppendTag(b, fieldVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, version)
	b = protowire.AppendTag(b, fieldKeyValue, protowire.BytesType)
	b = protowire.AppendBytes(b, actualKey.KeyBytes().Data(insecuresecretdataaccess.Token{}))
	b = appendParams(b, wireHash, actualParameters.CryptographicTagSizeInBytes())
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
		keyValue   []byte
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
		case num == fieldVersion && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			gotVersion, b = v, b[n:]
		case num == fieldKeyValue && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			keyValue, b = v, b[n:]
		case num == fieldParams && typ == protowire.BytesType:
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
	wireHash, tagSize, err := parseParams(paramsMsg)
	if err != nil {
		return nil, err
	}
	hashType, err := hashTypeFromWire(wireHash)
	if err != nil {
		return nil, err
	}
	variant, err := variantFromPrefixType(serialized.OutputPrefixType())
	if err != nil {
		return nil, err
	}
	params, err := NewParameters(ParametersOpts{
		KeySizeInBytes: len(keyValue),
		TagSizeInBytes: tagSize,
		HashType:       hashType,
		Variant:        variant,
	})
	if err != nil {
		return nil, err
	}
	keyBytes := secretdata.NewBytesFromData(keyValue, insecuresecretdataaccess.Token{})
	// IDRequirement returns zero if the key has no ID requirement.
	idRequirement, _ := serialized.IDRequirement()
	return NewKey(keyBytes, idRequirement, params)
}
