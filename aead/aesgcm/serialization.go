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

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/majacQ/tink/insecuresecretdataaccess"
	"github.com/majacQ/tink/internal/serialization"
	"github.com/majacQ/tink/key"
	"github.com/majacQ/tink/keyset"
	"github.com/majacQ/tink/secretdata"
	"github.com/majacQ/tink/secretkeyaccess"
)

const (
	// typeID identifies serialized AES-GCM keys and parameters.
	typeID = "type.googleapis.com/google.crypto.tink.AesGcmKey"

	// version is the accepted wire-format version.
	//
	// Currently, only version 0 is supported; other versions are rejected.
	version = 0
)

// Wire-format field numbers of the key message and the parameters record.
const (
	fieldVersion  = 1
	fieldKeyValue = 2
	fieldIVSize   = 3
	fieldTagSize  = 4

	formatFieldKeySize = 2
	formatFieldIVSize  = 3
	formatFieldTagSize = 4
)

func prefixTypeFromVariant(variant Variant) (keyset.OutputPrefixType, error) {
	switch variant {
	case VariantTink:
		return keyset.OutputPrefixTypeTink, nil
	case VariantCrunchy:
		return keyset.OutputPrefixTypeCrunchy, nil
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
	case keyset.OutputPrefixTypeRaw:
		return VariantNoPrefix, nil
	default:
		return VariantUnknown, fmt.Errorf("unsupported output prefix type: %v", prefixType)
	}
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
	var b []byte
	b = protowire.AppendTag(b, fieldVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, version)
	b = protowire.AppendTag(b, formatFieldKeySize, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(actualParameters.KeySizeInBytes()))
	b = protowire.AppendTag(b, formatFieldIVSize, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(actualParameters.IVSizeInBytes()))
	b = protowire.AppendTag(b, formatFieldTagSize, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(actualParameters.TagSizeInBytes()))
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
		ivSize     int
		tagSize    int
	)
	b := serialized.Value()
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		if typ != protowire.VarintType {
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			b = b[n:]
			continue
		}
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case fieldVersion:
			gotVersion = v
		case formatFieldKeySize:
			keySize = int(v)
		case formatFieldIVSize:
			ivSize = int(v)
		case formatFieldTagSize:
			tagSize = int(v)
		}
	}
	if gotVersion != version {
		return nil, fmt.Errorf("unsupported version: %d, only version %d is supported", gotVersion, version)
	}
	variant, err := variantFromPrefixType(serialized.OutputPrefixType())
	if err != nil {
		return nil, err
	}
	return NewParameters(ParametersOpts{
		KeySizeInBytes: keySize,
		IVSizeInBytes:  ivSize,
		TagSizeInBytes: tagSize,
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
	prefixType, err := prefixTypeFromVariant(actualKey.parameters.Variant())
	if err != nil {
		return nil, err
	}
	var b []byte
	b = protowire.AppendTag(b, fieldVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, version)
	b = protowire.AppendTag(b, fieldKeyValue, protowire.BytesType)
	b = protowire.AppendBytes(b, actualKey.KeyBytes().Data(insecuresecretdataaccess.Token{}))
	b = protowire.AppendTag(b, fieldIVSize, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(actualKey.parameters.IVSizeInBytes()))
	b = protowire.AppendTag(b, fieldTagSize, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(actualKey.parameters.TagSizeInBytes()))
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
		ivSize     int
		tagSize    int
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
		case num == fieldIVSize && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			ivSize, b = int(v), b[n:]
		case num == fieldTagSize && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			tagSize, b = int(v), b[n:]
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
	variant, err := variantFromPrefixType(serialized.OutputPrefixType())
	if err != nil {
		return nil, err
	}
	params, err := NewParameters(ParametersOpts{
		KeySizeInBytes: len(keyValue),
		IVSizeInBytes:  ivSize,
		TagSizeInBytes: tagSize,
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
