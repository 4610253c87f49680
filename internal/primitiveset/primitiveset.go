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

// Package primitiveset provides a container for a set of cryptographic
// primitives.
//
// It provides also additional properties for the primitives it holds. In
// particular, one of the primitives in the set can be distinguished as
// "the primary" one. Primitives are grouped by the output prefix of their
// key, which allows consuming operations to try only the primitives whose
// prefix matches the observed input.
//
// A set is built by a single goroutine with Add and SetPrimary and is
// read-only once published; published sets are safe for concurrent use.
package primitiveset

import (
	"fmt"
	"reflect"

	"github.com/majacQ/tink/internal/outputprefix"
	"github.com/majacQ/tink/keyset"
)

// KeyInfo holds the keyset metadata of a key from which a primitive was
// created.
type KeyInfo struct {
	KeyID      uint32
	Status     keyset.Status
	PrefixType keyset.OutputPrefixType
	// TypeID is the type identifier of the key's wire format.
	TypeID string
}

// Entry represents a single entry in the set. In addition to the actual
// primitive, it holds the identifier, status and output prefix of the key
// it was created from.
type Entry[T any] struct {
	KeyID      uint32
	Primitive  T
	Status     keyset.Status
	PrefixType keyset.OutputPrefixType
	TypeID     string
	// Prefix is the output prefix of the key, derived from PrefixType and
	// KeyID. Empty for RAW keys.
	Prefix string
}

// Set is a set of primitives grouped by the output prefix of their keys.
//
// Sets support key rotation: primitives in a set correspond to keys in a
// keyset. To produce output the primary primitive is used; to consume
// input the prefix of the input determines the candidate primitives.
type Set[T any] struct {
	primary *Entry[T]
	// entries maps an output prefix to the entries sharing that prefix, in
	// insertion order.
	entries map[string][]*Entry[T]
	// ordered stores entries in the original keyset key order.
	ordered []*Entry[T]
}

// New returns an empty Set.
func New[T any]() *Set[T] {
	return &Set[T]{
		entries: make(map[string][]*Entry[T]),
	}
}

// isNilPrimitive reports whether p is a nil value boxed in T.
func isNilPrimitive[T any](p T) bool {
	v := reflect.ValueOf(&p).Elem()
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Func, reflect.Map, reflect.Slice:
		return v.IsNil()
	case reflect.Invalid:
		return true
	default:
		return false
	}
}

// Add creates a new entry in the set and returns it.
//
// The entry is appended to the bucket of the output prefix derived from
// info, preserving insertion order. It fails if primitive is nil or if
// the output prefix type cannot be resolved to prefix bytes.
func (ps *Set[T]) Add(primitive T, info KeyInfo) (*Entry[T], error) {
	if isNilPrimitive(primitive) {
		return nil, fmt.Errorf("primitiveset: primitive must not be nil")
	}
	prefix, err := outputprefix.FromPrefixType(info.PrefixType, info.KeyID)
	if err != nil {
		return nil, fmt.Errorf("primitiveset: %v", err)
	}
	e := &Entry[T]{
		KeyID:      info.KeyID,
		Primitive:  primitive,
		Status:     info.Status,
		PrefixType: info.PrefixType,
		TypeID:     info.TypeID,
		Prefix:     string(prefix),
	}
	ps.entries[e.Prefix] = append(ps.entries[e.Prefix], e)
	ps.ordered = append(ps.ordered, e)
	return e, nil
}

// SetPrimary makes e the primary entry of the set.
//
// e must be an entry previously returned by Add on this set. At most one
// entry is primary at a time; a previous primary is replaced.
func (ps *Set[T]) SetPrimary(e *Entry[T]) error {
	if e == nil {
		return fmt.Errorf("primitiveset: entry must not be nil")
	}
	for _, known := range ps.ordered {
		if known == e {
			ps.primary = e
			return nil
		}
	}
	return fmt.Errorf("primitiveset: entry does not belong to this set")
}

// Primary returns the primary entry, or nil if none was set.
func (ps *Set[T]) Primary() *Entry[T] { return ps.primary }

// EntriesForPrefix returns the entries whose keys have the given output
// prefix, in insertion order.
func (ps *Set[T]) EntriesForPrefix(prefix string) []*Entry[T] {
	return ps.entries[prefix]
}

// RawEntries returns the entries whose keys have no output prefix.
func (ps *Set[T]) RawEntries() []*Entry[T] { return ps.entries[""] }

// EntriesInKeysetOrder returns all entries in the original keyset key
// order, across prefixes.
func (ps *Set[T]) EntriesInKeysetOrder() []*Entry[T] { return ps.ordered }
