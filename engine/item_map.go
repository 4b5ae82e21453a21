package engine

import (
	"fmt"

	"github.com/dolthub/swiss"
)

// maxMapKeySize is the maximum encoded size, in bytes, of a Map key (spec
// section 3).
const maxMapKeySize = 64

type mapEntry struct {
	key   StackItem
	value StackItem
}

// Map is an insertion-ordered mapping from a primitive key to a StackItem
// (spec section 3). It adapts the teacher's swiss-backed *Map
// (lang/machine/map.go) — which is a bare hash index with no ordering
// guarantee — by pairing the swiss index with an append-only entries slice
// so iteration (Keys/Values/ITERPUSH-equivalent) observes insertion order,
// and Remove is a real deletion rather than a tombstone, which the teacher's
// version never needed because Starlark dicts don't expose positional
// removal the way SPEC_FULL's Remove opcode does.
type Map struct {
	idx      *swiss.Map[string, int] // canonical key encoding -> index into entries
	entries  []mapEntry
	readOnly bool
}

// NewMap returns an empty map with initial capacity for at least size
// entries.
func NewMap(size int) *Map {
	return &Map{idx: swiss.NewMap[string, int](uint32(size))}
}

func (m *Map) Type() StackItemType { return TypeMap }
func (m *Map) String() string      { return fmt.Sprintf("Map(%d)", len(m.entries)) }
func (m *Map) Len() int            { return len(m.entries) }
func (m *Map) ReadOnly() bool      { return m.readOnly }
func (m *Map) SetReadOnly()        { m.readOnly = true }

func (m *Map) checkMutable() error {
	if m.readOnly {
		return newFault(InvalidOperation, "map is read-only")
	}
	return nil
}

// canonicalKey validates k as a legal Map key and returns its canonical
// encoding: the key's type tag followed by its bytes, so keys of different
// types never collide.
func canonicalKey(k StackItem) (string, error) {
	if !isPrimitiveKey(k) {
		return "", newFault(InvalidType, "%s is not a valid map key", k.Type())
	}
	b, err := GetSlice(k)
	if err != nil {
		return "", err
	}
	if len(b) > maxMapKeySize {
		return "", newFault(InvalidType, "map key exceeds %d bytes", maxMapKeySize)
	}
	return string([]byte{byte(k.Type())}) + string(b), nil
}

func isPrimitiveKey(v StackItem) bool {
	switch v.(type) {
	case Boolean, *Integer, *ByteString, *Buffer:
		return true
	default:
		return false
	}
}

// Get returns the value for k, and whether it was present.
func (m *Map) Get(k StackItem) (StackItem, bool, error) {
	ck, err := canonicalKey(k)
	if err != nil {
		return nil, false, err
	}
	i, ok := m.idx.Get(ck)
	if !ok {
		return nil, false, nil
	}
	return m.entries[i].value, true, nil
}

// HasKey reports whether k is present.
func (m *Map) HasKey(k StackItem) (bool, error) {
	ck, err := canonicalKey(k)
	if err != nil {
		return false, err
	}
	_, ok := m.idx.Get(ck)
	return ok, nil
}

// SetKey inserts or updates the value for k, preserving k's original
// insertion position on update.
func (m *Map) SetKey(k, v StackItem) error {
	if err := m.checkMutable(); err != nil {
		return err
	}
	ck, err := canonicalKey(k)
	if err != nil {
		return err
	}
	v = valueCopyForInsert(v)
	if i, ok := m.idx.Get(ck); ok {
		m.entries[i].value = v
		return nil
	}
	m.idx.Put(ck, len(m.entries))
	m.entries = append(m.entries, mapEntry{key: k, value: v})
	return nil
}

// Remove deletes k if present, shifting later entries down by one to
// preserve insertion order, and re-indexing them.
func (m *Map) Remove(k StackItem) error {
	if err := m.checkMutable(); err != nil {
		return err
	}
	ck, err := canonicalKey(k)
	if err != nil {
		return err
	}
	i, ok := m.idx.Get(ck)
	if !ok {
		return nil
	}
	m.idx.Delete(ck)
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	for j := i; j < len(m.entries); j++ {
		rk, _ := canonicalKey(m.entries[j].key)
		m.idx.Put(rk, j)
	}
	return nil
}

// Clear empties the map.
func (m *Map) Clear() error {
	if err := m.checkMutable(); err != nil {
		return err
	}
	m.idx = swiss.NewMap[string, int](0)
	m.entries = nil
	return nil
}

// Keys returns the keys in insertion order. Callers must not modify it.
func (m *Map) Keys() []StackItem {
	out := make([]StackItem, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.key
	}
	return out
}

// Values returns the values in insertion order. Callers must not modify it.
func (m *Map) Values() []StackItem {
	out := make([]StackItem, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.value
	}
	return out
}

func (m *Map) forEach(fn func(k, v StackItem)) {
	for _, e := range m.entries {
		fn(e.key, e.value)
	}
}
