// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package audit

import (
	"bytes"
	"encoding/json"
	"fmt"
)

/*
Diff compares the JSON form of two objects field by field.

A field appears in the result when its encoded value differs. Missing fields
and JSON null are treated alike. A nil oldObject yields every non-null field
of newObject.

Parameters:
  - newObject: any (value after the change, JSON-encodable)
  - oldObject: any (value before the change, nil on creation)

Returns:
  - map[string]Change: Changed fields keyed by JSON name
  - error: Encoding failures or non-object input
*/
func Diff(newObject, oldObject any) (map[string]Change, error) {
	newFields, err := toFields(newObject)
	if err != nil {
		return nil, fmt.Errorf("audit_diff_new_failed: %w", err)
	}

	oldFields, err := toFields(oldObject)
	if err != nil {
		return nil, fmt.Errorf("audit_diff_old_failed: %w", err)
	}

	changes := make(map[string]Change)
	for key := range union(newFields, oldFields) {
		oldRaw := normalize(oldFields[key])
		newRaw := normalize(newFields[key])
		if bytes.Equal(oldRaw, newRaw) {
			continue
		}

		changes[key] = Change{Old: decode(oldRaw), New: decode(newRaw)}
	}

	return changes, nil
}

// toFields encodes value and splits the resulting object into raw fields.
func toFields(value any) (map[string]json.RawMessage, error) {
	if value == nil {
		return map[string]json.RawMessage{}, nil
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	if bytes.Equal(encoded, []byte("null")) {
		return map[string]json.RawMessage{}, nil
	}

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(encoded, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// normalize re-encodes raw JSON so nested objects compare independent of key order.
func normalize(raw json.RawMessage) []byte {
	if len(raw) == 0 {
		return []byte("null")
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return raw
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return raw
	}
	return encoded
}

func decode(raw []byte) any {
	var value any
	_ = json.Unmarshal(raw, &value)
	return value
}

func union(left, right map[string]json.RawMessage) map[string]struct{} {
	keys := make(map[string]struct{}, len(left)+len(right))
	for key := range left {
		keys[key] = struct{}{}
	}
	for key := range right {
		keys[key] = struct{}{}
	}
	return keys
}
