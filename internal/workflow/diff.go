package workflow

import (
	"fmt"
	"reflect"
	"sort"
)

// Change is one field-level difference recorded in the activity trail.
// Old and new values are stringified; nil means absent.
type Change struct {
	Field    string  `json:"field"`
	OldValue *string `json:"old_value"`
	NewValue *string `json:"new_value"`
}

// Diff compares two attribute snapshots and returns the changed fields,
// sorted by field name. Fields equal on both sides are omitted. A field
// present only in before (removed) is emitted with a nil new value. An empty
// result means the update changed nothing and no "updated" activity row
// should be written.
func Diff(before, after map[string]any) []Change {
	var changes []Change

	for field, newValue := range after {
		oldStr := stringify(before[field])
		newStr := stringify(newValue)
		if equalValue(oldStr, newStr) {
			continue
		}
		changes = append(changes, Change{Field: field, OldValue: oldStr, NewValue: newStr})
	}

	for field, oldValue := range before {
		if _, ok := after[field]; ok {
			continue
		}
		if oldStr := stringify(oldValue); oldStr != nil {
			changes = append(changes, Change{Field: field, OldValue: oldStr})
		}
	}

	sort.Slice(changes, func(i, j int) bool { return changes[i].Field < changes[j].Field })
	return changes
}

func equalValue(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// stringify renders a snapshot value for storage. Nil values and nil
// pointers map to nil; pointers are dereferenced first.
func stringify(v any) *string {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	s := fmt.Sprint(rv.Interface())
	return &s
}
