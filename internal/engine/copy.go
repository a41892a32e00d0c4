package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
)

// Clone deep-copies a state value through its JSON form. The state must
// be a non-nil pointer so a fresh value of the same concrete type can be
// allocated for the copy.
func Clone(st State) (State, error) {
	if st == nil {
		return nil, errors.New("nil state")
	}
	v := reflect.ValueOf(st)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return nil, fmt.Errorf("state must be a non-nil pointer, got %T", st)
	}
	data, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}
	cp := reflect.New(v.Type().Elem()).Interface()
	if err := json.Unmarshal(data, cp); err != nil {
		return nil, fmt.Errorf("unmarshal state copy: %w", err)
	}
	return cp, nil
}
