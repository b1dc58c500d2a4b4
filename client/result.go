package client

import (
	"github.com/bytedance/sonic"
)

// Result is a decoded API payload whose root is a JSON object or array
type Result struct {
	raw   []byte
	value any
}

// ObjectResult builds a Result from an object, mostly for fakes and tests
func ObjectResult(obj map[string]any) Result {
	return Result{value: obj}
}

// ArrayResult builds a Result from an array
func ArrayResult(arr []any) Result {
	return Result{value: arr}
}

// IsArray reports whether the payload root is an array
func (r Result) IsArray() bool {
	_, ok := r.value.([]any)
	return ok
}

// Object returns the payload as an object, or nil for array payloads
func (r Result) Object() map[string]any {
	obj, _ := r.value.(map[string]any)
	return obj
}

// Array returns the payload as an array, or nil for object payloads
func (r Result) Array() []any {
	arr, _ := r.value.([]any)
	return arr
}

// Value returns the decoded payload
func (r Result) Value() any {
	return r.value
}

// Bytes returns the JSON encoding of the payload
func (r Result) Bytes() ([]byte, error) {
	if r.raw != nil {
		return r.raw, nil
	}
	return sonic.Marshal(r.value)
}

// Decode unmarshals the payload into v
func (r Result) Decode(v any) error {
	raw, err := r.Bytes()
	if err != nil {
		return err
	}
	return sonic.Unmarshal(raw, v)
}

// MarshalJSON implements json.Marshaler
func (r Result) MarshalJSON() ([]byte, error) {
	if r.value == nil {
		return []byte("null"), nil
	}
	return r.Bytes()
}
