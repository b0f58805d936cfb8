package questdb

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
)

var (
	// ErrNotObject is returned when a value expected to be a JSON object is
	// something else.
	ErrNotObject = errors.New("not a JSON object")

	// ErrInvalidJSON is returned for input that is not well-formed JSON.
	ErrInvalidJSON = errors.New("invalid JSON")
)

// Object is a JSON object that keeps its keys in document order. Values
// are gjson results pointing into the original document.
type Object struct {
	keys   []string
	values map[string]gjson.Result
}

// ParseObject validates data and returns its root object.
func ParseObject(data []byte) (Object, error) {
	if !gjson.ValidBytes(data) {
		return Object{}, ErrInvalidJSON
	}
	return ObjectOf(gjson.ParseBytes(data))
}

// ObjectOf wraps a gjson object result. A repeated key keeps its first
// position and takes the last value. null gives an empty object.
func ObjectOf(res gjson.Result) (Object, error) {
	o := Object{values: map[string]gjson.Result{}}
	if res.Type == gjson.Null {
		return o, nil
	}
	if !res.IsObject() {
		return Object{}, ErrNotObject
	}

	res.ForEach(func(key, value gjson.Result) bool {
		k := key.String()
		if _, seen := o.values[k]; !seen {
			o.keys = append(o.keys, k)
		}
		o.values[k] = value
		return true
	})
	return o, nil
}

// Keys returns the object's keys in document order.
func (o Object) Keys() []string {
	return o.keys
}

// Len reports the number of distinct keys.
func (o Object) Len() int {
	return len(o.keys)
}

// Value returns the value for key. A null value counts as absent.
func (o Object) Value(key string) (gjson.Result, bool) {
	v, ok := o.values[key]
	if !ok || v.Type == gjson.Null {
		return gjson.Result{}, false
	}
	return v, true
}

// Object returns the value at key as a nested object. Absent keys give an
// empty object.
func (o Object) Object(key string) (Object, error) {
	v, _ := o.Value(key)
	child, err := ObjectOf(v)
	if err != nil {
		return Object{}, fmt.Errorf("%s: %w", key, err)
	}
	return child, nil
}

// Path walks nested objects along keys. A missing step yields an empty
// object rather than an error.
func (o Object) Path(keys ...string) (Object, error) {
	cur := o
	for _, key := range keys {
		next, err := cur.Object(key)
		if err != nil {
			return Object{}, err
		}
		cur = next
	}
	return cur, nil
}

// String returns the value at key as a string. Absent keys give "".
func (o Object) String(key string) (string, error) {
	v, ok := o.Value(key)
	if !ok {
		return "", nil
	}
	if v.Type != gjson.String {
		return "", fmt.Errorf("%s: expected a string, got %s", key, Describe(v))
	}
	return v.Str, nil
}

// Field looks a key up by its base name, tolerating the NBT type suffixes
// BetterQuesting appends (name, name:1 ... name:12). It returns the matching
// key along with its value.
func (o Object) Field(base string) (string, gjson.Result, bool) {
	if v, ok := o.Value(base); ok {
		return base, v, true
	}
	for tag := 1; tag <= 12; tag++ {
		key := base + ":" + strconv.Itoa(tag)
		if v, ok := o.Value(key); ok {
			return key, v, true
		}
	}
	return "", gjson.Result{}, false
}

// IDField returns a numeric or string NBT field as text, see ScalarID.
func (o Object) IDField(base string) (string, bool) {
	_, v, ok := o.Field(base)
	if !ok {
		return "", false
	}
	return ScalarID(v)
}

// ScalarID renders a number as its literal text and a non-empty string as
// is. Anything else, null included, is not an id.
func ScalarID(v gjson.Result) (string, bool) {
	switch v.Type {
	case gjson.Number:
		return v.Raw, true
	case gjson.String:
		return v.Str, v.Str != ""
	}
	return "", false
}

// Unwrap returns the "value" compound of NBT list entries shaped
// {"key": k, "value": {...}}, or v itself.
func Unwrap(v gjson.Result) gjson.Result {
	if inner := v.Get("value"); inner.IsObject() {
		return inner
	}
	return v
}

// Describe names the JSON kind of v for error messages.
func Describe(v gjson.Result) string {
	switch {
	case v.IsObject():
		return "an object"
	case v.IsArray():
		return "a list"
	}
	switch v.Type {
	case gjson.String:
		return "a string"
	case gjson.True, gjson.False:
		return "a boolean"
	case gjson.Null:
		return "null"
	case gjson.Number:
		return "a number"
	}
	return "nothing"
}
