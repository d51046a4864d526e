// Package gdo models a Ryobi garage door opener: the attribute trees the
// cloud service reports for each of its modules (door, light, fan, charger,
// wifi, master unit) and the command payloads that mutate them over the
// wsrpc socket. Everything here is pure data: nothing in this package
// performs network I/O.
package gdo

import (
	"encoding/json"
	"strconv"
)

// Attr is one module's raw attribute tree, taken from the device details
// response. An example key is "garageDoor_8"; it points at an
// arbitrary-depth map whose leaves are wrapped as {"value": <scalar>}.
//
// A module the device never reported holds no data at all; every lookup on
// it reports not-found rather than failing. Callers rely on the difference
// between not-found and a present false/zero leaf.
type Attr struct {
	key  string
	data map[string]interface{}
}

// NewAttr wraps the raw attribute tree for a module key. A nil tree is
// valid and behaves as "no data".
func NewAttr(key string, data map[string]interface{}) Attr {
	return Attr{key: key, data: data}
}

// Key returns the attribute key this module was discovered under.
func (a Attr) Key() string {
	return a.key
}

// HasData reports whether the device reported anything for this module.
func (a Attr) HasData() bool {
	return a.data != nil
}

// Lookup drills into the nested tree one key at a time and returns the leaf
// it lands on. The result is not-found as soon as any step of the path is
// missing, explicitly null, or sits under a non-map value, and when the
// module holds no data at all. Lookup never fails for missing data.
func (a Attr) Lookup(path ...string) Value {
	if !a.HasData() {
		return Value{}
	}

	var cur interface{} = a.data
	for _, p := range path {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return Value{}
		}
		next, ok := m[p]
		if !ok || next == nil {
			return Value{}
		}
		cur = next
	}

	return Value{raw: cur, found: true}
}

// Value is the result of a Lookup: either the raw leaf that was found, or
// nothing.
type Value struct {
	raw   interface{}
	found bool
}

// Found reports whether the lookup hit a present, non-null value.
func (v Value) Found() bool {
	return v.found
}

// Raw returns the leaf exactly as it was decoded from JSON, or nil if the
// value was not found.
func (v Value) Raw() interface{} {
	return v.raw
}

// OrNil is Raw under a name that reads well in status output, where absent
// fields are rendered as JSON null.
func (v Value) OrNil() interface{} {
	if !v.found {
		return nil
	}
	return v.raw
}

// Int coerces the value to an int. JSON numbers decode as float64, but the
// service has been seen wrapping numerics as strings too, so both are
// accepted.
func (v Value) Int() (int, bool) {
	if !v.found {
		return 0, false
	}

	switch n := v.raw.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, false
		}
		return i, true
	}

	return 0, false
}

// Bool coerces the value to a bool. Numeric values count as true when
// non-zero; the string forms "1", "true" and "on" count as true.
func (v Value) Bool() (bool, bool) {
	if !v.found {
		return false, false
	}

	switch b := v.raw.(type) {
	case bool:
		return b, true
	case float64:
		return b != 0, true
	case int:
		return b != 0, true
	case string:
		switch b {
		case "1", "true", "on":
			return true, true
		case "0", "false", "off":
			return false, true
		}
	}

	return false, false
}
