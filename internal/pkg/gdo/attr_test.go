package gdo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttrLookup(t *testing.T) {
	a := NewAttr("garageDoor_7", map[string]interface{}{
		"doorState": map[string]interface{}{
			"value":    float64(1),
			"lastSet":  float64(1500000000),
			"varName":  "doorState",
			"nullLeaf": nil,
		},
		"scalar": "hello",
	})

	v := a.Lookup("doorState", "value")
	assert.True(t, v.Found())
	assert.Equal(t, float64(1), v.Raw())

	assert.False(t, a.Lookup("doorState", "missing").Found())
	assert.False(t, a.Lookup("noSuchModule", "value").Found())
	assert.False(t, a.Lookup("doorState", "nullLeaf").Found(), "explicit null reads as not found")
	assert.False(t, a.Lookup("scalar", "value").Found(), "descending through a scalar reads as not found")
	assert.False(t, a.Lookup("doorState", "value", "deeper").Found())

	whole := a.Lookup()
	assert.True(t, whole.Found(), "an empty path returns the whole tree")
	assert.NotNil(t, whole.Raw())
}

func TestAttrNoData(t *testing.T) {
	var a Attr
	assert.False(t, a.HasData())
	assert.False(t, a.Lookup("anything").Found())
	assert.False(t, a.Lookup().Found())
	assert.Nil(t, a.Lookup("anything").OrNil())

	b := NewAttr("wifiModule_1", nil)
	assert.False(t, b.HasData())
	assert.Equal(t, "wifiModule_1", b.Key())

	c := NewAttr("wifiModule_2", map[string]interface{}{})
	assert.True(t, c.HasData())
	assert.False(t, c.Lookup("anything").Found())
}

func TestValueInt(t *testing.T) {
	tests := []struct {
		name   string
		raw    interface{}
		want   int
		wantOK bool
	}{
		{"float64", float64(42), 42, true},
		{"float64 truncates", float64(3.9), 3, true},
		{"int", 7, 7, true},
		{"int64", int64(-2), -2, true},
		{"json.Number", json.Number("19"), 19, true},
		{"numeric string", "123", 123, true},
		{"decimal string", "12.5", 0, false},
		{"word string", "closed", 0, false},
		{"bool", true, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := NewAttr("x", map[string]interface{}{"leaf": tc.raw})
			got, ok := a.Lookup("leaf").Int()
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}

	_, ok := Value{}.Int()
	assert.False(t, ok)
}

func TestValueBool(t *testing.T) {
	tests := []struct {
		name   string
		raw    interface{}
		want   bool
		wantOK bool
	}{
		{"true", true, true, true},
		{"false", false, false, true},
		{"one", float64(1), true, true},
		{"zero", float64(0), false, true},
		{"int", 3, true, true},
		{"on", "on", true, true},
		{"off", "off", false, true},
		{"string one", "1", true, true},
		{"string zero", "0", false, true},
		{"garbage", "banana", false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := NewAttr("x", map[string]interface{}{"leaf": tc.raw})
			got, ok := a.Lookup("leaf").Bool()
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLookupDecodedJSON(t *testing.T) {
	const doc = `{
		"lightState": {"value": true, "varName": "lightState"},
		"lightTimer": {"value": 5}
	}`

	var tree map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(doc), &tree))

	a := NewAttr("garageLight_3", tree)

	on, ok := a.Lookup("lightState", "value").Bool()
	require.True(t, ok)
	assert.True(t, on)

	mins, ok := a.Lookup("lightTimer", "value").Int()
	require.True(t, ok)
	assert.Equal(t, 5, mins)
}
