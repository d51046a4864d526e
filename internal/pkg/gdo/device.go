package gdo

import (
	"sort"
	"strings"

	"github.com/shiblon/greendo/internal/pkg/logging"
)

// Device is a complete garage door opener unit: the metadata entry from
// the account's device list plus the details blob holding per-module
// attribute trees. The typed module fields are views over those trees; a
// module the device never reported is present but empty, so lookups on it
// report not-found instead of failing.
//
// A Device is immutable once built.
type Device struct {
	meta    map[string]interface{}
	details map[string]interface{}

	Master  Attr
	Charger Charger
	Door    Door
	Fan     Fan
	Wifi    Module
	Light   Light
}

// NewDevice builds a device from its metadata and details documents.
// Attribute keys are visited in sorted order so that a malformed details
// blob with duplicate module keys still produces the same device every
// time. Unknown module keys are logged and skipped; they never abort
// construction.
func NewDevice(meta, details map[string]interface{}) *Device {
	d := &Device{meta: meta, details: details}

	attrs, _ := details["attributes"].(map[string]interface{})
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		tree, _ := attrs[k].(map[string]interface{})
		attr := NewAttr(k, tree)
		switch {
		case k == "masterUnit":
			d.Master = attr
		case strings.HasPrefix(k, "backupCharger_"):
			d.Charger = Charger{Module{attr}}
		case strings.HasPrefix(k, "garageDoor_"):
			d.Door = Door{Module{attr}}
		case strings.HasPrefix(k, "fan_"):
			d.Fan = Fan{Module{attr}}
		case strings.HasPrefix(k, "wifiModule_"):
			d.Wifi = Module{attr}
		case strings.HasPrefix(k, "garageLight_"):
			d.Light = Light{Module{attr}}
		default:
			logging.Logger().Warnf("Unknown module key %q", k)
		}
	}

	return d
}

// ID returns the device identifier used to address commands, from the
// varName metadata field.
func (d *Device) ID() string {
	s, _ := d.meta["varName"].(string)
	return s
}

// Name returns the human-readable device name.
func (d *Device) Name() string {
	s, _ := d.meta["name"].(string)
	return s
}

// Meta returns the raw metadata entry this device was built from.
func (d *Device) Meta() map[string]interface{} {
	return d.meta
}

// Details returns the raw details document this device was built from.
func (d *Device) Details() map[string]interface{} {
	return d.details
}

// TimeZoneOffset returns the UTC offset the master unit is configured
// with.
func (d *Device) TimeZoneOffset() Value {
	return d.Master.Lookup("timeZoneOffset", "value")
}
