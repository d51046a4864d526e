package gdo

// Module is an addressable unit inside the opener, such as the door, light
// or fan. Socket commands are routed to a module by the pair of IDs below.
type Module struct {
	Attr
}

// ModuleID returns the module type identifier used to address socket
// commands.
func (m Module) ModuleID() Value {
	return m.Lookup("moduleId", "value")
}

// PortID returns the port identifier used to address socket commands.
func (m Module) PortID() Value {
	return m.Lookup("portId", "value")
}

// Charger is the backup battery charger module.
type Charger struct {
	Module
}

// Level returns the battery charge level from 0 to 100.
func (c Charger) Level() Value {
	return c.Lookup("chargeLevel", "value")
}

// DoorStatus is the decoded motion state of the door.
type DoorStatus int

const (
	DoorClosed DoorStatus = iota
	DoorOpen
	DoorClosing
	DoorOpening
)

var doorStatusNames = map[DoorStatus]string{
	DoorClosed:  "closed",
	DoorOpen:    "open",
	DoorClosing: "closing",
	DoorOpening: "opening",
}

func (s DoorStatus) String() string {
	return doorStatusNames[s]
}

// DoorFault is the decoded operating fault of the door, if any.
type DoorFault int

const (
	FaultNone DoorFault = iota
	FaultError
	FaultLocked
)

var doorFaultNames = map[DoorFault]string{
	FaultNone:   "none",
	FaultError:  "error",
	FaultLocked: "locked",
}

func (f DoorFault) String() string {
	return doorFaultNames[f]
}

// Door is the garage door module. Most of the interesting opener state
// lives here, including the motion sensor and vacation mode.
type Door struct {
	Module
}

// MaxPosition returns the fully-open door position. The units are whatever
// the opener uses internally, probably inches.
func (d Door) MaxPosition() Value {
	return d.Lookup("maxDoorPosition", "value")
}

// PresetPosition returns the position the door travels to on a preset
// command.
func (d Door) PresetPosition() Value {
	return d.Lookup("presetPosition", "value")
}

// Position returns the current door position, in the same units as
// MaxPosition.
func (d Door) Position() Value {
	return d.Lookup("doorPosition", "value")
}

// Alarm returns the alarm state of the door.
func (d Door) Alarm() Value {
	return d.Lookup("alarmState", "value")
}

// Motor returns the motor status of the door.
func (d Door) Motor() Value {
	return d.Lookup("motorStatus", "value")
}

// Motion returns whether the motion sensor is enabled.
func (d Door) Motion() Value {
	return d.Lookup("motionSensor", "value")
}

// Sensor returns the state of the safety sensors.
func (d Door) Sensor() Value {
	return d.Lookup("sensorFlag", "value")
}

// Vacation returns whether vacation mode is on.
func (d Door) Vacation() Value {
	return d.Lookup("vacationMode", "value")
}

// Status decodes the door's motion state. The service reports 0 for
// closed, 1 for open and 2 for closing; anything else, including a missing
// state, reads as opening.
func (d Door) Status() DoorStatus {
	state, ok := d.Lookup("doorState", "value").Int()
	if !ok {
		return DoorOpening
	}
	switch state {
	case 0:
		return DoorClosed
	case 1:
		return DoorOpen
	case 2:
		return DoorClosing
	default:
		return DoorOpening
	}
}

// Fault decodes the door's operating mode into the fault it represents.
// Unknown and missing modes read as no fault.
func (d Door) Fault() DoorFault {
	mode, ok := d.Lookup("opMode", "value").Int()
	if !ok {
		return FaultNone
	}
	switch mode {
	case 1:
		return FaultError
	case 2:
		return FaultLocked
	default:
		return FaultNone
	}
}

// Fan is the ventilation fan module.
type Fan struct {
	Module
}

// Speed returns the fan speed from 0 to 100.
func (f Fan) Speed() Value {
	return f.Lookup("speed", "value")
}

// Light is the garage light module.
type Light struct {
	Module
}

// On returns whether the light is currently on.
func (l Light) On() Value {
	return l.Lookup("lightState", "value")
}

// Timer returns the light's auto-off delay in minutes.
func (l Light) Timer() Value {
	return l.Lookup("lightTimer", "value")
}
