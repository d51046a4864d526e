package gdo

const (
	moduleCommandMethod  = "gdoModuleCommand"
	moduleCommandMsgType = 16
)

// Door motion commands are sent as strings, not numbers. That is what the
// service expects, for whatever reason.
const (
	doorCommandClose  = "0"
	doorCommandOpen   = "1"
	doorCommandPreset = "2"
)

// CommandPayload is the JSON-RPC envelope for a module mutation, sent over
// the wsrpc socket after authentication.
type CommandPayload struct {
	JSONRPC string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  CommandParams `json:"params"`
}

// CommandParams addresses one module of one device and carries the
// attribute changes to apply. The module and port IDs are taken from the
// device's own attribute trees; when a device never reported them they are
// sent as null and the service rejects the command.
type CommandParams struct {
	MsgType    int                    `json:"msgType"`
	ModuleType *int                   `json:"moduleType"`
	PortID     *int                   `json:"portId"`
	Topic      string                 `json:"topic"`
	ModuleMsg  map[string]interface{} `json:"moduleMsg"`
}

func optionalInt(v Value) *int {
	n, ok := v.Int()
	if !ok {
		return nil
	}
	return &n
}

func clampInt(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

func (d *Device) moduleCommand(m Module, msg map[string]interface{}) *CommandPayload {
	return &CommandPayload{
		JSONRPC: "2.0",
		Method:  moduleCommandMethod,
		Params: CommandParams{
			MsgType:    moduleCommandMsgType,
			ModuleType: optionalInt(m.ModuleID()),
			PortID:     optionalInt(m.PortID()),
			Topic:      d.ID(),
			ModuleMsg:  msg,
		},
	}
}

// OpenCommand builds the command that opens the door.
func (d *Device) OpenCommand() *CommandPayload {
	return d.moduleCommand(d.Door.Module, map[string]interface{}{
		"doorCommand": doorCommandOpen,
	})
}

// CloseCommand builds the command that closes the door.
func (d *Device) CloseCommand() *CommandPayload {
	return d.moduleCommand(d.Door.Module, map[string]interface{}{
		"doorCommand": doorCommandClose,
	})
}

// PresetCommand builds the command that moves the door to its preset
// position.
func (d *Device) PresetCommand() *CommandPayload {
	return d.moduleCommand(d.Door.Module, map[string]interface{}{
		"doorCommand": doorCommandPreset,
	})
}

// PresetPositionCommand builds the command that changes where a preset
// command travels to. The position is clamped between zero and the door's
// maximum; when the device never reported a maximum the position collapses
// to zero.
func (d *Device) PresetPositionCommand(pos int) *CommandPayload {
	maxPos, _ := d.Door.MaxPosition().Int()
	return d.moduleCommand(d.Door.Module, map[string]interface{}{
		"presetPosition": clampInt(pos, 0, maxPos),
	})
}

// LightCommand builds the command that turns the garage light on or off.
func (d *Device) LightCommand(on bool) *CommandPayload {
	return d.moduleCommand(d.Light.Module, map[string]interface{}{
		"lightState": on,
	})
}

// LightTimerCommand builds the command that sets the light's auto-off
// delay in minutes.
func (d *Device) LightTimerCommand(minutes int) *CommandPayload {
	return d.moduleCommand(d.Light.Module, map[string]interface{}{
		"lightTimer": minutes,
	})
}

// MotionCommand builds the command that enables or disables the motion
// sensor.
func (d *Device) MotionCommand(on bool) *CommandPayload {
	return d.moduleCommand(d.Door.Module, map[string]interface{}{
		"motionSensor": on,
	})
}

// VacationCommand builds the command that turns vacation mode on or off.
// Vacation mode is an attribute of the door module, so that is where the
// command is addressed.
func (d *Device) VacationCommand(on bool) *CommandPayload {
	return d.moduleCommand(d.Door.Module, map[string]interface{}{
		"vacationMode": on,
	})
}

// FanSpeedCommand builds the command that sets the fan speed, clamped
// between 0 and 100.
func (d *Device) FanSpeedCommand(speed int) *CommandPayload {
	return d.moduleCommand(d.Fan.Module, map[string]interface{}{
		"speed": clampInt(speed, 0, 100),
	})
}
