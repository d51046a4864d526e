package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shiblon/greendo/internal/pkg/gdo"
	"github.com/shiblon/greendo/internal/pkg/tiwiapi"
)

var statusCmd = &cobra.Command{
	Use:       "status (config|charger|door|light|fan)",
	Short:     "Show status for one subsystem of the opener",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"config", "charger", "door", "light", "fan"},

	RunE: func(cmd *cobra.Command, args []string) error {
		if err := doStatus(args[0]); err != nil {
			return err
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func doStatus(thing string) error {
	return withClient(func(c tiwiapi.Service, d *gdo.Device) error {
		if thing == "config" {
			return printConfig(c)
		}

		var view map[string]interface{}
		switch thing {
		case "charger":
			view = chargerStatusView(d)
		case "door":
			view = doorStatusView(d)
		case "light":
			view = lightStatusView(d)
		default:
			view = fanStatusView(d)
		}

		return printJSON(view)
	})
}

// printConfig dumps the whole session and every device, raw. Useful for
// poking at fields the typed views do not surface.
func printConfig(c tiwiapi.Service) error {
	fmt.Println("Session:")
	if err := printJSON(c.Session().Data); err != nil {
		return err
	}

	type deviceDump struct {
		Meta map[string]interface{} `json:"meta"`
		Data map[string]interface{} `json:"data"`
	}

	dump := []deviceDump{}
	for _, d := range c.Devices() {
		dump = append(dump, deviceDump{Meta: d.Meta(), Data: d.Details()})
	}

	fmt.Println("Devices:")
	return printJSON(dump)
}

// The status views render absent attributes as explicit nulls so a device
// without the module still produces complete output.

func chargerStatusView(d *gdo.Device) map[string]interface{} {
	return map[string]interface{}{
		"level": d.Charger.Level().OrNil(),
	}
}

func doorStatusView(d *gdo.Device) map[string]interface{} {
	door := d.Door
	return map[string]interface{}{
		"status":   door.Status().String(),
		"error":    faultOrNil(door.Fault()),
		"pos":      door.Position().OrNil(),
		"max":      door.MaxPosition().OrNil(),
		"preset":   door.PresetPosition().OrNil(),
		"motion":   door.Motion().OrNil(),
		"alarm":    door.Alarm().OrNil(),
		"motor":    door.Motor().OrNil(),
		"sensor":   door.Sensor().OrNil(),
		"vacation": door.Vacation().OrNil(),
	}
}

func lightStatusView(d *gdo.Device) map[string]interface{} {
	return map[string]interface{}{
		"light": d.Light.On().OrNil(),
		"timer": d.Light.Timer().OrNil(),
	}
}

func fanStatusView(d *gdo.Device) map[string]interface{} {
	return map[string]interface{}{
		"speed": d.Fan.Speed().OrNil(),
	}
}

func faultOrNil(f gdo.DoorFault) interface{} {
	if f == gdo.FaultNone {
		return nil
	}
	return f.String()
}
