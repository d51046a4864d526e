package cmd

import (
	"github.com/spf13/cobra"

	"github.com/shiblon/greendo/internal/pkg/gdo"
	"github.com/shiblon/greendo/internal/pkg/tiwiapi"
)

var doorCmd = &cobra.Command{
	Use:       "door (open|close|preset)",
	Short:     "Open or close the door, or send it to its preset position",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"open", "close", "preset"},

	RunE: func(cmd *cobra.Command, args []string) error {
		if err := doDoor(args[0]); err != nil {
			return err
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(doorCmd)
}

func doDoor(action string) error {
	return withClient(func(c tiwiapi.Service, d *gdo.Device) error {
		var payload *gdo.CommandPayload
		switch action {
		case "open":
			payload = d.OpenCommand()
		case "close":
			payload = d.CloseCommand()
		default:
			payload = d.PresetCommand()
		}

		return runCommand(c, payload)
	})
}
