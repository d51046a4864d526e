package cmd

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/shiblon/greendo/internal/pkg/gdo"
	"github.com/shiblon/greendo/internal/pkg/tiwiapi"
)

var presetCmd = &cobra.Command{
	Use:   "preset INCHES",
	Short: "Set the door's preset position in integer inches",
	Args:  cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		inches, err := strconv.Atoi(args[0])
		if err != nil {
			return errors.Errorf("inches must be a whole number, got %q", args[0])
		}

		if err := doPreset(inches); err != nil {
			return err
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(presetCmd)
}

func doPreset(inches int) error {
	if inches < 0 {
		inches = 0
	}

	return withClient(func(c tiwiapi.Service, d *gdo.Device) error {
		return runCommand(c, d.PresetPositionCommand(inches))
	})
}
