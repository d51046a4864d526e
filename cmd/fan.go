package cmd

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/shiblon/greendo/internal/pkg/gdo"
	"github.com/shiblon/greendo/internal/pkg/tiwiapi"
)

var fanCmd = &cobra.Command{
	Use:   "fan SPEED",
	Short: "Set the fan to an integer speed from 0 to 100 (0 is off)",
	Args:  cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		speed, err := strconv.Atoi(args[0])
		if err != nil {
			return errors.Errorf("speed must be a whole number, got %q", args[0])
		}

		if err := doFan(speed); err != nil {
			return err
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(fanCmd)
}

func doFan(speed int) error {
	if speed < 0 {
		speed = 0
	}
	if speed > 100 {
		speed = 100
	}

	return withClient(func(c tiwiapi.Service, d *gdo.Device) error {
		return runCommand(c, d.FanSpeedCommand(speed))
	})
}
