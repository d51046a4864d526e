package cmd

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/shiblon/greendo/internal/pkg/gdo"
	"github.com/shiblon/greendo/internal/pkg/tiwiapi"
)

var lightTimerCmd = &cobra.Command{
	Use:   "lighttimer MINUTES",
	Short: "Set the light's auto-off delay in minutes",
	Args:  cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		minutes, err := strconv.Atoi(args[0])
		if err != nil {
			return errors.Errorf("minutes must be a whole number, got %q", args[0])
		}

		if err := doLightTimer(minutes); err != nil {
			return err
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(lightTimerCmd)
}

func doLightTimer(minutes int) error {
	if minutes < 0 {
		minutes = 0
	}

	return withClient(func(c tiwiapi.Service, d *gdo.Device) error {
		return runCommand(c, d.LightTimerCommand(minutes))
	})
}
