package cmd

import (
	"github.com/spf13/cobra"

	"github.com/shiblon/greendo/internal/pkg/gdo"
	"github.com/shiblon/greendo/internal/pkg/tiwiapi"
)

var motionCmd = &cobra.Command{
	Use:       "motion (on|off)",
	Short:     "Turn the motion sensor on or off",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"on", "off"},

	RunE: func(cmd *cobra.Command, args []string) error {
		if err := doMotion(args[0] == "on"); err != nil {
			return err
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(motionCmd)
}

func doMotion(on bool) error {
	return withClient(func(c tiwiapi.Service, d *gdo.Device) error {
		return runCommand(c, d.MotionCommand(on))
	})
}
