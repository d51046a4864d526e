package cmd

import (
	"github.com/spf13/cobra"

	"github.com/shiblon/greendo/internal/pkg/gdo"
	"github.com/shiblon/greendo/internal/pkg/tiwiapi"
)

var vacationCmd = &cobra.Command{
	Use:       "vacation (on|off)",
	Short:     "Turn vacation mode on or off",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"on", "off"},

	RunE: func(cmd *cobra.Command, args []string) error {
		if err := doVacation(args[0] == "on"); err != nil {
			return err
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(vacationCmd)
}

func doVacation(on bool) error {
	return withClient(func(c tiwiapi.Service, d *gdo.Device) error {
		return runCommand(c, d.VacationCommand(on))
	})
}
