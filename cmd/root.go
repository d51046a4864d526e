package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/shiblon/greendo/internal/pkg/logging"
)

var _rootCmdOpts struct {
	cfgFile string
	debug   bool
	email   string
	pwd     string
	dryRun  bool
	device  int
	timeout time.Duration
}

var rootCmd = &cobra.Command{
	Use:   "greendo",
	Short: "Command line client for Ryobi garage door openers",
	Long: `greendo talks to the cloud service behind Ryobi garage door openers.
It reports status for the door, light, fan and battery charger, and sends
commands to any of them:

  greendo door open
  greendo light off
  greendo status door`,

	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The debug flag wins over any configured log level, so set it
		// before Configure looks.
		if _rootCmdOpts.debug {
			logrus.SetLevel(logrus.DebugLevel)
		}

		if err := logging.Configure(viper.GetViper()); err != nil {
			return err
		}

		return nil
	},
}

// Execute runs the selected subcommand.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&_rootCmdOpts.cfgFile, "config", "", "config file (default is $HOME/.greendo.yaml)")
	rootCmd.PersistentFlags().BoolVar(&_rootCmdOpts.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&_rootCmdOpts.email, "email", "u", "", "email address registered with the opener app (default: prompt)")
	rootCmd.PersistentFlags().StringVarP(&_rootCmdOpts.pwd, "pwd", "p", "", "password for the registered email (default: prompt)")
	rootCmd.PersistentFlags().BoolVarP(&_rootCmdOpts.dryRun, "dry", "n", false, "display commands instead of sending them")
	rootCmd.PersistentFlags().IntVarP(&_rootCmdOpts.device, "dev", "d", 0, "device index, for accounts with more than one opener")
	rootCmd.PersistentFlags().DurationVar(&_rootCmdOpts.timeout, "timeout", 0, "maximum duration of one service call, eg. 1m or 10s (default none)")

	errPanic(viper.GetViper().BindPFlag("auth.email", rootCmd.PersistentFlags().Lookup("email")))
	errPanic(viper.GetViper().BindPFlag("auth.password", rootCmd.PersistentFlags().Lookup("pwd")))
	errPanic(viper.GetViper().BindPFlag("dry-run", rootCmd.PersistentFlags().Lookup("dry")))
	errPanic(viper.GetViper().BindPFlag("device.index", rootCmd.PersistentFlags().Lookup("dev")))
	errPanic(viper.GetViper().BindPFlag("request.timeout", rootCmd.PersistentFlags().Lookup("timeout")))
}

func initConfig() {
	if _rootCmdOpts.cfgFile != "" {
		viper.SetConfigFile(_rootCmdOpts.cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigName(".greendo")
	}

	viper.SetEnvPrefix("GREENDO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logging.Logger().Debugf("Using config file %s", viper.ConfigFileUsed())
	}
}

func errPanic(err error) {
	if err != nil {
		panic(err)
	}
}
