package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hazyview/pishock-go/internal/pkg/logging"
	"github.com/hazyview/pishock-go/internal/pkg/pishock"
)

var _rootCmdOpts struct {
	cfgFile    string
	debug      bool
	apiKey     string
	username   string
	shareCode  string
	appName    string
	apiTimeout time.Duration
	cooldown   time.Duration
}

var rootCmd = &cobra.Command{
	Use:   "pishock-go",
	Short: "Control PiShock devices from the command line",

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if _rootCmdOpts.debug {
			logrus.SetLevel(logrus.DebugLevel)
		}

		return logging.Configure(viper.GetViper())
	},

	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&_rootCmdOpts.cfgFile, "config", "", "config file (default is $HOME/.pishock.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&_rootCmdOpts.debug, "debug", "d", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&_rootCmdOpts.apiKey, "apikey", "", "PiShock API key from the account settings page")
	rootCmd.PersistentFlags().StringVar(&_rootCmdOpts.username, "username", "", "PiShock account user name")
	rootCmd.PersistentFlags().StringVar(&_rootCmdOpts.shareCode, "sharecode", "", "share code of the device to control")
	rootCmd.PersistentFlags().StringVar(&_rootCmdOpts.appName, "appname", "pishock-go", "application name reported to the API")
	rootCmd.PersistentFlags().DurationVar(&_rootCmdOpts.apiTimeout, "api-timeout", time.Second*15, "maximum duration of an API call, eg. 1m or 10s")
	rootCmd.PersistentFlags().DurationVar(&_rootCmdOpts.cooldown, "cooldown", 0, "minimum spacing between commands to the device, eg. 300ms (0 disables)")

	errPanic(viper.GetViper().BindPFlag("api.key", rootCmd.PersistentFlags().Lookup("apikey")))
	errPanic(viper.GetViper().BindPFlag("api.username", rootCmd.PersistentFlags().Lookup("username")))
	errPanic(viper.GetViper().BindPFlag("api.sharecode", rootCmd.PersistentFlags().Lookup("sharecode")))
	errPanic(viper.GetViper().BindPFlag("api.appname", rootCmd.PersistentFlags().Lookup("appname")))
	errPanic(viper.GetViper().BindPFlag("api.timeout", rootCmd.PersistentFlags().Lookup("api-timeout")))
	errPanic(viper.GetViper().BindPFlag("device.cooldown", rootCmd.PersistentFlags().Lookup("cooldown")))
}

func initConfig() {
	// A .env file can stand in for real environment variables
	if err := godotenv.Load(); err == nil {
		logging.Logger(nil).Debug("loaded environment from .env")
	}

	if _rootCmdOpts.cfgFile != "" {
		viper.SetConfigFile(_rootCmdOpts.cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigName(".pishock")
	}

	viper.SetEnvPrefix("PISHOCK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logging.Logger(nil).Debugf("using config file %s", viper.ConfigFileUsed())
	}
}

// newShockerFromConfig builds a device handle from the configured
// credentials, fetching its metadata so limit checks apply immediately.
func newShockerFromConfig(ctx context.Context) (*pishock.Shocker, error) {
	account := pishock.NewAccount(
		viper.GetString("api.appname"),
		viper.GetString("api.username"),
		viper.GetString("api.key"),
	).WithTimeout(viper.GetDuration("api.timeout"))

	shocker, err := account.GetShocker(ctx, viper.GetString("api.sharecode"))
	if err != nil {
		return nil, err
	}

	return shocker.WithCooldown(viper.GetDuration("device.cooldown")), nil
}

func errPanic(err error) {
	if err != nil {
		panic(err)
	}
}

func checkRequiredFlags(needFlags ...string) error {
	missingFlags := []string{}

	for _, f := range needFlags {
		if !viper.IsSet(f) || viper.GetString(f) == "" {
			missingFlags = append(missingFlags, f)
		}
	}

	if len(missingFlags) > 0 {
		itemPlural := "item"
		if len(missingFlags) > 1 {
			itemPlural = "items"
		}
		return fmt.Errorf("required config %s `%s` not set", itemPlural, strings.Join(missingFlags, "`, `"))
	}

	return nil
}
