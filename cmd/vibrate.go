package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var _vibrateCmdOpts struct {
	intensity int
	duration  time.Duration
}

var vibrateCmd = &cobra.Command{
	Use:   "vibrate",
	Short: "Run the device's vibration motor",

	RunE: func(cmd *cobra.Command, args []string) error {
		if err := doVibrate(); err != nil {
			return err
		}

		return nil
	},

	PreRunE: func(cmd *cobra.Command, args []string) error {
		return checkRequiredFlags("api.key", "api.username", "api.sharecode")
	},
}

func init() {
	vibrateCmd.Flags().IntVarP(&_vibrateCmdOpts.intensity, "intensity", "i", 1, "vibration intensity, 1-100")
	vibrateCmd.Flags().DurationVarP(&_vibrateCmdOpts.duration, "duration", "t", time.Second, "vibration duration, eg. 2s or 300ms")

	errPanic(viper.GetViper().BindPFlag("vibrate.intensity", vibrateCmd.Flags().Lookup("intensity")))
	errPanic(viper.GetViper().BindPFlag("vibrate.duration", vibrateCmd.Flags().Lookup("duration")))

	rootCmd.AddCommand(vibrateCmd)
}

func doVibrate() error {
	ctx := context.Background()

	shocker, err := newShockerFromConfig(ctx)
	if err != nil {
		return err
	}

	return shocker.Vibrate(ctx, viper.GetInt("vibrate.intensity"), viper.GetDuration("vibrate.duration"))
}
