package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var _beepCmdOpts struct {
	duration time.Duration
}

var beepCmd = &cobra.Command{
	Use:   "beep",
	Short: "Sound the device's buzzer",

	RunE: func(cmd *cobra.Command, args []string) error {
		if err := doBeep(); err != nil {
			return err
		}

		return nil
	},

	PreRunE: func(cmd *cobra.Command, args []string) error {
		return checkRequiredFlags("api.key", "api.username", "api.sharecode")
	},
}

func init() {
	beepCmd.Flags().DurationVarP(&_beepCmdOpts.duration, "duration", "t", time.Second, "beep duration, eg. 2s or 300ms")

	errPanic(viper.GetViper().BindPFlag("beep.duration", beepCmd.Flags().Lookup("duration")))

	rootCmd.AddCommand(beepCmd)
}

func doBeep() error {
	ctx := context.Background()

	shocker, err := newShockerFromConfig(ctx)
	if err != nil {
		return err
	}

	return shocker.Beep(ctx, viper.GetDuration("beep.duration"))
}
