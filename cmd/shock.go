package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var _shockCmdOpts struct {
	intensity int
	duration  time.Duration
	warn      bool
	mini      bool
}

var shockCmd = &cobra.Command{
	Use:   "shock",
	Short: "Deliver a shock through the device",

	RunE: func(cmd *cobra.Command, args []string) error {
		if err := doShock(); err != nil {
			return err
		}

		return nil
	},

	PreRunE: func(cmd *cobra.Command, args []string) error {
		return checkRequiredFlags("api.key", "api.username", "api.sharecode")
	},
}

func init() {
	shockCmd.Flags().IntVarP(&_shockCmdOpts.intensity, "intensity", "i", 1, "shock intensity, 1-100")
	shockCmd.Flags().DurationVarP(&_shockCmdOpts.duration, "duration", "t", 300*time.Millisecond, "shock duration, eg. 2s or 300ms")
	shockCmd.Flags().BoolVar(&_shockCmdOpts.warn, "warn", false, "send a soft warning vibration before the shock")
	shockCmd.Flags().BoolVar(&_shockCmdOpts.mini, "mini", false, "send a fixed 300ms mini shock")

	errPanic(viper.GetViper().BindPFlag("shock.intensity", shockCmd.Flags().Lookup("intensity")))
	errPanic(viper.GetViper().BindPFlag("shock.duration", shockCmd.Flags().Lookup("duration")))
	errPanic(viper.GetViper().BindPFlag("shock.warn", shockCmd.Flags().Lookup("warn")))
	errPanic(viper.GetViper().BindPFlag("shock.mini", shockCmd.Flags().Lookup("mini")))

	rootCmd.AddCommand(shockCmd)
}

func doShock() error {
	intensity := viper.GetInt("shock.intensity")
	duration := viper.GetDuration("shock.duration")

	ctx := context.Background()

	shocker, err := newShockerFromConfig(ctx)
	if err != nil {
		return err
	}

	switch {
	case viper.GetBool("shock.mini"):
		return shocker.MiniShock(ctx, intensity)
	case viper.GetBool("shock.warn"):
		return shocker.ShockWithWarning(ctx, intensity, duration)
	default:
		return shocker.Shock(ctx, intensity, duration)
	}
}
