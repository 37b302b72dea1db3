package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	_infoAsJSON bool
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Display the device metadata the API reports for the share code",

	RunE: func(cmd *cobra.Command, args []string) error {
		if err := doInfo(); err != nil {
			return err
		}

		return nil
	},

	PreRunE: func(cmd *cobra.Command, args []string) error {
		return checkRequiredFlags("api.key", "api.username", "api.sharecode")
	},
}

func init() {
	infoCmd.Flags().BoolVar(&_infoAsJSON, "json", false, "Return device info as JSON")
	errPanic(viper.GetViper().BindPFlag("info.json", infoCmd.Flags().Lookup("json")))

	rootCmd.AddCommand(infoCmd)
}

type infoResult struct {
	Name               string `json:"name"`
	ShockerID          int64  `json:"shockerId"`
	ClientID           int64  `json:"clientId"`
	Online             bool   `json:"online"`
	Paused             bool   `json:"paused"`
	MaxIntensity       int    `json:"maxIntensity"`
	MaxDurationSeconds int64  `json:"maxDurationSeconds"`
}

func doInfo() error {
	ctx := context.Background()

	shocker, err := newShockerFromConfig(ctx)
	if err != nil {
		return err
	}

	var maxDuration time.Duration

	v := infoResult{}
	v.Name, _ = shocker.Name()
	v.ShockerID, _ = shocker.ShockerID()
	v.ClientID, _ = shocker.ClientID()
	v.Online, _ = shocker.Online()
	v.Paused, _ = shocker.Paused()
	v.MaxIntensity, _ = shocker.MaxIntensity()
	maxDuration, _ = shocker.MaxDuration()
	v.MaxDurationSeconds = int64(maxDuration / time.Second)

	if viper.GetBool("info.json") {
		b, err := json.MarshalIndent(v, "", "    ")
		if err != nil {
			return err
		}

		fmt.Println(string(b))
	} else {
		fmt.Printf("name:          %s\n", v.Name)
		fmt.Printf("shocker id:    %d\n", v.ShockerID)
		fmt.Printf("client id:     %d\n", v.ClientID)
		fmt.Printf("online:        %t\n", v.Online)
		fmt.Printf("paused:        %t\n", v.Paused)
		fmt.Printf("max intensity: %d\n", v.MaxIntensity)
		fmt.Printf("max duration:  %s\n", maxDuration)
	}

	return nil
}
