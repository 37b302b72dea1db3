package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hazyview/pishock-go/internal/pkg/pishock"
)

var curveCmd = &cobra.Command{
	Use:   "curve DURATION:INTENSITY [DURATION:INTENSITY ...]",
	Short: "Run an interpolated shock curve through the device",
	Long: `Ramps the shock intensity through the given control points, eg.

    pishock-go curve 5s:40 10s:90 5s:10

holds toward 40 over 5 seconds, climbs to 90 over 10 seconds, then falls
back to 10. The curve is approximated with one short shock every 500ms.`,
	Args: cobra.MinimumNArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		if err := doCurve(args); err != nil {
			return err
		}

		return nil
	},

	PreRunE: func(cmd *cobra.Command, args []string) error {
		return checkRequiredFlags("api.key", "api.username", "api.sharecode")
	},
}

func init() {
	rootCmd.AddCommand(curveCmd)
}

func parseControlPoints(args []string) ([]pishock.ControlPoint, error) {
	points := make([]pishock.ControlPoint, 0, len(args))

	for _, arg := range args {
		durPart, intensityPart, ok := strings.Cut(arg, ":")
		if !ok {
			return nil, fmt.Errorf("bad control point `%s`, expected DURATION:INTENSITY", arg)
		}

		dur, err := time.ParseDuration(durPart)
		if err != nil {
			return nil, fmt.Errorf("bad duration in control point `%s`: %v", arg, err)
		}

		intensity, err := strconv.Atoi(intensityPart)
		if err != nil {
			return nil, fmt.Errorf("bad intensity in control point `%s`: %v", arg, err)
		}

		points = append(points, pishock.ControlPoint{Duration: dur, Intensity: intensity})
	}

	return points, nil
}

func doCurve(args []string) error {
	points, err := parseControlPoints(args)
	if err != nil {
		return err
	}

	// ctrl-c stops the curve between steps
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	shocker, err := newShockerFromConfig(ctx)
	if err != nil {
		return err
	}

	return shocker.ShockCurve(ctx, points)
}
