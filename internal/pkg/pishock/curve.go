package pishock

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hazyview/pishock-go/internal/pkg/logging"
)

// ControlPoint is one segment of a desired intensity curve: ramp from the
// previous target toward Intensity over Duration.
type ControlPoint struct {
	Duration  time.Duration
	Intensity int
}

// CurveResolution is the spacing of the interpolated steps. Setting this
// too low *will* cause DeviceBusy errors.
const CurveResolution = 500 * time.Millisecond

// Delay between successive step dispatches, required by the firmware.
const curveSendDelay = 100 * time.Millisecond

// The curve ramps up from 1, not 0, since intensity 0 is reserved for
// beeps.
const curveStartIntensity = 1

// ShockCurve approximates a smooth intensity curve through the given
// control points by dispatching a paced sequence of short shocks, one
// every CurveResolution.
//
// All points are checked against the device limits before anything is
// sent; an invalid point rejects the whole curve without a single network
// call. Dispatch is strictly sequential and stops at the first error,
// which is returned as-is. No steps are retried or skipped, and nothing is
// preserved for resumption. Cancelling ctx between steps stops the curve;
// the device simply receives no further commands.
func (s *Shocker) ShockCurve(ctx context.Context, points []ControlPoint) error {
	ctx = logging.WithRunID(ctx, uuid.New().String())

	for _, p := range points {
		if max, ok := s.MaxIntensity(); ok && p.Intensity > max {
			return &InvalidIntensityError{Max: max}
		}

		if max, ok := s.MaxDuration(); ok && p.Duration > max {
			return &InvalidDurationError{Max: max}
		}
	}

	var total time.Duration
	for _, p := range points {
		total += p.Duration
	}
	logging.Logger(ctx).Debugf("total length of raw curve: %s", total)

	steps := interpolateSteps(points, CurveResolution, curveStartIntensity)
	logging.Logger(ctx).Debugf("interpolated curve: %d steps, %s total", len(steps), time.Duration(len(steps))*CurveResolution)

	for i, step := range steps {
		logging.Logger(ctx).Debugf("curve step %d/%d: intensity %d for %s", i+1, len(steps), step.Intensity, step.Duration)

		if err := s.send(ctx, OpShock, step.Intensity, step.Duration); err != nil {
			return err
		}

		if i < len(steps)-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(curveSendDelay):
			}
		}
	}

	logging.Logger(ctx).Debug("finished sending shock curve")
	return nil
}

// interpolateSteps expands the control points into fixed-resolution steps
// using linear interpolation. The time cursor stays strictly below each
// point's duration, so a point's exact target intensity is never emitted
// as a step of its own; it becomes the baseline the next point ramps from.
// A duration that is not a multiple of the resolution overshoots its
// nominal end by less than one step.
func interpolateSteps(points []ControlPoint, resolution time.Duration, startIntensity int) []ControlPoint {
	var steps []ControlPoint

	current := startIntensity
	for _, p := range points {
		for t := time.Duration(0); t < p.Duration; t += resolution {
			steps = append(steps, ControlPoint{
				Duration:  resolution,
				Intensity: lerp(current, p.Intensity, t, p.Duration),
			})
		}
		current = p.Intensity
	}

	return steps
}

// lerp evaluates the line from start to end at offset t of dur. The
// arithmetic is signed so downward ramps work; the magnitude is returned
// since an intensity can never be negative.
func lerp(start, end int, t, dur time.Duration) int {
	durMS := int64(dur / time.Millisecond)
	if durMS == 0 {
		// sub-millisecond points degenerate to their target
		return abs(end)
	}

	v := int64(start) + int64(end-start)*int64(t/time.Millisecond)/durMS
	if v < 0 {
		v = -v
	}

	return int(v)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
