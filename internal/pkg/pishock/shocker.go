package pishock

import (
	"context"
	"time"

	"github.com/hazyview/pishock-go/internal/pkg/logging"
)

// Bounds the service enforces when the device reports no limits of its own.
const (
	AbsoluteMaxIntensity = 100
	AbsoluteMaxDuration  = 15 * time.Second
	MinCommandDuration   = 100 * time.Millisecond
)

// The firmware needs a short gap between consecutive commands.
const firmwareCommandGap = 200 * time.Millisecond

const (
	warningIntensity = 20
	warningDuration  = time.Second
)

// Shocker is a handle on one remote device, addressed by its share code.
// It owns the device's cooldown state; use one handle per device and share
// it between callers rather than constructing several.
type Shocker struct {
	api       API
	shareCode string
	cooldown  time.Duration
	gate      *cooldownGate
	info      *ShockerInfo
}

// NewShocker wraps an API endpoint in a device handle. Most callers should
// use Account.GetShocker instead.
func NewShocker(api API, shareCode string) *Shocker {
	return &Shocker{
		api:       api,
		shareCode: shareCode,
		gate:      newCooldownGate(),
	}
}

// WithCooldown sets the minimum spacing enforced locally between commands
// to this device. Zero (the default) disables the check.
func (s *Shocker) WithCooldown(d time.Duration) *Shocker {
	s.cooldown = d
	return s
}

func (s *Shocker) ShareCode() string {
	return s.shareCode
}

// RefreshInfo replaces the metadata snapshot with the service's current
// view of the device.
func (s *Shocker) RefreshInfo(ctx context.Context) error {
	info, err := s.api.GetShockerInfo(ctx)
	if err != nil {
		return err
	}

	s.info = info
	return nil
}

// Name returns the device name, if metadata is known.
func (s *Shocker) Name() (string, bool) {
	if s.info == nil {
		return "", false
	}
	return s.info.Name, true
}

func (s *Shocker) ClientID() (int64, bool) {
	if s.info == nil {
		return 0, false
	}
	return s.info.ClientID, true
}

func (s *Shocker) ShockerID() (int64, bool) {
	if s.info == nil {
		return 0, false
	}
	return s.info.ShockerID, true
}

// MaxIntensity returns the device's intensity limit, if metadata is known.
func (s *Shocker) MaxIntensity() (int, bool) {
	if s.info == nil {
		return 0, false
	}
	return s.info.MaxIntensity, true
}

// MaxDuration returns the device's duration limit, if metadata is known.
func (s *Shocker) MaxDuration() (time.Duration, bool) {
	if s.info == nil {
		return 0, false
	}
	return s.info.MaxDuration, true
}

func (s *Shocker) Online() (bool, bool) {
	if s.info == nil {
		return false, false
	}
	return s.info.Online, true
}

func (s *Shocker) Paused() (bool, bool) {
	if s.info == nil {
		return false, false
	}
	return s.info.Paused, true
}

// Shock delivers a shock with the given intensity (1-100) and duration.
func (s *Shocker) Shock(ctx context.Context, intensity int, duration time.Duration) error {
	logging.Logger(ctx).Infof("shocking with intensity %d for %s", intensity, duration)
	return s.send(ctx, OpShock, intensity, duration)
}

// MiniShock delivers a fixed 300ms shock with the given intensity.
func (s *Shocker) MiniShock(ctx context.Context, intensity int) error {
	logging.Logger(ctx).Infof("mini shock with intensity %d", intensity)
	return s.send(ctx, OpShock, intensity, 300*time.Millisecond)
}

// ShockWithWarning sends a short soft vibration before the shock. This is
// the recommended way to shock someone.
func (s *Shocker) ShockWithWarning(ctx context.Context, intensity int, duration time.Duration) error {
	logging.Logger(ctx).Debug("sending warning vibration")
	if err := s.Vibrate(ctx, warningIntensity, warningDuration); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(firmwareCommandGap):
	}

	return s.Shock(ctx, intensity, duration)
}

// Vibrate runs the vibration motor with the given intensity (1-100) and
// duration.
func (s *Shocker) Vibrate(ctx context.Context, intensity int, duration time.Duration) error {
	logging.Logger(ctx).Infof("vibrating with intensity %d for %s", intensity, duration)
	return s.send(ctx, OpVibrate, intensity, duration)
}

// Beep sounds the device buzzer for the given duration. Intensity does not
// apply to beeps.
func (s *Shocker) Beep(ctx context.Context, duration time.Duration) error {
	logging.Logger(ctx).Infof("beeping for %s", duration)
	return s.send(ctx, OpBeep, 0, duration)
}

func (s *Shocker) send(ctx context.Context, op OpCode, intensity int, duration time.Duration) error {
	if err := s.checkCommand(op, intensity, duration); err != nil {
		commandsTotal.WithLabelValues(op.String(), outcomeRejected).Inc()
		return err
	}

	if err := s.api.Operate(ctx, op, intensity, duration); err != nil {
		commandsTotal.WithLabelValues(op.String(), outcomeError).Inc()
		return err
	}

	commandsTotal.WithLabelValues(op.String(), outcomeOK).Inc()
	return nil
}

// checkCommand applies the local pre-checks in precedence order. They
// produce the same error kinds the remote would, so a failure here just
// saves the round trip. The cooldown slot is consumed before the final
// range checks run, so a too-weak or too-short command still uses it up.
func (s *Shocker) checkCommand(op OpCode, intensity int, duration time.Duration) error {
	if online, ok := s.Online(); ok && !online {
		return ErrDeviceOffline
	}

	if paused, ok := s.Paused(); ok && paused {
		return ErrDevicePaused
	}

	if max, ok := s.MaxDuration(); ok && duration > max {
		return &InvalidDurationError{Max: max}
	}

	if max, ok := s.MaxIntensity(); ok && intensity > max {
		return &InvalidIntensityError{Max: max}
	}

	if err := s.gate.pass(s.cooldown); err != nil {
		return err
	}

	if op != OpBeep && intensity < 1 {
		return &InvalidIntensityError{Max: s.maxIntensityBound()}
	}

	if duration < MinCommandDuration {
		return &InvalidDurationError{Max: s.maxDurationBound()}
	}

	return nil
}

func (s *Shocker) maxIntensityBound() int {
	if max, ok := s.MaxIntensity(); ok {
		return max
	}
	return AbsoluteMaxIntensity
}

func (s *Shocker) maxDurationBound() time.Duration {
	if max, ok := s.MaxDuration(); ok {
		return max
	}
	return AbsoluteMaxDuration
}
