package pishock

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Rejections with no further detail, produced locally or mapped from the
// API response body. Compare with errors.Is.
var (
	ErrShareCodeNotFound  = errors.New("share code does not exist")
	ErrInvalidCredentials = errors.New("username or API key invalid")
	ErrDevicePaused       = errors.New("shocker is in paused state")
	ErrDeviceOffline      = errors.New("shocker is offline")
	ErrShareCodeInUse     = errors.New("share code is already in use")
	ErrDeviceBusy         = errors.New("device is busy with another command")
)

// InvalidIntensityError reports an intensity outside the accepted range.
// Max is the highest intensity the device accepts.
type InvalidIntensityError struct {
	Max int
}

func (e *InvalidIntensityError) Error() string {
	return fmt.Sprintf("invalid intensity specified, max intensity: %d", e.Max)
}

// InvalidDurationError reports a duration outside the accepted range.
// Max is the longest duration the device accepts.
type InvalidDurationError struct {
	Max time.Duration
}

func (e *InvalidDurationError) Error() string {
	return fmt.Sprintf("invalid duration specified, max duration: %s", e.Max)
}

// CooldownError reports a command sent before the device cooldown elapsed.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("cooldown not over, %s remaining", e.Remaining)
}

// ConnectionError reports a failure to reach the API server or to read
// its response.
type ConnectionError struct {
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("failed to connect to %s", e.URL)
	}
	return fmt.Sprintf("failed to connect to %s: %v", e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// UnknownError carries a response the library does not recognise.
type UnknownError struct {
	Detail string
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("unknown error: %s", e.Detail)
}

const operateSuccessBody = "Operation Succeeded."

const (
	intensityRangePrefix = "Intensity must be between 0 and "
	durationRangePrefix  = "Duration must be between 0 and "
)

// operateResponseError maps the plain text body of an apioperate response.
// The table is not exhaustive; bodies the local pre-checks prevent from
// ever being triggered are left to the unknown case.
func operateResponseError(body string) error {
	body = strings.TrimSpace(body)

	if rest, ok := strings.CutPrefix(body, intensityRangePrefix); ok {
		if max, err := strconv.Atoi(rest); err == nil {
			return &InvalidIntensityError{Max: max}
		}
	}
	if rest, ok := strings.CutPrefix(body, durationRangePrefix); ok {
		if max, err := strconv.Atoi(rest); err == nil {
			return &InvalidDurationError{Max: time.Duration(max) * time.Second}
		}
	}

	switch body {
	case operateSuccessBody:
		return nil
	case "Share code not found", "This code doesn’t exist.":
		return ErrShareCodeNotFound
	case "Not Authorized.":
		return ErrInvalidCredentials
	case "Shocker is Paused, unable to send command.":
		return ErrDevicePaused
	case "Device currently not connected.":
		return ErrDeviceOffline
	case "This share code has already been used by somebody else.":
		return ErrShareCodeInUse
	case "Device in Use.":
		return ErrDeviceBusy
	}

	return &UnknownError{Detail: body}
}
