package pishock

import (
	"errors"
	"testing"
	"time"
)

func TestOperateResponseError(t *testing.T) {
	tests := []struct {
		body string
		want error
	}{
		{"Operation Succeeded.", nil},
		{"Share code not found", ErrShareCodeNotFound},
		{"This code doesn’t exist.", ErrShareCodeNotFound},
		{"Not Authorized.", ErrInvalidCredentials},
		{"Shocker is Paused, unable to send command.", ErrDevicePaused},
		{"Device currently not connected.", ErrDeviceOffline},
		{"This share code has already been used by somebody else.", ErrShareCodeInUse},
		{"Device in Use.", ErrDeviceBusy},
	}

	for _, tc := range tests {
		if got := operateResponseError(tc.body); !errors.Is(got, tc.want) {
			t.Errorf("body %q: got %v, want %v", tc.body, got, tc.want)
		}
	}
}

func TestOperateResponseErrorIntensityBound(t *testing.T) {
	err := operateResponseError("Intensity must be between 0 and 42")

	var e *InvalidIntensityError
	if !errors.As(err, &e) {
		t.Fatalf("got %v, want InvalidIntensityError", err)
	}
	if e.Max != 42 {
		t.Errorf("max: got %d, want 42", e.Max)
	}
}

func TestOperateResponseErrorDurationBound(t *testing.T) {
	err := operateResponseError("Duration must be between 0 and 15")

	var e *InvalidDurationError
	if !errors.As(err, &e) {
		t.Fatalf("got %v, want InvalidDurationError", err)
	}
	if e.Max != 15*time.Second {
		t.Errorf("max: got %s, want 15s", e.Max)
	}
}

func TestOperateResponseErrorUnknownBody(t *testing.T) {
	err := operateResponseError("something the API never said before")

	var e *UnknownError
	if !errors.As(err, &e) {
		t.Fatalf("got %v, want UnknownError", err)
	}
	if e.Detail == "" {
		t.Error("unknown error lost the response body")
	}
}
