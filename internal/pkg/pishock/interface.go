package pishock

import (
	"context"
	"time"
)

// OpCode identifies the operation requested of the device.
type OpCode int

const (
	OpShock   OpCode = 0
	OpVibrate OpCode = 1
	OpBeep    OpCode = 2
)

func (op OpCode) String() string {
	switch op {
	case OpShock:
		return "shock"
	case OpVibrate:
		return "vibrate"
	case OpBeep:
		return "beep"
	}
	return "unknown"
}

// ShockerInfo is a snapshot of the metadata the service reports for one
// device. It is only as fresh as the last refresh; the library never
// invalidates it on its own.
type ShockerInfo struct {
	ClientID     int64
	ShockerID    int64
	Name         string
	Paused       bool
	Online       bool
	MaxIntensity int
	MaxDuration  time.Duration
}

// API is the remote PiShock endpoint for a single share code.
type API interface {
	WithTimeout(d time.Duration) API
	Operate(ctx context.Context, op OpCode, intensity int, duration time.Duration) error
	GetShockerInfo(ctx context.Context) (*ShockerInfo, error)
}
