package pishock

import (
	"context"
	"errors"
	"testing"
	"time"
)

type operateCall struct {
	op        OpCode
	intensity int
	duration  time.Duration
}

type fakeAPI struct {
	info       *ShockerInfo
	infoErr    error
	operateErr error
	failAt     int // 1-based call index that returns operateErr; 0 = every call
	onOperate  func()
	calls      []operateCall
}

func (f *fakeAPI) WithTimeout(d time.Duration) API { return f }

func (f *fakeAPI) Operate(ctx context.Context, op OpCode, intensity int, duration time.Duration) error {
	f.calls = append(f.calls, operateCall{op, intensity, duration})
	if f.onOperate != nil {
		f.onOperate()
	}

	if f.operateErr != nil && (f.failAt == 0 || len(f.calls) == f.failAt) {
		return f.operateErr
	}
	return nil
}

func (f *fakeAPI) GetShockerInfo(ctx context.Context) (*ShockerInfo, error) {
	if f.infoErr != nil {
		return nil, f.infoErr
	}
	return f.info, nil
}

func newTestShocker(info *ShockerInfo) (*Shocker, *fakeAPI) {
	api := &fakeAPI{info: info}
	s := NewShocker(api, "sharecode")
	s.info = info
	return s, api
}

func onlineInfo() *ShockerInfo {
	return &ShockerInfo{
		ClientID:     1612,
		ShockerID:    2955,
		Name:         "test 1",
		Online:       true,
		MaxIntensity: 100,
		MaxDuration:  15 * time.Second,
	}
}

func TestShockSendsThroughAPI(t *testing.T) {
	s, api := newTestShocker(onlineInfo())

	if err := s.Shock(context.Background(), 50, 2*time.Second); err != nil {
		t.Fatalf("Shock error: %v", err)
	}

	if len(api.calls) != 1 {
		t.Fatalf("calls: got %d, want 1", len(api.calls))
	}
	want := operateCall{op: OpShock, intensity: 50, duration: 2 * time.Second}
	if api.calls[0] != want {
		t.Errorf("call: got %+v, want %+v", api.calls[0], want)
	}
}

func TestBeepSendsZeroIntensity(t *testing.T) {
	s, api := newTestShocker(onlineInfo())

	if err := s.Beep(context.Background(), time.Second); err != nil {
		t.Fatalf("Beep error: %v", err)
	}

	if api.calls[0].op != OpBeep || api.calls[0].intensity != 0 {
		t.Errorf("call: got %+v, want beep with intensity 0", api.calls[0])
	}
}

func TestMiniShockDuration(t *testing.T) {
	s, api := newTestShocker(onlineInfo())

	if err := s.MiniShock(context.Background(), 30); err != nil {
		t.Fatalf("MiniShock error: %v", err)
	}

	if api.calls[0].duration != 300*time.Millisecond {
		t.Errorf("duration: got %s, want 300ms", api.calls[0].duration)
	}
}

func TestShockWithWarningSendsVibrationFirst(t *testing.T) {
	s, api := newTestShocker(onlineInfo())

	if err := s.ShockWithWarning(context.Background(), 50, 2*time.Second); err != nil {
		t.Fatalf("ShockWithWarning error: %v", err)
	}

	if len(api.calls) != 2 {
		t.Fatalf("calls: got %d, want 2", len(api.calls))
	}
	if api.calls[0].op != OpVibrate {
		t.Errorf("first call: got %s, want vibrate", api.calls[0].op)
	}
	if api.calls[1].op != OpShock || api.calls[1].intensity != 50 {
		t.Errorf("second call: got %+v, want shock at 50", api.calls[1])
	}
}

func TestCheckCommandPrecedence(t *testing.T) {
	limited := onlineInfo()
	limited.MaxIntensity = 50
	limited.MaxDuration = 5 * time.Second

	offline := onlineInfo()
	offline.Online = false
	offline.Paused = true // offline wins over paused

	paused := onlineInfo()
	paused.Paused = true

	tests := []struct {
		name      string
		info      *ShockerInfo
		op        OpCode
		intensity int
		duration  time.Duration
		check     func(t *testing.T, err error)
	}{
		{
			name: "device offline", info: offline, op: OpShock, intensity: 50, duration: time.Second,
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrDeviceOffline) {
					t.Errorf("got %v, want ErrDeviceOffline", err)
				}
			},
		},
		{
			name: "device paused", info: paused, op: OpShock, intensity: 50, duration: time.Second,
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrDevicePaused) {
					t.Errorf("got %v, want ErrDevicePaused", err)
				}
			},
		},
		{
			name: "duration above limit", info: limited, op: OpShock, intensity: 40, duration: 6 * time.Second,
			check: func(t *testing.T, err error) {
				var e *InvalidDurationError
				if !errors.As(err, &e) || e.Max != 5*time.Second {
					t.Errorf("got %v, want InvalidDurationError with max 5s", err)
				}
			},
		},
		{
			name: "intensity above limit", info: limited, op: OpShock, intensity: 60, duration: time.Second,
			check: func(t *testing.T, err error) {
				var e *InvalidIntensityError
				if !errors.As(err, &e) || e.Max != 50 {
					t.Errorf("got %v, want InvalidIntensityError with max 50", err)
				}
			},
		},
		{
			// The duration limit outranks the intensity limit when both are broken
			name: "duration limit checked before intensity limit", info: limited, op: OpShock, intensity: 60, duration: 6 * time.Second,
			check: func(t *testing.T, err error) {
				var e *InvalidDurationError
				if !errors.As(err, &e) {
					t.Errorf("got %v, want InvalidDurationError", err)
				}
			},
		},
		{
			name: "intensity below one", info: limited, op: OpShock, intensity: 0, duration: time.Second,
			check: func(t *testing.T, err error) {
				var e *InvalidIntensityError
				if !errors.As(err, &e) || e.Max != 50 {
					t.Errorf("got %v, want InvalidIntensityError with max 50", err)
				}
			},
		},
		{
			name: "intensity below one without metadata", info: nil, op: OpVibrate, intensity: 0, duration: time.Second,
			check: func(t *testing.T, err error) {
				var e *InvalidIntensityError
				if !errors.As(err, &e) || e.Max != AbsoluteMaxIntensity {
					t.Errorf("got %v, want InvalidIntensityError with max %d", err, AbsoluteMaxIntensity)
				}
			},
		},
		{
			name: "duration below minimum", info: limited, op: OpShock, intensity: 40, duration: 50 * time.Millisecond,
			check: func(t *testing.T, err error) {
				var e *InvalidDurationError
				if !errors.As(err, &e) || e.Max != 5*time.Second {
					t.Errorf("got %v, want InvalidDurationError with max 5s", err)
				}
			},
		},
		{
			name: "duration below minimum without metadata", info: nil, op: OpShock, intensity: 40, duration: 50 * time.Millisecond,
			check: func(t *testing.T, err error) {
				var e *InvalidDurationError
				if !errors.As(err, &e) || e.Max != AbsoluteMaxDuration {
					t.Errorf("got %v, want InvalidDurationError with max %s", err, AbsoluteMaxDuration)
				}
			},
		},
		{
			name: "beep allows zero intensity", info: limited, op: OpBeep, intensity: 0, duration: time.Second,
			check: func(t *testing.T, err error) {
				if err != nil {
					t.Errorf("got %v, want nil", err)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := newTestShocker(tc.info)
			tc.check(t, s.checkCommand(tc.op, tc.intensity, tc.duration))
		})
	}
}

func TestRejectedCommandMakesNoNetworkCall(t *testing.T) {
	offline := onlineInfo()
	offline.Online = false

	s, api := newTestShocker(offline)

	if err := s.Shock(context.Background(), 50, time.Second); !errors.Is(err, ErrDeviceOffline) {
		t.Fatalf("got %v, want ErrDeviceOffline", err)
	}
	if len(api.calls) != 0 {
		t.Errorf("calls: got %d, want 0", len(api.calls))
	}
}

// A command rejected by the late range checks has already consumed the
// cooldown slot.
func TestLowIntensityStillConsumesCooldown(t *testing.T) {
	s, _ := newTestShocker(onlineInfo())
	s.WithCooldown(300 * time.Millisecond)

	cur := time.Unix(1000, 0)
	s.gate.now = func() time.Time { return cur }

	var intensityErr *InvalidIntensityError
	if err := s.checkCommand(OpShock, 0, time.Second); !errors.As(err, &intensityErr) {
		t.Fatalf("got %v, want InvalidIntensityError", err)
	}

	cur = cur.Add(50 * time.Millisecond)

	var cooldownErr *CooldownError
	if err := s.checkCommand(OpShock, 50, time.Second); !errors.As(err, &cooldownErr) {
		t.Fatalf("got %v, want CooldownError", err)
	}
}

func TestRefreshInfoReplacesSnapshot(t *testing.T) {
	s, api := newTestShocker(nil)

	if _, ok := s.MaxIntensity(); ok {
		t.Fatal("expected no metadata before refresh")
	}

	api.info = onlineInfo()
	if err := s.RefreshInfo(context.Background()); err != nil {
		t.Fatalf("RefreshInfo error: %v", err)
	}

	if name, ok := s.Name(); !ok || name != "test 1" {
		t.Errorf("name: got %q (%t), want \"test 1\"", name, ok)
	}
	if max, ok := s.MaxDuration(); !ok || max != 15*time.Second {
		t.Errorf("max duration: got %s (%t), want 15s", max, ok)
	}
}

func TestRefreshInfoKeepsSnapshotOnError(t *testing.T) {
	s, api := newTestShocker(onlineInfo())
	api.infoErr = ErrShareCodeNotFound

	if err := s.RefreshInfo(context.Background()); !errors.Is(err, ErrShareCodeNotFound) {
		t.Fatalf("got %v, want ErrShareCodeNotFound", err)
	}

	if name, ok := s.Name(); !ok || name != "test 1" {
		t.Errorf("snapshot lost after failed refresh: got %q (%t)", name, ok)
	}
}
