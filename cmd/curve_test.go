package cmd

import (
	"testing"
	"time"

	"github.com/hazyview/pishock-go/internal/pkg/pishock"
)

func TestParseControlPoints(t *testing.T) {
	points, err := parseControlPoints([]string{"5s:40", "10s:90", "500ms:10"})
	if err != nil {
		t.Fatalf("parseControlPoints error: %v", err)
	}

	want := []pishock.ControlPoint{
		{Duration: 5 * time.Second, Intensity: 40},
		{Duration: 10 * time.Second, Intensity: 90},
		{Duration: 500 * time.Millisecond, Intensity: 10},
	}
	if len(points) != len(want) {
		t.Fatalf("points: got %d, want %d", len(points), len(want))
	}
	for i := range want {
		if points[i] != want[i] {
			t.Errorf("point %d: got %+v, want %+v", i, points[i], want[i])
		}
	}
}

func TestParseControlPointsRejectsBadInput(t *testing.T) {
	bad := []string{"5s", "banana:40", "5s:loud", "5s:40:1"}

	for _, arg := range bad {
		if _, err := parseControlPoints([]string{arg}); err == nil {
			t.Errorf("parseControlPoints(%q): got nil, want error", arg)
		}
	}
}
