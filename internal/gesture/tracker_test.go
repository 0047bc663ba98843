package gesture

import (
	"math"
	"testing"
	"time"

	"github.com/ayusman/hoopshot/internal/detector"
	"github.com/ayusman/hoopshot/internal/geom"
)

const epsilon = 1e-9

// A 640x480 source shown on a 640x480 display maps 1:1 apart from the mirror.
var (
	view = geom.Size{W: 640, H: 480}
	t0   = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
)

func frame(hands ...detector.HandLandmarks) detector.Detection {
	return detector.Detection{Hands: hands, SourceWidth: 640, SourceHeight: 480}
}

func near(a, b geom.Vec2) bool {
	return math.Abs(a.X-b.X) < epsilon && math.Abs(a.Y-b.Y) < epsilon
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "single", want: ModeSingle},
		{in: "DUAL", want: ModeDual},
		{in: " 2 ", want: ModeDual},
		{in: "triple", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTracker_Pinch(t *testing.T) {
	tests := []struct {
		name string
		hand detector.HandLandmarks
		want bool
	}{
		{name: "touching tips pinch", hand: detector.PinchLandmarks(100, 100), want: true},
		{name: "spread tips do not pinch", hand: detector.OpenLandmarks(100, 100), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker(DefaultConfig())
			tr.Update(t0, frame(tt.hand), view)

			h := tr.Hand(0)
			if !h.Visible {
				t.Fatal("expected hand to be visible")
			}
			if h.Pinching != tt.want {
				t.Errorf("Pinching = %v, want %v", h.Pinching, tt.want)
			}
		})
	}
}

func TestTracker_MapsAndMirrors(t *testing.T) {
	tr := NewTracker(DefaultConfig())
	tr.Update(t0, frame(detector.OpenLandmarks(100, 200)), view)

	h := tr.Hand(0)
	if !near(h.Pos, geom.V(540, 200)) {
		t.Errorf("Pos = %v, want (540,200)", h.Pos)
	}
	if !h.Vel.IsZero() {
		t.Errorf("Vel on acquisition = %v, want zero", h.Vel)
	}
	if len(h.History()) != 0 {
		t.Errorf("history on acquisition = %v, want empty", h.History())
	}
}

func TestTracker_AcquisitionWithoutSnap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SnapOnAcquire = false
	tr := NewTracker(cfg)
	tr.Update(t0, frame(detector.OpenLandmarks(100, 200)), view)

	// The first detection is treated like any other: velocity is measured
	// from the slot's previous position and the position moves halfway.
	h := tr.Hand(0)
	if !h.Visible {
		t.Fatal("expected hand to be visible")
	}
	if !near(h.Vel, geom.V(540, 200)) {
		t.Errorf("Vel = %v, want (540,200)", h.Vel)
	}
	if got := h.History(); len(got) != 1 || !near(got[0], geom.V(540, 200)) {
		t.Errorf("history = %v, want one (540,200) sample", got)
	}
	if !near(h.Pos, geom.V(270, 100)) {
		t.Errorf("Pos = %v, want (270,100)", h.Pos)
	}
}

func TestHand_ScaleVelocity(t *testing.T) {
	h := NewHand(0, DefaultHandRadius, 3)
	h.RecordVelocity(geom.V(10, 0))
	h.RecordVelocity(geom.V(20, -4))
	h.Vel = geom.V(20, -4)

	h.ScaleVelocity(0.5)

	if !near(h.Vel, geom.V(10, -2)) {
		t.Errorf("Vel = %v, want (10,-2)", h.Vel)
	}
	if !near(h.AverageVelocity(), geom.V(7.5, -1)) {
		t.Errorf("AverageVelocity() = %v, want (7.5,-1)", h.AverageVelocity())
	}
}

func TestTracker_Smoothing(t *testing.T) {
	t.Run("default factor moves halfway", func(t *testing.T) {
		tr := NewTracker(DefaultConfig())
		tr.Update(t0, frame(detector.OpenLandmarks(100, 200)), view)
		tr.Update(t0.Add(33*time.Millisecond), frame(detector.OpenLandmarks(60, 200)), view)

		h := tr.Hand(0)
		if !near(h.Vel, geom.V(40, 0)) {
			t.Errorf("Vel = %v, want (40,0)", h.Vel)
		}
		if !near(h.Pos, geom.V(560, 200)) {
			t.Errorf("Pos = %v, want (560,200)", h.Pos)
		}
		if hist := h.History(); len(hist) != 1 || !near(hist[0], geom.V(40, 0)) {
			t.Errorf("History = %v, want [(40,0)]", hist)
		}
	})

	t.Run("factor one assigns directly", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Smoothing = 1.0
		tr := NewTracker(cfg)
		tr.Update(t0, frame(detector.OpenLandmarks(100, 200)), view)
		tr.Update(t0.Add(33*time.Millisecond), frame(detector.OpenLandmarks(60, 250)), view)

		if h := tr.Hand(0); !near(h.Pos, geom.V(580, 250)) {
			t.Errorf("Pos = %v, want (580,250)", h.Pos)
		}
	})
}

func TestTracker_HistoryIsBounded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Smoothing = 1.0
	tr := NewTracker(cfg)

	// Source x steps 100, 90, 70, 40, 0: display deltas 10, 20, 30, 40.
	xs := []float64{100, 90, 70, 40, 0}
	for i, x := range xs {
		tr.Update(t0.Add(time.Duration(i)*33*time.Millisecond), frame(detector.OpenLandmarks(x, 200)), view)
	}

	hist := tr.Hand(0).History()
	want := []geom.Vec2{geom.V(20, 0), geom.V(30, 0), geom.V(40, 0)}
	if len(hist) != len(want) {
		t.Fatalf("History len = %d, want %d", len(hist), len(want))
	}
	for i := range want {
		if !near(hist[i], want[i]) {
			t.Errorf("History[%d] = %v, want %v", i, hist[i], want[i])
		}
	}
	if avg := tr.Hand(0).AverageVelocity(); !near(avg, geom.V(30, 0)) {
		t.Errorf("AverageVelocity = %v, want (30,0)", avg)
	}
}

// seenMoving returns a tracker whose hand was last detected at t0 moving
// +40 px/frame in display x.
func seenMoving(t *testing.T) *Tracker {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Smoothing = 1.0
	tr := NewTracker(cfg)
	tr.Update(t0.Add(-33*time.Millisecond), frame(detector.PinchLandmarks(100, 200)), view)
	tr.Update(t0, frame(detector.PinchLandmarks(60, 200)), view)
	return tr
}

func TestTracker_Persistence(t *testing.T) {
	t.Run("coasts inside the window", func(t *testing.T) {
		tr := seenMoving(t)
		tr.Update(t0.Add(149*time.Millisecond), frame(), view)

		h := tr.Hand(0)
		if !h.Visible {
			t.Fatal("expected hand to remain visible 149ms after detection")
		}
		if !near(h.Pos, geom.V(600, 200)) {
			t.Errorf("Pos = %v, want (600,200) after coasting at half velocity", h.Pos)
		}
		if h.Pinching {
			t.Error("pinch must be forced false without a detection")
		}
	})

	t.Run("disappears at the window edge", func(t *testing.T) {
		tr := seenMoving(t)
		tr.Update(t0.Add(150*time.Millisecond), frame(), view)

		h := tr.Hand(0)
		if h.Visible {
			t.Error("expected hand to be hidden exactly 150ms after detection")
		}
		if !h.Vel.IsZero() {
			t.Errorf("Vel = %v, want zero once hidden", h.Vel)
		}
	})

	t.Run("never detected stays hidden", func(t *testing.T) {
		tr := NewTracker(DefaultConfig())
		tr.Update(t0, frame(), view)
		if tr.Hand(0).Visible {
			t.Error("expected undetected hand to be hidden")
		}
	})
}

func TestTracker_MissingKeypoint(t *testing.T) {
	tr := seenMoving(t)

	broken := detector.PinchLandmarks(20, 200)
	broken.Points = broken.Points[:detector.ThumbTip+1]
	tr.Update(t0.Add(10*time.Millisecond), frame(broken), view)

	h := tr.Hand(0)
	if !h.Visible {
		t.Error("a hand missing a keypoint should be treated as undetected and coast")
	}
	if h.Pinching {
		t.Error("pinch must be false when the hand is undetected")
	}
	if !h.LastSeen.Equal(t0) {
		t.Errorf("LastSeen = %v, want %v", h.LastSeen, t0)
	}
}

func TestTracker_ZeroSourceSizeSuppresses(t *testing.T) {
	tr := seenMoving(t)

	det := frame(detector.PinchLandmarks(60, 200))
	det.SourceWidth = 0
	det.SourceHeight = 0
	tr.Update(t0.Add(10*time.Millisecond), det, view)

	h := tr.Hand(0)
	if h.Visible {
		t.Error("expected visibility to be suppressed for invalid geometry")
	}
	if !h.Pos.IsFinite() {
		t.Errorf("Pos = %v, want finite", h.Pos)
	}

	// No coasting revival on the following empty frame.
	tr.Update(t0.Add(20*time.Millisecond), frame(), view)
	if tr.Hand(0).Visible {
		t.Error("expected suppressed hand to stay hidden")
	}
}

func TestTracker_SingleModeUsesFirstHand(t *testing.T) {
	tr := NewTracker(DefaultConfig())
	tr.Update(t0, frame(detector.OpenLandmarks(100, 100), detector.PinchLandmarks(500, 300)), view)

	if tr.Len() != 1 {
		t.Fatalf("Len = %d, want 1", tr.Len())
	}
	h := tr.Hand(0)
	if !near(h.Pos, geom.V(540, 100)) || h.Pinching {
		t.Errorf("hand = %+v, want the first detection", h)
	}
}

func TestTracker_DualModeSlots(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mode = ModeDual
	tr := NewTracker(cfg)

	// Source x=500 mirrors to display 140 (left); x=100 mirrors to 540 (right).
	tr.Update(t0, frame(detector.OpenLandmarks(100, 100), detector.PinchLandmarks(500, 300)), view)

	if tr.Len() != 2 {
		t.Fatalf("Len = %d, want 2", tr.Len())
	}
	left, right := tr.Hand(SlotLeft), tr.Hand(SlotRight)
	if !left.Visible || !left.Pinching || !near(left.Pos, geom.V(140, 300)) {
		t.Errorf("left = %+v, want pinching hand at (140,300)", left)
	}
	if !right.Visible || right.Pinching || !near(right.Pos, geom.V(540, 100)) {
		t.Errorf("right = %+v, want open hand at (540,100)", right)
	}

	t.Run("crossing the midline moves the hand to the other slot", func(t *testing.T) {
		now := t0.Add(500 * time.Millisecond)
		tr.Update(now, frame(detector.OpenLandmarks(600, 100)), view)

		if !tr.Hand(SlotLeft).LastSeen.Equal(now) {
			t.Error("expected the left slot to take the hand")
		}
		if tr.Hand(SlotRight).Visible {
			t.Error("expected the right slot to expire")
		}
	})

	t.Run("second hand on the same side is ignored", func(t *testing.T) {
		tr := NewTracker(cfg)
		tr.Update(t0, frame(detector.OpenLandmarks(600, 100), detector.PinchLandmarks(550, 300)), view)

		if tr.Hand(SlotLeft).Pinching {
			t.Error("expected the first left-side hand to win the slot")
		}
		if tr.Hand(SlotRight).Visible {
			t.Error("expected the right slot to stay empty")
		}
	})
}

func TestTracker_HandsReturnsCopies(t *testing.T) {
	tr := seenMoving(t)

	hands := tr.Hands()
	hands[0].Pos = geom.V(-1, -1)
	hands[0].RecordVelocity(geom.V(999, 999))

	if near(tr.Hand(0).Pos, geom.V(-1, -1)) {
		t.Error("mutating a copy changed the tracker")
	}
	for _, v := range tr.Hand(0).History() {
		if v.X == 999 {
			t.Error("history of a copy aliases the tracker")
		}
	}
}
