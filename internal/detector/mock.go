package detector

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	mu    sync.Mutex
	hands []HandLandmarks
	err   error
	calls int
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns how many times Detect has been invoked.
func (m *MockDetector) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// fingerSpread is the thumb-to-index distance of an open hand in the presets,
// well above the default pinch threshold.
const fingerSpread = 80.0

// PinchLandmarks returns a hand centered on (x, y) in source pixels with the
// thumb and index tips touching.
func PinchLandmarks(x, y float64) HandLandmarks {
	return handAt(x, y, 4)
}

// OpenLandmarks returns a hand centered on (x, y) in source pixels with the
// thumb and index tips spread apart.
func OpenLandmarks(x, y float64) HandLandmarks {
	return handAt(x, y, fingerSpread)
}

// handAt lays out a right hand whose thumb/index midpoint is (x, y) and whose
// tips are gap pixels apart horizontally.
func handAt(x, y, gap float64) HandLandmarks {
	h := HandLandmarks{
		Points:     make([]Point3D, NumLandmarks),
		Handedness: "Right",
		Score:      0.95,
	}

	h.Points[Wrist] = Point3D{X: x, Y: y + 120}

	h.Points[ThumbCMC] = Point3D{X: x - gap/2 - 30, Y: y + 90}
	h.Points[ThumbMCP] = Point3D{X: x - gap/2 - 20, Y: y + 60}
	h.Points[ThumbIP] = Point3D{X: x - gap/2 - 10, Y: y + 30}
	h.Points[ThumbTip] = Point3D{X: x - gap/2, Y: y}

	h.Points[IndexMCP] = Point3D{X: x + gap/2, Y: y + 70}
	h.Points[IndexPIP] = Point3D{X: x + gap/2, Y: y + 45}
	h.Points[IndexDIP] = Point3D{X: x + gap/2, Y: y + 20}
	h.Points[IndexTip] = Point3D{X: x + gap/2, Y: y}

	for i, base := range []int{MiddleMCP, RingMCP, PinkyMCP} {
		dx := gap/2 + 20 + float64(i)*20
		for j := 0; j < 4; j++ {
			h.Points[base+j] = Point3D{X: x + dx, Y: y + 70 - float64(j)*15}
		}
	}

	return h
}
