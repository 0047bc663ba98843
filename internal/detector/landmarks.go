// Package detector defines the hand-pose source consumed by the game: detected
// hands as labeled keypoints in source-frame pixel coordinates.
package detector

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D represents a keypoint. X and Y are source-frame pixels; Z is the
// detector's relative depth and is ignored by the game.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks is one detected hand. Points is indexed by the landmark
// constants above; detectors may return fewer than NumLandmarks points.
type HandLandmarks struct {
	Points     []Point3D `json:"points"`
	Handedness string    `json:"handedness"` // "Left" or "Right"
	Score      float64   `json:"score"`
}

// Keypoint returns the landmark at index i and whether it is present.
func (h *HandLandmarks) Keypoint(i int) (Point3D, bool) {
	if h == nil || i < 0 || i >= len(h.Points) {
		return Point3D{}, false
	}
	return h.Points[i], true
}

// Detection is a single frame's detector output together with the native
// size of the source video, which the tracker needs for cover-fit mapping.
type Detection struct {
	Hands        []HandLandmarks `json:"hands"`
	SourceWidth  float64         `json:"source_width"`
	SourceHeight float64         `json:"source_height"`
}
