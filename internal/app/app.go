// Package app runs the hoopshot game: it reads camera frames, feeds hand
// detections into the game session and fans the results out to renderers and
// event publishers.
package app

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"gocv.io/x/gocv"

	"github.com/ayusman/hoopshot/internal/capture"
	"github.com/ayusman/hoopshot/internal/detector"
	"github.com/ayusman/hoopshot/internal/events"
	"github.com/ayusman/hoopshot/internal/game"
	"github.com/ayusman/hoopshot/internal/physics"
	"github.com/ayusman/hoopshot/internal/plugin"
	"github.com/ayusman/hoopshot/internal/store"
)

// eventQueueSize bounds the score events waiting to be published.
const eventQueueSize = 64

// Renderer draws a snapshot. Render is called on the capture goroutine and
// must not block for long.
type Renderer interface {
	Render(snap game.Snapshot)
}

// Config holds configuration options for the application.
type Config struct {
	Game   game.Config
	Camera capture.Config

	Store        *store.Store
	PluginDir    string
	MotionThresh float64

	// Publishers receive score and reset events in addition to the log and
	// any plugins.
	Publishers []events.Publisher

	// CameraSource and Detector replace the webcam and MediaPipe defaults.
	CameraSource capture.Camera
	Detector     detector.Detector
}

// App owns the game session and the capture loop that drives it.
type App struct {
	config    Config
	sessionID string

	camera   capture.Camera
	motion   *capture.MotionDetector
	pacer    *capture.Pacer
	detector detector.Detector
	frames   *capture.FrameBuffer

	pluginMgr  *plugin.Manager
	dispatcher *plugin.Dispatcher
	publisher  events.Publisher
	eventCh    chan events.Event
	eventDone  chan struct{}

	mu        sync.RWMutex
	session   *game.Session
	renderers []Renderer
	paused    bool
	stopCh    chan struct{}
	loopDone  chan struct{}
	closed    bool
}

// New creates an App. Plugins are discovered from config.PluginDir when set.
func New(config Config) *App {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = capture.DefaultMotionThreshold
	}

	camera := config.CameraSource
	if camera == nil {
		camera = capture.NewCamera(config.Camera)
	}

	a := &App{
		config:    config,
		sessionID: uuid.New().String(),
		camera:    camera,
		motion:    capture.NewMotionDetector(motionThreshold),
		pacer:     capture.NewPacer(),
		detector:  config.Detector,
		frames:    capture.NewFrameBuffer(),
		session:   game.NewSession(config.Game),
		eventCh:   make(chan events.Event, eventQueueSize),
		eventDone: make(chan struct{}),
	}

	if a.detector == nil {
		// Try MediaPipe first, fall back to the mock detector
		if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
			a.detector = mp
			log.Println("Using MediaPipe hand detection")
		} else {
			log.Printf("MediaPipe not available (%v), using mock detector", err)
			a.detector = detector.NewMockDetector()
		}
	}

	publishers := events.Multi{events.NewLogPublisher(log.Default())}
	publishers = append(publishers, config.Publishers...)
	if config.PluginDir != "" {
		a.pluginMgr = plugin.NewManager(config.PluginDir)
		if err := a.pluginMgr.Discover(); err != nil {
			log.Printf("Plugin discovery failed: %v", err)
		}
		a.dispatcher = plugin.NewDispatcher(a.pluginMgr, plugin.NewExecutor(plugin.DefaultTimeout), plugin.DefaultQueueSize)
		publishers = append(publishers, a.dispatcher)
	}
	a.publisher = publishers

	go a.publishEvents()
	return a
}

// SessionID identifies this run in published events.
func (a *App) SessionID() string {
	return a.sessionID
}

// AddRenderer registers r to receive every snapshot.
func (a *App) AddRenderer(r Renderer) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.renderers = append(a.renderers, r)
}

// SetPaused pauses or resumes the game. A paused game still captures frames
// for the stream but does not advance.
func (a *App) SetPaused(paused bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.paused != paused {
		log.Printf("Game paused: %v", paused)
	}
	a.paused = paused
}

// IsPaused reports whether the game is paused.
func (a *App) IsPaused() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.paused
}

// ProcessFrame runs one frame through detection and the game session.
// Detection failures are logged and treated as a frame with no hands.
func (a *App) ProcessFrame(frame *gocv.Mat, now time.Time) game.Snapshot {
	det, err := detector.FrameDetection(a.detector, frame)
	if err != nil {
		log.Printf("Error detecting hands: %v", err)
		det.Hands = nil
	}

	a.mu.Lock()
	if a.paused {
		snap := a.session.Snapshot()
		a.mu.Unlock()
		return snap
	}
	snap, scored := a.session.Advance(now, det)
	renderers := append([]Renderer(nil), a.renderers...)
	a.mu.Unlock()

	for _, r := range renderers {
		r.Render(snap)
	}
	for _, ev := range scored {
		a.emit(events.FromScore(a.sessionID, ev))
	}
	return snap
}

// Snapshot returns the latest game state.
func (a *App) Snapshot() game.Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session.Snapshot()
}

// Scores returns the current score.
func (a *App) Scores() physics.Scores {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session.World().Scores()
}

// Layout returns the live rim-post layout.
func (a *App) Layout() physics.Layout {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session.Layout()
}

// SetLayout moves the rim posts. It takes effect on the next tick.
func (a *App) SetLayout(l physics.Layout) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.SetLayout(l)
}

// Reset respawns the balls and zeroes the score.
func (a *App) Reset() {
	a.mu.Lock()
	a.session.Reset()
	a.mu.Unlock()

	a.emit(events.Reset(a.sessionID, time.Now()))
}

// Frames returns the buffer holding the latest encoded camera frame.
func (a *App) Frames() *capture.FrameBuffer {
	return a.frames
}

// PluginManager returns the plugin manager, or nil when plugins are disabled.
func (a *App) PluginManager() *plugin.Manager {
	return a.pluginMgr
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	return a.detector
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// emit queues ev for publishing. Events are dropped when the queue is full
// so a slow publisher never stalls the game.
func (a *App) emit(ev events.Event) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return
	}
	select {
	case a.eventCh <- ev:
	default:
		log.Printf("[EVENTS] queue full, dropping %s event", ev.Kind)
	}
}

func (a *App) publishEvents() {
	defer close(a.eventDone)
	for ev := range a.eventCh {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.publisher.Publish(ctx, ev); err != nil {
			log.Printf("[EVENTS] publish %s: %v", ev.Kind, err)
		}
		cancel()
	}
}

// Close stops the capture loop, flushes queued events and closes the
// publishers. The App cannot be used afterwards.
func (a *App) Close() error {
	a.Stop()

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	close(a.eventCh)
	a.mu.Unlock()

	<-a.eventDone

	var errs []error
	if err := a.publisher.Close(); err != nil {
		errs = append(errs, err)
	}
	a.motion.Close()
	if err := a.detector.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
