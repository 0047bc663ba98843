package app

import (
	"log"
	"time"

	"github.com/ayusman/hoopshot/internal/capture"
)

// Start opens the camera and begins the capture loop.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}
	a.camera.SetFPS(a.pacer.FPS())

	a.stopCh = make(chan struct{})
	a.loopDone = make(chan struct{})
	go a.runPipeline(a.stopCh, a.loopDone)

	log.Println("Capture pipeline started")
	return nil
}

// Stop halts the capture loop and closes the camera. The game state is kept;
// Start resumes it.
func (a *App) Stop() {
	a.mu.Lock()
	stopCh, done := a.stopCh, a.loopDone
	a.stopCh, a.loopDone = nil, nil
	a.mu.Unlock()

	if stopCh == nil {
		return
	}
	close(stopCh)
	<-done

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}
	a.motion.Reset()

	log.Println("Capture pipeline stopped")
}

// Running reports whether the capture loop is active.
func (a *App) Running() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.stopCh != nil
}

// runPipeline reads frames at the pacer's rate until stopCh closes.
//
// Each frame:
//  1. is encoded for the MJPEG stream,
//  2. is checked for motion,
//  3. goes through hand detection and the game session,
//  4. moves the pacer between idle and active rates.
//
// Detection runs on every frame. The idle rate only lowers the frame rate,
// so a hand that enters while idle is picked up on the next frame.
func (a *App) runPipeline(stopCh <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(a.pacer.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			if jpeg, err := capture.EncodeJPEG(frame); err == nil {
				a.frames.Publish(jpeg)
			} else {
				log.Printf("Error encoding frame: %v", err)
			}

			motion, _ := a.motion.Detect(frame)
			now := time.Now()
			snap := a.ProcessFrame(frame, now)
			frame.Close()

			fps, changed := a.pacer.Observe(now, motion, snap.AnyHandVisible())
			if changed {
				a.camera.SetFPS(fps)
				ticker.Reset(a.pacer.Interval())
				if a.pacer.Active() {
					log.Println("Switched to active mode")
				} else {
					log.Println("Switched to idle mode")
				}
			}
		}
	}
}
