package app

import (
	"errors"
	"fmt"
	"log"

	"github.com/ayusman/hoopshot/internal/geom"
	"github.com/ayusman/hoopshot/internal/physics"
	"github.com/ayusman/hoopshot/internal/store"
)

// LoadCalibration applies the store's active calibration, if any.
func (a *App) LoadCalibration() error {
	if a.config.Store == nil {
		return nil
	}

	c, err := a.config.Store.ActiveCalibration()
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load active calibration: %w", err)
	}
	if err := a.ApplyCalibration(c); err != nil {
		return err
	}
	log.Printf("Applied calibration %q", c.Name)
	return nil
}

// ApplyCalibration moves the rim posts to c's layout, rescaled from the
// display size it was recorded on to the current one.
func (a *App) ApplyCalibration(c *store.Calibration) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	cfg := a.session.Config()
	layout := c.Layout
	if c.Width > 0 && c.Height > 0 {
		layout = scaleLayout(layout, cfg.Width/c.Width, cfg.Height/c.Height)
	}
	return a.session.SetLayout(layout)
}

// CurrentCalibration captures the live layout as an unsaved calibration.
func (a *App) CurrentCalibration(name string) *store.Calibration {
	a.mu.RLock()
	defer a.mu.RUnlock()

	cfg := a.session.Config()
	return &store.Calibration{
		Name:   name,
		Layout: a.session.Layout(),
		Width:  cfg.Width,
		Height: cfg.Height,
	}
}

func scaleLayout(l physics.Layout, sx, sy float64) physics.Layout {
	scale := func(v geom.Vec2) geom.Vec2 { return geom.V(v.X*sx, v.Y*sy) }
	return physics.Layout{
		LeftHoop: physics.PostPair{
			RimPostLeft:  scale(l.LeftHoop.RimPostLeft),
			RimPostRight: scale(l.LeftHoop.RimPostRight),
		},
		RightHoop: physics.PostPair{
			RimPostLeft:  scale(l.RightHoop.RimPostLeft),
			RimPostRight: scale(l.RightHoop.RimPostRight),
		},
	}
}
