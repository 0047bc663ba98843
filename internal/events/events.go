// Package events fans game events out to observers: the log, Redis pub/sub
// and anything else implementing Publisher.
package events

import (
	"context"
	"errors"
	"time"

	"github.com/ayusman/hoopshot/internal/physics"
)

// Kind names an event type.
type Kind string

const (
	KindScore Kind = "score"
	KindReset Kind = "reset"
)

// Event is one game occurrence, ready to serialize.
type Event struct {
	Kind    Kind      `json:"kind"`
	Session string    `json:"session"`
	At      time.Time `json:"at"`
	Tick    uint64    `json:"tick,omitempty"`

	BallID int            `json:"ballId,omitempty"`
	Hoop   physics.Side   `json:"hoop"`
	Scorer physics.Side   `json:"scorer"`
	Scores physics.Scores `json:"scores"`
}

// FromScore converts a basket into an event.
func FromScore(session string, ev physics.ScoreEvent) Event {
	return Event{
		Kind:    KindScore,
		Session: session,
		At:      ev.At,
		Tick:    ev.Tick,
		BallID:  ev.BallID,
		Hoop:    ev.Hoop,
		Scorer:  ev.Scorer,
		Scores:  ev.Scores,
	}
}

// Reset returns the event announcing a game reset.
func Reset(session string, at time.Time) Event {
	return Event{Kind: KindReset, Session: session, At: at}
}

// Publisher delivers events somewhere.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// Multi delivers every event to each publisher in turn. A failing publisher
// does not stop the others; their errors are joined.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, ev Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Close() error {
	var errs []error
	for _, p := range m {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
