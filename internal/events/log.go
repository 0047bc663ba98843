package events

import (
	"context"
	"log"
)

// LogPublisher writes events to the standard logger.
type LogPublisher struct {
	logger *log.Logger
}

// NewLogPublisher logs through logger, or the standard logger when nil.
func NewLogPublisher(logger *log.Logger) *LogPublisher {
	if logger == nil {
		logger = log.Default()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, ev Event) error {
	switch ev.Kind {
	case KindScore:
		p.logger.Printf("[EVENTS] basket in %s hoop, point to %s (ball %d): left %d - right %d",
			ev.Hoop, ev.Scorer, ev.BallID, ev.Scores.Left, ev.Scores.Right)
	default:
		p.logger.Printf("[EVENTS] %s session=%s", ev.Kind, ev.Session)
	}
	return nil
}

func (p *LogPublisher) Close() error { return nil }
