package plugin

import (
	"context"
	"log"
	"sync"

	"github.com/ayusman/hoopshot/internal/events"
)

// DefaultQueueSize is how many events may wait for hooks before new ones
// are dropped.
const DefaultQueueSize = 32

// Dispatcher delivers game events to subscribed hooks on a background
// worker so slow hooks never hold up the game loop. It implements
// events.Publisher.
type Dispatcher struct {
	manager  *Manager
	executor *Executor

	queue chan events.Event
	done  chan struct{}
	once  sync.Once
	wg    sync.WaitGroup

	// handled is called after each hook run; tests hook in here.
	handled func(p *Plugin, resp *Response, err error)
}

// NewDispatcher starts a dispatcher worker.
func NewDispatcher(manager *Manager, executor *Executor, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	d := &Dispatcher{
		manager:  manager,
		executor: executor,
		queue:    make(chan events.Event, queueSize),
		done:     make(chan struct{}),
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// Publish queues ev for the hooks. It never blocks; when the queue is full
// the event is dropped and logged.
func (d *Dispatcher) Publish(_ context.Context, ev events.Event) error {
	select {
	case <-d.done:
		return nil
	default:
	}

	select {
	case d.queue <- ev:
	default:
		log.Printf("[PLUGIN] queue full, dropping %s event", ev.Kind)
	}
	return nil
}

// Close stops the worker after it drains queued events.
func (d *Dispatcher) Close() error {
	d.once.Do(func() {
		close(d.done)
		d.wg.Wait()
	})
	return nil
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for {
		select {
		case ev := <-d.queue:
			d.deliver(ev)
		case <-d.done:
			for {
				select {
				case ev := <-d.queue:
					d.deliver(ev)
				default:
					return
				}
			}
		}
	}
}

func (d *Dispatcher) deliver(ev events.Event) {
	for _, p := range d.manager.Subscribers(string(ev.Kind)) {
		req := requestFor(ev)
		resp, err := d.executor.Execute(context.Background(), p, &req)
		switch {
		case err != nil:
			log.Printf("[PLUGIN] %s: %v", p.Manifest.Name, err)
		case !resp.Success:
			log.Printf("[PLUGIN] %s reported failure: %s", p.Manifest.Name, resp.Error)
		}
		if d.handled != nil {
			d.handled(p, resp, err)
		}
	}
}

func requestFor(ev events.Event) Request {
	return Request{
		Event:   string(ev.Kind),
		Session: ev.Session,
		At:      ev.At,
		BallID:  ev.BallID,
		Hoop:    ev.Hoop,
		Scorer:  ev.Scorer,
		Left:    ev.Scores.Left,
		Right:   ev.Scores.Right,
	}
}
