package event

import (
	"context"
	"log/slog"
	"sync"
)

// Worker consumes events from a buffered channel and hands them to the
// Logger off the request path. Log never blocks: when the buffer is full
// the event is dropped with a warning, which is an acceptable trade for an
// activity feed.
type Worker struct {
	events chan Event
	logger Logger
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// NewWorker creates a worker with the given channel buffer size
func NewWorker(logger Logger, bufferSize int) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	return &Worker{
		events: make(chan Event, bufferSize),
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start launches the consumer goroutine
func (w *Worker) Start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case <-w.ctx.Done():
				slog.Info("draining events before shutdown", "remaining", len(w.events))
				for len(w.events) > 0 {
					e := <-w.events
					if err := w.logger.Save(context.Background(), e); err != nil {
						slog.Error("failed to save event during shutdown", "error", err, "type", e.Type)
					}
				}
				return
			case e := <-w.events:
				if err := w.logger.Save(w.ctx, e); err != nil {
					slog.Error("failed to save event", "error", err, "type", e.Type)
				}
			}
		}
	}()
}

// Log enqueues an event without blocking the caller
func (w *Worker) Log(e Event) {
	select {
	case w.events <- e:
	default:
		slog.Warn("event buffer full, dropping event", "type", e.Type)
	}
}

// Shutdown stops the worker after draining buffered events. The channel is
// left open so a Log racing the shutdown can never panic; late events sit
// in the buffer and are dropped with the worker.
func (w *Worker) Shutdown() {
	w.cancel()
	w.wg.Wait()
}
