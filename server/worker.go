package server

import (
	"errors"
	"fmt"
	"sync"

	"github.com/veleiro/marionette/engine"
)

// engineRequest represents a unit of work to be executed on the engine
// goroutine.
type engineRequest struct {
	fn   func(*engine.Engine) (any, error)
	done chan engineResult
}

// engineResult holds the return value from an engine operation.
type engineResult struct {
	value any
	err   error
}

// ErrWorkerStopped is returned by Do after Stop.
var ErrWorkerStopped = errors.New("engine worker stopped")

// EngineWorker serializes all engine access through a single
// goroutine. The editor object model is single-threaded; every
// command handler must go through the worker to avoid data races.
type EngineWorker struct {
	eng      *engine.Engine
	requests chan engineRequest
	quit     chan struct{}
	stopOnce sync.Once
}

// NewEngineWorker creates an EngineWorker and starts the processing
// goroutine.
func NewEngineWorker(e *engine.Engine) *EngineWorker {
	w := &EngineWorker{
		eng:      e,
		requests: make(chan engineRequest, 64),
		quit:     make(chan struct{}),
	}
	go w.loop()
	return w
}

// loop processes engine requests sequentially on a dedicated
// goroutine. Requests complete in submission order.
func (w *EngineWorker) loop() {
	for {
		select {
		case req := <-w.requests:
			req.done <- w.execute(req.fn)
		case <-w.quit:
			return
		}
	}
}

// execute runs a function on the engine, recovering from panics. A
// panic with an error value keeps its identity; anything else is
// stringified.
func (w *EngineWorker) execute(fn func(*engine.Engine) (any, error)) engineResult {
	var result engineResult
	func() {
		defer func() {
			if r := recover(); r != nil {
				if err, ok := r.(error); ok {
					result.err = err
				} else {
					result.err = fmt.Errorf("%v", r)
				}
			}
		}()
		result.value, result.err = fn(w.eng)
	}()
	return result
}

// Do submits a function for execution on the engine goroutine and
// blocks until it completes. Returns the result and any error
// (including panics). After Stop, Do returns ErrWorkerStopped.
func (w *EngineWorker) Do(fn func(*engine.Engine) (any, error)) (any, error) {
	req := engineRequest{
		fn:   fn,
		done: make(chan engineResult, 1),
	}
	select {
	case w.requests <- req:
	case <-w.quit:
		return nil, ErrWorkerStopped
	}
	select {
	case result := <-req.done:
		return result.value, result.err
	case <-w.quit:
		return nil, ErrWorkerStopped
	}
}

// Stop shuts down the worker goroutine. Calling Stop more than once
// is harmless.
func (w *EngineWorker) Stop() {
	w.stopOnce.Do(func() { close(w.quit) })
}

// Engine returns the underlying engine (for setup before serving, not
// for concurrent use while the worker is running).
func (w *EngineWorker) Engine() *engine.Engine {
	return w.eng
}
