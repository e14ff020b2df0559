package server

import (
	"errors"
	"sync"
	"testing"

	"github.com/veleiro/marionette/engine"
)

func TestWorkerSerializesAccess(t *testing.T) {
	w := NewEngineWorker(engine.New())
	defer w.Stop()

	// Each task appends its id twice. If tasks ever interleave, some
	// id's two entries will not be adjacent.
	var mu sync.Mutex
	var trace []int

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			_, err := w.Do(func(*engine.Engine) (any, error) {
				mu.Lock()
				trace = append(trace, id)
				mu.Unlock()
				mu.Lock()
				trace = append(trace, id)
				mu.Unlock()
				return nil, nil
			})
			if err != nil {
				t.Errorf("Do: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if len(trace) != 32 {
		t.Fatalf("trace has %d entries, want 32", len(trace))
	}
	for i := 0; i < len(trace); i += 2 {
		if trace[i] != trace[i+1] {
			t.Fatalf("tasks interleaved at %d: %v", i, trace)
		}
	}
}

func TestWorkerFIFO(t *testing.T) {
	w := NewEngineWorker(engine.New())
	defer w.Stop()

	// Sequential submissions complete in order.
	var order []int
	for i := 0; i < 8; i++ {
		i := i
		if _, err := w.Do(func(*engine.Engine) (any, error) {
			order = append(order, i)
			return nil, nil
		}); err != nil {
			t.Fatalf("Do: %v", err)
		}
	}
	for i, v := range order {
		if v != i {
			t.Fatalf("out of order at %d: %v", i, order)
		}
	}
}

func TestWorkerRecoversPanic(t *testing.T) {
	w := NewEngineWorker(engine.New())
	defer w.Stop()

	_, err := w.Do(func(*engine.Engine) (any, error) {
		panic("boom")
	})
	if err == nil || err.Error() != "boom" {
		t.Fatalf("err = %v, want boom", err)
	}

	// A panic with an error value keeps its identity.
	sentinel := errors.New("typed failure")
	_, err = w.Do(func(*engine.Engine) (any, error) {
		panic(sentinel)
	})
	if !errors.Is(err, sentinel) {
		t.Errorf("err = %v, want sentinel", err)
	}

	// The worker survives and keeps serving.
	v, err := w.Do(func(*engine.Engine) (any, error) {
		return 42, nil
	})
	if err != nil || v != 42 {
		t.Errorf("post-panic Do = (%v, %v)", v, err)
	}
}

func TestWorkerStopUnblocksDo(t *testing.T) {
	w := NewEngineWorker(engine.New())
	w.Stop()

	_, err := w.Do(func(*engine.Engine) (any, error) {
		return nil, nil
	})
	if !errors.Is(err, ErrWorkerStopped) {
		t.Fatalf("err = %v, want ErrWorkerStopped", err)
	}
}

func TestWorkerStopTwice(t *testing.T) {
	w := NewEngineWorker(engine.New())
	w.Stop()
	w.Stop()

	if _, err := w.Do(func(*engine.Engine) (any, error) {
		return nil, nil
	}); !errors.Is(err, ErrWorkerStopped) {
		t.Fatalf("err = %v, want ErrWorkerStopped", err)
	}
}

func TestWorkerReturnsHandlerError(t *testing.T) {
	w := NewEngineWorker(engine.New())
	defer w.Stop()

	sentinel := errors.New("handler said no")
	_, err := w.Do(func(*engine.Engine) (any, error) {
		return nil, sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("err = %v, want sentinel", err)
	}
}
