package server

import (
	"encoding/json"
	"testing"

	"github.com/veleiro/marionette/engine"
)

// ---------------------------------------------------------------------------
// Shared test infrastructure for server package tests.
//
// Engines are cheap to seed, so every test gets an isolated one; the
// worker is stopped through t.Cleanup.
// ---------------------------------------------------------------------------

// testEnv bundles a fresh engine with its worker and registry.
type testEnv struct {
	Engine   *engine.Engine
	Worker   *EngineWorker
	Registry *Registry
}

// newIsolatedEnv creates a brand-new engine + worker + registry with
// the builtin command set registered.
func newIsolatedEnv(t *testing.T) *testEnv {
	t.Helper()
	e := engine.New()
	w := NewEngineWorker(e)
	t.Cleanup(w.Stop)
	r := NewRegistry()
	r.MustRegister(builtinCommands())
	return &testEnv{Engine: e, Worker: w, Registry: r}
}

// call dispatches a command and fails the test on error.
func (env *testEnv) call(t *testing.T, name string, p Params) map[string]any {
	t.Helper()
	v, err := env.Registry.Dispatch(env.Worker, name, p)
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("%s: result is %T, want map", name, v)
	}
	return m
}

// callErr dispatches a command expecting failure.
func (env *testEnv) callErr(t *testing.T, name string, p Params) error {
	t.Helper()
	_, err := env.Registry.Dispatch(env.Worker, name, p)
	if err == nil {
		t.Fatalf("%s: expected error", name)
	}
	return err
}

// jsonParams round-trips a literal through JSON so values arrive the
// way the wire delivers them (numbers as float64, arrays as []any).
func jsonParams(t *testing.T, src string) Params {
	t.Helper()
	var p Params
	if err := json.Unmarshal([]byte(src), &p); err != nil {
		t.Fatalf("bad params literal: %v", err)
	}
	return p
}
