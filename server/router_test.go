package server

import (
	"errors"
	"strings"
	"testing"

	"github.com/veleiro/marionette/engine"
)

func noopHandler(e *engine.Engine, p Params) (any, error) {
	return map[string]any{"success": true}, nil
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	cmd := Command{Name: "thing", Schema: `{}`, Handler: noopHandler}
	if err := r.Register(cmd); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := r.Register(cmd); err == nil {
		t.Error("duplicate register should fail")
	}
}

func TestRegisterRequiresSchema(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(Command{Name: "bare", Handler: noopHandler}); err == nil {
		t.Error("register without schema should fail")
	}
	if err := r.Register(Command{Name: "broken", Schema: `{ name: !! }`, Handler: noopHandler}); err == nil {
		t.Error("register with non-compiling schema should fail")
	}
	if err := r.Register(Command{Name: "nohandler", Schema: `{}`}); err == nil {
		t.Error("register without handler should fail")
	}
}

func TestBuiltinCommandSetRegisters(t *testing.T) {
	r := NewRegistry()
	for _, c := range builtinCommands() {
		if err := r.Register(c); err != nil {
			t.Errorf("builtin %q failed to register: %v", c.Name, err)
		}
	}
	if len(r.Names()) < 20 {
		t.Errorf("only %d builtin commands registered", len(r.Names()))
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	env := newIsolatedEnv(t)
	_, err := env.Registry.Dispatch(env.Worker, "no_such_command", Params{})
	if !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("err = %v, want ErrUnknownCommand", err)
	}
}

func TestDispatchMissingRequiredParam(t *testing.T) {
	env := newIsolatedEnv(t)
	_, err := env.Registry.Dispatch(env.Worker, "create_actor", Params{"name": "Crate"})
	if !errors.Is(err, ErrMissingParameter) {
		t.Fatalf("err = %v, want ErrMissingParameter", err)
	}
	if !strings.Contains(err.Error(), "'type'") {
		t.Errorf("error does not name the missing field: %v", err)
	}
}

func TestDispatchSchemaTypeMismatch(t *testing.T) {
	env := newIsolatedEnv(t)
	_, err := env.Registry.Dispatch(env.Worker, "create_actor",
		jsonParams(t, `{"name": 5, "type": "CUBE"}`))
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("err = %v, want ErrTypeMismatch", err)
	}
}

func TestDispatchNilParams(t *testing.T) {
	env := newIsolatedEnv(t)
	v, err := env.Registry.Dispatch(env.Worker, "ping", nil)
	if err != nil {
		t.Fatalf("ping: %v", err)
	}
	m := v.(map[string]any)
	if m["message"] != "pong" {
		t.Errorf("ping result = %v", m)
	}
}
