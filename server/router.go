package server

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/veleiro/marionette/engine"
)

// Params is the decoded params object of one request.
type Params map[string]any

// Handler executes one command against the engine. Handlers run on
// the engine goroutine; they may touch engine state freely but must
// not block.
type Handler func(e *engine.Engine, p Params) (any, error)

// Command bundles a handler with its parameter contract. Schema is a
// CUE struct literal describing the params object; Required lists the
// fields that must be present. Both are checked before the handler
// runs.
type Command struct {
	Name     string
	Required []string
	Schema   string
	Handler  Handler
}

// Registry maps command names to validated handlers. It is built once
// at startup and read-only afterwards, so Dispatch takes no lock.
type Registry struct {
	cctx     *cue.Context
	commands map[string]*boundCommand
}

type boundCommand struct {
	Command
	schema cue.Value
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{
		cctx:     cuecontext.New(),
		commands: make(map[string]*boundCommand),
	}
}

// Register adds a command. Registration fails for duplicate names, for
// commands without a schema, and for schemas that do not compile;
// these are wiring bugs, caught before the server accepts traffic.
func (r *Registry) Register(cmd Command) error {
	if cmd.Name == "" {
		return fmt.Errorf("register: command with empty name")
	}
	if _, exists := r.commands[cmd.Name]; exists {
		return fmt.Errorf("register: command %q already registered", cmd.Name)
	}
	if cmd.Handler == nil {
		return fmt.Errorf("register: command %q has no handler", cmd.Name)
	}
	if cmd.Schema == "" {
		return fmt.Errorf("register: command %q has no schema", cmd.Name)
	}
	v := r.cctx.CompileString(cmd.Schema)
	if err := v.Err(); err != nil {
		return fmt.Errorf("register: schema for %q does not compile: %w", cmd.Name, err)
	}
	r.commands[cmd.Name] = &boundCommand{Command: cmd, schema: v}
	return nil
}

// MustRegister registers a slice of commands, panicking on the first
// failure. Used for the builtin command set at startup.
func (r *Registry) MustRegister(cmds []Command) {
	for _, c := range cmds {
		if err := r.Register(c); err != nil {
			panic(err)
		}
	}
}

// Names returns the registered command names (unordered).
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.commands))
	for n := range r.commands {
		out = append(out, n)
	}
	return out
}

// Lookup finds a command, reporting ErrUnknownCommand on miss.
func (r *Registry) Lookup(name string) (*boundCommand, error) {
	c, ok := r.commands[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	return c, nil
}

// Validate checks params against a command's contract: required
// fields first (their absence has a canonical message), then the CUE
// schema for shape.
func (r *Registry) Validate(cmd *boundCommand, p Params) error {
	for _, field := range cmd.Required {
		if _, ok := p[field]; !ok {
			return missingParam(field)
		}
	}
	val := r.cctx.Encode(map[string]any(p))
	if err := val.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	unified := cmd.schema.Unify(val)
	if err := unified.Validate(); err != nil {
		return fmt.Errorf("%w: params for %s: %v", ErrTypeMismatch, cmd.Name, err)
	}
	return nil
}

// Dispatch validates params and runs the handler on the engine
// goroutine via the worker.
func (r *Registry) Dispatch(w *EngineWorker, name string, p Params) (any, error) {
	cmd, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p = Params{}
	}
	if err := r.Validate(cmd, p); err != nil {
		return nil, err
	}
	return w.Do(func(e *engine.Engine) (any, error) {
		return cmd.Handler(e, p)
	})
}
