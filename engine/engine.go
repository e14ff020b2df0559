// Package engine implements the live editor object model the bridge
// drives: a class registry, an open level, blueprint assets and
// project input settings.
//
// The engine is single-threaded by contract. Nothing in this package
// locks; all access must come through one goroutine (the server's
// worker provides that).
package engine

import (
	"fmt"
	"sort"
	"strings"
)

// AssetRecord is one row in the asset index.
type AssetRecord struct {
	Name  string
	Path  string
	Class string
}

// AssetIndex records created assets and answers case-insensitive name
// lookups. The sqlite-backed implementation lives in engine/assetindex.
type AssetIndex interface {
	Record(rec AssetRecord) error
	FindFold(name string) (AssetRecord, bool)
}

// Engine is the live editor state.
type Engine struct {
	classes    map[string]*ClassDescriptor
	world      *World
	blueprints map[string]*Blueprint
	bpOrder    []string
	inputs     *InputSettings
	assets     AssetIndex
}

// Option configures a new Engine.
type Option func(*Engine)

// WithAssetIndex attaches an asset index; created blueprints are
// recorded into it.
func WithAssetIndex(idx AssetIndex) Option {
	return func(e *Engine) { e.assets = idx }
}

// New creates an engine seeded with the builtin class registry and an
// empty level.
func New(opts ...Option) *Engine {
	e := &Engine{
		classes:    make(map[string]*ClassDescriptor),
		world:      &World{},
		blueprints: make(map[string]*Blueprint),
		inputs:     &InputSettings{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.seedBuiltins()
	return e
}

// World returns the open level.
func (e *Engine) World() *World { return e.world }

// Inputs returns the project input settings.
func (e *Engine) Inputs() *InputSettings { return e.inputs }

// Class looks up a class descriptor by bare name.
func (e *Engine) Class(name string) (*ClassDescriptor, bool) {
	c, ok := e.classes[name]
	return c, ok
}

// ClassByPath looks up a class descriptor by full object path.
func (e *Engine) ClassByPath(path string) (*ClassDescriptor, bool) {
	for _, c := range e.classes {
		if c.Path == path {
			return c, true
		}
	}
	return nil, false
}

// RegisterClass installs a class descriptor, replacing any previous
// entry under the same name.
func (e *Engine) RegisterClass(c *ClassDescriptor) {
	e.classes[c.Name] = c
}

// ClassNames returns the registered class names, sorted.
func (e *Engine) ClassNames() []string {
	names := make([]string, 0, len(e.classes))
	for n := range e.classes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Blueprint looks up a blueprint by exact name.
func (e *Engine) Blueprint(name string) (*Blueprint, bool) {
	b, ok := e.blueprints[name]
	return b, ok
}

// BlueprintFold looks up a blueprint case-insensitively.
func (e *Engine) BlueprintFold(name string) (*Blueprint, bool) {
	if b, ok := e.blueprints[name]; ok {
		return b, true
	}
	for _, n := range e.bpOrder {
		if strings.EqualFold(n, name) {
			return e.blueprints[n], true
		}
	}
	return nil, false
}

// Blueprints returns all blueprints in creation order.
func (e *Engine) Blueprints() []*Blueprint {
	out := make([]*Blueprint, 0, len(e.bpOrder))
	for _, n := range e.bpOrder {
		out = append(out, e.blueprints[n])
	}
	return out
}

// CreateBlueprint creates a blueprint asset under /Game/Blueprints.
// When a blueprint of that name already exists it is returned with
// created=false rather than an error; creating is idempotent on the
// wire.
func (e *Engine) CreateBlueprint(name, parentClass string) (bp *Blueprint, created bool, err error) {
	if b, ok := e.blueprints[name]; ok {
		return b, false, nil
	}
	if _, ok := e.classes[parentClass]; !ok {
		return nil, false, fmt.Errorf("parent class %q not found", parentClass)
	}
	b := NewBlueprint(name, "/Game/Blueprints/"+name, parentClass)
	e.blueprints[name] = b
	e.bpOrder = append(e.bpOrder, name)
	if e.assets != nil {
		if err := e.assets.Record(AssetRecord{Name: name, Path: b.AssetPath, Class: "Blueprint"}); err != nil {
			return nil, false, fmt.Errorf("record asset %q: %w", name, err)
		}
	}
	return b, true, nil
}

// AssetLookupFold consults the asset index for a blueprint created
// under a different casing. Returns false when no index is attached.
func (e *Engine) AssetLookupFold(name string) (AssetRecord, bool) {
	if e.assets == nil {
		return AssetRecord{}, false
	}
	return e.assets.FindFold(name)
}

// registerGenerated installs a blueprint's compiled class into the
// registry so graphs and spawns can reference it.
func (e *Engine) registerGenerated(b *Blueprint) {
	e.classes[b.Generated.Name] = b.Generated
}

// SpawnBlueprintActor places an actor of the blueprint's generated
// class, compiling first when the blueprint is dirty.
func (e *Engine) SpawnBlueprintActor(b *Blueprint, label string, t Transform) (*Actor, error) {
	if b.Dirty() || b.Generated == nil {
		b.Compile(e)
	}
	a, err := e.world.SpawnActor(label, b.Generated.Name, t)
	if err != nil {
		return nil, err
	}
	for k, v := range b.Defaults {
		a.Properties[k] = v
	}
	return a, nil
}
