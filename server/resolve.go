package server

import (
	"strings"

	"github.com/veleiro/marionette/engine"
)

// Name resolution is an ordered list of strategies tried in sequence.
// The order is part of the wire contract: clients rely on exact names
// winning over suffix guesses, and suffix guesses over fuzzy scans.

type blueprintStrategy struct {
	name string
	fn   func(e *engine.Engine, name string) (*engine.Blueprint, bool)
}

var blueprintStrategies = []blueprintStrategy{
	{"exact", func(e *engine.Engine, name string) (*engine.Blueprint, bool) {
		return e.Blueprint(name)
	}},
	{"bp-suffix", func(e *engine.Engine, name string) (*engine.Blueprint, bool) {
		return e.Blueprint(name + "_BP")
	}},
	{"registry-scan", func(e *engine.Engine, name string) (*engine.Blueprint, bool) {
		if b, ok := e.BlueprintFold(name); ok {
			return b, true
		}
		// The asset index remembers creations under any casing.
		if rec, ok := e.AssetLookupFold(name); ok {
			return e.Blueprint(rec.Name)
		}
		return nil, false
	}},
}

// resolveBlueprint finds a blueprint by client-supplied name, trying
// each strategy in order.
func resolveBlueprint(e *engine.Engine, name string) (*engine.Blueprint, error) {
	for _, s := range blueprintStrategies {
		if b, ok := s.fn(e, name); ok {
			log.Debugf("blueprint %q resolved via %s", name, s.name)
			return b, nil
		}
	}
	return nil, notFound("blueprint", name)
}

type classStrategy struct {
	name string
	fn   func(e *engine.Engine, name string) (*engine.ClassDescriptor, bool)
}

var classStrategies = []classStrategy{
	{"exact", func(e *engine.Engine, name string) (*engine.ClassDescriptor, bool) {
		return e.Class(name)
	}},
	{"engine-path", func(e *engine.Engine, name string) (*engine.ClassDescriptor, bool) {
		if strings.HasPrefix(name, "/") {
			return e.ClassByPath(name)
		}
		return e.ClassByPath("/Script/Engine." + name)
	}},
	{"component-suffix", func(e *engine.Engine, name string) (*engine.ClassDescriptor, bool) {
		if strings.HasSuffix(name, "Component") {
			return nil, false
		}
		return e.Class(name + "Component")
	}},
	{"prefix-strip", func(e *engine.Engine, name string) (*engine.ClassDescriptor, bool) {
		// Native class names are often written with their A/U prefix.
		if len(name) > 1 && (name[0] == 'A' || name[0] == 'U') {
			return e.Class(name[1:])
		}
		return nil, false
	}},
}

// resolveClass finds a class descriptor by client-supplied name.
func resolveClass(e *engine.Engine, name string) (*engine.ClassDescriptor, error) {
	for _, s := range classStrategies {
		if c, ok := s.fn(e, name); ok {
			log.Debugf("class %q resolved via %s", name, s.name)
			return c, nil
		}
	}
	return nil, notFound("class", name)
}

// resolveComponentClass resolves a component type name, additionally
// requiring the result to descend from ActorComponent.
func resolveComponentClass(e *engine.Engine, name string) (*engine.ClassDescriptor, error) {
	c, err := resolveClass(e, name)
	if err != nil {
		return nil, err
	}
	if !e.IsSubclassOf(c, "ActorComponent") {
		return nil, typeMismatch("component_type", "a component class", c.Name)
	}
	return c, nil
}
