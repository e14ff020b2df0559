package engine

import (
	"fmt"
	"strings"
)

// Actor is one placed object in the world.
type Actor struct {
	Label      string
	Path       string
	Class      string
	Transform  Transform
	Properties map[string]any
}

// Descriptor returns the wire-shaped summary used by level queries.
func (a *Actor) Descriptor() map[string]any {
	return map[string]any{
		"name":     a.Label,
		"path":     a.Path,
		"class":    a.Class,
		"location": a.Transform.Location.Array(),
		"rotation": a.Transform.Rotation.Array(),
		"scale":    a.Transform.Scale.Array(),
	}
}

// DetailedDescriptor includes the property bag.
func (a *Actor) DetailedDescriptor() map[string]any {
	d := a.Descriptor()
	props := make(map[string]any, len(a.Properties))
	for k, v := range a.Properties {
		props[k] = v
	}
	d["properties"] = props
	return d
}

// World holds the ordered actor list of the open level.
type World struct {
	actors []*Actor
}

// Actors returns the actor list in spawn order.
func (w *World) Actors() []*Actor {
	return w.actors
}

// FindActor locates an actor by exact label.
func (w *World) FindActor(label string) *Actor {
	for _, a := range w.actors {
		if a.Label == label {
			return a
		}
	}
	return nil
}

// FindActorsByPattern returns actors whose label contains pattern,
// case-insensitively.
func (w *World) FindActorsByPattern(pattern string) []*Actor {
	p := strings.ToLower(pattern)
	var out []*Actor
	for _, a := range w.actors {
		if strings.Contains(strings.ToLower(a.Label), p) {
			out = append(out, a)
		}
	}
	return out
}

// SpawnActor places a new actor. The label must be unique in the level.
func (w *World) SpawnActor(label, class string, t Transform) (*Actor, error) {
	if w.FindActor(label) != nil {
		return nil, fmt.Errorf("actor %q already exists in level", label)
	}
	a := &Actor{
		Label:      label,
		Path:       "/Game/Level." + label,
		Class:      class,
		Transform:  t,
		Properties: make(map[string]any),
	}
	w.actors = append(w.actors, a)
	return a, nil
}

// DeleteActor removes the actor with the given label. Returns false
// when no such actor exists.
func (w *World) DeleteActor(label string) bool {
	for i, a := range w.actors {
		if a.Label == label {
			w.actors = append(w.actors[:i], w.actors[i+1:]...)
			return true
		}
	}
	return false
}
