package server

import (
	"fmt"
	"strings"

	"github.com/veleiro/marionette/engine"
)

// actorTypeClasses maps the wire-level actor type names onto engine
// classes. Mesh shapes all spawn a StaticMeshActor carrying the
// matching basic-shape mesh.
var actorTypeClasses = map[string]struct {
	class string
	mesh  string
}{
	"CUBE":        {"StaticMeshActor", "/Engine/BasicShapes/Cube.Cube"},
	"SPHERE":      {"StaticMeshActor", "/Engine/BasicShapes/Sphere.Sphere"},
	"PLANE":       {"StaticMeshActor", "/Engine/BasicShapes/Plane.Plane"},
	"CYLINDER":    {"StaticMeshActor", "/Engine/BasicShapes/Cylinder.Cylinder"},
	"CONE":        {"StaticMeshActor", "/Engine/BasicShapes/Cone.Cone"},
	"CAMERA":      {class: "CameraActor"},
	"LIGHT":       {class: "DirectionalLight"},
	"POINT_LIGHT": {class: "PointLight"},
	"SPOT_LIGHT":  {class: "SpotLight"},
}

func actorCommands() []Command {
	return []Command{
		{
			Name:   "ping",
			Schema: `{}`,
			Handler: func(e *engine.Engine, p Params) (any, error) {
				return map[string]any{"message": "pong"}, nil
			},
		},
		{
			Name:   "get_actors_in_level",
			Schema: `{}`,
			Handler: func(e *engine.Engine, p Params) (any, error) {
				actors := []map[string]any{}
				for _, a := range e.World().Actors() {
					actors = append(actors, a.Descriptor())
				}
				return map[string]any{"actors": actors}, nil
			},
		},
		{
			Name:     "find_actors_by_name",
			Required: []string{"pattern"},
			Schema:   `{ pattern: string }`,
			Handler: func(e *engine.Engine, p Params) (any, error) {
				pattern, err := p.String("pattern")
				if err != nil {
					return nil, err
				}
				actors := []map[string]any{}
				for _, a := range e.World().FindActorsByPattern(pattern) {
					actors = append(actors, a.Descriptor())
				}
				return map[string]any{"actors": actors}, nil
			},
		},
		{
			Name:     "create_actor",
			Required: []string{"name", "type"},
			Schema: `{
				name:      string
				type:      string
				location?: [...number]
				rotation?: [...number]
				scale?:    [...number]
			}`,
			Handler: handleCreateActor,
		},
		{
			Name:     "delete_actor",
			Required: []string{"name"},
			Schema:   `{ name: string }`,
			Handler: func(e *engine.Engine, p Params) (any, error) {
				name, err := p.String("name")
				if err != nil {
					return nil, err
				}
				if !e.World().DeleteActor(name) {
					return map[string]any{
						"success": false,
						"message": fmt.Sprintf("Actor '%s' not found in level", name),
					}, nil
				}
				return map[string]any{
					"success": true,
					"message": fmt.Sprintf("Actor '%s' deleted", name),
				}, nil
			},
		},
		{
			Name:     "set_actor_transform",
			Required: []string{"name"},
			Schema: `{
				name:      string
				location?: [...number]
				rotation?: [...number]
				scale?:    [...number]
			}`,
			Handler: handleSetActorTransform,
		},
		{
			Name:     "get_actor_properties",
			Required: []string{"name"},
			Schema:   `{ name: string }`,
			Handler: func(e *engine.Engine, p Params) (any, error) {
				name, err := p.String("name")
				if err != nil {
					return nil, err
				}
				a := e.World().FindActor(name)
				if a == nil {
					return nil, notFound("actor", name)
				}
				return a.DetailedDescriptor(), nil
			},
		},
	}
}

func handleCreateActor(e *engine.Engine, p Params) (any, error) {
	name, err := p.String("name")
	if err != nil {
		return nil, err
	}
	typeName, err := p.String("type")
	if err != nil {
		return nil, err
	}
	spec, ok := actorTypeClasses[strings.ToUpper(typeName)]
	if !ok {
		return nil, typeMismatch("type", "one of CUBE, SPHERE, PLANE, CYLINDER, CONE, CAMERA, LIGHT, POINT_LIGHT, SPOT_LIGHT", typeName)
	}
	t, err := p.Transform()
	if err != nil {
		return nil, err
	}
	a, err := e.World().SpawnActor(name, spec.class, t)
	if err != nil {
		return nil, err
	}
	if spec.mesh != "" {
		a.Properties["StaticMesh"] = spec.mesh
	}
	return map[string]any{"success": true, "actor": a.Descriptor()}, nil
}

func handleSetActorTransform(e *engine.Engine, p Params) (any, error) {
	name, err := p.String("name")
	if err != nil {
		return nil, err
	}
	a := e.World().FindActor(name)
	if a == nil {
		return nil, notFound("actor", name)
	}

	// Validate every supplied component before touching the actor.
	loc, hasLoc, err := p.Vector("location")
	if err != nil {
		return nil, err
	}
	rot, hasRot, err := p.Rotator("rotation")
	if err != nil {
		return nil, err
	}
	scale, hasScale, err := p.Vector("scale")
	if err != nil {
		return nil, err
	}

	if hasLoc {
		a.Transform.Location = loc
	}
	if hasRot {
		a.Transform.Rotation = rot
	}
	if hasScale {
		a.Transform.Scale = scale
	}
	return map[string]any{"success": true, "actor": a.Descriptor()}, nil
}
