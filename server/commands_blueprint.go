package server

import (
	"fmt"

	"github.com/veleiro/marionette/engine"
)

// defaultCubeMesh seeds new static mesh components so spawned actors
// are visible without further setup.
const defaultCubeMesh = "/Engine/BasicShapes/Cube.Cube"

func blueprintCommands() []Command {
	return []Command{
		{
			Name:     "create_blueprint",
			Required: []string{"name"},
			Schema: `{
				name:          string
				parent_class?: string
			}`,
			Handler: handleCreateBlueprint,
		},
		{
			Name:     "add_component_to_blueprint",
			Required: []string{"blueprint_name", "component_type", "component_name"},
			Schema: `{
				blueprint_name: string
				component_type: string
				component_name: string
				location?:      [...number]
				rotation?:      [...number]
				scale?:         [...number]
			}`,
			Handler: handleAddComponent,
		},
		{
			Name:     "set_component_property",
			Required: []string{"blueprint_name", "component_name", "property_name"},
			Schema: `{
				blueprint_name: string
				component_name: string
				property_name:  string
				value:          _
			}`,
			Handler: handleSetComponentProperty,
		},
		{
			Name:     "set_physics_properties",
			Required: []string{"blueprint_name", "component_name"},
			Schema: `{
				blueprint_name:    string
				component_name:    string
				simulate_physics?: bool
				gravity_enabled?:  bool
				mass?:             number
				linear_damping?:   number
				angular_damping?:  number
			}`,
			Handler: handleSetPhysicsProperties,
		},
		{
			Name:     "set_blueprint_property",
			Required: []string{"blueprint_name", "property_name"},
			Schema: `{
				blueprint_name: string
				property_name:  string
				property_value: _
			}`,
			Handler: handleSetBlueprintProperty,
		},
		{
			Name:     "set_pawn_properties",
			Required: []string{"blueprint_name"},
			Schema: `{
				blueprint_name:                 string
				auto_possess_player?:           string | number
				use_controller_rotation_yaw?:   bool
				use_controller_rotation_pitch?: bool
				use_controller_rotation_roll?:  bool
				can_be_damaged?:                bool
			}`,
			Handler: handleSetPawnProperties,
		},
		{
			Name:     "compile_blueprint",
			Required: []string{"blueprint_name"},
			Schema:   `{ blueprint_name: string }`,
			Handler: func(e *engine.Engine, p Params) (any, error) {
				name, err := p.String("blueprint_name")
				if err != nil {
					return nil, err
				}
				bp, err := resolveBlueprint(e, name)
				if err != nil {
					return nil, err
				}
				bp.Compile(e)
				return map[string]any{
					"success": true,
					"name":    bp.Name,
					"message": fmt.Sprintf("Blueprint '%s' compiled", bp.Name),
				}, nil
			},
		},
		{
			Name:     "spawn_blueprint_actor",
			Required: []string{"blueprint_name", "actor_name"},
			Schema: `{
				blueprint_name: string
				actor_name:     string
				location?:      [...number]
				rotation?:      [...number]
				scale?:         [...number]
			}`,
			Handler: handleSpawnBlueprintActor,
		},
		{
			Name:     "add_blueprint_variable",
			Required: []string{"blueprint_name", "variable_name", "variable_type"},
			Schema: `{
				blueprint_name: string
				variable_name:  string
				variable_type:  string
				is_exposed?:    bool
				default_value?: _
			}`,
			Handler: handleAddVariable,
		},
	}
}

func handleCreateBlueprint(e *engine.Engine, p Params) (any, error) {
	name, err := p.String("name")
	if err != nil {
		return nil, err
	}
	parent, err := p.StringOr("parent_class", "Actor")
	if err != nil {
		return nil, err
	}
	parentClass, err := resolveClass(e, parent)
	if err != nil {
		return nil, err
	}
	bp, created, err := e.CreateBlueprint(name, parentClass.Name)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"success":        true,
		"name":           bp.Name,
		"path":           bp.AssetPath,
		"already_exists": !created,
	}, nil
}

func handleAddComponent(e *engine.Engine, p Params) (any, error) {
	bpName, err := p.String("blueprint_name")
	if err != nil {
		return nil, err
	}
	compType, err := p.String("component_type")
	if err != nil {
		return nil, err
	}
	compName, err := p.String("component_name")
	if err != nil {
		return nil, err
	}
	bp, err := resolveBlueprint(e, bpName)
	if err != nil {
		return nil, err
	}
	cls, err := resolveComponentClass(e, compType)
	if err != nil {
		return nil, err
	}
	t, err := p.Transform()
	if err != nil {
		return nil, err
	}
	c, err := bp.AddComponent(compName, cls.Name, t)
	if err != nil {
		return nil, err
	}
	if e.IsSubclassOf(cls, "StaticMeshComponent") {
		c.Properties["StaticMesh"] = defaultCubeMesh
	}
	return map[string]any{
		"success":        true,
		"component_name": c.Name,
		"component_type": c.Class,
	}, nil
}

func handleSetComponentProperty(e *engine.Engine, p Params) (any, error) {
	bpName, err := p.String("blueprint_name")
	if err != nil {
		return nil, err
	}
	compName, err := p.String("component_name")
	if err != nil {
		return nil, err
	}
	propName, err := p.String("property_name")
	if err != nil {
		return nil, err
	}
	value, ok := p["value"]
	if !ok {
		return nil, missingParam("value")
	}
	bp, err := resolveBlueprint(e, bpName)
	if err != nil {
		return nil, err
	}
	c := bp.FindComponent(compName)
	if c == nil {
		return nil, notFound("component", compName)
	}
	cls, ok := e.Class(c.Class)
	if !ok {
		return nil, notFound("class", c.Class)
	}
	if err := setSingleProperty(e, cls, c.Properties, propName, value, bp.MarkModified); err != nil {
		return nil, err
	}
	return map[string]any{
		"success":       true,
		"property_name": propName,
		"message":       fmt.Sprintf("Property '%s' set on component '%s'", propName, c.Name),
	}, nil
}

// physicsParams maps wire param names onto primitive component
// properties.
var physicsParams = []struct {
	param string
	prop  string
}{
	{"simulate_physics", "bSimulatePhysics"},
	{"gravity_enabled", "bEnableGravity"},
	{"mass", "Mass"},
	{"linear_damping", "LinearDamping"},
	{"angular_damping", "AngularDamping"},
}

func handleSetPhysicsProperties(e *engine.Engine, p Params) (any, error) {
	bpName, err := p.String("blueprint_name")
	if err != nil {
		return nil, err
	}
	compName, err := p.String("component_name")
	if err != nil {
		return nil, err
	}
	bp, err := resolveBlueprint(e, bpName)
	if err != nil {
		return nil, err
	}
	c := bp.FindComponent(compName)
	if c == nil {
		return nil, notFound("component", compName)
	}
	cls, ok := e.Class(c.Class)
	if !ok {
		return nil, notFound("class", c.Class)
	}
	if !e.IsSubclassOf(cls, "PrimitiveComponent") {
		return nil, typeMismatch("component_name", "a primitive component", c.Class)
	}

	// Stage every supplied property, then commit in one pass.
	var writes []propertyWrite
	for _, m := range physicsParams {
		v, ok := p[m.param]
		if !ok {
			continue
		}
		w, err := stageProperty(e, cls, m.prop, v)
		if err != nil {
			return nil, err
		}
		writes = append(writes, w)
	}
	commitWrites(c.Properties, writes, bp.MarkModified)
	return map[string]any{
		"success":        true,
		"component_name": c.Name,
		"message":        fmt.Sprintf("Physics properties set on '%s'", c.Name),
	}, nil
}

func handleSetBlueprintProperty(e *engine.Engine, p Params) (any, error) {
	bpName, err := p.String("blueprint_name")
	if err != nil {
		return nil, err
	}
	propName, err := p.String("property_name")
	if err != nil {
		return nil, err
	}
	value, ok := p["property_value"]
	if !ok {
		return nil, missingParam("property_value")
	}
	bp, err := resolveBlueprint(e, bpName)
	if err != nil {
		return nil, err
	}
	cls, ok := e.Class(bp.ParentClass)
	if !ok {
		return nil, notFound("class", bp.ParentClass)
	}
	if err := setSingleProperty(e, cls, bp.Defaults, propName, value, bp.MarkModified); err != nil {
		return nil, err
	}
	return map[string]any{
		"success":       true,
		"property_name": propName,
		"message":       fmt.Sprintf("Property '%s' set on blueprint '%s'", propName, bp.Name),
	}, nil
}

// pawnParams maps wire param names onto pawn properties.
var pawnParams = []struct {
	param string
	prop  string
}{
	{"auto_possess_player", "AutoPossessPlayer"},
	{"use_controller_rotation_yaw", "bUseControllerRotationYaw"},
	{"use_controller_rotation_pitch", "bUseControllerRotationPitch"},
	{"use_controller_rotation_roll", "bUseControllerRotationRoll"},
	{"can_be_damaged", "bCanBeDamaged"},
}

func handleSetPawnProperties(e *engine.Engine, p Params) (any, error) {
	bpName, err := p.String("blueprint_name")
	if err != nil {
		return nil, err
	}
	bp, err := resolveBlueprint(e, bpName)
	if err != nil {
		return nil, err
	}
	cls, ok := e.Class(bp.ParentClass)
	if !ok {
		return nil, notFound("class", bp.ParentClass)
	}
	if !e.IsSubclassOf(cls, "Pawn") {
		return nil, typeMismatch("blueprint_name", "a Pawn blueprint", bp.ParentClass)
	}

	var writes []propertyWrite
	for _, m := range pawnParams {
		v, ok := p[m.param]
		if !ok {
			continue
		}
		w, err := stageProperty(e, cls, m.prop, v)
		if err != nil {
			return nil, err
		}
		writes = append(writes, w)
	}
	commitWrites(bp.Defaults, writes, bp.MarkModified)
	return map[string]any{
		"success": true,
		"name":    bp.Name,
		"message": fmt.Sprintf("Pawn properties set on '%s'", bp.Name),
	}, nil
}

func handleSpawnBlueprintActor(e *engine.Engine, p Params) (any, error) {
	bpName, err := p.String("blueprint_name")
	if err != nil {
		return nil, err
	}
	actorName, err := p.String("actor_name")
	if err != nil {
		return nil, err
	}
	bp, err := resolveBlueprint(e, bpName)
	if err != nil {
		return nil, err
	}
	t, err := p.Transform()
	if err != nil {
		return nil, err
	}
	a, err := e.SpawnBlueprintActor(bp, actorName, t)
	if err != nil {
		return nil, err
	}
	return map[string]any{"success": true, "actor": a.Descriptor()}, nil
}

func handleAddVariable(e *engine.Engine, p Params) (any, error) {
	bpName, err := p.String("blueprint_name")
	if err != nil {
		return nil, err
	}
	varName, err := p.String("variable_name")
	if err != nil {
		return nil, err
	}
	varType, err := p.String("variable_type")
	if err != nil {
		return nil, err
	}
	exposed, err := p.BoolOr("is_exposed", false)
	if err != nil {
		return nil, err
	}
	bp, err := resolveBlueprint(e, bpName)
	if err != nil {
		return nil, err
	}
	pinType, ok := engine.VariablePinType(varType)
	if !ok {
		return nil, typeMismatch("variable_type", "one of Boolean, Integer, Float, String, Name, Vector, Rotator", varType)
	}
	v, err := bp.AddVariable(varName, pinType, exposed, p["default_value"])
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"success":       true,
		"variable_name": v.Name,
		"variable_type": string(v.Type),
	}, nil
}
