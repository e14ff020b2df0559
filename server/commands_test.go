package server

import (
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// Actor commands
// ---------------------------------------------------------------------------

func TestCreateAndListActors(t *testing.T) {
	env := newIsolatedEnv(t)
	env.call(t, "create_actor", jsonParams(t, `{
		"name": "Crate", "type": "CUBE", "location": [100, 0, 50]
	}`))
	env.call(t, "create_actor", jsonParams(t, `{"name": "Cam", "type": "CAMERA"}`))

	res := env.call(t, "get_actors_in_level", nil)
	actors := res["actors"].([]map[string]any)
	if len(actors) != 2 {
		t.Fatalf("%d actors, want 2", len(actors))
	}
	if actors[0]["name"] != "Crate" || actors[0]["class"] != "StaticMeshActor" {
		t.Errorf("first actor = %v", actors[0])
	}

	crate := env.Engine.World().FindActor("Crate")
	if crate.Transform.Location.X != 100 {
		t.Errorf("location.X = %v", crate.Transform.Location.X)
	}
	if crate.Properties["StaticMesh"] != "/Engine/BasicShapes/Cube.Cube" {
		t.Errorf("mesh = %v", crate.Properties["StaticMesh"])
	}
}

func TestCreateActorUnknownType(t *testing.T) {
	env := newIsolatedEnv(t)
	err := env.callErr(t, "create_actor", jsonParams(t, `{"name": "X", "type": "DODECAHEDRON"}`))
	if !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("err = %v, want ErrTypeMismatch", err)
	}
}

func TestDeleteActorReportsMissing(t *testing.T) {
	env := newIsolatedEnv(t)
	env.call(t, "create_actor", jsonParams(t, `{"name": "Crate", "type": "CUBE"}`))

	res := env.call(t, "delete_actor", jsonParams(t, `{"name": "Crate"}`))
	if res["success"] != true {
		t.Errorf("delete existing: %v", res)
	}
	// Absent actor is success=false inside a successful envelope, not
	// a transport error.
	res = env.call(t, "delete_actor", jsonParams(t, `{"name": "Crate"}`))
	if res["success"] != false {
		t.Errorf("delete missing: %v", res)
	}
}

func TestSetActorTransformPartial(t *testing.T) {
	env := newIsolatedEnv(t)
	env.call(t, "create_actor", jsonParams(t, `{
		"name": "Crate", "type": "CUBE", "location": [1, 2, 3]
	}`))
	env.call(t, "set_actor_transform", jsonParams(t, `{
		"name": "Crate", "rotation": [0, 90, 0]
	}`))

	a := env.Engine.World().FindActor("Crate")
	if a.Transform.Location.X != 1 {
		t.Error("location should be untouched by a rotation-only update")
	}
	if a.Transform.Rotation.Yaw != 90 {
		t.Errorf("yaw = %v", a.Transform.Rotation.Yaw)
	}
}

// ---------------------------------------------------------------------------
// Blueprint commands
// ---------------------------------------------------------------------------

func TestBlueprintRoundTrip(t *testing.T) {
	env := newIsolatedEnv(t)

	res := env.call(t, "create_blueprint", jsonParams(t, `{"name": "Door"}`))
	if res["already_exists"] != false {
		t.Errorf("create: %v", res)
	}

	env.call(t, "add_component_to_blueprint", jsonParams(t, `{
		"blueprint_name": "Door",
		"component_type": "StaticMeshComponent",
		"component_name": "Mesh"
	}`))
	env.call(t, "set_component_property", jsonParams(t, `{
		"blueprint_name": "Door",
		"component_name": "Mesh",
		"property_name":  "bSimulatePhysics",
		"value":          true
	}`))
	env.call(t, "compile_blueprint", jsonParams(t, `{"blueprint_name": "Door"}`))

	// Read the state back.
	bp, _ := env.Engine.Blueprint("Door")
	c := bp.FindComponent("Mesh")
	if c == nil {
		t.Fatal("component missing")
	}
	if c.Properties["bSimulatePhysics"] != true {
		t.Errorf("bSimulatePhysics = %v", c.Properties["bSimulatePhysics"])
	}
	if c.Properties["StaticMesh"] != defaultCubeMesh {
		t.Errorf("default mesh = %v", c.Properties["StaticMesh"])
	}
	if bp.Dirty() {
		t.Error("blueprint dirty after compile")
	}
}

func TestCreateBlueprintAlreadyExists(t *testing.T) {
	env := newIsolatedEnv(t)
	env.call(t, "create_blueprint", jsonParams(t, `{"name": "Door"}`))
	res := env.call(t, "create_blueprint", jsonParams(t, `{"name": "Door"}`))
	if res["already_exists"] != true {
		t.Errorf("second create: %v", res)
	}
}

func TestCompileBlueprintIdempotent(t *testing.T) {
	env := newIsolatedEnv(t)
	env.call(t, "create_blueprint", jsonParams(t, `{"name": "Door"}`))
	env.call(t, "compile_blueprint", jsonParams(t, `{"blueprint_name": "Door"}`))
	env.call(t, "compile_blueprint", jsonParams(t, `{"blueprint_name": "Door"}`))

	bp, _ := env.Engine.Blueprint("Door")
	if bp.Dirty() {
		t.Error("blueprint dirty after double compile")
	}
	if _, ok := env.Engine.Class("Door_C"); !ok {
		t.Error("generated class missing")
	}
}

func TestSetComponentPropertyBadValueLeavesState(t *testing.T) {
	env := newIsolatedEnv(t)
	env.call(t, "create_blueprint", jsonParams(t, `{"name": "Door"}`))
	env.call(t, "add_component_to_blueprint", jsonParams(t, `{
		"blueprint_name": "Door",
		"component_type": "StaticMeshComponent",
		"component_name": "Mesh"
	}`))

	err := env.callErr(t, "set_component_property", jsonParams(t, `{
		"blueprint_name": "Door",
		"component_name": "Mesh",
		"property_name":  "bSimulatePhysics",
		"value":          "definitely"
	}`))
	if !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("err = %v, want ErrTypeMismatch", err)
	}

	bp, _ := env.Engine.Blueprint("Door")
	c := bp.FindComponent("Mesh")
	if _, written := c.Properties["bSimulatePhysics"]; written {
		t.Error("failed mutation wrote a value")
	}
}

func TestSetPhysicsPropertiesAtomic(t *testing.T) {
	env := newIsolatedEnv(t)
	env.call(t, "create_blueprint", jsonParams(t, `{"name": "Door"}`))
	env.call(t, "add_component_to_blueprint", jsonParams(t, `{
		"blueprint_name": "Door",
		"component_type": "BoxComponent",
		"component_name": "Collider"
	}`))

	env.call(t, "set_physics_properties", jsonParams(t, `{
		"blueprint_name": "Door",
		"component_name": "Collider",
		"simulate_physics": true,
		"mass": 25.5
	}`))
	bp, _ := env.Engine.Blueprint("Door")
	c := bp.FindComponent("Collider")
	if c.Properties["bSimulatePhysics"] != true || c.Properties["Mass"] != 25.5 {
		t.Errorf("physics properties = %v", c.Properties)
	}

	// A bad value anywhere in the batch writes nothing. The schema
	// rejects it before the handler; state stays as-is.
	env.callErr(t, "set_physics_properties", jsonParams(t, `{
		"blueprint_name": "Door",
		"component_name": "Collider",
		"gravity_enabled": true,
		"mass": "heavy"
	}`))
	if _, written := c.Properties["bEnableGravity"]; written {
		t.Error("failed batch wrote bEnableGravity")
	}
}

func TestSetPhysicsPropertiesRequiresPrimitive(t *testing.T) {
	env := newIsolatedEnv(t)
	env.call(t, "create_blueprint", jsonParams(t, `{"name": "Door"}`))
	env.call(t, "add_component_to_blueprint", jsonParams(t, `{
		"blueprint_name": "Door",
		"component_type": "SceneComponent",
		"component_name": "Root"
	}`))
	err := env.callErr(t, "set_physics_properties", jsonParams(t, `{
		"blueprint_name": "Door",
		"component_name": "Root",
		"mass": 10
	}`))
	if !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("err = %v, want ErrTypeMismatch", err)
	}
}

func TestSetPawnPropertiesEnumForms(t *testing.T) {
	env := newIsolatedEnv(t)
	env.call(t, "create_blueprint", jsonParams(t, `{
		"name": "Hero", "parent_class": "Pawn"
	}`))

	// Qualified form.
	env.call(t, "set_pawn_properties", jsonParams(t, `{
		"blueprint_name": "Hero",
		"auto_possess_player": "EAutoReceiveInput::Player0"
	}`))
	bp, _ := env.Engine.Blueprint("Hero")
	qualified := bp.Defaults["AutoPossessPlayer"]

	// Bare form lands on the same stored value.
	env.call(t, "set_pawn_properties", jsonParams(t, `{
		"blueprint_name": "Hero",
		"auto_possess_player": "Player0"
	}`))
	if bp.Defaults["AutoPossessPlayer"] != qualified {
		t.Errorf("qualified %v != bare %v", qualified, bp.Defaults["AutoPossessPlayer"])
	}

	err := env.callErr(t, "set_pawn_properties", jsonParams(t, `{
		"blueprint_name": "Hero",
		"auto_possess_player": "PlayerNine"
	}`))
	if !errors.Is(err, ErrInvalidEnumValue) {
		t.Errorf("err = %v, want ErrInvalidEnumValue", err)
	}
}

func TestSetPawnPropertiesRejectsNonPawn(t *testing.T) {
	env := newIsolatedEnv(t)
	env.call(t, "create_blueprint", jsonParams(t, `{"name": "Door"}`))
	err := env.callErr(t, "set_pawn_properties", jsonParams(t, `{
		"blueprint_name": "Door", "can_be_damaged": false
	}`))
	if !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("err = %v, want ErrTypeMismatch", err)
	}
}

func TestSpawnBlueprintActor(t *testing.T) {
	env := newIsolatedEnv(t)
	env.call(t, "create_blueprint", jsonParams(t, `{"name": "Door"}`))
	env.call(t, "set_blueprint_property", jsonParams(t, `{
		"blueprint_name": "Door",
		"property_name":  "bHidden",
		"property_value": true
	}`))
	res := env.call(t, "spawn_blueprint_actor", jsonParams(t, `{
		"blueprint_name": "Door", "actor_name": "Door_1", "location": [0, 0, 100]
	}`))
	actor := res["actor"].(map[string]any)
	if actor["class"] != "Door_C" {
		t.Errorf("spawned class = %v", actor["class"])
	}
	a := env.Engine.World().FindActor("Door_1")
	if a.Properties["bHidden"] != true {
		t.Error("spawned actor did not inherit blueprint defaults")
	}
}

func TestAddBlueprintVariable(t *testing.T) {
	env := newIsolatedEnv(t)
	env.call(t, "create_blueprint", jsonParams(t, `{"name": "Counter"}`))
	env.call(t, "add_blueprint_variable", jsonParams(t, `{
		"blueprint_name": "Counter",
		"variable_name":  "Count",
		"variable_type":  "Integer",
		"is_exposed":     true
	}`))

	bp, _ := env.Engine.Blueprint("Counter")
	v := bp.FindVariable("Count")
	if v == nil || !v.Exposed {
		t.Fatalf("variable = %+v", v)
	}

	err := env.callErr(t, "add_blueprint_variable", jsonParams(t, `{
		"blueprint_name": "Counter",
		"variable_name":  "Bad",
		"variable_type":  "Quaternion"
	}`))
	if !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("err = %v, want ErrTypeMismatch", err)
	}
}

// ---------------------------------------------------------------------------
// Graph commands end to end
// ---------------------------------------------------------------------------

func TestGraphCommandsEndToEnd(t *testing.T) {
	env := newIsolatedEnv(t)
	env.call(t, "create_blueprint", jsonParams(t, `{"name": "Door"}`))

	ev := env.call(t, "add_blueprint_event_node", jsonParams(t, `{
		"blueprint_name": "Door", "event_type": "BeginPlay"
	}`))
	fn := env.call(t, "add_blueprint_function_node", jsonParams(t, `{
		"blueprint_name": "Door",
		"function_name":  "PrintString",
		"params":         {"InString": "opened"}
	}`))

	env.call(t, "connect_blueprint_nodes", Params{
		"blueprint_name": "Door",
		"source_node_id": ev["node_id"],
		"source_pin":     "then",
		"target_node_id": fn["node_id"],
		"target_pin":     "execute",
	})

	res := env.call(t, "find_blueprint_nodes", jsonParams(t, `{
		"blueprint_name": "Door", "node_type": "Event", "event_type": "BeginPlay"
	}`))
	nodes := res["nodes"].([]map[string]any)
	if len(nodes) != 1 {
		t.Fatalf("%d BeginPlay nodes, want 1", len(nodes))
	}
	if nodes[0]["node_id"] != ev["node_id"] {
		t.Error("found node id does not match created node")
	}
}

func TestConnectCommandRejection(t *testing.T) {
	env := newIsolatedEnv(t)
	env.call(t, "create_blueprint", jsonParams(t, `{"name": "Door"}`))
	ev := env.call(t, "add_blueprint_event_node", jsonParams(t, `{
		"blueprint_name": "Door", "event_type": "Tick"
	}`))
	fn := env.call(t, "add_blueprint_function_node", jsonParams(t, `{
		"blueprint_name": "Door", "function_name": "PrintString"
	}`))

	err := env.callErr(t, "connect_blueprint_nodes", Params{
		"blueprint_name": "Door",
		"source_node_id": ev["node_id"],
		"source_pin":     "DeltaSeconds",
		"target_node_id": fn["node_id"],
		"target_pin":     "InString",
	})
	if !errors.Is(err, ErrConnectionRejected) {
		t.Errorf("err = %v, want ErrConnectionRejected", err)
	}
}

func TestSelfAndComponentReferenceNodes(t *testing.T) {
	env := newIsolatedEnv(t)
	env.call(t, "create_blueprint", jsonParams(t, `{"name": "Door"}`))
	env.call(t, "add_component_to_blueprint", jsonParams(t, `{
		"blueprint_name": "Door",
		"component_type": "StaticMeshComponent",
		"component_name": "Mesh"
	}`))

	env.call(t, "add_blueprint_self_reference", jsonParams(t, `{"blueprint_name": "Door"}`))
	env.call(t, "add_blueprint_get_component_node", jsonParams(t, `{
		"blueprint_name": "Door", "component_name": "Mesh"
	}`))
	env.call(t, "add_blueprint_get_self_component_reference", jsonParams(t, `{
		"blueprint_name": "Door", "component_name": "Mesh"
	}`))

	res := env.call(t, "find_blueprint_nodes", jsonParams(t, `{
		"blueprint_name": "Door", "node_type": "Variable"
	}`))
	if got := len(res["nodes"].([]map[string]any)); got != 2 {
		t.Errorf("%d variable nodes, want 2", got)
	}
}

// ---------------------------------------------------------------------------
// Input mappings
// ---------------------------------------------------------------------------

func TestCreateInputMapping(t *testing.T) {
	env := newIsolatedEnv(t)
	env.call(t, "create_input_mapping", jsonParams(t, `{
		"action_name": "Jump", "key": "SpaceBar", "input_type": "Action"
	}`))
	if !env.Engine.Inputs().HasAction("Jump") {
		t.Error("action mapping not recorded")
	}

	// Exact duplicate: success=false, not an error.
	res := env.call(t, "create_input_mapping", jsonParams(t, `{
		"action_name": "Jump", "key": "SpaceBar", "input_type": "Action"
	}`))
	if res["success"] != false {
		t.Errorf("duplicate mapping: %v", res)
	}

	env.call(t, "create_input_mapping", jsonParams(t, `{
		"action_name": "MoveForward", "key": "W", "input_type": "Axis", "scale": 1.0
	}`))
	if len(env.Engine.Inputs().Axes) != 1 {
		t.Error("axis mapping not recorded")
	}
}
