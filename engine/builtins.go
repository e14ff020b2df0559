package engine

// seedBuiltins installs the engine class registry: the actor and
// component hierarchy plus the static utility libraries graphs can
// call into. Paths follow the /Script/Engine.<Name> convention.
func (e *Engine) seedBuiltins() {
	execInOut := []PinSpec{
		{Name: "execute", Type: PinExec, Direction: PinInput},
		{Name: "then", Type: PinExec, Direction: PinOutput},
	}
	fn := func(name string, static bool, params ...PinSpec) FunctionDescriptor {
		return FunctionDescriptor{Name: name, Static: static, Params: append(append([]PinSpec{}, execInOut...), params...)}
	}
	in := func(name string, t PinType) PinSpec {
		return PinSpec{Name: name, Type: t, Direction: PinInput}
	}
	out := func(name string, t PinType) PinSpec {
		return PinSpec{Name: name, Type: t, Direction: PinOutput}
	}

	classes := []*ClassDescriptor{
		{
			Name: "Object", Path: "/Script/CoreUObject.Object",
		},
		{
			Name: "Actor", Path: "/Script/Engine.Actor", Parent: "Object",
			Properties: []PropertyDescriptor{
				{Name: "bHidden", Kind: KindBool, Default: false},
				{Name: "bCanBeDamaged", Kind: KindBool, Default: true},
				{Name: "InitialLifeSpan", Kind: KindFloat, Default: 0.0},
				{Name: "Tags", Kind: KindName, Default: ""},
			},
			Functions: []FunctionDescriptor{
				fn("SetActorLocation", false, in("NewLocation", PinVector)),
				fn("GetActorLocation", false, out("ReturnValue", PinVector)),
				fn("SetActorRotation", false, in("NewRotation", PinRotator)),
				fn("SetActorScale3D", false, in("NewScale3D", PinVector)),
				fn("DestroyActor", false),
				fn("SetActorHiddenInGame", false, in("bNewHidden", PinBool)),
			},
		},
		{
			Name: "Pawn", Path: "/Script/Engine.Pawn", Parent: "Actor",
			Properties: []PropertyDescriptor{
				{Name: "AutoPossessPlayer", Kind: KindEnum, Enum: AutoReceiveInput, Default: "Disabled"},
				{Name: "bUseControllerRotationYaw", Kind: KindBool, Default: false},
				{Name: "bUseControllerRotationPitch", Kind: KindBool, Default: false},
				{Name: "bUseControllerRotationRoll", Kind: KindBool, Default: false},
			},
			Functions: []FunctionDescriptor{
				fn("AddMovementInput", false, in("WorldDirection", PinVector), in("ScaleValue", PinFloat)),
				fn("AddControllerYawInput", false, in("Val", PinFloat)),
				fn("AddControllerPitchInput", false, in("Val", PinFloat)),
			},
		},
		{
			Name: "Character", Path: "/Script/Engine.Character", Parent: "Pawn",
			Properties: []PropertyDescriptor{
				{Name: "JumpMaxCount", Kind: KindInt, Default: int64(1)},
			},
			Functions: []FunctionDescriptor{
				fn("Jump", false),
				fn("StopJumping", false),
			},
		},
		{
			Name: "StaticMeshActor", Path: "/Script/Engine.StaticMeshActor", Parent: "Actor",
		},
		{
			Name: "CameraActor", Path: "/Script/Engine.CameraActor", Parent: "Actor",
		},
		{
			Name: "Light", Path: "/Script/Engine.Light", Parent: "Actor",
			Properties: []PropertyDescriptor{
				{Name: "Intensity", Kind: KindFloat, Default: 5000.0},
				{Name: "CastShadows", Kind: KindBool, Default: true},
			},
		},
		{Name: "DirectionalLight", Path: "/Script/Engine.DirectionalLight", Parent: "Light"},
		{Name: "PointLight", Path: "/Script/Engine.PointLight", Parent: "Light",
			Properties: []PropertyDescriptor{
				{Name: "AttenuationRadius", Kind: KindFloat, Default: 1000.0},
			},
		},
		{Name: "SpotLight", Path: "/Script/Engine.SpotLight", Parent: "Light"},
		{
			Name: "PlayerController", Path: "/Script/Engine.PlayerController", Parent: "Actor",
			Functions: []FunctionDescriptor{
				fn("SetInputModeGameOnly", false),
				fn("EnableInput", false, in("PlayerController", PinObject)),
			},
		},

		{
			Name: "ActorComponent", Path: "/Script/Engine.ActorComponent", Parent: "Object",
			Properties: []PropertyDescriptor{
				{Name: "bAutoActivate", Kind: KindBool, Default: true},
				{Name: "ComponentTags", Kind: KindName, Default: ""},
			},
			Functions: []FunctionDescriptor{
				fn("Activate", false),
				fn("Deactivate", false),
			},
		},
		{
			Name: "SceneComponent", Path: "/Script/Engine.SceneComponent", Parent: "ActorComponent",
			Properties: []PropertyDescriptor{
				{Name: "RelativeLocation", Kind: KindStruct, StructName: "Vector"},
				{Name: "RelativeRotation", Kind: KindStruct, StructName: "Rotator"},
				{Name: "RelativeScale3D", Kind: KindStruct, StructName: "Vector", Default: []float64{1, 1, 1}},
				{Name: "bVisible", Kind: KindBool, Default: true},
			},
			Functions: []FunctionDescriptor{
				fn("SetRelativeLocation", false, in("NewLocation", PinVector)),
				fn("SetVisibility", false, in("bNewVisibility", PinBool)),
			},
		},
		{
			Name: "PrimitiveComponent", Path: "/Script/Engine.PrimitiveComponent", Parent: "SceneComponent",
			Properties: []PropertyDescriptor{
				{Name: "bSimulatePhysics", Kind: KindBool, Default: false},
				{Name: "bEnableGravity", Kind: KindBool, Default: true},
				{Name: "Mass", Kind: KindFloat, Default: 100.0},
				{Name: "LinearDamping", Kind: KindFloat, Default: 0.01},
				{Name: "AngularDamping", Kind: KindFloat, Default: 0.0},
				{Name: "CollisionEnabled", Kind: KindEnum, Enum: CollisionEnabled, Default: "QueryAndPhysics"},
			},
			Functions: []FunctionDescriptor{
				fn("SetSimulatePhysics", false, in("bSimulate", PinBool)),
				fn("AddImpulse", false, in("Impulse", PinVector)),
				fn("SetEnableGravity", false, in("bGravityEnabled", PinBool)),
			},
		},
		{
			Name: "StaticMeshComponent", Path: "/Script/Engine.StaticMeshComponent", Parent: "PrimitiveComponent",
			Properties: []PropertyDescriptor{
				{Name: "StaticMesh", Kind: KindObject},
				{Name: "Mobility", Kind: KindName, Default: "Movable"},
			},
			Functions: []FunctionDescriptor{
				fn("SetStaticMesh", false, in("NewMesh", PinObject), out("ReturnValue", PinBool)),
			},
		},
		{Name: "BoxComponent", Path: "/Script/Engine.BoxComponent", Parent: "PrimitiveComponent",
			Properties: []PropertyDescriptor{
				{Name: "BoxExtent", Kind: KindStruct, StructName: "Vector", Default: []float64{32, 32, 32}},
			},
		},
		{Name: "SphereComponent", Path: "/Script/Engine.SphereComponent", Parent: "PrimitiveComponent",
			Properties: []PropertyDescriptor{
				{Name: "SphereRadius", Kind: KindFloat, Default: 32.0},
			},
		},
		{
			Name: "CameraComponent", Path: "/Script/Engine.CameraComponent", Parent: "SceneComponent",
			Properties: []PropertyDescriptor{
				{Name: "FieldOfView", Kind: KindFloat, Default: 90.0},
				{Name: "bConstrainAspectRatio", Kind: KindBool, Default: false},
				{Name: "AspectRatio", Kind: KindFloat, Default: 1.777778},
			},
		},

		// Static utility libraries, searched by graphs when a call
		// target names no component or class.
		{
			Name: "GameplayStatics", Path: "/Script/Engine.GameplayStatics", Parent: "Object",
			Functions: []FunctionDescriptor{
				fn("GetPlayerController", true, in("PlayerIndex", PinInt), out("ReturnValue", PinObject)),
				fn("GetPlayerPawn", true, in("PlayerIndex", PinInt), out("ReturnValue", PinObject)),
				fn("GetPlayerCharacter", true, in("PlayerIndex", PinInt), out("ReturnValue", PinObject)),
				fn("GetAllActorsOfClass", true, in("ActorClass", PinClass), out("OutActors", PinObject)),
			},
		},
		{
			Name: "KismetSystemLibrary", Path: "/Script/Engine.KismetSystemLibrary", Parent: "Object",
			Functions: []FunctionDescriptor{
				fn("PrintString", true, in("InString", PinString)),
				fn("Delay", true, in("Duration", PinFloat)),
				fn("QuitGame", true),
			},
		},
		{
			Name: "KismetMathLibrary", Path: "/Script/Engine.KismetMathLibrary", Parent: "Object",
			Functions: []FunctionDescriptor{
				fn("RandomFloatInRange", true, in("Min", PinFloat), in("Max", PinFloat), out("ReturnValue", PinFloat)),
				fn("Clamp", true, in("Value", PinInt), in("Min", PinInt), in("Max", PinInt), out("ReturnValue", PinInt)),
				fn("MakeVector", true, in("X", PinFloat), in("Y", PinFloat), in("Z", PinFloat), out("ReturnValue", PinVector)),
			},
		},
	}

	for _, c := range classes {
		e.classes[c.Name] = c
	}
}

// UtilityClasses lists the static libraries searched during function
// target resolution, in search order.
func (e *Engine) UtilityClasses() []*ClassDescriptor {
	var out []*ClassDescriptor
	for _, name := range []string{"GameplayStatics", "KismetSystemLibrary", "KismetMathLibrary"} {
		if c, ok := e.classes[name]; ok {
			out = append(out, c)
		}
	}
	return out
}
