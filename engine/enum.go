package engine

import "fmt"

// Enum describes a named enumeration type with an ordered member list.
type Enum struct {
	Name    string
	Members []EnumMember
}

// EnumMember pairs a member name with its numeric value.
type EnumMember struct {
	Name  string
	Value int64
}

// ByName looks up a member by its short name (no type qualifier).
func (e *Enum) ByName(name string) (EnumMember, bool) {
	for _, m := range e.Members {
		if m.Name == name {
			return m, true
		}
	}
	return EnumMember{}, false
}

// ByValue looks up a member by numeric value.
func (e *Enum) ByValue(v int64) (EnumMember, bool) {
	for _, m := range e.Members {
		if m.Value == v {
			return m, true
		}
	}
	return EnumMember{}, false
}

// MemberNames returns the member names in declaration order.
func (e *Enum) MemberNames() []string {
	names := make([]string, len(e.Members))
	for i, m := range e.Members {
		names[i] = m.Name
	}
	return names
}

func (e *Enum) String() string {
	return fmt.Sprintf("enum %s (%d members)", e.Name, len(e.Members))
}

// AutoReceiveInput is the enum behind Pawn.AutoPossessPlayer.
var AutoReceiveInput = &Enum{
	Name: "EAutoReceiveInput",
	Members: []EnumMember{
		{Name: "Disabled", Value: 0},
		{Name: "Player0", Value: 1},
		{Name: "Player1", Value: 2},
		{Name: "Player2", Value: 3},
		{Name: "Player3", Value: 4},
		{Name: "Player4", Value: 5},
		{Name: "Player5", Value: 6},
		{Name: "Player6", Value: 7},
		{Name: "Player7", Value: 8},
	},
}

// CollisionEnabled mirrors the collision-mode enum on primitive components.
var CollisionEnabled = &Enum{
	Name: "ECollisionEnabled",
	Members: []EnumMember{
		{Name: "NoCollision", Value: 0},
		{Name: "QueryOnly", Value: 1},
		{Name: "PhysicsOnly", Value: 2},
		{Name: "QueryAndPhysics", Value: 3},
	},
}
