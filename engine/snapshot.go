package engine

import (
	"fmt"
	"os"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
)

// Canonical encoding keeps snapshots of identical state byte-identical.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("engine: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Snapshot is the serializable projection of engine state: the level,
// the blueprint assets and the input settings. The builtin class
// registry is not captured; it is reseeded on load.
type Snapshot struct {
	Actors     []snapActor     `cbor:"1,keyasint"`
	Blueprints []snapBlueprint `cbor:"2,keyasint"`
	Actions    []ActionMapping `cbor:"3,keyasint"`
	Axes       []AxisMapping   `cbor:"4,keyasint"`
}

type snapActor struct {
	Label      string         `cbor:"1,keyasint"`
	Path       string         `cbor:"2,keyasint"`
	Class      string         `cbor:"3,keyasint"`
	Transform  Transform      `cbor:"4,keyasint"`
	Properties map[string]any `cbor:"5,keyasint"`
}

type snapBlueprint struct {
	Name        string              `cbor:"1,keyasint"`
	AssetPath   string              `cbor:"2,keyasint"`
	ParentClass string              `cbor:"3,keyasint"`
	Components  []ComponentTemplate `cbor:"4,keyasint"`
	Variables   []Variable          `cbor:"5,keyasint"`
	Defaults    map[string]any      `cbor:"6,keyasint"`
	Graph       snapGraph           `cbor:"7,keyasint"`
	Dirty       bool                `cbor:"8,keyasint"`
}

type snapGraph struct {
	Name  string     `cbor:"1,keyasint"`
	Nodes []snapNode `cbor:"2,keyasint"`
}

type snapNode struct {
	ID          string    `cbor:"1,keyasint"`
	Kind        string    `cbor:"2,keyasint"`
	Title       string    `cbor:"3,keyasint"`
	PosX        float64   `cbor:"4,keyasint"`
	PosY        float64   `cbor:"5,keyasint"`
	Member      string    `cbor:"6,keyasint"`
	TargetClass string    `cbor:"7,keyasint"`
	Pins        []snapPin `cbor:"8,keyasint"`
}

type snapPin struct {
	Name        string   `cbor:"1,keyasint"`
	DisplayName string   `cbor:"2,keyasint"`
	Direction   int      `cbor:"3,keyasint"`
	Type        string   `cbor:"4,keyasint"`
	Default     string   `cbor:"5,keyasint"`
	Links       []string `cbor:"6,keyasint"`
}

// TakeSnapshot captures the current engine state.
func (e *Engine) TakeSnapshot() *Snapshot {
	s := &Snapshot{
		Actions: append([]ActionMapping{}, e.inputs.Actions...),
		Axes:    append([]AxisMapping{}, e.inputs.Axes...),
	}
	for _, a := range e.world.Actors() {
		s.Actors = append(s.Actors, snapActor{
			Label: a.Label, Path: a.Path, Class: a.Class,
			Transform: a.Transform, Properties: a.Properties,
		})
	}
	for _, b := range e.Blueprints() {
		sb := snapBlueprint{
			Name:        b.Name,
			AssetPath:   b.AssetPath,
			ParentClass: b.ParentClass,
			Defaults:    b.Defaults,
			Dirty:       b.Dirty(),
			Graph:       snapGraph{Name: b.EventGraph.Name},
		}
		for _, c := range b.Components {
			sb.Components = append(sb.Components, *c)
		}
		for _, v := range b.Variables {
			sb.Variables = append(sb.Variables, *v)
		}
		for _, n := range b.EventGraph.Nodes {
			sn := snapNode{
				ID: n.ID.String(), Kind: string(n.Kind), Title: n.Title,
				PosX: n.PosX, PosY: n.PosY,
				Member: n.Member, TargetClass: n.TargetClass,
			}
			for _, p := range n.Pins {
				sn.Pins = append(sn.Pins, snapPin{
					Name: p.Name, DisplayName: p.DisplayName,
					Direction: int(p.Direction), Type: string(p.Type),
					Default: p.Default, Links: p.Links,
				})
			}
			sb.Graph.Nodes = append(sb.Graph.Nodes, sn)
		}
		s.Blueprints = append(s.Blueprints, sb)
	}
	return s
}

// RestoreSnapshot replaces the engine's level, blueprints and input
// settings with the snapshot's contents. Compiled views are rebuilt
// for every non-dirty blueprint.
func (e *Engine) RestoreSnapshot(s *Snapshot) error {
	e.world = &World{}
	e.blueprints = make(map[string]*Blueprint)
	e.bpOrder = nil
	e.inputs = &InputSettings{
		Actions: append([]ActionMapping{}, s.Actions...),
		Axes:    append([]AxisMapping{}, s.Axes...),
	}

	for _, sb := range s.Blueprints {
		b := NewBlueprint(sb.Name, sb.AssetPath, sb.ParentClass)
		for i := range sb.Components {
			c := sb.Components[i]
			b.Components = append(b.Components, &c)
		}
		for i := range sb.Variables {
			v := sb.Variables[i]
			b.Variables = append(b.Variables, &v)
		}
		b.Defaults = sb.Defaults
		if b.Defaults == nil {
			b.Defaults = make(map[string]any)
		}
		for _, sn := range sb.Graph.Nodes {
			id, err := uuid.Parse(sn.ID)
			if err != nil {
				return fmt.Errorf("snapshot: bad node id %q: %w", sn.ID, err)
			}
			n := &Node{
				ID: id, Kind: NodeKind(sn.Kind), Title: sn.Title,
				PosX: sn.PosX, PosY: sn.PosY,
				Member: sn.Member, TargetClass: sn.TargetClass,
			}
			for _, sp := range sn.Pins {
				p := &Pin{
					Name: sp.Name, DisplayName: sp.DisplayName,
					Direction: PinDirection(sp.Direction), Type: PinType(sp.Type),
					Default: sp.Default, Links: sp.Links,
					owner: n,
				}
				n.Pins = append(n.Pins, p)
			}
			b.EventGraph.Nodes = append(b.EventGraph.Nodes, n)
		}
		e.blueprints[sb.Name] = b
		e.bpOrder = append(e.bpOrder, sb.Name)
		if !sb.Dirty {
			b.Compile(e)
		}
	}

	for _, sa := range s.Actors {
		props := sa.Properties
		if props == nil {
			props = make(map[string]any)
		}
		e.world.actors = append(e.world.actors, &Actor{
			Label: sa.Label, Path: sa.Path, Class: sa.Class,
			Transform: sa.Transform, Properties: props,
		})
	}
	return nil
}

// MarshalSnapshot serializes a snapshot to canonical CBOR bytes.
func MarshalSnapshot(s *Snapshot) ([]byte, error) {
	return cborEncMode.Marshal(s)
}

// UnmarshalSnapshot deserializes a snapshot from CBOR bytes.
func UnmarshalSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := cbor.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("engine: unmarshal snapshot: %w", err)
	}
	return &s, nil
}

// SaveSnapshot writes the engine state to a file.
func (e *Engine) SaveSnapshot(path string) error {
	data, err := MarshalSnapshot(e.TakeSnapshot())
	if err != nil {
		return fmt.Errorf("engine: marshal snapshot: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadSnapshot reads engine state from a file written by SaveSnapshot.
func (e *Engine) LoadSnapshot(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("engine: read snapshot: %w", err)
	}
	s, err := UnmarshalSnapshot(data)
	if err != nil {
		return err
	}
	return e.RestoreSnapshot(s)
}
