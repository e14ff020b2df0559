package engine

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// PinDirection distinguishes input pins from output pins.
type PinDirection int

const (
	PinInput PinDirection = iota
	PinOutput
)

func (d PinDirection) String() string {
	if d == PinOutput {
		return "Output"
	}
	return "Input"
}

// PinType tags what a pin carries. Exec pins sequence control flow;
// the rest carry data.
type PinType string

const (
	PinExec    PinType = "exec"
	PinBool    PinType = "bool"
	PinInt     PinType = "int"
	PinFloat   PinType = "float"
	PinString  PinType = "string"
	PinName    PinType = "name"
	PinVector  PinType = "vector"
	PinRotator PinType = "rotator"
	PinObject  PinType = "object"
	PinClass   PinType = "class"
)

// NodeKind classifies graph nodes for search and display.
type NodeKind string

const (
	NodeEvent       NodeKind = "Event"
	NodeFunction    NodeKind = "Function"
	NodeVariable    NodeKind = "Variable"
	NodeInputAction NodeKind = "InputAction"
	NodeSelf        NodeKind = "Self"
)

// Pin is one connection point on a node.
type Pin struct {
	Name        string
	DisplayName string
	Direction   PinDirection
	Type        PinType
	Default     string

	// Links holds the IDs of pins this pin is connected to, as
	// "<nodeID>:<pinName>".
	Links []string

	owner *Node
}

// Owner returns the node this pin belongs to.
func (p *Pin) Owner() *Node { return p.owner }

// Ref returns the "<nodeID>:<pinName>" form used in link lists.
func (p *Pin) Ref() string {
	return p.owner.ID.String() + ":" + p.Name
}

// Node is one placed node in an event graph.
type Node struct {
	ID    uuid.UUID
	Kind  NodeKind
	Title string
	PosX  float64
	PosY  float64

	// Member carries the bound name: event name, function name,
	// variable name or input action name depending on Kind.
	Member string

	// TargetClass is the class a function node calls into, when any.
	TargetClass string

	Pins []*Pin
}

// AddPin appends a pin and binds it to the node.
func (n *Node) AddPin(name string, dir PinDirection, typ PinType) *Pin {
	p := &Pin{Name: name, Direction: dir, Type: typ, owner: n}
	n.Pins = append(n.Pins, p)
	return p
}

// FindPin locates a pin by name or display name, case-insensitively,
// optionally restricted to one direction. Pass dir < 0 to match either
// direction.
func (n *Node) FindPin(name string, dir PinDirection) *Pin {
	for _, p := range n.Pins {
		if int(dir) >= 0 && p.Direction != dir {
			continue
		}
		if strings.EqualFold(p.Name, name) {
			return p
		}
		if p.DisplayName != "" && strings.EqualFold(p.DisplayName, name) {
			return p
		}
	}
	return nil
}

// anyDirection relaxes the direction filter in FindPin.
const anyDirection = PinDirection(-1)

// FindPinAny locates a pin by name in either direction.
func (n *Node) FindPinAny(name string) *Pin {
	return n.FindPin(name, anyDirection)
}

// Graph is an event graph: a flat node list with pin-to-pin links.
type Graph struct {
	Name  string
	Nodes []*Node
}

// NewNode constructs a node, assigns a fresh ID and places it in the
// graph at the given position. Pins are allocated by the caller after
// placement, matching how the editor wires nodes up.
func (g *Graph) NewNode(kind NodeKind, title string, x, y float64) *Node {
	n := &Node{
		ID:    uuid.New(),
		Kind:  kind,
		Title: title,
		PosX:  x,
		PosY:  y,
	}
	g.Nodes = append(g.Nodes, n)
	return n
}

// FindNode locates a node by its ID string.
func (g *Graph) FindNode(id string) *Node {
	for _, n := range g.Nodes {
		if n.ID.String() == id {
			return n
		}
	}
	return nil
}

// typesCompatible reports whether a value of type src may flow into a
// pin of type dst.
func typesCompatible(src, dst PinType) bool {
	if src == dst {
		return true
	}
	// A class reference satisfies an object input.
	if src == PinClass && dst == PinObject {
		return true
	}
	return false
}

// TryConnect links src to dst, enforcing the one connection rule the
// whole graph uses: src must be an output, dst an input, and the types
// must be compatible. On rejection no link is recorded on either side.
func (g *Graph) TryConnect(src, dst *Pin) error {
	if src.Direction != PinOutput {
		return fmt.Errorf("pin %q on %q is not an output", src.Name, src.owner.Title)
	}
	if dst.Direction != PinInput {
		return fmt.Errorf("pin %q on %q is not an input", dst.Name, dst.owner.Title)
	}
	if !typesCompatible(src.Type, dst.Type) {
		return fmt.Errorf("cannot connect %s pin %q to %s pin %q",
			src.Type, src.Name, dst.Type, dst.Name)
	}
	src.Links = append(src.Links, dst.Ref())
	dst.Links = append(dst.Links, src.Ref())
	return nil
}

// Connected reports whether src links to dst.
func Connected(src, dst *Pin) bool {
	ref := dst.Ref()
	for _, l := range src.Links {
		if l == ref {
			return true
		}
	}
	return false
}
