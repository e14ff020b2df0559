package engine

import "strings"

// PropertyKind enumerates the property representations the mutator
// understands. The set is closed: code switching over it handles every
// kind explicitly.
type PropertyKind int

const (
	KindBool PropertyKind = iota
	KindInt
	KindFloat
	KindString
	KindName
	KindEnum
	KindStruct
	KindObject
)

func (k PropertyKind) String() string {
	switch k {
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindName:
		return "Name"
	case KindEnum:
		return "Enum"
	case KindStruct:
		return "Struct"
	case KindObject:
		return "Object"
	}
	return "Unknown"
}

// PropertyDescriptor describes one reflected property on a class.
type PropertyDescriptor struct {
	Name string
	Kind PropertyKind

	// Enum is set when Kind is KindEnum.
	Enum *Enum

	// StructName is set when Kind is KindStruct ("Vector", "Rotator", ...).
	StructName string

	// Default seeds new property bags.
	Default any
}

// PinSpec describes one parameter pin of a callable function.
type PinSpec struct {
	Name      string
	Display   string
	Type      PinType
	Direction PinDirection
}

// FunctionDescriptor describes a callable function exposed to graphs.
type FunctionDescriptor struct {
	Name   string
	Static bool
	Params []PinSpec
}

// ClassDescriptor is the reflected shape of an engine or generated class.
type ClassDescriptor struct {
	Name       string
	Path       string
	Parent     string
	Properties []PropertyDescriptor
	Functions  []FunctionDescriptor
}

// Property finds a property by exact name.
func (c *ClassDescriptor) Property(name string) (*PropertyDescriptor, bool) {
	for i := range c.Properties {
		if c.Properties[i].Name == name {
			return &c.Properties[i], true
		}
	}
	return nil, false
}

// Function finds a function by name, case-insensitively. Graph editors
// match function names loosely, so the registry does too.
func (c *ClassDescriptor) Function(name string) (*FunctionDescriptor, bool) {
	for i := range c.Functions {
		if strings.EqualFold(c.Functions[i].Name, name) {
			return &c.Functions[i], true
		}
	}
	return nil, false
}

// IsSubclassOf reports whether c is n or inherits from n, walking the
// parent chain through the registry.
func (e *Engine) IsSubclassOf(c *ClassDescriptor, name string) bool {
	for c != nil {
		if c.Name == name {
			return true
		}
		if c.Parent == "" {
			return false
		}
		c = e.classes[c.Parent]
	}
	return false
}

// SuperclassChain returns the ancestors of c, nearest first.
func (e *Engine) SuperclassChain(c *ClassDescriptor) []*ClassDescriptor {
	var chain []*ClassDescriptor
	for c != nil && c.Parent != "" {
		p, ok := e.classes[c.Parent]
		if !ok {
			break
		}
		chain = append(chain, p)
		c = p
	}
	return chain
}

// PropertyInChain resolves a property on c or any ancestor.
func (e *Engine) PropertyInChain(c *ClassDescriptor, name string) (*PropertyDescriptor, bool) {
	for c != nil {
		if p, ok := c.Property(name); ok {
			return p, true
		}
		c = e.classes[c.Parent]
	}
	return nil, false
}

// FunctionInChain resolves a function on c or any ancestor.
func (e *Engine) FunctionInChain(c *ClassDescriptor, name string) (*FunctionDescriptor, *ClassDescriptor, bool) {
	for c != nil {
		if f, ok := c.Function(name); ok {
			return f, c, true
		}
		c = e.classes[c.Parent]
	}
	return nil, nil, false
}
