package engine

import (
	"fmt"
	"strings"
)

// ComponentTemplate is a component entry on a blueprint: what gets
// instantiated on every actor spawned from it.
type ComponentTemplate struct {
	Name       string
	Class      string
	Transform  Transform
	Properties map[string]any
}

// Variable is a member variable on a blueprint.
type Variable struct {
	Name    string
	Type    PinType
	Exposed bool
	Default any
}

// Blueprint is an editable asset: component templates, member
// variables and an event graph, compiled into a generated class with
// a class default object.
type Blueprint struct {
	Name        string
	AssetPath   string
	ParentClass string
	Components  []*ComponentTemplate
	Variables   []*Variable
	EventGraph  *Graph

	// Generated holds the compiled class view; Defaults is its class
	// default object. Both are rebuilt by Compile.
	Generated *ClassDescriptor
	Defaults  map[string]any

	dirty bool
}

// NewBlueprint creates an empty blueprint under the given asset path.
func NewBlueprint(name, assetPath, parentClass string) *Blueprint {
	return &Blueprint{
		Name:        name,
		AssetPath:   assetPath,
		ParentClass: parentClass,
		EventGraph:  &Graph{Name: "EventGraph"},
		Defaults:    make(map[string]any),
		dirty:       true,
	}
}

// MarkModified flags the blueprint as needing recompilation. Every
// structural mutation calls this.
func (b *Blueprint) MarkModified() {
	b.dirty = true
}

// Dirty reports whether the blueprint has uncompiled changes.
func (b *Blueprint) Dirty() bool {
	return b.dirty
}

// FindComponent locates a component template by name. Exact match
// first, then case-insensitive.
func (b *Blueprint) FindComponent(name string) *ComponentTemplate {
	for _, c := range b.Components {
		if c.Name == name {
			return c
		}
	}
	for _, c := range b.Components {
		if strings.EqualFold(c.Name, name) {
			return c
		}
	}
	return nil
}

// AddComponent appends a component template. Component names are
// unique within a blueprint.
func (b *Blueprint) AddComponent(name, class string, t Transform) (*ComponentTemplate, error) {
	if b.FindComponent(name) != nil {
		return nil, fmt.Errorf("component %q already exists on blueprint %q", name, b.Name)
	}
	c := &ComponentTemplate{
		Name:       name,
		Class:      class,
		Transform:  t,
		Properties: make(map[string]any),
	}
	b.Components = append(b.Components, c)
	b.MarkModified()
	return c, nil
}

// FindVariable locates a member variable by name.
func (b *Blueprint) FindVariable(name string) *Variable {
	for _, v := range b.Variables {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// AddVariable appends a member variable.
func (b *Blueprint) AddVariable(name string, typ PinType, exposed bool, def any) (*Variable, error) {
	if b.FindVariable(name) != nil {
		return nil, fmt.Errorf("variable %q already exists on blueprint %q", name, b.Name)
	}
	v := &Variable{Name: name, Type: typ, Exposed: exposed, Default: def}
	b.Variables = append(b.Variables, v)
	b.MarkModified()
	return v, nil
}

// Compile regenerates the blueprint's class view and class default
// object from its templates and variables, then clears the dirty
// flag. Compiling an already-compiled blueprint is a no-op beyond
// rebuilding the same view.
func (b *Blueprint) Compile(e *Engine) {
	gen := &ClassDescriptor{
		Name:   b.Name + "_C",
		Path:   b.AssetPath + "." + b.Name + "_C",
		Parent: b.ParentClass,
	}
	for _, v := range b.Variables {
		gen.Properties = append(gen.Properties, PropertyDescriptor{
			Name:    v.Name,
			Kind:    pinTypeKind(v.Type),
			Default: v.Default,
		})
	}
	b.Generated = gen

	defaults := make(map[string]any)
	for k, v := range b.Defaults {
		defaults[k] = v
	}
	for _, v := range b.Variables {
		if _, ok := defaults[v.Name]; !ok && v.Default != nil {
			defaults[v.Name] = v.Default
		}
	}
	b.Defaults = defaults

	e.registerGenerated(b)
	b.dirty = false
}

// pinTypeKind maps a variable pin type onto the property kind its
// generated property uses.
func pinTypeKind(t PinType) PropertyKind {
	switch t {
	case PinBool:
		return KindBool
	case PinInt:
		return KindInt
	case PinFloat:
		return KindFloat
	case PinString:
		return KindString
	case PinName:
		return KindName
	case PinVector, PinRotator:
		return KindStruct
	case PinObject, PinClass:
		return KindObject
	}
	return KindString
}

// VariablePinType maps the editor's variable type names onto pin
// types. Returns false for names the editor does not offer.
func VariablePinType(name string) (PinType, bool) {
	switch strings.ToLower(name) {
	case "boolean", "bool":
		return PinBool, true
	case "integer", "int":
		return PinInt, true
	case "float", "double":
		return PinFloat, true
	case "string":
		return PinString, true
	case "name":
		return PinName, true
	case "vector":
		return PinVector, true
	case "rotator":
		return PinRotator, true
	}
	return "", false
}
