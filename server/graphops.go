package server

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/veleiro/marionette/engine"
)

// Graph construction follows the editor's node lifecycle: construct
// the node, place it (position, membership, fresh ID), then allocate
// its default pins. Handlers below never hand out half-built nodes.

// standard events and their extra data pins.
var standardEvents = map[string][]engine.PinSpec{
	"BeginPlay":         {},
	"Tick":              {{Name: "DeltaSeconds", Type: engine.PinFloat, Direction: engine.PinOutput}},
	"ActorBeginOverlap": {{Name: "OtherActor", Type: engine.PinObject, Direction: engine.PinOutput}},
	"ActorEndOverlap":   {{Name: "OtherActor", Type: engine.PinObject, Direction: engine.PinOutput}},
}

// addEventNode places an event node for a standard event or a
// parent-class event function. Re-adding an event that already has a
// node returns the existing node; event nodes are unique per graph.
func addEventNode(e *engine.Engine, bp *engine.Blueprint, eventType string, x, y float64) (*engine.Node, bool, error) {
	for _, n := range bp.EventGraph.Nodes {
		if n.Kind == engine.NodeEvent && n.Member == eventType {
			return n, false, nil
		}
	}

	extra, std := standardEvents[eventType]
	if !std {
		// Fall back to an event function declared on the parent chain.
		parent, ok := e.Class(bp.ParentClass)
		if !ok {
			return nil, false, notFound("class", bp.ParentClass)
		}
		fn, _, found := e.FunctionInChain(parent, eventType)
		if !found {
			return nil, false, notFound("event", eventType)
		}
		for _, p := range fn.Params {
			if p.Type != engine.PinExec && p.Direction == engine.PinInput {
				// Event versions of functions surface inputs as data outputs.
				extra = append(extra, engine.PinSpec{Name: p.Name, Type: p.Type, Direction: engine.PinOutput})
			}
		}
	}

	n := bp.EventGraph.NewNode(engine.NodeEvent, "Event "+eventType, x, y)
	n.Member = eventType
	n.AddPin("then", engine.PinOutput, engine.PinExec)
	for _, p := range extra {
		n.AddPin(p.Name, p.Direction, p.Type)
	}
	bp.MarkModified()
	return n, true, nil
}

// addInputActionNode places an input action event node. The action
// does not have to be mapped yet; unmapped actions are a project
// settings concern, not a graph error.
func addInputActionNode(bp *engine.Blueprint, action string, x, y float64) *engine.Node {
	n := bp.EventGraph.NewNode(engine.NodeInputAction, "InputAction "+action, x, y)
	n.Member = action
	n.AddPin("Pressed", engine.PinOutput, engine.PinExec)
	n.AddPin("Released", engine.PinOutput, engine.PinExec)
	bp.MarkModified()
	return n
}

// addSelfNode places a self-reference node.
func addSelfNode(bp *engine.Blueprint, x, y float64) *engine.Node {
	n := bp.EventGraph.NewNode(engine.NodeSelf, "Self", x, y)
	p := n.AddPin("self", engine.PinOutput, engine.PinObject)
	p.DisplayName = "Self"
	bp.MarkModified()
	return n
}

// addComponentGetNode places a variable-get node for a component on
// the blueprint.
func addComponentGetNode(bp *engine.Blueprint, componentName string, x, y float64) (*engine.Node, error) {
	c := bp.FindComponent(componentName)
	if c == nil {
		return nil, notFound("component", componentName)
	}
	n := bp.EventGraph.NewNode(engine.NodeVariable, "Get "+c.Name, x, y)
	n.Member = c.Name
	n.TargetClass = c.Class
	p := n.AddPin(c.Name, engine.PinOutput, engine.PinObject)
	p.DisplayName = c.Name
	bp.MarkModified()
	return n, nil
}

// functionTarget is a resolved call target: the function plus the
// class it was found on, and the component the call goes through when
// the target named one.
type functionTarget struct {
	fn        *engine.FunctionDescriptor
	class     *engine.ClassDescriptor
	component string
}

// resolveFunctionTarget finds the function a call node binds to. The
// layers are tried in order: the blueprint itself, the static utility
// libraries, a class named by target, a component named by target,
// the parent superclass chain, casing variants of component class
// names, and finally a scan of every registered class.
func resolveFunctionTarget(e *engine.Engine, bp *engine.Blueprint, target, functionName string) (functionTarget, error) {
	parent, _ := e.Class(bp.ParentClass)

	// Self: the blueprint's own class chain.
	if target == "" || strings.EqualFold(target, "self") {
		if parent != nil {
			if fn, cls, ok := e.FunctionInChain(parent, functionName); ok {
				return functionTarget{fn: fn, class: cls}, nil
			}
		}
	}

	// Static utility libraries.
	for _, util := range e.UtilityClasses() {
		if target == "" || strings.EqualFold(target, util.Name) {
			if fn, ok := util.Function(functionName); ok {
				return functionTarget{fn: fn, class: util}, nil
			}
		}
	}

	if target != "" && !strings.EqualFold(target, "self") {
		// A class named directly.
		if cls, err := resolveClass(e, target); err == nil {
			if fn, found, ok := e.FunctionInChain(cls, functionName); ok {
				return functionTarget{fn: fn, class: found}, nil
			}
		}

		// A component on this blueprint.
		if c := bp.FindComponent(target); c != nil {
			if cls, ok := e.Class(c.Class); ok {
				if fn, found, ok := e.FunctionInChain(cls, functionName); ok {
					return functionTarget{fn: fn, class: found, component: c.Name}, nil
				}
			}
		}
	}

	// The parent superclass chain, even for a named target; editors
	// accept loosely-targeted calls to inherited functions.
	if parent != nil {
		for _, cls := range e.SuperclassChain(parent) {
			if fn, ok := cls.Function(functionName); ok {
				return functionTarget{fn: fn, class: cls}, nil
			}
		}
	}

	// Component class casing variants: "StaticMeshComponent" spelled
	// however the client likes.
	if target != "" {
		for _, name := range e.ClassNames() {
			if strings.EqualFold(name, target) {
				if cls, ok := e.Class(name); ok {
					if fn, found, ok := e.FunctionInChain(cls, functionName); ok {
						return functionTarget{fn: fn, class: found}, nil
					}
				}
			}
		}
	}

	// Global scope: any class that declares the function.
	for _, name := range e.ClassNames() {
		if cls, ok := e.Class(name); ok {
			if fn, ok := cls.Function(functionName); ok {
				return functionTarget{fn: fn, class: cls}, nil
			}
		}
	}

	return functionTarget{}, notFound("function", functionName)
}

// addFunctionNode places a call node for the resolved target and
// applies param literals to matching input pins.
func addFunctionNode(e *engine.Engine, bp *engine.Blueprint, target, functionName string, params map[string]any, x, y float64) (*engine.Node, error) {
	ft, err := resolveFunctionTarget(e, bp, target, functionName)
	if err != nil {
		return nil, err
	}

	n := bp.EventGraph.NewNode(engine.NodeFunction, ft.fn.Name, x, y)
	n.Member = ft.fn.Name
	n.TargetClass = ft.class.Name

	if !ft.fn.Static {
		p := n.AddPin("self", engine.PinInput, engine.PinObject)
		p.DisplayName = "Target"
	}
	for _, spec := range ft.fn.Params {
		p := n.AddPin(spec.Name, spec.Direction, spec.Type)
		p.DisplayName = spec.Display
	}

	if err := applyParamLiterals(e, n, params); err != nil {
		return nil, err
	}
	bp.MarkModified()
	return n, nil
}

// applyParamLiterals sets pin defaults from a params object. Params
// that match no input pin are ignored; a partially-specified call is
// normal while a graph is being built up.
func applyParamLiterals(e *engine.Engine, n *engine.Node, params map[string]any) error {
	for name, value := range params {
		pin := n.FindPin(name, engine.PinInput)
		if pin == nil {
			log.Debugf("node %s: no input pin matches param %q", n.Title, name)
			continue
		}
		def, err := literalFor(e, pin, name, value)
		if err != nil {
			return err
		}
		pin.Default = def
	}
	return nil
}

// literalFor renders a JSON param value as a pin default literal.
func literalFor(e *engine.Engine, pin *engine.Pin, name string, value any) (string, error) {
	switch v := value.(type) {
	case bool:
		if v {
			return "true", nil
		}
		return "false", nil

	case string:
		// Class pins take a resolved class reference, not the raw
		// spelling the client used.
		if pin.Type == engine.PinClass {
			cls, err := resolveClass(e, v)
			if err != nil {
				return "", err
			}
			return cls.Path, nil
		}
		return v, nil

	case []any:
		// 3- and 4-element arrays pack into struct literals.
		if len(v) == 3 || len(v) == 4 {
			return packVectorLiteral(pin, v)
		}
		return "", typeMismatch(name, "a 3- or 4-element array", value)

	default:
		f, ok := asFloat(value)
		if !ok {
			return "", typeMismatch(name, "a literal value", value)
		}
		// Index-like pins take integral literals.
		if pin.Type == engine.PinInt || strings.EqualFold(pin.Name, "PlayerIndex") {
			return strconv.FormatInt(int64(f), 10), nil
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	}
}

// packVectorLiteral renders an array as the packed struct form pin
// defaults use.
func packVectorLiteral(pin *engine.Pin, arr []any) (string, error) {
	nums := make([]float64, len(arr))
	for i, elem := range arr {
		f, ok := asFloat(elem)
		if !ok {
			return "", typeMismatch(pin.Name, "an array of numbers", elem)
		}
		nums[i] = f
	}
	switch {
	case pin.Type == engine.PinRotator:
		return fmt.Sprintf("(Pitch=%g,Yaw=%g,Roll=%g)", nums[0], nums[1], nums[2]), nil
	case len(nums) == 4:
		return fmt.Sprintf("(X=%g,Y=%g,Z=%g,W=%g)", nums[0], nums[1], nums[2], nums[3]), nil
	default:
		return fmt.Sprintf("(X=%g,Y=%g,Z=%g)", nums[0], nums[1], nums[2]), nil
	}
}

// connectNodes links a source output pin to a target input pin,
// delegating the actual rule to the graph.
func connectNodes(bp *engine.Blueprint, sourceNodeID, sourcePin, targetNodeID, targetPin string) error {
	src := bp.EventGraph.FindNode(sourceNodeID)
	if src == nil {
		return notFound("source node", sourceNodeID)
	}
	dst := bp.EventGraph.FindNode(targetNodeID)
	if dst == nil {
		return notFound("target node", targetNodeID)
	}
	sp := src.FindPin(sourcePin, engine.PinOutput)
	if sp == nil {
		return notFound("source pin", sourcePin)
	}
	dp := dst.FindPin(targetPin, engine.PinInput)
	if dp == nil {
		return notFound("target pin", targetPin)
	}
	if err := bp.EventGraph.TryConnect(sp, dp); err != nil {
		return fmt.Errorf("%w: %v", ErrConnectionRejected, err)
	}
	bp.MarkModified()
	return nil
}

// nodeDescriptor is the wire shape of a found node.
func nodeDescriptor(n *engine.Node) map[string]any {
	pins := make([]map[string]any, 0, len(n.Pins))
	for _, p := range n.Pins {
		pins = append(pins, map[string]any{
			"name":      p.Name,
			"direction": p.Direction.String(),
			"type":      string(p.Type),
		})
	}
	return map[string]any{
		"node_id":  n.ID.String(),
		"type":     string(n.Kind),
		"title":    n.Title,
		"member":   n.Member,
		"position": []float64{n.PosX, n.PosY},
		"pins":     pins,
	}
}

// findNodes filters a blueprint's graph by node type and, for event
// nodes, by event name.
func findNodes(bp *engine.Blueprint, nodeType, eventType string) []map[string]any {
	out := []map[string]any{}
	for _, n := range bp.EventGraph.Nodes {
		if nodeType != "" && !strings.EqualFold(string(n.Kind), nodeType) {
			continue
		}
		if eventType != "" && !strings.EqualFold(n.Member, eventType) {
			continue
		}
		out = append(out, nodeDescriptor(n))
	}
	return out
}
