package server

import (
	"github.com/veleiro/marionette/engine"
)

func graphCommands() []Command {
	return []Command{
		{
			Name:     "add_blueprint_event_node",
			Required: []string{"blueprint_name", "event_type"},
			Schema: `{
				blueprint_name: string
				event_type:     string
				node_position?: [...number]
			}`,
			Handler: handleAddEventNode,
		},
		{
			Name:     "add_blueprint_input_action_node",
			Required: []string{"blueprint_name", "action_name"},
			Schema: `{
				blueprint_name: string
				action_name:    string
				node_position?: [...number]
			}`,
			Handler: handleAddInputActionNode,
		},
		{
			Name:     "add_blueprint_function_node",
			Required: []string{"blueprint_name", "function_name"},
			Schema: `{
				blueprint_name: string
				target?:        string
				function_name:  string
				params?:        {...}
				node_position?: [...number]
			}`,
			Handler: handleAddFunctionNode,
		},
		{
			Name:     "add_blueprint_get_component_node",
			Required: []string{"blueprint_name", "component_name"},
			Schema: `{
				blueprint_name: string
				component_name: string
				node_position?: [...number]
			}`,
			Handler: handleAddGetComponentNode,
		},
		{
			Name:     "add_blueprint_get_self_component_reference",
			Required: []string{"blueprint_name", "component_name"},
			Schema: `{
				blueprint_name: string
				component_name: string
				node_position?: [...number]
			}`,
			// Same node shape as a component getter; the separate
			// command name survives for older clients.
			Handler: handleAddGetComponentNode,
		},
		{
			Name:     "add_blueprint_self_reference",
			Required: []string{"blueprint_name"},
			Schema: `{
				blueprint_name: string
				node_position?: [...number]
			}`,
			Handler: handleAddSelfNode,
		},
		{
			Name:     "find_blueprint_nodes",
			Required: []string{"blueprint_name"},
			Schema: `{
				blueprint_name: string
				node_type?:     string
				event_type?:    string
			}`,
			Handler: handleFindNodes,
		},
		{
			Name:     "connect_blueprint_nodes",
			Required: []string{"blueprint_name", "source_node_id", "source_pin", "target_node_id", "target_pin"},
			Schema: `{
				blueprint_name: string
				source_node_id: string
				source_pin:     string
				target_node_id: string
				target_pin:     string
			}`,
			Handler: handleConnectNodes,
		},
	}
}

func handleAddEventNode(e *engine.Engine, p Params) (any, error) {
	bpName, err := p.String("blueprint_name")
	if err != nil {
		return nil, err
	}
	eventType, err := p.String("event_type")
	if err != nil {
		return nil, err
	}
	x, y, err := p.NodePosition()
	if err != nil {
		return nil, err
	}
	bp, err := resolveBlueprint(e, bpName)
	if err != nil {
		return nil, err
	}
	n, created, err := addEventNode(e, bp, eventType, x, y)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"success":  true,
		"node_id":  n.ID.String(),
		"existing": !created,
	}, nil
}

func handleAddInputActionNode(e *engine.Engine, p Params) (any, error) {
	bpName, err := p.String("blueprint_name")
	if err != nil {
		return nil, err
	}
	action, err := p.String("action_name")
	if err != nil {
		return nil, err
	}
	x, y, err := p.NodePosition()
	if err != nil {
		return nil, err
	}
	bp, err := resolveBlueprint(e, bpName)
	if err != nil {
		return nil, err
	}
	n := addInputActionNode(bp, action, x, y)
	if !e.Inputs().HasAction(action) {
		log.Infof("input action node references unmapped action %q", action)
	}
	return map[string]any{"success": true, "node_id": n.ID.String()}, nil
}

func handleAddFunctionNode(e *engine.Engine, p Params) (any, error) {
	bpName, err := p.String("blueprint_name")
	if err != nil {
		return nil, err
	}
	fnName, err := p.String("function_name")
	if err != nil {
		return nil, err
	}
	target, err := p.StringOr("target", "")
	if err != nil {
		return nil, err
	}
	x, y, err := p.NodePosition()
	if err != nil {
		return nil, err
	}
	var fnParams map[string]any
	if raw, ok := p["params"]; ok {
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, typeMismatch("params", "an object", raw)
		}
		fnParams = m
	}
	bp, err := resolveBlueprint(e, bpName)
	if err != nil {
		return nil, err
	}
	n, err := addFunctionNode(e, bp, target, fnName, fnParams, x, y)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"success":      true,
		"node_id":      n.ID.String(),
		"target_class": n.TargetClass,
	}, nil
}

func handleAddGetComponentNode(e *engine.Engine, p Params) (any, error) {
	bpName, err := p.String("blueprint_name")
	if err != nil {
		return nil, err
	}
	compName, err := p.String("component_name")
	if err != nil {
		return nil, err
	}
	x, y, err := p.NodePosition()
	if err != nil {
		return nil, err
	}
	bp, err := resolveBlueprint(e, bpName)
	if err != nil {
		return nil, err
	}
	n, err := addComponentGetNode(bp, compName, x, y)
	if err != nil {
		return nil, err
	}
	return map[string]any{"success": true, "node_id": n.ID.String()}, nil
}

func handleAddSelfNode(e *engine.Engine, p Params) (any, error) {
	bpName, err := p.String("blueprint_name")
	if err != nil {
		return nil, err
	}
	x, y, err := p.NodePosition()
	if err != nil {
		return nil, err
	}
	bp, err := resolveBlueprint(e, bpName)
	if err != nil {
		return nil, err
	}
	n := addSelfNode(bp, x, y)
	return map[string]any{"success": true, "node_id": n.ID.String()}, nil
}

func handleFindNodes(e *engine.Engine, p Params) (any, error) {
	bpName, err := p.String("blueprint_name")
	if err != nil {
		return nil, err
	}
	nodeType, err := p.StringOr("node_type", "")
	if err != nil {
		return nil, err
	}
	eventType, err := p.StringOr("event_type", "")
	if err != nil {
		return nil, err
	}
	bp, err := resolveBlueprint(e, bpName)
	if err != nil {
		return nil, err
	}
	return map[string]any{"nodes": findNodes(bp, nodeType, eventType)}, nil
}

func handleConnectNodes(e *engine.Engine, p Params) (any, error) {
	bpName, err := p.String("blueprint_name")
	if err != nil {
		return nil, err
	}
	srcNode, err := p.String("source_node_id")
	if err != nil {
		return nil, err
	}
	srcPin, err := p.String("source_pin")
	if err != nil {
		return nil, err
	}
	dstNode, err := p.String("target_node_id")
	if err != nil {
		return nil, err
	}
	dstPin, err := p.String("target_pin")
	if err != nil {
		return nil, err
	}
	bp, err := resolveBlueprint(e, bpName)
	if err != nil {
		return nil, err
	}
	if err := connectNodes(bp, srcNode, srcPin, dstNode, dstPin); err != nil {
		return nil, err
	}
	return map[string]any{
		"success":        true,
		"source_node_id": srcNode,
		"target_node_id": dstNode,
	}, nil
}
