package server

import (
	"fmt"
	"strings"

	"github.com/veleiro/marionette/engine"
)

func projectCommands() []Command {
	return []Command{
		{
			Name:     "create_input_mapping",
			Required: []string{"action_name", "key", "input_type"},
			Schema: `{
				action_name: string
				key:         string
				input_type:  string
				scale?:      number
				shift?:      bool
				ctrl?:       bool
				alt?:        bool
				cmd?:        bool
			}`,
			Handler: handleCreateInputMapping,
		},
	}
}

func handleCreateInputMapping(e *engine.Engine, p Params) (any, error) {
	action, err := p.String("action_name")
	if err != nil {
		return nil, err
	}
	key, err := p.String("key")
	if err != nil {
		return nil, err
	}
	inputType, err := p.String("input_type")
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(inputType) {
	case "action":
		shift, err := p.BoolOr("shift", false)
		if err != nil {
			return nil, err
		}
		ctrl, err := p.BoolOr("ctrl", false)
		if err != nil {
			return nil, err
		}
		alt, err := p.BoolOr("alt", false)
		if err != nil {
			return nil, err
		}
		cmd, err := p.BoolOr("cmd", false)
		if err != nil {
			return nil, err
		}
		m := engine.ActionMapping{Action: action, Key: key, Shift: shift, Ctrl: ctrl, Alt: alt, Cmd: cmd}
		if err := e.Inputs().AddAction(m); err != nil {
			return map[string]any{"success": false, "message": err.Error()}, nil
		}
	case "axis":
		scale, err := p.FloatOr("scale", 1.0)
		if err != nil {
			return nil, err
		}
		m := engine.AxisMapping{Axis: action, Key: key, Scale: scale}
		if err := e.Inputs().AddAxis(m); err != nil {
			return map[string]any{"success": false, "message": err.Error()}, nil
		}
	default:
		return nil, typeMismatch("input_type", "\"Action\" or \"Axis\"", inputType)
	}

	return map[string]any{
		"success": true,
		"message": fmt.Sprintf("Input mapping '%s' -> '%s' created", action, key),
	}, nil
}

// builtinCommands assembles the full command set the server registers
// at startup.
func builtinCommands() []Command {
	var cmds []Command
	cmds = append(cmds, actorCommands()...)
	cmds = append(cmds, blueprintCommands()...)
	cmds = append(cmds, graphCommands()...)
	cmds = append(cmds, projectCommands()...)
	return cmds
}
