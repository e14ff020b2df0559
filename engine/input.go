package engine

import "fmt"

// ActionMapping binds a named action to a key with modifier state.
type ActionMapping struct {
	Action string
	Key    string
	Shift  bool
	Ctrl   bool
	Alt    bool
	Cmd    bool
}

// AxisMapping binds a named axis to a key with a scale factor.
type AxisMapping struct {
	Axis  string
	Key   string
	Scale float64
}

// InputSettings holds the project's input mappings.
type InputSettings struct {
	Actions []ActionMapping
	Axes    []AxisMapping
}

// AddAction registers an action mapping. Re-adding an identical
// binding is rejected so project settings stay free of duplicates.
func (s *InputSettings) AddAction(m ActionMapping) error {
	for _, existing := range s.Actions {
		if existing == m {
			return fmt.Errorf("action mapping %q -> %q already exists", m.Action, m.Key)
		}
	}
	s.Actions = append(s.Actions, m)
	return nil
}

// AddAxis registers an axis mapping, rejecting exact duplicates.
func (s *InputSettings) AddAxis(m AxisMapping) error {
	for _, existing := range s.Axes {
		if existing == m {
			return fmt.Errorf("axis mapping %q -> %q already exists", m.Axis, m.Key)
		}
	}
	s.Axes = append(s.Axes, m)
	return nil
}

// HasAction reports whether any mapping exists for the action name.
func (s *InputSettings) HasAction(name string) bool {
	for _, m := range s.Actions {
		if m.Action == name {
			return true
		}
	}
	return false
}
