package server

import (
	"fmt"
	"math"
	"strings"

	"github.com/veleiro/marionette/engine"
)

// The mutator turns a raw JSON value into a stored property value,
// dispatching on the property's declared kind. Coercion and storage
// are split so multi-property commands can validate everything before
// writing anything: a bad value in the batch leaves the container
// untouched.

// coerceProperty validates value against prop and returns the value
// to store.
func coerceProperty(prop *engine.PropertyDescriptor, value any) (any, error) {
	switch prop.Kind {
	case engine.KindBool:
		b, ok := value.(bool)
		if !ok {
			return nil, typeMismatch(prop.Name, "a boolean", value)
		}
		return b, nil

	case engine.KindInt:
		f, ok := asFloat(value)
		if !ok {
			return nil, typeMismatch(prop.Name, "a number", value)
		}
		// Fractional inputs are truncated, not rounded.
		return int64(math.Trunc(f)), nil

	case engine.KindFloat:
		f, ok := asFloat(value)
		if !ok {
			return nil, typeMismatch(prop.Name, "a number", value)
		}
		return f, nil

	case engine.KindString, engine.KindName:
		s, ok := value.(string)
		if !ok {
			return nil, typeMismatch(prop.Name, "a string", value)
		}
		return s, nil

	case engine.KindEnum:
		return coerceEnum(prop, value)

	case engine.KindStruct:
		return coerceStruct(prop, value)

	case engine.KindObject:
		s, ok := value.(string)
		if !ok {
			return nil, typeMismatch(prop.Name, "an object path string", value)
		}
		return s, nil
	}

	return nil, fmt.Errorf("%w: %s has kind %s", ErrUnsupportedProperty, prop.Name, prop.Kind)
}

// coerceEnum accepts a member name (optionally qualified as
// "EnumType::Member") or a numeric member value, and stores the bare
// member name.
func coerceEnum(prop *engine.PropertyDescriptor, value any) (any, error) {
	en := prop.Enum
	if en == nil {
		return nil, fmt.Errorf("%w: %s has no enum descriptor", ErrUnsupportedProperty, prop.Name)
	}

	switch v := value.(type) {
	case string:
		// "EAutoReceiveInput::Player0" and "Player0" are equivalent.
		name := v
		if i := strings.LastIndex(v, "::"); i >= 0 {
			name = v[i+2:]
		}
		if m, ok := en.ByName(name); ok {
			return m.Name, nil
		}
		// The qualifier might have been part of the member name all
		// along; retry the raw string before failing.
		if name != v {
			if m, ok := en.ByName(v); ok {
				return m.Name, nil
			}
		}
		return nil, fmt.Errorf("%w: %q is not a member of %s (valid: %s)",
			ErrInvalidEnumValue, v, en.Name, strings.Join(en.MemberNames(), ", "))

	default:
		f, ok := asFloat(value)
		if !ok {
			return nil, typeMismatch(prop.Name, "an enum member name or value", value)
		}
		m, ok := en.ByValue(int64(f))
		if !ok {
			return nil, fmt.Errorf("%w: %v is not a value of %s (valid: %s)",
				ErrInvalidEnumValue, value, en.Name, strings.Join(en.MemberNames(), ", "))
		}
		return m.Name, nil
	}
}

// coerceStruct accepts a 3-element number array for vector-shaped
// structs and stores it as []float64.
func coerceStruct(prop *engine.PropertyDescriptor, value any) (any, error) {
	arr, ok := value.([]any)
	if !ok {
		return nil, typeMismatch(prop.Name, "a 3-element array", value)
	}
	if len(arr) != 3 {
		return nil, typeMismatch(prop.Name, "a 3-element array", value)
	}
	out := make([]float64, 3)
	for i, elem := range arr {
		f, ok := asFloat(elem)
		if !ok {
			return nil, typeMismatch(prop.Name, "a 3-element array of numbers", elem)
		}
		out[i] = f
	}
	return out, nil
}

// propertyWrite is one validated pending write.
type propertyWrite struct {
	name  string
	value any
}

// stageProperty resolves prop on the class chain and coerces value,
// returning the pending write without touching the bag.
func stageProperty(e *engine.Engine, class *engine.ClassDescriptor, name string, value any) (propertyWrite, error) {
	prop, ok := e.PropertyInChain(class, name)
	if !ok {
		return propertyWrite{}, notFound("property", name)
	}
	v, err := coerceProperty(prop, value)
	if err != nil {
		return propertyWrite{}, err
	}
	return propertyWrite{name: prop.Name, value: v}, nil
}

// commitWrites applies staged writes to the bag and marks the
// container modified. Call only after every write in the batch has
// been staged.
func commitWrites(bag map[string]any, writes []propertyWrite, markModified func()) {
	for _, w := range writes {
		bag[w.name] = w.value
	}
	if len(writes) > 0 && markModified != nil {
		markModified()
	}
}

// setSingleProperty stages and commits one write.
func setSingleProperty(e *engine.Engine, class *engine.ClassDescriptor, bag map[string]any, name string, value any, markModified func()) error {
	w, err := stageProperty(e, class, name, value)
	if err != nil {
		return err
	}
	commitWrites(bag, []propertyWrite{w}, markModified)
	return nil
}
