package server

import (
	"math"

	"github.com/veleiro/marionette/engine"
)

// Accessors for decoded JSON params. JSON numbers arrive as float64;
// these helpers coerce them to what handlers want.

// String returns a string-valued param.
func (p Params) String(name string) (string, error) {
	v, ok := p[name]
	if !ok {
		return "", missingParam(name)
	}
	s, ok := v.(string)
	if !ok {
		return "", typeMismatch(name, "a string", v)
	}
	return s, nil
}

// StringOr returns a string-valued param or def when absent.
func (p Params) StringOr(name, def string) (string, error) {
	if _, ok := p[name]; !ok {
		return def, nil
	}
	return p.String(name)
}

// Float returns a numeric param.
func (p Params) Float(name string) (float64, error) {
	v, ok := p[name]
	if !ok {
		return 0, missingParam(name)
	}
	f, ok := asFloat(v)
	if !ok {
		return 0, typeMismatch(name, "a number", v)
	}
	return f, nil
}

// FloatOr returns a numeric param or def when absent.
func (p Params) FloatOr(name string, def float64) (float64, error) {
	if _, ok := p[name]; !ok {
		return def, nil
	}
	return p.Float(name)
}

// Int returns a numeric param truncated to an integer.
func (p Params) Int(name string) (int64, error) {
	f, err := p.Float(name)
	if err != nil {
		return 0, err
	}
	return int64(math.Trunc(f)), nil
}

// Bool returns a boolean param.
func (p Params) Bool(name string) (bool, error) {
	v, ok := p[name]
	if !ok {
		return false, missingParam(name)
	}
	b, ok := v.(bool)
	if !ok {
		return false, typeMismatch(name, "a boolean", v)
	}
	return b, nil
}

// BoolOr returns a boolean param or def when absent.
func (p Params) BoolOr(name string, def bool) (bool, error) {
	if _, ok := p[name]; !ok {
		return def, nil
	}
	return p.Bool(name)
}

// Has reports whether the param is present.
func (p Params) Has(name string) bool {
	_, ok := p[name]
	return ok
}

// FloatArray returns a numeric-array param. Present but wrong-shaped
// values are a type mismatch; absence returns ok=false.
func (p Params) FloatArray(name string) ([]float64, bool, error) {
	v, present := p[name]
	if !present {
		return nil, false, nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, false, typeMismatch(name, "an array of numbers", v)
	}
	out := make([]float64, len(arr))
	for i, elem := range arr {
		f, ok := asFloat(elem)
		if !ok {
			return nil, false, typeMismatch(name, "an array of numbers", elem)
		}
		out[i] = f
	}
	return out, true, nil
}

// Vector reads a 3-element array param into a Vector.
func (p Params) Vector(name string) (engine.Vector, bool, error) {
	a, ok, err := p.FloatArray(name)
	if err != nil || !ok {
		return engine.Vector{}, ok, err
	}
	v, err := engine.VectorFromArray(a)
	if err != nil {
		return engine.Vector{}, true, typeMismatch(name, "a 3-element array", a)
	}
	return v, true, nil
}

// Rotator reads a 3-element array param into a Rotator.
func (p Params) Rotator(name string) (engine.Rotator, bool, error) {
	a, ok, err := p.FloatArray(name)
	if err != nil || !ok {
		return engine.Rotator{}, ok, err
	}
	r, err := engine.RotatorFromArray(a)
	if err != nil {
		return engine.Rotator{}, true, typeMismatch(name, "a 3-element array", a)
	}
	return r, true, nil
}

// Transform assembles location/rotation/scale params into a
// transform, leaving identity components where params are absent.
func (p Params) Transform() (engine.Transform, error) {
	t := engine.IdentityTransform()
	if v, ok, err := p.Vector("location"); err != nil {
		return t, err
	} else if ok {
		t.Location = v
	}
	if r, ok, err := p.Rotator("rotation"); err != nil {
		return t, err
	} else if ok {
		t.Rotation = r
	}
	if v, ok, err := p.Vector("scale"); err != nil {
		return t, err
	} else if ok {
		t.Scale = v
	}
	return t, nil
}

// NodePosition reads the conventional node_position param, defaulting
// to the origin.
func (p Params) NodePosition() (x, y float64, err error) {
	a, ok, err := p.FloatArray("node_position")
	if err != nil || !ok {
		return 0, 0, err
	}
	if len(a) != 2 {
		return 0, 0, typeMismatch("node_position", "a 2-element array", a)
	}
	return a[0], a[1], nil
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
