package engine

import "fmt"

// Vector is a 3-component spatial value (location, scale, direction).
type Vector struct {
	X float64 `json:"x" cbor:"1,keyasint"`
	Y float64 `json:"y" cbor:"2,keyasint"`
	Z float64 `json:"z" cbor:"3,keyasint"`
}

// Rotator is a rotation in degrees (pitch, yaw, roll).
type Rotator struct {
	Pitch float64 `json:"pitch" cbor:"1,keyasint"`
	Yaw   float64 `json:"yaw" cbor:"2,keyasint"`
	Roll  float64 `json:"roll" cbor:"3,keyasint"`
}

// Transform bundles location, rotation and scale.
type Transform struct {
	Location Vector  `json:"location" cbor:"1,keyasint"`
	Rotation Rotator `json:"rotation" cbor:"2,keyasint"`
	Scale    Vector  `json:"scale" cbor:"3,keyasint"`
}

// IdentityTransform returns a transform at the origin with unit scale.
func IdentityTransform() Transform {
	return Transform{Scale: Vector{X: 1, Y: 1, Z: 1}}
}

func (v Vector) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

func (r Rotator) String() string {
	return fmt.Sprintf("(pitch=%g, yaw=%g, roll=%g)", r.Pitch, r.Yaw, r.Roll)
}

// Array returns the vector as a 3-element slice, the shape the wire
// protocol uses for positions and scales.
func (v Vector) Array() []float64 {
	return []float64{v.X, v.Y, v.Z}
}

// Array returns the rotator as [pitch, yaw, roll].
func (r Rotator) Array() []float64 {
	return []float64{r.Pitch, r.Yaw, r.Roll}
}

// VectorFromArray builds a Vector from a 3-element slice.
func VectorFromArray(a []float64) (Vector, error) {
	if len(a) != 3 {
		return Vector{}, fmt.Errorf("vector needs 3 components, got %d", len(a))
	}
	return Vector{X: a[0], Y: a[1], Z: a[2]}, nil
}

// RotatorFromArray builds a Rotator from a [pitch, yaw, roll] slice.
func RotatorFromArray(a []float64) (Rotator, error) {
	if len(a) != 3 {
		return Rotator{}, fmt.Errorf("rotator needs 3 components, got %d", len(a))
	}
	return Rotator{Pitch: a[0], Yaw: a[1], Roll: a[2]}, nil
}
