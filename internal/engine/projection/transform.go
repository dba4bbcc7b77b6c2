package projection

import "github.com/Faultbox/geoheat/pkg/math"

// Transform is a plain position + rotation holder that satisfies Object.
type Transform struct {
	position math.Vec3
	rotation math.Mat4
}

// NewTransform returns a transform at pos with identity rotation.
func NewTransform(pos math.Vec3) *Transform {
	return &Transform{position: pos, rotation: math.Identity()}
}

func (t *Transform) Position() math.Vec3       { return t.position }
func (t *Transform) SetPosition(pos math.Vec3) { t.position = pos }
func (t *Transform) Rotation() math.Mat4       { return t.rotation }
func (t *Transform) SetRotation(rot math.Mat4) { t.rotation = rot }

// Up returns the object's local up axis in world space.
func (t *Transform) Up() math.Vec3 {
	return t.rotation.Column(1)
}

// Matrix returns the model matrix (translation * rotation).
func (t *Transform) Matrix() math.Mat4 {
	return math.Translate(t.position.X, t.position.Y, t.position.Z).Mul(t.rotation)
}
