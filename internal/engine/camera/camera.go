// Package camera provides the free-flying camera used by the viewer.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// FocusHeight is how far above a target Focus places the camera.
const FocusHeight float32 = 988

// maxPitch keeps the camera from flipping over the vertical.
var maxPitch = mgl32.DegToRad(89)

// FlyCamera moves freely and looks along yaw/pitch angles.
type FlyCamera struct {
	Position mgl32.Vec3
	Yaw      float32 // radians, -90 degrees looks down -Z
	Pitch    float32 // radians, clamped to +/-89 degrees

	MoveSpeed       float32 // units per second
	LookSensitivity float32 // radians per pixel

	FOV  float32 // vertical field of view, degrees
	Near float32
	Far  float32
}

// NewFlyCamera creates a camera at (0, 2, 5) looking down -Z.
func NewFlyCamera() *FlyCamera {
	return &FlyCamera{
		Position:        mgl32.Vec3{0, 2, 5},
		Yaw:             mgl32.DegToRad(-90),
		Pitch:           0,
		MoveSpeed:       988,
		LookSensitivity: 0.00125,
		FOV:             60,
		Near:            0.01,
		Far:             100000,
	}
}

// Forward returns the unit view direction.
func (c *FlyCamera) Forward() mgl32.Vec3 {
	yaw, pitch := float64(c.Yaw), float64(c.Pitch)
	return mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
}

// Right returns the unit direction to the camera's right on the XZ plane.
func (c *FlyCamera) Right() mgl32.Vec3 {
	return c.Forward().Cross(mgl32.Vec3{0, 1, 0}).Normalize()
}

// Look turns the camera by a mouse delta in pixels.
func (c *FlyCamera) Look(dx, dy float32) {
	c.Yaw += dx * c.LookSensitivity
	c.Pitch = mgl32.Clamp(c.Pitch-dy*c.LookSensitivity, -maxPitch, maxPitch)
}

// Move translates the camera. forward, right and up are axis inputs,
// normally -1, 0 or 1, and dt is the frame time in seconds.
func (c *FlyCamera) Move(forward, right, up, dt float32) {
	movement := c.Forward().Mul(forward).
		Add(c.Right().Mul(right)).
		Add(mgl32.Vec3{0, up, 0})
	c.Position = c.Position.Add(movement.Mul(c.MoveSpeed * dt))
}

// Focus places the camera FocusHeight above target, looking down at 45
// degrees.
func (c *FlyCamera) Focus(target mgl32.Vec3) {
	c.Position = target.Add(mgl32.Vec3{0, FocusHeight, 0})
	c.Pitch = mgl32.DegToRad(-45)
	c.Yaw = mgl32.DegToRad(-90)
}

// ViewMatrix returns the world-to-camera matrix.
func (c *FlyCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Forward()), mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns the perspective projection for the given aspect
// ratio.
func (c *FlyCamera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *FlyCamera) ViewProjection(aspect float32) mgl32.Mat4 {
	return c.ProjectionMatrix(aspect).Mul4(c.ViewMatrix())
}

// YawDegrees returns the yaw for display.
func (c *FlyCamera) YawDegrees() float32 {
	return mgl32.RadToDeg(c.Yaw)
}

// PitchDegrees returns the pitch for display.
func (c *FlyCamera) PitchDegrees() float32 {
	return mgl32.RadToDeg(c.Pitch)
}
