package assembly

import "github.com/johw/assembly-rl/transform"

// BodyKind selects which rigid body of an environment a Body refers to.
type BodyKind int

const (
	BodyWrist BodyKind = iota
	BodyLeftFinger
	BodyRightFinger
	BodyKit
	BodyObject
)

// Body references a rigid body within an environment. Slot is only used
// for BodyObject and selects one of the K kit object slots.
type Body struct {
	Kind BodyKind
	Slot int
}

func Object(slot int) Body {
	return Body{Kind: BodyObject, Slot: slot}
}

// Scene is the simulation collaborator the core reads poses from and writes
// poses to. Spawning, physics stepping and actuation live behind it; the
// core only ever touches poses and origins. All positions returned by
// BodyPose are world-space.
type Scene interface {
	NumEnvs() int
	// Origin is the fixed world-space origin of an environment.
	Origin(env int) transform.Vec3
	// BodyPose returns the current world pose of a body in one environment.
	BodyPose(b Body, env int) (transform.Vec3, transform.Quat)
	// WritePose teleports a body in one environment to a world pose.
	WritePose(b Body, env int, pos transform.Vec3, rot transform.Quat)
	// Advance applies one control step per environment and steps the
	// simulation. Action interpretation is the scene's business.
	Advance(actions [][]float64)
}
