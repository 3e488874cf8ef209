package assembly

import (
	"fmt"
	"math"

	"github.com/johw/assembly-rl/transform"
)

// computeLocalTCP computes the gripper's tool-center-point in the wrist's
// local frame from the wrist and fingertip world poses of one environment.
// The gripper geometry is fixed by the robot model, so this runs exactly
// once per environment at construction and the result is cached.
func computeLocalTCP(
	origin transform.Vec3,
	wristPos transform.Vec3, wristRot transform.Quat,
	lfingerPos transform.Vec3, lfingerRot transform.Quat,
	rfingerPos transform.Vec3, rfingerRot transform.Quat,
	forwardOffset float64,
) (transform.Vec3, transform.Quat, error) {
	if math.Abs(wristRot.Norm()-1) > 1e-6 {
		return transform.Vec3{}, transform.Quat{}, fmt.Errorf("tcp: wrist orientation is not a unit quaternion (norm %v)", wristRot.Norm())
	}
	if lfingerPos.Sub(rfingerPos).Norm() < 1e-9 {
		return transform.Vec3{}, transform.Quat{}, fmt.Errorf("tcp: fingertip poses coincide")
	}

	// orientations are origin-independent; only positions shift
	wristPos = wristPos.Sub(origin)
	lfingerPos = lfingerPos.Sub(origin)
	rfingerPos = rfingerPos.Sub(origin)

	// fingertip midpoint, with the left finger's orientation standing in for
	// the contact frame (fingers are coplanar and symmetric)
	midPos := lfingerPos.Add(rfingerPos).Scale(0.5)
	midRot := lfingerRot

	invRot, invPos := transform.Inverse(wristRot, wristPos)
	localRot, localPos := transform.Combine(invRot, invPos, midRot, midPos)

	// bias the TCP past the raw fingertip midpoint along the lateral axis,
	// compensating for the fingertip visual-vs-contact offset
	localPos = localPos.Add(transform.Vec3{Y: forwardOffset})

	return localPos, localRot, nil
}

// TCPPose returns the current TCP pose of each environment in the subset,
// positions in environment-local coordinates. It composes the live wrist
// pose with the cached local TCP, so it must be called fresh every step.
func (e *Env) TCPPose(envs []int) ([]transform.Vec3, []transform.Quat, error) {
	envs, err := e.subset(envs)
	if err != nil {
		return nil, nil, err
	}
	pos := make([]transform.Vec3, len(envs))
	rot := make([]transform.Quat, len(envs))
	for i, env := range envs {
		wristPos, wristRot := e.scene.BodyPose(Body{Kind: BodyWrist}, env)
		r, p := transform.Combine(wristRot, wristPos, e.localGraspRot[env], e.localGraspPos[env])
		pos[i] = p.Sub(e.origins[env])
		rot[i] = r
	}
	return pos, rot, nil
}
