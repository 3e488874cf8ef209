package assembly

import (
	"math"

	"github.com/johw/assembly-rl/transform"
)

// IsSuccess evaluates the placement tolerances for each environment in the
// subset: planar distance to the goal, z-rotation error folded by the target
// shape's symmetry period, and seated height. Pure read, no mutation.
func (e *Env) IsSuccess(envs []int) ([]bool, error) {
	envs, err := e.subset(envs)
	if err != nil {
		return nil, err
	}
	ok := make([]bool, len(envs))
	for i, env := range envs {
		pos, rot := e.scene.BodyPose(Object(e.targetSlot[env]), env)
		pos = pos.Sub(e.origins[env])

		posDiff := e.goalPos[env].Sub(pos)
		posCorrect := posDiff.NormXY() < e.cfg.PosEps

		period := e.catalog.Symmetry(e.targetShape[env])
		rotDiff := foldSymmetry(transform.EulerZ(rot)-e.goalRot[env], period)
		rotCorrect := rotDiff < e.cfg.RotEps

		// height is checked on its own: the object must have descended into
		// the slot, not hover above the right XY spot
		heightCorrect := pos.Z < e.cfg.HeightEps

		ok[i] = posCorrect && rotCorrect && heightCorrect
	}
	return ok, nil
}

// foldSymmetry reduces an angular difference modulo the symmetry period and
// folds it onto the shorter arc of the symmetry circle. A shape with period
// pi is indistinguishable after a half turn, so its error wraps at pi, not
// at the full circle.
func foldSymmetry(diff, period float64) float64 {
	diff = math.Mod(math.Abs(diff), period)
	if diff > period/2 {
		diff = period - diff
	}
	return diff
}

// Rewards is the dense reward: +1 where the target is in tolerance, -1
// everywhere else, every step.
func (e *Env) Rewards(envs []int) ([]float64, error) {
	success, err := e.IsSuccess(envs)
	if err != nil {
		return nil, err
	}
	rewards := make([]float64, len(success))
	for i, ok := range success {
		if ok {
			rewards[i] = 1
		} else {
			rewards[i] = -1
		}
	}
	return rewards, nil
}

// Dones reports, per environment, whether the episode terminated (success)
// and whether it ran out of steps. Both can be true on the same step; the
// surrounding loop treats either as cause for reset.
func (e *Env) Dones(envs []int) (terminated []bool, timedOut []bool, err error) {
	envs, err = e.subset(envs)
	if err != nil {
		return nil, nil, err
	}
	terminated, err = e.IsSuccess(envs)
	if err != nil {
		return nil, nil, err
	}
	timedOut = make([]bool, len(envs))
	for i, env := range envs {
		timedOut[i] = e.stepCount[env] >= e.cfg.EpisodeLength-1
	}
	return terminated, timedOut, nil
}
