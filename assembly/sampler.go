package assembly

import (
	"math"

	"github.com/johw/assembly-rl/transform"
)

// Reset samples a fresh episode for every environment in the subset (all if
// nil) and writes the resulting object poses through the scene. Environments
// outside the subset are left untouched.
func (e *Env) Reset(envs []int) error {
	envs, err := e.subset(envs)
	if err != nil {
		return err
	}
	for _, env := range envs {
		e.sampleEpisode(env)
	}
	return nil
}

// sampleEpisode draws one episode for a single environment, using only that
// environment's random stream. The draw order is fixed (target slot, staging
// index, target rotation, distractor coin, distractor column) so a batched
// reset and a one-environment reset consume the stream identically.
func (e *Env) sampleEpisode(env int) {
	rng := e.rngs[env]
	variant := e.catalog.Variant(e.kitIDs[env])
	numSlots := e.catalog.NumSlots()

	kitPos, _ := e.scene.BodyPose(Body{Kind: BodyKit}, env)

	target := rng.Intn(numSlots)
	e.targetSlot[env] = target
	e.targetShape[env] = variant.Slots[target].Shape
	// goal stored env-local: kit world pose + kit-local offset - origin
	e.goalPos[env] = kitPos.Add(variant.Slots[target].GoalPos).Sub(e.origins[env])
	e.goalRot[env] = variant.Slots[target].GoalRot

	// target starts at one of the kit's staging proposals, random z-rotation
	startIdx := rng.Intn(len(variant.StartProposals))
	startPos := kitPos.Add(variant.StartProposals[startIdx])
	startRot := transform.QuatFromEulerZ(rng.Float64() * 2 * math.Pi)
	e.scene.WritePose(Object(target), env, startPos, startRot)

	// roughly half the episodes one distractor sits at the fixed staging
	// location instead of its slot, mimicking a partially assembled kit
	staged := -1
	if numSlots > 1 {
		if rng.Float64() < 0.5 {
			col := rng.Intn(numSlots - 1)
			staged = distractorSlot(target, col)
		}
	}

	for slot := 0; slot < numSlots; slot++ {
		if slot == target {
			e.roles[env][slot] = RoleTarget
			continue
		}
		rot := transform.QuatFromEulerZ(variant.Slots[slot].GoalRot)
		if slot == staged {
			e.roles[env][slot] = RoleDistractorStaged
			pos := kitPos.Add(transform.Vec3{X: -e.cfg.TableOffset, Y: 0.2, Z: 0.1})
			e.scene.WritePose(Object(slot), env, pos, rot)
			continue
		}
		e.roles[env][slot] = RoleDistractorAtGoal
		pos := kitPos.Add(variant.Slots[slot].GoalPos)
		e.scene.WritePose(Object(slot), env, pos, rot)
	}

	e.stepCount[env] = 0
}

// distractorSlot maps a column in the (K-1)-wide distractor table back to an
// absolute slot index, skipping the target column.
func distractorSlot(target, col int) int {
	if col >= target {
		return col + 1
	}
	return col
}
