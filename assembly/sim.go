package assembly

import "github.com/johw/assembly-rl/transform"

// ActionDim is the per-environment action layout the World understands:
// wrist delta x/y/z, wrist delta yaw, gripper close.
const ActionDim = 5

type pose struct {
	pos transform.Vec3
	rot transform.Quat
}

// World is a kinematic in-memory Scene: a gripper that teleports by action
// deltas, a static kit and K free objects per environment. It stands in for
// the physics collaborator in benchmarks and tests; there is no contact or
// gravity, an object moves only while grasped or when a pose is written.
type World struct {
	numEnvs  int
	numSlots int
	origins  []transform.Vec3

	wrist   []pose
	kit     []pose
	objects [][]pose

	// local finger offsets in the wrist frame, fixed gripper geometry
	lfingerLocal transform.Vec3
	rfingerLocal transform.Vec3

	// slot grasped per environment, -1 when the gripper is empty
	attached     []int
	attachRadius float64
}

var _ Scene = &World{}

// NewWorld lays out numEnvs environments spaced along X, each with a kit at
// kitPos (env-local) and numSlots objects parked at the kit position.
func NewWorld(numEnvs, numSlots int, kitPos transform.Vec3) *World {
	w := &World{
		numEnvs:      numEnvs,
		numSlots:     numSlots,
		origins:      make([]transform.Vec3, numEnvs),
		wrist:        make([]pose, numEnvs),
		kit:          make([]pose, numEnvs),
		objects:      make([][]pose, numEnvs),
		lfingerLocal: transform.Vec3{Y: 0.04, Z: -0.1},
		rfingerLocal: transform.Vec3{Y: -0.04, Z: -0.1},
		attached:     make([]int, numEnvs),
		attachRadius: 0.06,
	}
	for i := 0; i < numEnvs; i++ {
		w.origins[i] = transform.Vec3{X: float64(i) * 3}
		w.wrist[i] = pose{
			pos: w.origins[i].Add(transform.Vec3{X: 0.4, Z: 0.5}),
			rot: transform.Identity,
		}
		w.kit[i] = pose{pos: w.origins[i].Add(kitPos), rot: transform.Identity}
		w.objects[i] = make([]pose, numSlots)
		for s := range w.objects[i] {
			w.objects[i][s] = pose{pos: w.kit[i].pos, rot: transform.Identity}
		}
		w.attached[i] = -1
	}
	return w
}

func (w *World) NumEnvs() int {
	return w.numEnvs
}

func (w *World) Origin(env int) transform.Vec3 {
	return w.origins[env]
}

func (w *World) BodyPose(b Body, env int) (transform.Vec3, transform.Quat) {
	switch b.Kind {
	case BodyWrist:
		return w.wrist[env].pos, w.wrist[env].rot
	case BodyLeftFinger:
		return w.fingerPose(env, w.lfingerLocal)
	case BodyRightFinger:
		return w.fingerPose(env, w.rfingerLocal)
	case BodyKit:
		return w.kit[env].pos, w.kit[env].rot
	default:
		return w.objects[env][b.Slot].pos, w.objects[env][b.Slot].rot
	}
}

func (w *World) fingerPose(env int, local transform.Vec3) (transform.Vec3, transform.Quat) {
	p := w.wrist[env].rot.Rotate(local).Add(w.wrist[env].pos)
	return p, w.wrist[env].rot
}

func (w *World) WritePose(b Body, env int, pos transform.Vec3, rot transform.Quat) {
	switch b.Kind {
	case BodyWrist:
		w.wrist[env] = pose{pos: pos, rot: rot}
	case BodyKit:
		w.kit[env] = pose{pos: pos, rot: rot}
	case BodyObject:
		if w.attached[env] == b.Slot {
			w.attached[env] = -1
		}
		w.objects[env][b.Slot] = pose{pos: pos, rot: rot}
	}
}

// Advance applies one action per environment: translate and yaw the wrist,
// then grasp or release. A grasp attaches the nearest object within reach of
// the grip point; an attached object rigidly follows the wrist motion.
func (w *World) Advance(actions [][]float64) {
	for env, a := range actions {
		if len(a) < ActionDim {
			continue
		}
		delta := transform.Vec3{X: a[0], Y: a[1], Z: a[2]}
		dyaw := transform.QuatFromEulerZ(a[3])

		w.wrist[env].pos = w.wrist[env].pos.Add(delta)
		w.wrist[env].rot = dyaw.Mul(w.wrist[env].rot)

		if slot := w.attached[env]; slot >= 0 {
			w.objects[env][slot].pos = w.objects[env][slot].pos.Add(delta)
			w.objects[env][slot].rot = dyaw.Mul(w.objects[env][slot].rot)
		}

		if a[4] > 0.5 {
			if w.attached[env] < 0 {
				w.attached[env] = w.nearestObject(env)
			}
		} else {
			w.attached[env] = -1
		}
	}
}

// nearestObject returns the slot closest to the grip point, or -1 when none
// is within the attach radius.
func (w *World) nearestObject(env int) int {
	grip := w.gripPoint(env)
	best := -1
	bestDist := w.attachRadius
	for s := 0; s < w.numSlots; s++ {
		d := w.objects[env][s].pos.Sub(grip).Norm()
		if d < bestDist {
			best = s
			bestDist = d
		}
	}
	return best
}

func (w *World) gripPoint(env int) transform.Vec3 {
	mid := w.lfingerLocal.Add(w.rfingerLocal).Scale(0.5)
	return w.wrist[env].rot.Rotate(mid).Add(w.wrist[env].pos)
}
