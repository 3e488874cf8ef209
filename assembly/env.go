package assembly

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"github.com/johw/assembly-rl/kit"
	"github.com/johw/assembly-rl/transform"
	"github.com/johw/assembly-rl/types"
)

// Role of an object slot within the current episode of one environment.
type Role uint8

const (
	RoleDistractorAtGoal Role = iota
	RoleTarget
	RoleDistractorStaged
)

type Config struct {
	EpisodeLength int
	Seed          uint64

	// success tolerances
	PosEps    float64 // planar distance to goal
	RotEps    float64 // folded z-rotation error
	HeightEps float64 // env-local height of a seated object

	// TCP forward offset along the wrist's lateral axis
	ForwardOffset float64

	// kit placement: env-local kit position and the table offset that
	// anchors the fixed distractor staging location
	KitPos      transform.Vec3
	TableOffset float64
}

func DefaultConfig() Config {
	return Config{
		EpisodeLength: 200,
		Seed:          1,
		PosEps:        2e-2,
		RotEps:        4 * math.Pi / 180,
		HeightEps:     3e-3,
		ForwardOffset: 0.04,
		KitPos:        transform.Vec3{X: 0.55, Y: 0, Z: 0.007},
		TableOffset:   0.55,
	}
}

// Env is the per-step decision core for a batch of assembly-kit trials:
// it owns the cached local TCP frames, the episode sampling state and the
// tolerance-based success evaluation. All per-environment state lives in
// dense tables indexed by environment, and every operation is elementwise
// over the batch so that a subset call never perturbs other environments.
type Env struct {
	cfg     Config
	catalog *kit.Catalog
	scene   Scene

	origins []transform.Vec3
	kitIDs  []int

	// local TCP frame, computed once at construction
	localGraspPos []transform.Vec3
	localGraspRot []transform.Quat

	// one stream per environment, seeded Seed+env, so sampling a batch and
	// sampling environments one by one draw identical values
	rngs []*rand.Rand

	// episode state, overwritten by each reset
	targetSlot  []int
	targetShape []int
	goalPos     []transform.Vec3
	goalRot     []float64
	roles       [][]Role
	stepCount   []int
}

var _ types.VecEnvironment = &Env{}

// NewEnv builds the core over a scene and a kit catalog. It reads the wrist
// and fingertip poses once to cache each environment's local TCP and fails
// on degenerate gripper geometry.
func NewEnv(cfg Config, catalog *kit.Catalog, scene Scene) (*Env, error) {
	n := scene.NumEnvs()
	if n == 0 {
		return nil, fmt.Errorf("assembly: scene has no environments")
	}
	e := &Env{
		cfg:           cfg,
		catalog:       catalog,
		scene:         scene,
		origins:       make([]transform.Vec3, n),
		kitIDs:        make([]int, n),
		localGraspPos: make([]transform.Vec3, n),
		localGraspRot: make([]transform.Quat, n),
		rngs:          make([]*rand.Rand, n),
		targetSlot:    make([]int, n),
		targetShape:   make([]int, n),
		goalPos:       make([]transform.Vec3, n),
		goalRot:       make([]float64, n),
		roles:         make([][]Role, n),
		stepCount:     make([]int, n),
	}
	for i := 0; i < n; i++ {
		e.origins[i] = scene.Origin(i)
		e.kitIDs[i] = i % catalog.NumVariants()
		e.rngs[i] = rand.New(rand.NewSource(cfg.Seed + uint64(i)))
		e.roles[i] = make([]Role, catalog.NumSlots())

		wristPos, wristRot := scene.BodyPose(Body{Kind: BodyWrist}, i)
		lfPos, lfRot := scene.BodyPose(Body{Kind: BodyLeftFinger}, i)
		rfPos, rfRot := scene.BodyPose(Body{Kind: BodyRightFinger}, i)
		pos, rot, err := computeLocalTCP(e.origins[i], wristPos, wristRot, lfPos, lfRot, rfPos, rfRot, cfg.ForwardOffset)
		if err != nil {
			return nil, fmt.Errorf("assembly: env %d: %w", i, err)
		}
		e.localGraspPos[i] = pos
		e.localGraspRot[i] = rot
	}
	return e, nil
}

func (e *Env) NumEnvs() int {
	return len(e.origins)
}

// subset validates an environment subset, expanding nil to all environments.
// Validation happens before any state is touched so a bad index cannot
// corrupt other environments.
func (e *Env) subset(envs []int) ([]int, error) {
	if envs == nil {
		envs = make([]int, e.NumEnvs())
		for i := range envs {
			envs[i] = i
		}
		return envs, nil
	}
	for _, env := range envs {
		if env < 0 || env >= e.NumEnvs() {
			return nil, fmt.Errorf("assembly: environment index %d out of range [0,%d)", env, e.NumEnvs())
		}
	}
	return envs, nil
}

// Step forwards one batch of actions to the scene collaborator and advances
// the per-environment episode clocks. The core itself does not actuate.
func (e *Env) Step(actions [][]float64) error {
	if len(actions) != e.NumEnvs() {
		return fmt.Errorf("assembly: got %d actions for %d environments", len(actions), e.NumEnvs())
	}
	e.scene.Advance(actions)
	for i := range e.stepCount {
		e.stepCount[i]++
	}
	return nil
}

// TargetPose returns the current pose of each environment's target object,
// positions in environment-local coordinates.
func (e *Env) TargetPose(envs []int) ([]transform.Vec3, []transform.Quat, error) {
	envs, err := e.subset(envs)
	if err != nil {
		return nil, nil, err
	}
	pos := make([]transform.Vec3, len(envs))
	rot := make([]transform.Quat, len(envs))
	for i, env := range envs {
		p, r := e.scene.BodyPose(Object(e.targetSlot[env]), env)
		pos[i] = p.Sub(e.origins[env])
		rot[i] = r
	}
	return pos, rot, nil
}

// TargetSlot returns the slot index holding the target role.
func (e *Env) TargetSlot(env int) int {
	return e.targetSlot[env]
}

// Role returns the episode role of one slot in one environment.
func (e *Env) Role(env, slot int) Role {
	return e.roles[env][slot]
}

// GoalPose returns the stored env-local goal for an environment's target.
func (e *Env) GoalPose(env int) (transform.Vec3, float64) {
	return e.goalPos[env], e.goalRot[env]
}

// Offsets into the per-environment observation vector.
const (
	ObsTCPPos    = 0  // 3 values
	ObsTCPRot    = 3  // 4 values, quaternion w,x,y,z
	ObsTargetPos = 7  // 3 values
	ObsTargetRot = 10 // 4 values
	ObsDeltaTCP  = 14 // 3 values, target - tcp
	ObsGoalPos   = 17 // 3 values
	ObsGoalRot   = 20 // 1 value, z-angle
	ObsDeltaGoal = 21 // 3 values, goal - target
	ObsShape     = 24 // NumShapes values, one-hot
)

// ObservationSize is the length of the per-environment state vector.
func (e *Env) ObservationSize() int {
	return 3 + 4 + 7 + 3 + 3 + 1 + 3 + e.catalog.NumShapes()
}

// Observations assembles the per-environment state vector: TCP pose, target
// pose, target-to-TCP delta, goal pose, goal-to-target delta and the target
// shape one-hot.
func (e *Env) Observations(envs []int) ([][]float64, error) {
	envs, err := e.subset(envs)
	if err != nil {
		return nil, err
	}
	tcpPos, tcpRot, err := e.TCPPose(envs)
	if err != nil {
		return nil, err
	}
	tgtPos, tgtRot, err := e.TargetPose(envs)
	if err != nil {
		return nil, err
	}
	obs := make([][]float64, len(envs))
	for i, env := range envs {
		o := make([]float64, 0, e.ObservationSize())
		o = append(o, tcpPos[i].X, tcpPos[i].Y, tcpPos[i].Z)
		o = append(o, tcpRot[i].W, tcpRot[i].X, tcpRot[i].Y, tcpRot[i].Z)
		o = append(o, tgtPos[i].X, tgtPos[i].Y, tgtPos[i].Z)
		o = append(o, tgtRot[i].W, tgtRot[i].X, tgtRot[i].Y, tgtRot[i].Z)
		d := tgtPos[i].Sub(tcpPos[i])
		o = append(o, d.X, d.Y, d.Z)
		o = append(o, e.goalPos[env].X, e.goalPos[env].Y, e.goalPos[env].Z)
		o = append(o, e.goalRot[env])
		g := e.goalPos[env].Sub(tgtPos[i])
		o = append(o, g.X, g.Y, g.Z)
		for s := 0; s < e.catalog.NumShapes(); s++ {
			if s == e.targetShape[env] {
				o = append(o, 1)
			} else {
				o = append(o, 0)
			}
		}
		obs[i] = o
	}
	return obs, nil
}
