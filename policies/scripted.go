package policies

import (
	"math"

	"github.com/johw/assembly-rl/assembly"
	"github.com/johw/assembly-rl/transform"
	"github.com/johw/assembly-rl/types"
)

// CarryPolicy is a scripted pick-and-place controller: approach the target,
// grasp it, carry it over its goal slot, align the rotation, lower and
// release. It works purely from the observation vector and serves as the
// "solved" reference in benchmark comparisons.
type CarryPolicy struct {
	maxStep float64
	maxYaw  float64
	holding []bool
}

var _ types.VecPolicy = &CarryPolicy{}

func NewCarryPolicy() *CarryPolicy {
	return &CarryPolicy{
		maxStep: 0.05,
		maxYaw:  0.2,
	}
}

func (p *CarryPolicy) Reset() {
	p.holding = nil
}

func (p *CarryPolicy) NextActions(step int, obs [][]float64) [][]float64 {
	if len(p.holding) != len(obs) {
		p.holding = make([]bool, len(obs))
	}
	actions := make([][]float64, len(obs))
	for i, o := range obs {
		actions[i] = p.nextAction(i, o)
	}
	return actions
}

func (p *CarryPolicy) nextAction(i int, o []float64) []float64 {
	a := make([]float64, assembly.ActionDim)

	tcp := vecAt(o, assembly.ObsTCPPos)
	target := vecAt(o, assembly.ObsTargetPos)
	goal := vecAt(o, assembly.ObsGoalPos)
	targetRot := transform.Quat{
		W: o[assembly.ObsTargetRot],
		X: o[assembly.ObsTargetRot+1],
		Y: o[assembly.ObsTargetRot+2],
		Z: o[assembly.ObsTargetRot+3],
	}

	// the object left the gripper without a release: the episode was reset
	if p.holding[i] && target.Sub(tcp).Norm() > 0.1 {
		p.holding[i] = false
	}

	if !p.holding[i] {
		d := target.Sub(tcp)
		if d.Norm() < 0.02 {
			p.holding[i] = true
			a[4] = 1
			return a
		}
		p.move(a, d)
		return a
	}

	// carrying: translate over the slot, then align rotation, then lower
	a[4] = 1
	d := goal.Sub(target)
	if d.NormXY() > 0.01 {
		p.move(a, transform.Vec3{X: d.X, Y: d.Y})
		return a
	}
	yawErr := wrapPi(o[assembly.ObsGoalRot] - transform.EulerZ(targetRot))
	if math.Abs(yawErr) > 0.02 {
		a[3] = clamp(yawErr, p.maxYaw)
		return a
	}
	if math.Abs(d.Z) > 0.001 {
		p.move(a, transform.Vec3{Z: d.Z})
		return a
	}
	a[4] = 0
	p.holding[i] = false
	return a
}

func (p *CarryPolicy) move(a []float64, d transform.Vec3) {
	if n := d.Norm(); n > p.maxStep {
		d = d.Scale(p.maxStep / n)
	}
	a[0], a[1], a[2] = d.X, d.Y, d.Z
}

func vecAt(o []float64, idx int) transform.Vec3 {
	return transform.Vec3{X: o[idx], Y: o[idx+1], Z: o[idx+2]}
}

func clamp(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}

func wrapPi(angle float64) float64 {
	for angle > math.Pi {
		angle -= 2 * math.Pi
	}
	for angle < -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}
