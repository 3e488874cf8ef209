package policies

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/johw/assembly-rl/assembly"
	"github.com/johw/assembly-rl/types"
)

// macro moves the random policy mixes between
const (
	macroJitter = iota
	macroDescend
	macroGrip
)

// RandomPolicy drives the gripper with random pose deltas, mixing planar
// jitter, descending moves and grip toggles. Useful as a baseline and to
// exercise the environment without any feedback.
type RandomPolicy struct {
	rand    *rand.Rand
	weights []float64
	scale   float64
	grip    float64
}

var _ types.VecPolicy = &RandomPolicy{}

func NewRandomPolicy(seed uint64) *RandomPolicy {
	return &RandomPolicy{
		rand:    rand.New(rand.NewSource(seed)),
		weights: []float64{0.5, 0.3, 0.2},
		scale:   0.02,
	}
}

func (p *RandomPolicy) Reset() {
	p.grip = 0
}

func (p *RandomPolicy) NextActions(step int, obs [][]float64) [][]float64 {
	actions := make([][]float64, len(obs))
	for i := range obs {
		a := make([]float64, assembly.ActionDim)
		macro, ok := sampleuv.NewWeighted(p.weights, p.rand).Take()
		if !ok {
			macro = macroJitter
		}
		switch macro {
		case macroJitter:
			a[0] = (p.rand.Float64() - 0.5) * p.scale
			a[1] = (p.rand.Float64() - 0.5) * p.scale
			a[3] = (p.rand.Float64() - 0.5) * p.scale
		case macroDescend:
			a[2] = -p.rand.Float64() * p.scale
		case macroGrip:
			p.grip = 1 - p.grip
		}
		a[4] = p.grip
		actions[i] = a
	}
	return actions
}
