package types

import (
	"fmt"
	"testing"
)

// fake batched environment: env i terminates whenever its step clock hits
// doneEvery[i], so auto-reset behavior is fully predictable
type fakeEnv struct {
	numEnvs   int
	doneEvery []int
	clock     []int
	resets    [][]int
}

func newFakeEnv(doneEvery []int) *fakeEnv {
	return &fakeEnv{
		numEnvs:   len(doneEvery),
		doneEvery: doneEvery,
		clock:     make([]int, len(doneEvery)),
		resets:    make([][]int, 0),
	}
}

func (f *fakeEnv) NumEnvs() int {
	return f.numEnvs
}

func (f *fakeEnv) subset(envs []int) ([]int, error) {
	if envs == nil {
		envs = make([]int, f.numEnvs)
		for i := range envs {
			envs[i] = i
		}
	}
	for _, e := range envs {
		if e < 0 || e >= f.numEnvs {
			return nil, fmt.Errorf("index %d out of range", e)
		}
	}
	return envs, nil
}

func (f *fakeEnv) Reset(envs []int) error {
	envs, err := f.subset(envs)
	if err != nil {
		return err
	}
	f.resets = append(f.resets, envs)
	for _, e := range envs {
		f.clock[e] = 0
	}
	return nil
}

func (f *fakeEnv) Step(actions [][]float64) error {
	for i := range f.clock {
		f.clock[i]++
	}
	return nil
}

func (f *fakeEnv) Observations(envs []int) ([][]float64, error) {
	envs, err := f.subset(envs)
	if err != nil {
		return nil, err
	}
	obs := make([][]float64, len(envs))
	for i := range envs {
		obs[i] = []float64{float64(f.clock[envs[i]])}
	}
	return obs, nil
}

func (f *fakeEnv) done(e int) bool {
	return f.clock[e] >= f.doneEvery[e]
}

func (f *fakeEnv) Rewards(envs []int) ([]float64, error) {
	envs, err := f.subset(envs)
	if err != nil {
		return nil, err
	}
	rewards := make([]float64, len(envs))
	for i, e := range envs {
		if f.done(e) {
			rewards[i] = 1
		} else {
			rewards[i] = -1
		}
	}
	return rewards, nil
}

func (f *fakeEnv) Dones(envs []int) ([]bool, []bool, error) {
	envs, err := f.subset(envs)
	if err != nil {
		return nil, nil, err
	}
	terminated := make([]bool, len(envs))
	for i, e := range envs {
		terminated[i] = f.done(e)
	}
	return terminated, make([]bool, len(envs)), nil
}

type constantPolicy struct{}

func (constantPolicy) Reset() {}

func (constantPolicy) NextActions(step int, obs [][]float64) [][]float64 {
	actions := make([][]float64, len(obs))
	for i := range actions {
		actions[i] = []float64{0}
	}
	return actions
}

func TestAgentAutoResetsFinishedEnvs(t *testing.T) {
	env := newFakeEnv([]int{2, 5})
	agent := NewAgent(&AgentConfig{
		Episodes:    1,
		Horizon:     6,
		Policy:      constantPolicy{},
		Environment: env,
	})
	if err := agent.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// first reset covers the whole batch, then env 0 finishes at steps 2 and
	// 4 (clock restarts after each reset), env 1 at step 5
	wantResets := [][]int{{0, 1}, {0}, {0}, {1}, {0}}
	if len(env.resets) != len(wantResets) {
		t.Fatalf("got %d resets, want %d: %v", len(env.resets), len(wantResets), env.resets)
	}
	for i, want := range wantResets {
		got := env.resets[i]
		if len(got) != len(want) {
			t.Fatalf("reset %d: got %v, want %v", i, got, want)
		}
		for j := range want {
			if got[j] != want[j] {
				t.Errorf("reset %d: got %v, want %v", i, got, want)
			}
		}
	}
}

func TestTraceSuccessRate(t *testing.T) {
	trace := NewTrace()
	trace.Append(0, []float64{-1, -1, -1}, []bool{false, false, false})
	trace.Append(1, []float64{1, -1, -1}, []bool{true, false, false})
	trace.Append(2, []float64{-1, 1, -1}, []bool{false, true, false})

	if got := trace.SuccessRate(); got < 0.666 || got > 0.667 {
		t.Errorf("success rate %v, want 2/3", got)
	}
	if trace.Len() != 3 || trace.NumEnvs() != 3 {
		t.Errorf("wrong trace dimensions: len %d, envs %d", trace.Len(), trace.NumEnvs())
	}
}
