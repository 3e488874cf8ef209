package types

// Trace of one rollout as per-step batched rewards and termination flags.
type Trace struct {
	rewards    [][]float64
	terminated [][]bool
}

func NewTrace() *Trace {
	return &Trace{
		rewards:    make([][]float64, 0),
		terminated: make([][]bool, 0),
	}
}

func (t *Trace) Append(step int, rewards []float64, terminated []bool) {
	t.rewards = append(t.rewards, rewards)
	t.terminated = append(t.terminated, terminated)
}

func (t *Trace) Len() int {
	return len(t.rewards)
}

func (t *Trace) Get(i int) ([]float64, []bool, bool) {
	if i >= len(t.rewards) {
		return nil, nil, false
	}
	return t.rewards[i], t.terminated[i], true
}

// NumEnvs is the batch width of the recorded rollout.
func (t *Trace) NumEnvs() int {
	if len(t.rewards) == 0 {
		return 0
	}
	return len(t.rewards[0])
}

// SuccessRate is the fraction of environments that terminated successfully
// at least once during the rollout.
func (t *Trace) SuccessRate() float64 {
	n := t.NumEnvs()
	if n == 0 {
		return 0
	}
	succeeded := make([]bool, n)
	for _, step := range t.terminated {
		for i, done := range step {
			if done {
				succeeded[i] = true
			}
		}
	}
	count := 0
	for _, s := range succeeded {
		if s {
			count++
		}
	}
	return float64(count) / float64(n)
}
