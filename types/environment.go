package types

// VecEnvironment is a batch of N independent trial instances stepped in
// lockstep. Subset arguments select environments by index; nil means all.
// Every operation is elementwise over the batch: environment i's result
// depends only on environment i's state.
type VecEnvironment interface {
	NumEnvs() int
	// Reset re-samples an episode for the given environments only
	Reset(envs []int) error
	// Step applies one action per environment and advances the simulation
	Step(actions [][]float64) error
	Observations(envs []int) ([][]float64, error)
	Rewards(envs []int) ([]float64, error)
	Dones(envs []int) (terminated []bool, timedOut []bool, err error)
}

// VecPolicy maps a batch of observations to a batch of actions.
type VecPolicy interface {
	// NextActions returns one action per observation row
	NextActions(step int, obs [][]float64) [][]float64
	Reset()
}
