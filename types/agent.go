package types

type AgentConfig struct {
	Episodes    int
	Horizon     int
	Policy      VecPolicy
	Environment VecEnvironment
}

// RL Agent driving a vectorized environment with the configured policy.
// Environments that finish mid-rollout are reset in place, so one "episode"
// here is a fixed-horizon rollout of the whole batch.
type Agent struct {
	config *AgentConfig
	// collects the traces of the run
	// Only populated if the Run function is invoked
	traces      []*Trace
	policy      VecPolicy
	environment VecEnvironment
}

// Instantiates a new Agent
func NewAgent(config *AgentConfig) *Agent {
	return &Agent{
		config:      config,
		traces:      make([]*Trace, config.Episodes),
		policy:      config.Policy,
		environment: config.Environment,
	}
}

// Run the agent for the specified number of rollouts and horizon
func (a *Agent) Run() error {
	for i := 0; i < a.config.Episodes; i++ {
		trace, err := a.runRollout()
		if err != nil {
			return err
		}
		a.traces[i] = trace
	}
	return nil
}

func (a *Agent) Traces() []*Trace {
	return a.traces
}

// run a single batched rollout and return the resulting trace
func (a *Agent) runRollout() (*Trace, error) {
	if err := a.environment.Reset(nil); err != nil {
		return nil, err
	}
	a.policy.Reset()
	trace := NewTrace()

	for step := 0; step < a.config.Horizon; step++ {
		obs, err := a.environment.Observations(nil)
		if err != nil {
			return nil, err
		}
		actions := a.policy.NextActions(step, obs)
		if err := a.environment.Step(actions); err != nil {
			return nil, err
		}
		rewards, err := a.environment.Rewards(nil)
		if err != nil {
			return nil, err
		}
		terminated, timedOut, err := a.environment.Dones(nil)
		if err != nil {
			return nil, err
		}
		trace.Append(step, rewards, terminated)

		done := make([]int, 0)
		for i := range terminated {
			if terminated[i] || timedOut[i] {
				done = append(done, i)
			}
		}
		if len(done) > 0 {
			if err := a.environment.Reset(done); err != nil {
				return nil, err
			}
		}
	}
	return trace, nil
}
