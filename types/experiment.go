package types

import "fmt"

// Experiment encapsulates one named policy/environment pairing.
type Experiment struct {
	Name   string
	config *AgentConfig
}

// NewExperiment creates a new experiment instance
func NewExperiment(name string, config *AgentConfig) *Experiment {
	return &Experiment{
		Name:   name,
		config: config,
	}
}

// Comparison runs a set of experiments and hands the analyzed datasets to a
// comparator.
type Comparison struct {
	experiments []*Experiment
	analyzer    Analyzer
	comparator  Comparator
}

func NewComparison(analyzer Analyzer, comparator Comparator) *Comparison {
	return &Comparison{
		experiments: make([]*Experiment, 0),
		analyzer:    analyzer,
		comparator:  comparator,
	}
}

func (c *Comparison) AddExperiment(e *Experiment) {
	c.experiments = append(c.experiments, e)
}

// Run all experiments sequentially and compare their datasets.
func (c *Comparison) Run() error {
	names := make([]string, 0, len(c.experiments))
	datasets := make([]DataSet, 0, len(c.experiments))
	for _, e := range c.experiments {
		fmt.Printf("Running experiment: %s\n", e.Name)
		agent := NewAgent(e.config)
		if err := agent.Run(); err != nil {
			return fmt.Errorf("experiment %s: %w", e.Name, err)
		}
		names = append(names, e.Name)
		datasets = append(datasets, c.analyzer(e.Name, agent.Traces()))
	}
	if c.comparator != nil {
		c.comparator(names, datasets)
	}
	return nil
}
