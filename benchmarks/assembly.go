package benchmarks

import (
	"fmt"
	"math"
	"path"

	"github.com/spf13/cobra"

	"github.com/johw/assembly-rl/assembly"
	"github.com/johw/assembly-rl/kit"
	"github.com/johw/assembly-rl/policies"
	"github.com/johw/assembly-rl/transform"
	"github.com/johw/assembly-rl/types"
	"github.com/johw/assembly-rl/util"
)

// Assembly compares a random baseline against the scripted carry policy on
// the batched assembly-kit environment and plots per-rollout success rates.
func Assembly(episodes, horizon int, saveDir string, seed uint64, numEnvs int, kitDir string) error {
	catalog, err := loadCatalog(kitDir)
	if err != nil {
		return err
	}

	newEnv := func() (*assembly.Env, error) {
		cfg := assembly.DefaultConfig()
		cfg.EpisodeLength = horizon
		cfg.Seed = seed
		world := assembly.NewWorld(numEnvs, catalog.NumSlots(), cfg.KitPos)
		return assembly.NewEnv(cfg, catalog, world)
	}

	c := types.NewComparison(types.SuccessRate(), savingComparator(saveDir))

	randomEnv, err := newEnv()
	if err != nil {
		return err
	}
	c.AddExperiment(types.NewExperiment("Random", &types.AgentConfig{
		Episodes:    episodes,
		Horizon:     horizon,
		Policy:      policies.NewRandomPolicy(seed),
		Environment: randomEnv,
	}))

	carryEnv, err := newEnv()
	if err != nil {
		return err
	}
	c.AddExperiment(types.NewExperiment("Scripted-Carry", &types.AgentConfig{
		Episodes:    episodes,
		Horizon:     horizon,
		Policy:      policies.NewCarryPolicy(),
		Environment: carryEnv,
	}))

	return c.Run()
}

// savingComparator plots the success-rate curves and records the final
// values next to the plot.
func savingComparator(saveDir string) types.Comparator {
	plotter := types.CurvePlotter(saveDir, "success_rate", "success_rate.png")
	return func(names []string, datasets []types.DataSet) {
		plotter(names, datasets)
		lines := make([]string, 0, len(names))
		for i, name := range names {
			values := datasets[i].([]float64)
			lines = append(lines, fmt.Sprintf("%s: %.3f", name, values[len(values)-1]))
		}
		if err := util.WriteToFile(path.Join(saveDir, "success_rate.txt"), lines...); err != nil {
			fmt.Printf("failed to save summary: %v\n", err)
		}
	}
}

func loadCatalog(kitDir string) (*kit.Catalog, error) {
	if kitDir != "" {
		return kit.Load(kitDir)
	}
	return demoCatalog()
}

// demoCatalog is a built-in two-variant layout used when no kit directory is
// given: three slots per kit, shapes with full, half and quarter symmetry.
func demoCatalog() (*kit.Catalog, error) {
	symmetry := []float64{2 * math.Pi, math.Pi, math.Pi / 2}
	variants := []kit.Variant{
		{
			Slots: []kit.Slot{
				{Shape: 0, GoalPos: vec(0.06, 0.05, -0.005), GoalRot: 0},
				{Shape: 1, GoalPos: vec(-0.06, 0.05, -0.005), GoalRot: 1.1},
				{Shape: 2, GoalPos: vec(0, -0.07, -0.005), GoalRot: 2.3},
			},
			StartProposals: []transform.Vec3{vec(-0.2, 0.15, 0.05), vec(-0.2, -0.15, 0.05)},
		},
		{
			Slots: []kit.Slot{
				{Shape: 2, GoalPos: vec(0.07, -0.04, -0.005), GoalRot: 0.4},
				{Shape: 0, GoalPos: vec(-0.05, -0.06, -0.005), GoalRot: 0},
				{Shape: 1, GoalPos: vec(0.01, 0.08, -0.005), GoalRot: 2.9},
			},
			StartProposals: []transform.Vec3{vec(-0.22, 0.1, 0.05), vec(-0.18, -0.12, 0.05), vec(-0.25, 0, 0.05)},
		},
	}
	return kit.NewCatalog(variants, symmetry)
}

func AssemblyCommand() *cobra.Command {
	var numEnvs int
	var kitDir string

	cmd := &cobra.Command{
		Use: "assembly",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Assembly(episodes, horizon, saveDir, seed, numEnvs, kitDir)
		},
	}
	cmd.PersistentFlags().IntVar(&numEnvs, "envs", 16, "Number of parallel environments")
	cmd.PersistentFlags().StringVar(&kitDir, "kits", "", "Asset directory with episodes.json and kits/ (built-in demo kits if empty)")
	return cmd
}

func vec(x, y, z float64) transform.Vec3 {
	return transform.Vec3{X: x, Y: y, Z: z}
}
