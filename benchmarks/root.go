package benchmarks

import "github.com/spf13/cobra"

var (
	episodes int
	horizon  int
	saveDir  string
	seed     uint64
)

func GetRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{}
	rootCommand.PersistentFlags().IntVarP(&episodes, "episodes", "e", 50, "Number of batched rollouts to run")
	rootCommand.PersistentFlags().IntVar(&horizon, "horizon", 200, "Horizon of each rollout")
	rootCommand.PersistentFlags().StringVarP(&saveDir, "save", "s", "results", "Save the result data in the specified folder")
	rootCommand.PersistentFlags().Uint64Var(&seed, "seed", 1, "Base random seed")
	// adding the subcommands here
	rootCommand.AddCommand(AssemblyCommand())
	return rootCommand
}
