// Command folkb is a command-line front end for the FOL toolkit (pkg/fol):
// it loads a knowledge base of tell-sentences from a file, then answers
// resolution queries, explains proofs, or runs backward-chaining queries
// against it. Grounded on gokanlogic's own cmd/example in spirit (a thin
// driver over the library) but structured as a cobra command tree the way
// operator-lifecycle-manager's CLIs are (util/cpb/main.go, cmd/operator-cli).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "folkb",
	Short: "Query a first-order-logic knowledge base",
	Long: `folkb loads a knowledge base of FOL sentences (one tell-sentence
per line, s-expression syntax, see pkg/fol/sexpr) and answers queries
against it using resolution refutation or backward chaining.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			zl, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			logger = zl.Sugar()
		}
		return nil
	},
}

// verbose enables debug-level logging (clause telling, derived resolvents,
// worker-pool scaling) through the same zap.SugaredLogger that engine.New
// accepts via WithLogger and parallel.NewWorkerPool via WithPoolLogger.
// logger stays a
// no-op sugared logger until PersistentPreRunE upgrades it, so every
// subcommand can pass logger to engine.New/parallel.NewWorkerPool
// unconditionally.
var verbose bool
var logger = zap.NewNop().Sugar()

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug-level detail (clauses told, resolvents derived, worker-pool scaling)")
	rootCmd.AddCommand(tellCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(bcCmd)
	rootCmd.AddCommand(batchCmd)
}
