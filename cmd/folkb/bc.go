package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitrdm/gokanlogic/pkg/fol"
	"github.com/gitrdm/gokanlogic/pkg/fol/folerr"
	"github.com/gitrdm/gokanlogic/pkg/fol/format"
	"github.com/gitrdm/gokanlogic/pkg/fol/sexpr"
)

var bcCount int

func init() {
	bcCmd.Flags().IntVar(&bcCount, "count", 1, "maximum number of proofs to print")
}

var bcCmd = &cobra.Command{
	Use:   "bc <kb-file> <goal-predicate>",
	Short: "Backward-chain over the definite-clause subset of the knowledge base",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kb, err := loadKnowledgeBase(args[0])
		if err != nil {
			return err
		}
		goalSentence, err := sexpr.Parse(args[1])
		if err != nil {
			return err
		}
		goal, ok := goalSentence.(fol.Predicate)
		if !ok {
			return folerr.New("folkb.bc", folerr.InvalidArgument, "backward-chaining goals must be a single predicate, got %q", args[1])
		}

		q := kb.CreateBackwardQuery(goal)
		defer q.Dispose()

		ctx, cancel := context.WithTimeout(cmd.Context(), askTimeout)
		defer cancel()

		f := format.New()
		found := 0
		for found < bcCount {
			proof, ok, err := q.Next(ctx)
			if err != nil {
				return err
			}
			if !ok {
				break
			}
			found++
			fmt.Printf("proof %d: %s with %s\n", found, f.Predicate(proof.Goal), f.Substitution(proof.Substitution))
			for i, step := range proof.Steps {
				fmt.Printf("  %d. %s via %s\n", i+1, f.Predicate(step.Goal), step.Clause.String())
			}
		}
		if found == 0 {
			fmt.Println("no proof found")
		}
		return f.Err()
	},
}
