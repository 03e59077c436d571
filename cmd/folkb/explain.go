package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitrdm/gokanlogic/pkg/fol/format"
	"github.com/gitrdm/gokanlogic/pkg/fol/sexpr"
)

var explainCmd = &cobra.Command{
	Use:   "explain <kb-file> <goal>",
	Short: "Prove goal and print the resolution-refutation derivation",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kb, err := loadKnowledgeBase(args[0])
		if err != nil {
			return err
		}
		goal, err := sexpr.Parse(args[1])
		if err != nil {
			return err
		}
		q, err := kb.CreateQuery(goal)
		if err != nil {
			return err
		}
		defer q.Dispose()

		ctx, cancel := context.WithTimeout(cmd.Context(), askTimeout)
		defer cancel()
		result, err := q.Complete(ctx)
		if err != nil {
			return err
		}
		if !result {
			fmt.Println("false (no proof found)")
			return nil
		}

		proof, err := q.Explain()
		if err != nil {
			return err
		}
		fmt.Println("true")
		f := format.New()
		for i, step := range proof.Steps {
			fmt.Println(f.ProofStep(i+1, step))
		}
		return f.Err()
	},
}
