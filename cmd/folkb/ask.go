package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gitrdm/gokanlogic/pkg/fol/sexpr"
)

var askTimeout time.Duration

func init() {
	askCmd.Flags().DurationVar(&askTimeout, "timeout", 10*time.Second, "maximum time to search for a proof")
	explainCmd.Flags().DurationVar(&askTimeout, "timeout", 10*time.Second, "maximum time to search for a proof")
}

var askCmd = &cobra.Command{
	Use:   "ask <kb-file> <goal>",
	Short: "Ask whether goal follows from the knowledge base by resolution refutation",
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
		ctx, cancel := context.WithTimeout(cmd.Context(), askTimeout)
		defer cancel()
		result, err := kb.Ask(ctx, goal)
		if err != nil {
			return err
		}
		fmt.Println(result)
		return nil
	},
}
