package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/gitrdm/gokanlogic/pkg/fol/sexpr"
)

var tellCmd = &cobra.Command{
	Use:   "tell <kb-file> <sentence>",
	Short: "Validate a sentence and append it to a knowledge-base file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kbPath, sentence := args[0], args[1]
		if _, err := sexpr.Parse(sentence); err != nil {
			return errors.Wrap(err, "sentence is not well-formed")
		}
		if err := appendSentence(kbPath, sentence); err != nil {
			return err
		}
		fmt.Printf("told: %s\n", sentence)
		return nil
	},
}
