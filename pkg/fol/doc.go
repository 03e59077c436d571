// Package fol implements the term/sentence algebra, substitution and
// unification, and CNF normalisation that the rest of this module's
// FOL toolkit builds on: pkg/fol/engine (resolution refutation),
// pkg/fol/backward (SLD backward chaining), pkg/fol/index (feature-vector
// clause subsumption), pkg/fol/format (pretty-printing), and pkg/fol/sexpr
// (the CLI's s-expression sentence syntax).
package fol

//go:generate go run ../../scripts/generate_examples_manifest -pkg .. -out ../../examples_index.json
