package main

import (
	"bufio"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/gitrdm/gokanlogic/pkg/fol/engine"
	"github.com/gitrdm/gokanlogic/pkg/fol/sexpr"
)

// loadKnowledgeBase reads path line by line; blank lines and lines
// starting with ';' are ignored, every other line is parsed as one FOL
// sentence and told to a fresh KnowledgeBase.
func loadKnowledgeBase(path string) (*engine.KnowledgeBase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening knowledge base %q", path)
	}
	defer f.Close()

	kb := engine.New(engine.WithLogger(logger))
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		sentence, err := sexpr.Parse(line)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d: parsing %q", path, lineNo, line)
		}
		if _, err := kb.Tell(sentence); err != nil {
			return nil, errors.Wrapf(err, "%s:%d: telling %q", path, lineNo, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading knowledge base %q", path)
	}
	return kb, nil
}

// appendSentence appends one sentence line to path, creating it if needed.
func appendSentence(path, sentence string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrapf(err, "opening knowledge base %q for append", path)
	}
	defer f.Close()
	if _, err := f.WriteString(sentence + "\n"); err != nil {
		return errors.Wrapf(err, "writing to knowledge base %q", path)
	}
	return nil
}
