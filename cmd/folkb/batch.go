package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/gitrdm/gokanlogic/internal/parallel"
	"github.com/gitrdm/gokanlogic/pkg/fol/sexpr"
)

var batchWorkers int

func init() {
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "worker pool size (0 = number of CPUs)")
}

var batchCmd = &cobra.Command{
	Use:   "batch <kb-file> <goals-file>",
	Short: "Ask every goal in goals-file concurrently against one knowledge base",
	Long: `batch loads the knowledge base once, then asks every goal listed in
goals-file (one per line, same syntax as tell) concurrently using a worker
pool, and prints each result on its own line in input order.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kb, err := loadKnowledgeBase(args[0])
		if err != nil {
			return err
		}
		goalLines, err := readLines(args[1])
		if err != nil {
			return err
		}

		results := make([]string, len(goalLines))
		pool := parallel.NewWorkerPool(batchWorkers, parallel.WithPoolLogger(logger))
		defer pool.Shutdown()
		detector := pool.GetDeadlockDetector()

		var wg sync.WaitGroup
		for i, line := range goalLines {
			i, line := i, line
			// Each goal gets its own deadlock-detector-tracked, timeout-bounded
			// context labeled with its own source text, so a goal that never
			// resolves is identifiable (via detector.GetAlerts()) by the
			// s-expression that produced it rather than by a bare task index.
			taskCtx, cancel := detector.TimeoutContext(cmd.Context(), fmt.Sprintf("goal-%d", i), line)
			wg.Add(1)
			submitErr := pool.Submit(taskCtx, func() {
				defer wg.Done()
				defer cancel()
				goal, err := sexpr.Parse(line)
				if err != nil {
					results[i] = fmt.Sprintf("%s: parse error: %v", line, err)
					return
				}
				ok, err := kb.Ask(taskCtx, goal)
				if err != nil {
					results[i] = fmt.Sprintf("%s: error: %v", line, err)
					return
				}
				results[i] = fmt.Sprintf("%s: %v", line, ok)
			})
			if submitErr != nil {
				wg.Done()
				cancel()
				results[i] = fmt.Sprintf("%s: not scheduled: %v", line, submitErr)
			}
		}
		wg.Wait()

		for _, r := range results {
			fmt.Println(r)
		}
		logger.Debugw("batch complete", "stats", pool.GetStats().String())
		return nil
	},
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening goals file %q", path)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}
