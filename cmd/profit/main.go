// Command profit reads one task JSON document from stdin, searches for a
// high-scoring factory layout within a time budget, and writes the
// resulting solution JSON array to stdout.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/profit-solver/profit/internal/solver"
	"github.com/profit-solver/profit/internal/taskio"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		timeFlag   float64
		cores      int
		seed       int64
		configPath string
		printASCII bool
		stats      bool
	)

	cmd := &cobra.Command{
		Use:   "profit",
		Short: "Search for a profitable factory layout on a task read from stdin",
		Long: "profit reads a Profit! task document from stdin, runs the randomized\n" +
			"construction search for the given time budget, and writes the resulting\n" +
			"solution as a JSON array to stdout. It always exits 0 and prints a\n" +
			"solution — possibly the empty one — unless the input itself cannot be\n" +
			"parsed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, solveOptions{
				timeFlag:   timeFlag,
				cores:      cores,
				seed:       seed,
				configPath: configPath,
				printASCII: printASCII,
				stats:      stats,
			})
		},
	}

	cmd.Flags().Float64Var(&timeFlag, "time", 0, "time budget in seconds (default: the task's own \"time\" field, or 20)")
	cmd.Flags().IntVar(&cores, "cores", runtime.NumCPU(), "number of worker goroutines")
	cmd.Flags().Int64Var(&seed, "seed", 0, "RNG seed; 0 picks a random one")
	cmd.Flags().StringVar(&configPath, "config", "", "optional solver tuning config file (viper-compatible)")
	cmd.Flags().BoolVar(&printASCII, "print", false, "print an ASCII rendering of the solution to stderr")
	cmd.Flags().BoolVar(&stats, "stats", false, "print score/round stats to stderr")

	return cmd
}

type solveOptions struct {
	timeFlag   float64
	cores      int
	seed       int64
	configPath string
	printASCII bool
	stats      bool
}

func runSolve(cmd *cobra.Command, opts solveOptions) error {
	raw, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}

	task, err := taskio.Parse(raw)
	if err != nil {
		return err
	}

	cfg, err := solver.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}

	budget := task.TimeBudget
	if opts.timeFlag > 0 {
		budget = opts.timeFlag
	}

	seed := opts.seed
	if seed == 0 {
		seed = rand.Int63()
	}

	sol := solver.Run(task.Map, task.Products, task.Turns, solver.Options{
		TimeBudget: time.Duration(budget * float64(time.Second)),
		Cores:      opts.cores,
		Seed:       seed,
		Config:     cfg,
	})

	if opts.printASCII {
		taskio.PrintASCII(os.Stderr, sol.Map)
	}
	if opts.stats {
		stats := taskio.Stats{Score: sol.Score, AchievedAtRound: sol.BestRound}
		if err := json.NewEncoder(os.Stderr).Encode(stats); err != nil {
			return fmt.Errorf("writing stats: %w", err)
		}
	}

	return writeSolution(cmd.OutOrStdout(), sol, task.BaseObjectCount)
}

func writeSolution(w io.Writer, sol solver.Solution, baseObjectCount int) error {
	records := taskio.FormatSolution(sol.Map, baseObjectCount)
	enc := json.NewEncoder(w)
	return enc.Encode(records)
}
