package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/johndave090909-droid/AutoScheduler/pkg/config"
	"github.com/johndave090909-droid/AutoScheduler/pkg/csvio"
	"github.com/johndave090909-droid/AutoScheduler/pkg/models"
	"github.com/johndave090909-droid/AutoScheduler/pkg/scheduler"
	"github.com/spf13/cobra"
)

type inputFlags struct {
	input   string
	workers string
	shifts  string
	pins    string
}

type rootOptions struct {
	policyPath string
	logLevel   string
	in         inputFlags
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "rosterctl",
		Short:         "Assign workers to a weekly grid of shift requirements",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
		},
	}
	cmd.PersistentFlags().StringVar(&opts.policyPath, "policy", "", "solver policy YAML file (default: $SOLVER_POLICY_PATH)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (default: $LOG_LEVEL or warn)")
	cmd.PersistentFlags().StringVar(&opts.in.input, "input", "", "JSON schedule input file")
	cmd.PersistentFlags().StringVar(&opts.in.workers, "workers", "", "workers CSV file")
	cmd.PersistentFlags().StringVar(&opts.in.shifts, "shifts", "", "shifts CSV file")
	cmd.PersistentFlags().StringVar(&opts.in.pins, "pins", "", "pinned assignments CSV file")

	cmd.AddCommand(newSolveCmd(opts), newValidateCmd(opts))
	return cmd
}

// scheduler builds a scheduler from the policy file and log level flags, falling
// back to the environment
func (o *rootOptions) scheduler() (*scheduler.Scheduler, error) {
	cfg := config.Load()
	if o.policyPath != "" {
		cfg.PolicyPath = o.policyPath
	}
	cfg.LogLevel = "warn"
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		cfg.LogLevel = lvl
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}

	policy, err := config.LoadPolicy(cfg.PolicyPath)
	if err != nil {
		return nil, err
	}
	logger, err := cfg.NewLogger()
	if err != nil {
		return nil, err
	}
	opts := policy.Options()
	opts.Logger = logger
	return scheduler.NewScheduler(opts), nil
}

func (f inputFlags) load() (models.ScheduleInput, error) {
	var input models.ScheduleInput
	if f.input != "" {
		if f.workers != "" || f.shifts != "" {
			return input, errors.New("use either --input or --workers/--shifts, not both")
		}
		data, err := os.ReadFile(f.input)
		if err != nil {
			return input, err
		}
		if err := json.Unmarshal(data, &input); err != nil {
			return input, fmt.Errorf("parse %s: %w", f.input, err)
		}
		return input, nil
	}

	if f.workers == "" || f.shifts == "" {
		return input, errors.New("--input or both --workers and --shifts are required")
	}
	var err error
	if input.Workers, err = readFile(f.workers, csvio.ReadWorkers); err != nil {
		return input, err
	}
	if input.Shifts, err = readFile(f.shifts, csvio.ReadShifts); err != nil {
		return input, err
	}
	if f.pins != "" {
		if input.Pinned, err = readFile(f.pins, csvio.ReadPins); err != nil {
			return input, err
		}
	}
	return input, nil
}

func readFile[T any](path string, read func(io.Reader) (T, error)) (T, error) {
	f, err := os.Open(path)
	if err != nil {
		var zero T
		return zero, err
	}
	defer f.Close()
	return read(f)
}

// reportedError is an error already written to stderr by the command
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error { return e.error }

// execute runs the command and prints any error it has not reported itself
func execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	var reported reportedError
	if err != nil && !errors.As(err, &reported) {
		fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
	}
	return err
}

// reportInputError prints every input problem on its own line
func reportInputError(w io.Writer, err error) error {
	var inputErr *scheduler.InputError
	if !errors.As(err, &inputErr) {
		return err
	}
	fmt.Fprintln(w, "error:", scheduler.ErrInvalidInput)
	for _, p := range inputErr.Problems() {
		fmt.Fprintln(w, "  -", p)
	}
	return reportedError{err}
}

func syncLogger(s *scheduler.Scheduler) {
	if l := s.Options().Logger; l != nil {
		_ = l.Sync()
	}
}
