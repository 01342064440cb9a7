package main

import (
	"fmt"

	"github.com/johndave090909-droid/AutoScheduler/pkg/scheduler"
	"github.com/spf13/cobra"
)

func newValidateCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check roster input without solving",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := root.scheduler()
			if err != nil {
				return err
			}
			defer syncLogger(s)

			input, err := root.in.load()
			if err != nil {
				return err
			}
			opts := s.Options()
			if err := scheduler.ValidateInput(s.Validator(), input, opts.Days); err != nil {
				return reportInputError(cmd.ErrOrStderr(), err)
			}
			for _, msg := range scheduler.ValidateLeadExclusivity(input.Workers, input.Departments, opts.Lead) {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning:", msg)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "valid: %d workers, %d shift requirements\n", len(input.Workers), len(input.Shifts))
			return nil
		},
	}
}
