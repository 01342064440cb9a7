package main

import (
	"encoding/json"
	"fmt"

	"github.com/johndave090909-droid/AutoScheduler/pkg/csvio"
	"github.com/spf13/cobra"
)

func newSolveCmd(root *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Build the weekly schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "json", "csv", "matrix":
			default:
				return fmt.Errorf("unknown format %q", format)
			}

			s, err := root.scheduler()
			if err != nil {
				return err
			}
			defer syncLogger(s)

			input, err := root.in.load()
			if err != nil {
				return err
			}
			res, err := s.Solve(input)
			if err != nil {
				return reportInputError(cmd.ErrOrStderr(), err)
			}

			out := cmd.OutOrStdout()
			switch format {
			case "csv":
				err = csvio.WriteAssignments(out, res, input.Workers)
			case "matrix":
				err = csvio.WriteMatrix(out, res, input.Workers, input.Shifts, s.Options().Days)
			default:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				err = enc.Encode(res)
			}
			if err != nil {
				return err
			}

			for _, msg := range res.ValidationErrors {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning:", msg)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, csv or matrix")
	return cmd
}
