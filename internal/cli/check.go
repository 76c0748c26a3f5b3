// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"bufio"
	"io"
	"strings"

	"github.com/alvinbaena/pwd-strength/internal/report"
	"github.com/alvinbaena/pwd-strength/internal/strength"
	"github.com/spf13/cobra"
)

var (
	checkCmd = &cobra.Command{
		Use:   "check [PASSWORD...]",
		Short: "Check the given passwords, or one password per line from stdin, and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkCommand(cmd, args)
		},
	}
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

func checkCommand(cmd *cobra.Command, args []string) error {
	evaluator, cfg, closer, err := setup()
	if err != nil {
		return err
	}
	defer closer()

	if len(args) > 0 {
		return checkAll(cmd.OutOrStdout(), evaluator, args, reportOptions(cfg))
	}
	return checkLines(cmd.InOrStdin(), cmd.OutOrStdout(), evaluator, reportOptions(cfg))
}

func checkAll(out io.Writer, evaluator *strength.Evaluator, passwords []string, opts report.Options) error {
	for _, password := range passwords {
		if err := check(out, evaluator, password, opts); err != nil {
			return err
		}
	}
	return nil
}

// checkLines checks every line of in. Line endings are removed, any other
// whitespace is part of the password.
func checkLines(in io.Reader, out io.Writer, evaluator *strength.Evaluator, opts report.Options) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		password := strings.TrimSuffix(scanner.Text(), "\r")
		if err := check(out, evaluator, password, opts); err != nil {
			return err
		}
	}
	return scanner.Err()
}
