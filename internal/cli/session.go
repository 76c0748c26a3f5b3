// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alvinbaena/pwd-strength/internal/report"
	"github.com/alvinbaena/pwd-strength/internal/strength"
	"github.com/manifoldco/promptui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Typed instead of a password to end the session, case-insensitive.
const exitCommand = "exit"

// prompter is satisfied by *promptui.Prompt.
type prompter interface {
	Run() (string, error)
}

func sessionCommand(cmd *cobra.Command) error {
	evaluator, cfg, closer, err := setup()
	if err != nil {
		return err
	}
	defer closer()

	prompt := &promptui.Prompt{
		Label: fmt.Sprintf("Enter a password to check (or '%s' to quit)", exitCommand),
	}
	if cfg.Mask {
		prompt.Mask = '*'
	}

	return runSession(prompt, cmd.OutOrStdout(), evaluator, reportOptions(cfg))
}

// runSession prompts for passwords and prints their analysis until the exit
// command, ^C or ^D.
func runSession(p prompter, out io.Writer, evaluator *strength.Evaluator, opts report.Options) error {
	if _, err := fmt.Fprint(out, "Password Strength Checker\n=========================\n"); err != nil {
		return err
	}

	for {
		input, err := p.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return goodbye(out)
			}
			return err
		}

		if strings.EqualFold(input, exitCommand) {
			return goodbye(out)
		}

		if err = check(out, evaluator, input, opts); err != nil {
			// A failed lookup only loses this password, the session goes on.
			log.Error().Err(err).Msg("error checking password")
		}
	}
}

func goodbye(out io.Writer) error {
	_, err := fmt.Fprintln(out, "Goodbye!")
	return err
}

func check(out io.Writer, evaluator *strength.Evaluator, password string, opts report.Options) error {
	result, err := evaluator.Evaluate(password)
	if err != nil {
		return err
	}
	return report.Render(out, result, opts)
}
