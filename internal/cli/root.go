// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/alvinbaena/pwd-strength/internal/config"
	"github.com/alvinbaena/pwd-strength/internal/denylist"
	"github.com/alvinbaena/pwd-strength/internal/report"
	"github.com/alvinbaena/pwd-strength/internal/strength"
	"github.com/alvinbaena/pwd-strength/internal/util"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "pwdstrength [COMMAND] [OPTIONS]",
		Short: "Estimate the strength of passwords",
		Long: "Estimate password strength from the character pool entropy and the time a brute force " +
			"attack would take, checking a list of common passwords first. Without a command an " +
			"interactive session is started.",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return sessionCommand(cmd)
		},
	}
)

//goland:noinspection GoUnhandledErrorResult
func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Print more information on the processing")
	flags.StringVarP(&configFile, "config", "c", "", "Config file (yaml, toml or json). Flags take precedence over it")
	flags.String(config.KeyPolicy, strength.StandardPolicy.Name,
		"Strength policy: 'standard' (denylist, 28/50 bits, 1e9 guesses/s) or 'strict' (no denylist, 40/60 bits, 1e11 guesses/s)")
	flags.Float64(config.KeyAttackRate, 0, "Guesses per second of the assumed attacker. 0 uses the policy rate")
	flags.String(config.KeyDenylist, "common.txt", "Common passwords file, one per line. A missing file is an empty list")
	flags.String(config.KeyDenylistGCS, "", "Common passwords GCS file built with the create command")
	flags.Bool(config.KeyMask, true, "Mask the password while typing it")
	flags.Bool(config.KeyShowTime, true, "Show the estimated brute force time")
	flags.Bool(config.KeyMeter, true, "Show the strength meter")

	for _, key := range []string{config.KeyPolicy, config.KeyAttackRate, config.KeyDenylist,
		config.KeyDenylistGCS, config.KeyMask, config.KeyShowTime, config.KeyMeter} {
		settings.BindPFlag(key, flags.Lookup(key))
	}
}

func Execute() error {
	return rootCmd.Execute()
}

// setup applies the cli settings and builds the evaluator from the configuration.
// The returned func releases the denylist.
func setup() (*strength.Evaluator, config.Config, func(), error) {
	util.ApplyCliSettings(verbose)

	cfg, err := config.Load(settings, configFile)
	if err != nil {
		return nil, config.Config{}, nil, err
	}

	policy, err := cfg.StrengthPolicy()
	if err != nil {
		return nil, config.Config{}, nil, err
	}
	log.Debug().Msgf("using %s policy: weak below %.0f bits, strong from %.0f bits, %.0f guesses/s",
		policy.Name, policy.WeakBelow, policy.StrongFrom, policy.AttackRate)

	list, closer, err := openDenylist(cfg, policy)
	if err != nil {
		return nil, config.Config{}, nil, err
	}

	return strength.NewEvaluator(policy, list), cfg, closer, nil
}

func openDenylist(cfg config.Config, policy strength.Policy) (strength.Denylist, func(), error) {
	noop := func() {}
	if !policy.UseDenylist {
		log.Debug().Msgf("the %s policy does not use a denylist", policy.Name)
		return nil, noop, nil
	}

	set, err := denylist.Load(cfg.Denylist)
	if err != nil {
		return nil, nil, err
	}
	if cfg.DenylistGCS == "" {
		return set, noop, nil
	}

	large, err := denylist.OpenGCS(cfg.DenylistGCS)
	if err != nil {
		return nil, nil, err
	}

	return denylist.Multi{set, large}, large.Close, nil
}

func reportOptions(cfg config.Config) report.Options {
	return report.Options{ShowTime: cfg.ShowTime, Meter: cfg.Meter}
}
