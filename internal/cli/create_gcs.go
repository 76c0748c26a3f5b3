// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alvinbaena/pwd-strength/internal/util"
	"github.com/alvinbaena/pwd-strength/pkg/gcs"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	createCmd = &cobra.Command{
		Use:   "create",
		Short: "Create a GCS denylist from a common passwords file, for lists too large to load in memory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return createCommand()
		},
	}
)

//goland:noinspection GoUnhandledErrorResult
func init() {
	createCmd.Flags().Uint64VarP(&probability, "false-positive-rate", "p", 16777216, "False positive rate for queries, 1-in-p.")
	createCmd.Flags().Uint64VarP(&indexGranularity, "index-granularity", "g", 1024, "Entries per index point (16 bytes each).")
	createCmd.Flags().StringVarP(&inputFile, "in-file", "i", "", "Common passwords input file path, one per line (required)")
	createCmd.MarkFlagRequired("in-file")
	createCmd.Flags().StringVarP(&outFile, "out-file", "o", "./common.gcs", "GCS file output path")
	createCmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite any existing files while writing the results.")
	createCmd.Flags().IntVarP(&threads, "threads", "t", 0, "Number of hashing workers. Defaults to the number of logical processors.")

	rootCmd.AddCommand(createCmd)
}

func createCommand() error {
	util.ApplyCliSettings(verbose)
	return createGCS(inputFile, outFile, probability, indexGranularity, threads, overwrite)
}

func createGCS(in, out string, probability, indexGranularity uint64, threads int, overwrite bool) error {
	file, err := os.Open(in)
	if err != nil {
		return err
	}

	defer func(file *os.File) {
		if err := file.Close(); err != nil {
			log.Error().Err(err).Msg("error closing common passwords file")
		}
	}(file)

	abs, err := filepath.Abs(out)
	if err != nil {
		return fmt.Errorf("could not get absolute path of %s: %w", out, err)
	}

	if !overwrite {
		if _, err = os.Stat(abs); !os.IsNotExist(err) {
			return fmt.Errorf("file %s exists and overwrite flag is not set", abs)
		}
	}

	dst, err := os.Create(abs)
	if err != nil {
		return err
	}

	defer func(dst *os.File) {
		if err := dst.Close(); err != nil {
			log.Error().Err(err).Msg("error closing GCS file")
		}
	}(dst)

	summary, err := gcs.NewBuilder(file, dst, probability, indexGranularity, threads).Process()
	if err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	log.Info().Msgf("wrote %s with %s passwords (%s lines), %s bytes, 1 in %s false-positive rate",
		abs, p.Sprintf("%d", summary.Unique), p.Sprintf("%d", summary.Lines),
		p.Sprintf("%d", summary.Bytes), p.Sprintf("%d", summary.Probability))
	return nil
}
