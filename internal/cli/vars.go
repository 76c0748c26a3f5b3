// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import "github.com/alvinbaena/pwd-strength/internal/config"

var (
	// root
	verbose bool
	// root
	configFile string
	// root, every key of the configuration
	settings = config.New()
	// create
	inputFile string
	// create
	outFile string
	// create
	probability uint64
	// create
	indexGranularity uint64
	// create
	threads int
	// create
	overwrite bool
)
