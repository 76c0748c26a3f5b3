// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package denylist

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// Set is an in-memory set of common passwords. It is never modified after loading.
type Set struct {
	entries map[string]struct{}
}

// Empty returns a set without entries.
func Empty() *Set {
	return &Set{entries: map[string]struct{}{}}
}

// Load reads a newline separated list of passwords. Surrounding whitespace is
// trimmed, blank lines are skipped and duplicates collapse. A missing file
// yields an empty set.
func Load(fileName string) (*Set, error) {
	file, err := os.Open(fileName)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Msgf("denylist %s not found, using an empty denylist", fileName)
		return Empty(), nil
	}
	if err != nil {
		return nil, err
	}

	defer func(file *os.File) {
		if err := file.Close(); err != nil {
			log.Error().Err(err).Msg("error closing denylist file")
		}
	}(file)

	set, err := Parse(file)
	if err != nil {
		return nil, err
	}

	log.Debug().Msgf("loaded %d common passwords from %s", set.Len(), fileName)
	return set, nil
}

// Parse reads a newline separated list of passwords from r.
func Parse(r io.Reader) (*Set, error) {
	set := Empty()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		set.entries[line] = struct{}{}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return set, nil
}

func (s *Set) Len() int {
	return len(s.entries)
}

// Contains is an exact, case-sensitive lookup. It never fails.
func (s *Set) Contains(password string) (bool, error) {
	_, ok := s.entries[password]
	return ok, nil
}
