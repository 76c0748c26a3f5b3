// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package denylist

import (
	"github.com/alvinbaena/pwd-strength/pkg/gcs"
	"github.com/dgraph-io/ristretto"
)

// GCS is a denylist backed by a Golomb Coded Set file, for lists too large to
// keep in memory. Lookups are probabilistic: a password may be reported as
// listed with the false positive rate the file was built with.
type GCS struct {
	reader *gcs.Reader
	cache  *ristretto.Cache
}

// OpenGCS loads the index of a GCS file built with the create command.
func OpenGCS(fileName string) (*GCS, error) {
	reader := gcs.NewReader(fileName)
	if err := reader.Initialize(); err != nil {
		return nil, err
	}

	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e5,
		MaxCost:     1e4,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}

	return &GCS{reader: reader, cache: cache}, nil
}

func (g *GCS) Len() uint64 {
	return g.reader.Len()
}

// Contains hashes the password and looks it up, going to disk only on cache misses.
func (g *GCS) Contains(password string) (bool, error) {
	hash := gcs.HashPassword(password)
	if cached, ok := g.cache.Get(hash); ok {
		return cached.(bool), nil
	}

	exists, err := g.reader.Exists(hash)
	if err != nil {
		return false, err
	}

	g.cache.Set(hash, exists, 1)
	return exists, nil
}

func (g *GCS) Close() {
	g.cache.Close()
}
