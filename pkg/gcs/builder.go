// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package gcs

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
	"sync"

	"github.com/alvinbaena/pwd-strength/internal/util"
	"github.com/jfcg/sorty/v2"
	"github.com/rs/zerolog/log"
	"github.com/thinhdanggroup/executor"
)

// https://github.com/rasky/gcs
// https://github.com/Freaky/gcstool
// https://giovanni.bajo.it/post/47119962313/golomb-coded-sets-smaller-than-bloom-filters
const gcsMagic = "[GCS:v1]"

// N, count, P, index granularity, end of data, index length, magic.
const footerLen = 7 * 8

// Lines hashed per worker task.
const chunkLen = 64 * 1024

// ErrEmptyInput is returned when the password list has no usable lines.
var ErrEmptyInput = errors.New("password list has no entries")

type indexPair struct {
	value  uint64
	bitPos uint64
}

// Summary describes a GCS file written by a Builder.
type Summary struct {
	Lines       uint64
	Unique      uint64
	Probability uint64
	IndexLen    uint64
	Bytes       uint64
}

// Builder creates a GCS file from a newline separated list of plain text passwords.
type Builder struct {
	in               io.Reader
	out              io.Writer
	probability      uint64
	indexGranularity uint64
	workers          int

	mutex  sync.Mutex
	values []uint64
	stat   *status
}

// NewBuilder builder for a new GCS file database.
//
// probability is the False positive rate for queries, 1-in-p.
// indexGranularity is the entries per index point (16 bytes each), 0 disables the index.
// workers is the size of the hashing pool, <= 0 uses the number of logical CPUs.
func NewBuilder(in io.Reader, out io.Writer, probability uint64, indexGranularity uint64, workers int) *Builder {
	return &Builder{
		in:               in,
		out:              out,
		probability:      probability,
		indexGranularity: indexGranularity,
		workers:          workers,
	}
}

// Process hashes every line of the input and writes the encoded set to the output.
func (b *Builder) Process() (Summary, error) {
	if b.probability < 2 {
		return Summary{}, fmt.Errorf("false positive rate must be at least 2, got %d", b.probability)
	}

	s := util.Stats()
	defer s()

	b.stat = newStatus()
	b.stat.Stage("Hashing")
	if err := b.hashLines(); err != nil {
		return Summary{}, err
	}

	if len(b.values) == 0 {
		return Summary{}, ErrEmptyInput
	}

	if err := util.CheckRam(uint64(len(b.values))); err != nil {
		return Summary{}, err
	}

	summary, err := b.finalize()
	if err != nil {
		return Summary{}, err
	}

	b.stat.Done()
	return summary, nil
}

func (b *Builder) hashLines() error {
	threads := b.workers
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	// Bounded pool, hashing is the only parallel part of the build.
	tasks, err := executor.New(executor.Config{
		ReqPerSeconds: 0,
		QueueSize:     2 * threads,
		NumWorkers:    threads,
	})
	if err != nil {
		return err
	}
	defer tasks.Close()

	log.Debug().Msgf("hashing password list with %d workers", threads)

	scanner := bufio.NewScanner(b.in)
	lines := make([]string, 0, chunkLen)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		lines = append(lines, line)
		if len(lines) == chunkLen {
			if err = tasks.Publish(b.hashChunk, lines); err != nil {
				log.Panic().Err(err).Msgf("there is a programming error here.")
			}
			lines = make([]string, 0, chunkLen)
		}
	}

	if len(lines) > 0 {
		if err = tasks.Publish(b.hashChunk, lines); err != nil {
			log.Panic().Err(err).Msgf("there is a programming error here.")
		}
	}

	tasks.Wait()
	return scanner.Err()
}

func (b *Builder) hashChunk(lines []string) {
	hashes := make([]uint64, 0, len(lines))
	for _, line := range lines {
		hashes = append(hashes, HashPassword(line))
	}

	b.mutex.Lock()
	b.values = append(b.values, hashes...)
	b.mutex.Unlock()

	b.stat.AddWork(uint64(len(hashes)))
}

// finalize normalises, sorts and encodes the hashed values, then writes the
// index and the footer.
func (b *Builder) finalize() (Summary, error) {
	num := uint64(len(b.values))
	np := num * b.probability
	log.Debug().Msgf("database will have %d items", num)

	b.stat.Stage("Normalise")
	for i, v := range b.values {
		b.values[i] = v % np
	}

	b.stat.Stage("Sort")
	sorty.SortSlice(b.values)

	b.stat.Stage("Deduplicate")
	b.values = dedup(b.values)
	count := uint64(len(b.values))

	out := bufio.NewWriter(b.out)
	encoder := newEncoder(out, b.probability)

	var index []indexPair
	if b.indexGranularity > 0 {
		index = make([]indexPair, 0, count/b.indexGranularity)
	}

	b.stat.StageWork("Encode", count)
	totalBits := uint64(0)
	prev := uint64(0)
	for i, v := range b.values {
		bits, err := encoder.Encode(v - prev)
		if err != nil {
			return Summary{}, err
		}
		totalBits += bits
		prev = v

		if b.indexGranularity > 0 && uint64(i+1)%b.indexGranularity == 0 {
			index = append(index, indexPair{value: v, bitPos: totalBits})
		}

		b.stat.Incr()
	}

	padding, err := encoder.Finalize()
	if err != nil {
		return Summary{}, err
	}

	endOfData := (totalBits + padding) / 8
	log.Debug().Msgf("end of data: %d", endOfData)

	b.stat.Stage("Write Index")
	log.Debug().Msgf("index will have %d items", len(index))

	// pairs of u64's (value, bit position)
	for _, pair := range index {
		if _, err = out.Write(toFixedBytes(pair.value)); err != nil {
			return Summary{}, err
		}
		if _, err = out.Write(toFixedBytes(pair.bitPos)); err != nil {
			return Summary{}, err
		}
	}

	footer := []uint64{num, count, b.probability, b.indexGranularity, endOfData, uint64(len(index))}
	for _, field := range footer {
		if _, err = out.Write(toFixedBytes(field)); err != nil {
			return Summary{}, err
		}
	}
	if _, err = out.WriteString(gcsMagic); err != nil {
		return Summary{}, err
	}

	if err = out.Flush(); err != nil {
		return Summary{}, err
	}

	return Summary{
		Lines:       num,
		Unique:      count,
		Probability: b.probability,
		IndexLen:    uint64(len(index)),
		Bytes:       endOfData + uint64(len(index))*16 + footerLen,
	}, nil
}
