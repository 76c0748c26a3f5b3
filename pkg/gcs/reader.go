// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package gcs

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrNotGCS is returned when a file does not carry a GCS footer.
var ErrNotGCS = errors.New("not a GCS file")

// Reader answers membership queries against a GCS file. Only the footer and
// the index are kept in memory.
type Reader struct {
	fileName         string
	num              uint64
	count            uint64
	probability      uint64
	indexGranularity uint64
	endOfData        uint64
	index            []indexPair
}

func NewReader(fileName string) *Reader {
	return &Reader{fileName: fileName}
}

// Initialize reads the footer and loads the index into memory.
func (r *Reader) Initialize() error {
	file, err := os.Open(r.fileName)
	if err != nil {
		return err
	}

	defer func(file *os.File) {
		if err := file.Close(); err != nil {
			log.Error().Err(err).Msg("error closing GCS file")
		}
	}(file)

	info, err := file.Stat()
	if err != nil {
		return err
	}
	if info.Size() < footerLen {
		return ErrNotGCS
	}

	if _, err = file.Seek(-footerLen, io.SeekEnd); err != nil {
		return err
	}

	footer := make([]byte, footerLen)
	if _, err = io.ReadFull(file, footer); err != nil {
		return err
	}

	if string(footer[footerLen-8:]) != gcsMagic {
		return ErrNotGCS
	}

	field := func(i int) uint64 {
		return binary.BigEndian.Uint64(footer[i*8 : (i+1)*8])
	}
	r.num = field(0)
	r.count = field(1)
	r.probability = field(2)
	r.indexGranularity = field(3)
	r.endOfData = field(4)
	indexLen := field(5)

	log.Debug().Msgf("GCS items: %d, unique: %d, probability: %d, granularity: %d, end of data: %d, index length: %d",
		r.num, r.count, r.probability, r.indexGranularity, r.endOfData, indexLen)

	if r.num == 0 || r.probability < 2 {
		return fmt.Errorf("corrupt GCS footer in %s", r.fileName)
	}
	if uint64(info.Size()) != r.endOfData+indexLen*16+footerLen {
		return fmt.Errorf("corrupt GCS file %s: size does not match footer", r.fileName)
	}

	if _, err = file.Seek(int64(r.endOfData), io.SeekStart); err != nil {
		return err
	}

	raw := make([]byte, indexLen*16)
	if _, err = io.ReadFull(file, raw); err != nil {
		return err
	}

	// Position 0 is an implicit entry, decoding starts from value 0 at bit 0.
	r.index = make([]indexPair, 0, 1+indexLen)
	r.index = append(r.index, indexPair{0, 0})
	for i := uint64(0); i < indexLen; i++ {
		r.index = append(r.index, indexPair{
			value:  binary.BigEndian.Uint64(raw[i*16 : i*16+8]),
			bitPos: binary.BigEndian.Uint64(raw[i*16+8 : i*16+16]),
		})
	}

	p := message.NewPrinter(language.English)
	log.Info().Msgf("ready for queries on %s items with a 1 in %s false-positive rate.",
		p.Sprintf("%d", r.count), p.Sprintf("%d", r.probability))
	return nil
}

// Len returns the number of distinct encoded values.
func (r *Reader) Len() uint64 {
	return r.count
}

// Exists reports whether the hash is probably in the set. False positives happen
// at a rate of 1 in P, false negatives never.
func (r *Reader) Exists(hash uint64) (bool, error) {
	if r.index == nil {
		return false, errors.New("GCS reader is not initialized")
	}

	h := hash % (r.num * r.probability)

	// Closest index entry at or below h.
	k := sort.Search(len(r.index), func(i int) bool {
		return r.index[i].value > h
	}) - 1
	if k > 0 && r.index[k].value == h {
		return true, nil
	}

	// A file pointer per query keeps concurrent lookups independent.
	file, err := os.Open(r.fileName)
	if err != nil {
		return false, err
	}

	defer func(file *os.File) {
		if err := file.Close(); err != nil {
			log.Error().Err(err).Msg("error closing GCS file")
		}
	}(file)

	decoder := newDecoder(io.NewSectionReader(file, 0, int64(r.endOfData)), r.probability)
	if err = decoder.Seek(r.index[k].bitPos); err != nil {
		return false, err
	}

	last := r.index[k].value
	for remaining := r.count - uint64(k)*r.indexGranularity; remaining > 0; remaining-- {
		diff, err := decoder.Decode()
		if err != nil {
			return false, err
		}

		last += diff
		if last == h {
			return true, nil
		}
		if last > h {
			return false, nil
		}
	}

	return false, nil
}
