// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package gcs

import (
	"io"
	"math"
)

// log2Ceil is the number of bits used for the remainder part of a Golomb-Rice code.
func log2Ceil(probability uint64) uint8 {
	return uint8(math.Ceil(math.Log2(float64(probability))))
}

type golombEncoder struct {
	inner       *bitWriter
	probability uint64
	log2p       uint8
}

func newEncoder(w io.Writer, probability uint64) *golombEncoder {
	return &golombEncoder{
		inner:       newBitWriter(w),
		probability: probability,
		log2p:       log2Ceil(probability),
	}
}

// Encode writes value as a unary quotient followed by a fixed width remainder.
// Returns the number of bits written.
func (e *golombEncoder) Encode(value uint64) (uint64, error) {
	q := value / e.probability
	r := value % e.probability

	// q ones, 64 at a time, then the terminating zero.
	for left := q; left > 0; {
		n := uint8(64)
		if left < 64 {
			n = uint8(left)
		}
		if err := e.inner.WriteBits(n, math.MaxUint64); err != nil {
			return 0, err
		}
		left -= uint64(n)
	}
	if err := e.inner.WriteBits(1, 0); err != nil {
		return 0, err
	}

	if err := e.inner.WriteBits(e.log2p, r); err != nil {
		return 0, err
	}

	return q + 1 + uint64(e.log2p), nil
}

// Finalize flushes the pending bits, returning the number of padding bits.
func (e *golombEncoder) Finalize() (uint64, error) {
	return e.inner.Flush()
}

type golombDecoder struct {
	inner       *bitReader
	probability uint64
	log2p       uint8
}

func newDecoder(r io.ReadSeeker, probability uint64) *golombDecoder {
	return &golombDecoder{
		inner:       newBitReader(r),
		probability: probability,
		log2p:       log2Ceil(probability),
	}
}

// Seek positions the decoder at the given bit offset.
func (d *golombDecoder) Seek(bitPos uint64) error {
	_, err := d.inner.Seek(int64(bitPos), io.SeekStart)
	return err
}

// Decode reads the next encoded value.
func (d *golombDecoder) Decode() (uint64, error) {
	value := uint64(0)
	for {
		bit, err := d.inner.ReadBit()
		if err != nil {
			return 0, err
		}
		if bit == 0 {
			break
		}
		value += d.probability
	}

	r, err := d.inner.ReadBits(d.log2p)
	if err != nil {
		return 0, err
	}

	return value + r, nil
}
