// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package gcs

import (
	"bufio"
	"fmt"
	"io"
)

// bitReader adds bit-level reading to any io.ReadSeeker. Bits are consumed
// most significant first.
type bitReader struct {
	inner  io.ReadSeeker
	buffer []byte
	unused uint8
}

func newBitReader(r io.ReadSeeker) *bitReader {
	return &bitReader{inner: r, buffer: make([]byte, 1)}
}

// Reset drops any buffered bits. The next read starts at the current byte
// position of the inner reader.
func (r *bitReader) Reset() {
	r.buffer[0] = 0
	r.unused = 0
}

// ReadBits reads up to 64 bits from the reader.
func (r *bitReader) ReadBits(n uint8) (uint64, error) {
	if n > 64 {
		return 0, fmt.Errorf("cannot read more than 64 bits at a time, requested %d", n)
	}

	ret := uint64(0)
	pending := n

	for pending > r.unused {
		ret |= uint64(r.buffer[0]) << (pending - r.unused)
		pending -= r.unused

		if _, err := io.ReadFull(r.inner, r.buffer); err != nil {
			return 0, err
		}
		r.unused = 8
	}

	if pending > 0 {
		ret |= uint64(r.buffer[0]) >> (r.unused - pending)
		r.buffer[0] &= (1 << (r.unused - pending)) - 1
		r.unused -= pending
	}

	return ret, nil
}

// ReadBit reads a single bit.
func (r *bitReader) ReadBit() (uint64, error) {
	return r.ReadBits(1)
}

// Seek to the given *bit* position. Only io.SeekStart is supported.
func (r *bitReader) Seek(offset int64, whence int) (int64, error) {
	if whence != io.SeekStart {
		return 0, fmt.Errorf("bit seek only supports io.SeekStart")
	}
	if offset < 0 {
		return 0, fmt.Errorf("negative bit position %d", offset)
	}

	r.Reset()
	if _, err := r.inner.Seek(offset/8, io.SeekStart); err != nil {
		return 0, err
	}
	if _, err := r.ReadBits(uint8(offset % 8)); err != nil {
		return 0, err
	}

	return offset, nil
}

type writerAndByteWriter interface {
	io.Writer
	io.ByteWriter
}

// bitWriter adds bit-level writing to any io.Writer.
type bitWriter struct {
	inner   writerAndByteWriter
	wrapper *bufio.Writer // set when the target does not implement io.ByteWriter
	buffer  uint8         // pending bits, left aligned
	used    uint8         // number of pending bits in buffer
}

func newBitWriter(out io.Writer) *bitWriter {
	w := &bitWriter{}
	var ok bool
	w.inner, ok = out.(writerAndByteWriter)
	if !ok {
		w.wrapper = bufio.NewWriter(out)
		w.inner = w.wrapper
	}
	return w
}

// WriteBits writes the n lowest bits of r, most significant first.
func (w *bitWriter) WriteBits(n uint8, r uint64) error {
	if n > 64 {
		return fmt.Errorf("cannot write more than 64 bits at a time, requested %d", n)
	}
	if n < 64 {
		r &= (1 << n) - 1
	}

	for n > 0 {
		free := 8 - w.used
		if n < free {
			w.buffer |= uint8(r) << (free - n)
			w.used += n
			return nil
		}

		// Fill the buffer with the top `free` bits of what is left.
		n -= free
		w.buffer |= uint8(r >> n)
		if err := w.inner.WriteByte(w.buffer); err != nil {
			return err
		}
		w.buffer, w.used = 0, 0
		if n < 64 {
			r &= (1 << n) - 1
		}
	}

	return nil
}

// Flush pads the pending bits with zeros up to a byte boundary, writes them
// and flushes the wrapper writer if there is one. Returns the number of
// padding bits.
func (w *bitWriter) Flush() (uint64, error) {
	var padding uint64
	if w.used > 0 {
		if err := w.inner.WriteByte(w.buffer); err != nil {
			return 0, err
		}
		padding = uint64(8 - w.used)
		w.buffer, w.used = 0, 0
	}

	if w.wrapper != nil {
		if err := w.wrapper.Flush(); err != nil {
			return padding, err
		}
	}

	return padding, nil
}
