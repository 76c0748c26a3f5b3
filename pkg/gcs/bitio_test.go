// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package gcs

import (
	"bytes"
	"io"
	"testing"
)

// testWriter that does not implement io.ByteWriter so we can test the
// behaviour of bitWriter when it creates an internal bufio.Writer.
type testWriter struct {
	b *bytes.Buffer
}

func (w *testWriter) Write(p []byte) (n int, err error) {
	return w.b.Write(p)
}

func TestBitWriter(t *testing.T) {
	cases := []struct {
		size   uint8
		inputs []uint64
		want   []byte
		fail   bool
	}{
		{8, []uint64{255}, []byte{0xff}, false},
		{4, []uint64{15, 15}, []byte{0xff}, false},
		{2, []uint64{3, 3, 3, 3}, []byte{0xff}, false},
		{1, []uint64{1, 1, 1, 1, 1, 1, 1, 1}, []byte{0xff}, false},
		{4, []uint64{15, 15, 15}, []byte{0xff, 0xf0}, false},
		{2, []uint64{3, 3, 3, 3, 3, 3}, []byte{0xff, 0xf0}, false},
		{65, []uint64{255}, nil, true},
		{64, []uint64{255}, []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xff}, false},
		{16, []uint64{65535}, []byte{0xff, 0xff}, false},
		{14, []uint64{255, 128}, []byte{0x03, 0xfc, 0x08, 0x00}, false},
		// bits above the requested size are ignored
		{4, []uint64{0xff0}, []byte{0x00}, false},
	}

	for _, direct := range []bool{true, false} {
		for _, tc := range cases {
			var buf bytes.Buffer
			var writer *bitWriter
			if direct {
				writer = newBitWriter(&buf)
			} else {
				writer = newBitWriter(&testWriter{b: &buf})
			}

			for _, input := range tc.inputs {
				err := writer.WriteBits(tc.size, input)
				if !tc.fail && err != nil {
					t.Errorf("Write should not fail: %s", err)
				}
				if tc.fail && err == nil {
					t.Errorf("WriteBits(%d) should fail", tc.size)
				}
			}

			if tc.fail {
				continue
			}

			if _, err := writer.Flush(); err != nil {
				t.Errorf("Flush should not fail: %s", err)
			}

			if !bytes.Equal(buf.Bytes(), tc.want) {
				t.Errorf("Write writes: %x, want: %x", buf.Bytes(), tc.want)
			}
		}
	}
}

func TestBitWriter_FlushPadding(t *testing.T) {
	var buf bytes.Buffer
	writer := newBitWriter(&buf)
	if err := writer.WriteBits(3, 0b101); err != nil {
		t.Fatalf("Write should not fail: %s", err)
	}

	padding, err := writer.Flush()
	if err != nil {
		t.Fatalf("Flush should not fail: %s", err)
	}
	if padding != 5 {
		t.Errorf("Flush padding: %d, want: 5", padding)
	}
	if !bytes.Equal(buf.Bytes(), []byte{0b10100000}) {
		t.Errorf("Write writes: %08b, want: 10100000", buf.Bytes())
	}
}

func TestBitReader(t *testing.T) {
	cases := []struct {
		n      uint8
		inputs []byte
		want   uint64
		fail   bool
	}{
		{8, []byte{3}, 3, false},
		{1, []byte{0x1}, 0, false},
		{1, []byte{0xf0}, 1, false},
		{8, []byte{255}, 255, false},
		{65, []byte{255}, 0, true},
		{4, []byte{0xcc}, 0xc, false},
		{12, []byte{0xab, 0xcd}, 0xabc, false},
		{16, []byte{0xab}, 0, true},
	}

	for _, tc := range cases {
		reader := newBitReader(bytes.NewReader(tc.inputs))

		got, err := reader.ReadBits(tc.n)
		if tc.fail {
			if err == nil {
				t.Errorf("ReadBits(%d) should fail", tc.n)
			}
			continue
		}

		if err != nil {
			t.Errorf("ReadBits should not fail: %s", err)
		}
		if got != tc.want {
			t.Errorf("ReadBits(%d): %b, want: %b", tc.n, got, tc.want)
		}
	}
}

func TestBitReader_Seek(t *testing.T) {
	cases := []struct {
		offset int64
		whence int
		inputs []byte
		next   uint64
		fail   bool
	}{
		{8, io.SeekStart, []byte{0x00, 0xff}, 0xf, false},
		{4, io.SeekStart, []byte{0x0f}, 0xf, false},
		{12, io.SeekStart, []byte{0b1111}, 0, true},
		{8, io.SeekCurrent, []byte{}, 0, true},
		{-8, io.SeekEnd, []byte{255}, 0, true},
		{-1, io.SeekStart, []byte{255}, 0, true},
	}

	for _, tc := range cases {
		reader := newBitReader(bytes.NewReader(tc.inputs))
		got, err := reader.Seek(tc.offset, tc.whence)
		if tc.fail {
			if err == nil {
				t.Errorf("Seek(%d, %d) should fail", tc.offset, tc.whence)
			}
			continue
		}

		if err != nil {
			t.Errorf("Seek should not fail: %s", err)
		}
		if got != tc.offset {
			t.Errorf("Seek(%d, %d): %d, want: %d", tc.offset, tc.whence, got, tc.offset)
		}

		next, err := reader.ReadBits(4)
		if err != nil {
			t.Errorf("ReadBits after Seek should not fail: %s", err)
		}
		if next != tc.next {
			t.Errorf("ReadBits after Seek(%d): %b, want: %b", tc.offset, next, tc.next)
		}
	}
}

func TestBitRoundTrip(t *testing.T) {
	sizes := []uint8{1, 7, 13, 64, 3, 33}
	values := []uint64{1, 0x55, 0x1abc, 0xdeadbeefcafebabe, 0b010, 0x1_2345_6789}

	var buf bytes.Buffer
	writer := newBitWriter(&buf)
	for i, size := range sizes {
		if err := writer.WriteBits(size, values[i]); err != nil {
			t.Fatalf("Write should not fail: %s", err)
		}
	}
	if _, err := writer.Flush(); err != nil {
		t.Fatalf("Flush should not fail: %s", err)
	}

	reader := newBitReader(bytes.NewReader(buf.Bytes()))
	for i, size := range sizes {
		got, err := reader.ReadBits(size)
		if err != nil {
			t.Fatalf("ReadBits should not fail: %s", err)
		}
		if got != values[i] {
			t.Errorf("ReadBits(%d): %x, want: %x", size, got, values[i])
		}
	}
}
