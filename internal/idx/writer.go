// Copyright 2023 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package idx

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"sync/atomic"
)

const defaultBufferSize = 64 * 1024

type nopWriter struct{}

func (nopWriter) Write([]byte) (int, error) {
	return 0, io.EOF
}

// FileWriter is usually an *os.File, but specified as an interface for easier testing.
type FileWriter interface {
	io.Writer
	io.WriterAt
}

// Writer produces an IDX stream one record at a time.  The record
// count in the header is filled in by Finish.
type Writer struct {
	f        FileWriter
	h        *Header
	w        *bufio.Writer
	elemSize int
	count    uint64
	finished atomic.Bool
}

func NewWriter(f FileWriter, format Format, dims ...uint32) (*Writer, error) {
	if len(dims) != format.Dims {
		return nil, fmt.Errorf("format wants %d dimensions, got %d", format.Dims, len(dims))
	}
	h := &Header{
		Magic: format.Magic,
		Dims:  append([]uint32(nil), dims...),
	}
	elemSize, ok := h.elemSize()
	if !ok || elemSize > math.MaxInt32 {
		return nil, fmt.Errorf("record size too large for dims %v", dims)
	}
	w := &Writer{
		f:        f,
		h:        h,
		w:        bufio.NewWriterSize(f, defaultBufferSize),
		elemSize: int(elemSize),
	}

	if _, err := w.h.WriteTo(w.w); err != nil {
		return nil, fmt.Errorf("Header.WriteTo: %w", err)
	}

	// try to expose errors when writing to the backing file early
	if err := w.w.Flush(); err != nil {
		return nil, fmt.Errorf("flush: %w", err)
	}

	return w, nil
}

// Write appends one record, which must be exactly as long as the
// product of the writer's dimensions.
func (w *Writer) Write(record []byte) error {
	if w.finished.Load() {
		return errors.New("write after Finish")
	}
	if len(record) != w.elemSize {
		return fmt.Errorf("record length %d, want %d", len(record), w.elemSize)
	}
	if w.count >= math.MaxUint32 {
		return errors.New("too many records for a 32-bit count")
	}
	if _, err := w.w.Write(record); err != nil {
		return fmt.Errorf("bufio.Write: %w", err)
	}
	w.count++
	return nil
}

func (w *Writer) Count() uint64 {
	return w.count
}

// Finish flushes buffered records and patches the header's count field.
func (w *Writer) Finish() error {
	if alreadyFinished := w.finished.Swap(true); alreadyFinished {
		// nothing to do - already cleaned up
		return nil
	}

	defer func() {
		w.w.Reset(nopWriter{})
		w.w = nil
	}()

	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("bufio.Flush: %w", err)
	}

	w.h.Count = uint32(w.count)
	var countBuf [fieldSize]byte
	binary.BigEndian.PutUint32(countBuf[:], w.h.Count)
	if _, err := w.f.WriteAt(countBuf[:], fieldSize); err != nil {
		return fmt.Errorf("f.WriteAt: %w", err)
	}

	return nil
}
