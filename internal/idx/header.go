// Copyright 2023 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package idx

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"math/bits"
)

const (
	MagicLabels = 0x00000801 // 2049
	MagicImages = 0x00000803 // 2051

	fieldSize = 4
	// the largest number of trailing dimensions we will decode
	maxDims = 8
)

var (
	ErrBadMagic     = errors.New("bad magic number")
	ErrShortHeader  = errors.New("header truncated")
	ErrShortPayload = errors.New("payload truncated")
)

// Format describes one kind of IDX stream.
type Format struct {
	Magic uint32
	// Dims is the number of header fields after magic and count.
	Dims int
}

var (
	Labels = Format{Magic: MagicLabels, Dims: 0}
	Images = Format{Magic: MagicImages, Dims: 2}
)

// HeaderSize is the length in bytes of the header for streams of this format.
func (f Format) HeaderSize() int {
	return fieldSize * (2 + f.Dims)
}

type Header struct {
	Magic uint32
	Count uint32
	Dims  []uint32
}

// ElemSize is the number of payload bytes making up one record.
func (h *Header) ElemSize() uint64 {
	n, _ := h.elemSize()
	return n
}

func (h *Header) elemSize() (uint64, bool) {
	n := uint64(1)
	for _, d := range h.Dims {
		hi, lo := bits.Mul64(n, uint64(d))
		if hi != 0 {
			return 0, false
		}
		n = lo
	}
	return n, true
}

// PayloadSize is the number of bytes following the header.  ok is false
// if the declared size does not fit in 64 bits.
func (h *Header) PayloadSize() (size uint64, ok bool) {
	elem, ok := h.elemSize()
	if !ok {
		return 0, false
	}
	hi, lo := bits.Mul64(uint64(h.Count), elem)
	return lo, hi == 0
}

func (h *Header) size() int {
	return fieldSize * (2 + len(h.Dims))
}

func (h *Header) MarshalTo(buf []byte) error {
	if len(h.Dims) > maxDims {
		return fmt.Errorf("too many dimensions: %d > %d", len(h.Dims), maxDims)
	}
	if len(buf) < h.size() {
		return fmt.Errorf("buf too short: %d < %d", len(buf), h.size())
	}

	binary.BigEndian.PutUint32(buf[0:4], h.Magic)
	binary.BigEndian.PutUint32(buf[4:8], h.Count)
	for i, d := range h.Dims {
		off := 8 + fieldSize*i
		binary.BigEndian.PutUint32(buf[off:off+fieldSize], d)
	}

	return nil
}

func (h *Header) WriteTo(w io.Writer) (n int64, err error) {
	buf := make([]byte, h.size())
	if err := h.MarshalTo(buf); err != nil {
		return 0, err
	}
	written, err := w.Write(buf)
	if err != nil {
		return int64(written), fmt.Errorf("write: %w", err)
	}
	return int64(written), nil
}

// UnmarshalBytes parses a header of format f from the start of headerBytes.
func (h *Header) UnmarshalBytes(headerBytes []byte, f Format) error {
	if f.Dims < 0 || f.Dims > maxDims {
		return fmt.Errorf("unsupported dimension count %d", f.Dims)
	}
	// the magic is checked before the length of the rest of the header,
	// so a wrong stream type is reported as such even when it is short
	if len(headerBytes) < fieldSize {
		return fmt.Errorf("%w: %d < %d bytes", ErrShortHeader, len(headerBytes), f.HeaderSize())
	}
	magic := binary.BigEndian.Uint32(headerBytes[:4])
	if magic != f.Magic {
		return fmt.Errorf("%w: got %d (%#08x), want %d", ErrBadMagic, magic, magic, f.Magic)
	}
	if len(headerBytes) < f.HeaderSize() {
		return fmt.Errorf("%w: %d < %d bytes", ErrShortHeader, len(headerBytes), f.HeaderSize())
	}

	h.Magic = magic
	h.Count = binary.BigEndian.Uint32(headerBytes[4:8])
	h.Dims = make([]uint32, f.Dims)
	for i := range h.Dims {
		off := 8 + fieldSize*i
		h.Dims[i] = binary.BigEndian.Uint32(headerBytes[off : off+fieldSize])
	}

	return nil
}

// Decode parses the header of data as format f and returns the payload
// it declares.  The payload aliases data.  Bytes past the declared
// payload are ignored.
func Decode(data []byte, f Format) (Header, []byte, error) {
	var h Header
	if err := h.UnmarshalBytes(data, f); err != nil {
		return Header{}, nil, err
	}

	payloadLen, ok := h.PayloadSize()
	if !ok || payloadLen > math.MaxInt {
		return Header{}, nil, fmt.Errorf("%w: declared payload of %d bytes is too large", ErrShortPayload, payloadLen)
	}
	rest := data[f.HeaderSize():]
	if uint64(len(rest)) < payloadLen {
		return Header{}, nil, fmt.Errorf("%w: %d records declared, want %d bytes, have %d", ErrShortPayload, h.Count, payloadLen, len(rest))
	}

	return h, rest[:payloadLen], nil
}
