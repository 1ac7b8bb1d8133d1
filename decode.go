// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package mnist

import (
	"fmt"

	"github.com/bpowers/mnist/internal/idx"
	"github.com/bpowers/mnist/internal/mmapfile"
)

const (
	LabelsMagic = idx.MagicLabels
	ImagesMagic = idx.MagicImages

	// every image in both distributions is 28x28
	ImageRows = 28
	ImageCols = 28
)

// Image is one grid of pixel intensities, indexed [row][col], exactly as
// stored: 0 is background and no scaling is applied.  All images decoded
// from one file share a single backing array.
type Image [][]uint8

func (img Image) Rows() int {
	return len(img)
}

func (img Image) Cols() int {
	if len(img) == 0 {
		return 0
	}
	return len(img[0])
}

// DecodeLabels reads a label file: magic 2049, a count N, then N
// single-byte labels which are returned in file order.
func DecodeLabels(path string) ([]uint8, error) {
	data, err := mmapfile.ReadFile(path)
	if err != nil {
		return nil, &FilesystemError{Op: "read", Path: path, Err: err}
	}
	labels, err := parseLabels(data, false)
	if err != nil {
		return nil, newFormatError(path, err)
	}
	return labels, nil
}

// DecodeImages reads an image file: magic 2051, a count N, rows R and
// columns C, then N*R*C pixels in row-major order.  The grid shape is
// taken from the header; Dataset.Load additionally requires 28x28.
func DecodeImages(path string) ([]Image, error) {
	return decodeImagesFile(path, false)
}

func decodeImagesFile(path string, strict bool) ([]Image, error) {
	data, err := mmapfile.ReadFile(path)
	if err != nil {
		return nil, &FilesystemError{Op: "read", Path: path, Err: err}
	}
	images, err := parseImages(data, strict, false)
	if err != nil {
		return nil, newFormatError(path, err)
	}
	return images, nil
}

// ParseLabels is DecodeLabels for a stream already in memory.  The
// result does not alias data.
func ParseLabels(data []byte) ([]uint8, error) {
	labels, err := parseLabels(data, true)
	if err != nil {
		return nil, newFormatError("", err)
	}
	return labels, nil
}

// ParseImages is DecodeImages for a stream already in memory.  The
// result does not alias data.
func ParseImages(data []byte) ([]Image, error) {
	images, err := parseImages(data, false, true)
	if err != nil {
		return nil, newFormatError("", err)
	}
	return images, nil
}

func parseLabels(data []byte, copyPayload bool) ([]uint8, error) {
	_, payload, err := idx.Decode(data, idx.Labels)
	if err != nil {
		return nil, err
	}
	if copyPayload {
		payload = append(make([]uint8, 0, len(payload)), payload...)
	}
	return payload, nil
}

func parseImages(data []byte, strict, copyPayload bool) ([]Image, error) {
	h, payload, err := idx.Decode(data, idx.Images)
	if err != nil {
		return nil, err
	}

	rows, cols := int(h.Dims[0]), int(h.Dims[1])
	if strict && (rows != ImageRows || cols != ImageCols) {
		return nil, fmt.Errorf("%w: got %dx%d, want %dx%d", ErrBadDimensions, rows, cols, ImageRows, ImageCols)
	}
	if h.Count > 0 && h.ElemSize() == 0 {
		return nil, fmt.Errorf("%w: %d images of %dx%d", ErrBadDimensions, h.Count, rows, cols)
	}

	if copyPayload {
		payload = append(make([]uint8, 0, len(payload)), payload...)
	}
	return reshape(payload, int(h.Count), rows, cols), nil
}

// reshape slices pix into n images of rows x cols without copying.
func reshape(pix []uint8, n, rows, cols int) []Image {
	images := make([]Image, n)
	// one allocation for every row header across all images
	rowHeaders := make([][]uint8, n*rows)
	for i := range images {
		img := rowHeaders[i*rows : (i+1)*rows : (i+1)*rows]
		for r := range img {
			off := (i*rows + r) * cols
			img[r] = pix[off : off+cols : off+cols]
		}
		images[i] = Image(img)
	}
	return images
}
