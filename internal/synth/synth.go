// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package synth generates small IDX distributions with the same file
// names and layout as MNIST, for tests and local fixtures.
package synth

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"

	"github.com/bpowers/mnist/internal/idx"
)

// the canonical archive names, kept in sync with the mnist package
var archiveNames = struct {
	trainImages, trainLabels, testImages, testLabels string
}{
	trainImages: "train-images-idx3-ubyte.gz",
	trainLabels: "train-labels-idx1-ubyte.gz",
	testImages:  "t10k-images-idx3-ubyte.gz",
	testLabels:  "t10k-labels-idx1-ubyte.gz",
}

// buffer is an in-memory idx.FileWriter.
type buffer struct {
	buf []byte
}

func (b *buffer) Write(p []byte) (int, error) {
	b.buf = append(b.buf, p...)
	return len(p), nil
}

func (b *buffer) WriteAt(p []byte, off int64) (int, error) {
	if int(off)+len(p) > len(b.buf) {
		return 0, errors.New("writeAt out of bounds")
	}
	return copy(b.buf[off:], p), nil
}

var _ idx.FileWriter = &buffer{}

// Labels encodes labels as an IDX label stream.
func Labels(labels []uint8) ([]byte, error) {
	var b buffer
	w, err := idx.NewWriter(&b, idx.Labels)
	if err != nil {
		return nil, fmt.Errorf("idx.NewWriter: %w", err)
	}
	for _, l := range labels {
		if err := w.Write([]byte{l}); err != nil {
			return nil, err
		}
	}
	if err := w.Finish(); err != nil {
		return nil, fmt.Errorf("w.Finish: %w", err)
	}
	return b.buf, nil
}

// Images encodes images, each rows*cols bytes in row-major order, as an
// IDX image stream.
func Images(rows, cols int, images [][]byte) ([]byte, error) {
	var b buffer
	w, err := idx.NewWriter(&b, idx.Images, uint32(rows), uint32(cols))
	if err != nil {
		return nil, fmt.Errorf("idx.NewWriter: %w", err)
	}
	for i, img := range images {
		if err := w.Write(img); err != nil {
			return nil, fmt.Errorf("image %d: %w", i, err)
		}
	}
	if err := w.Finish(); err != nil {
		return nil, fmt.Errorf("w.Finish: %w", err)
	}
	return b.buf, nil
}

func Gzip(data []byte) ([]byte, error) {
	var b bytes.Buffer
	zw := gzip.NewWriter(&b)
	if _, err := zw.Write(data); err != nil {
		return nil, fmt.Errorf("gzip.Write: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("gzip.Close: %w", err)
	}
	return b.Bytes(), nil
}

// Split holds the decoded form of one generated partition.
type Split struct {
	Images [][]byte
	Labels []uint8
}

// Distribution is what WriteDistribution put on disk.
type Distribution struct {
	Train Split
	Test  Split
}

// RandomSplit returns n random 28x28 images with labels in [0,9].
func RandomSplit(rng *rand.Rand, n int) Split {
	s := Split{
		Images: make([][]byte, n),
		Labels: make([]uint8, n),
	}
	for i := 0; i < n; i++ {
		img := make([]byte, 28*28)
		_, _ = rng.Read(img)
		s.Images[i] = img
		s.Labels[i] = uint8(rng.Intn(10))
	}
	return s
}

// WriteDistribution writes the four gzip'd archives for a random
// distribution of trainCount and testCount images into dir, each name
// prefixed with prefix.
func WriteDistribution(dir, prefix string, trainCount, testCount int, seed int64) (*Distribution, error) {
	rng := rand.New(rand.NewSource(seed))
	d := &Distribution{
		Train: RandomSplit(rng, trainCount),
		Test:  RandomSplit(rng, testCount),
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	for _, f := range []struct {
		name  string
		split Split
		isImg bool
	}{
		{archiveNames.trainImages, d.Train, true},
		{archiveNames.trainLabels, d.Train, false},
		{archiveNames.testImages, d.Test, true},
		{archiveNames.testLabels, d.Test, false},
	} {
		var raw []byte
		var err error
		if f.isImg {
			raw, err = Images(28, 28, f.split.Images)
		} else {
			raw, err = Labels(f.split.Labels)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}
		compressed, err := Gzip(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, prefix+f.name), compressed, 0644); err != nil {
			return nil, err
		}
	}

	return d, nil
}
