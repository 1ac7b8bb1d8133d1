// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package arff loads MNIST from OpenML's single-file ARFF distribution,
// mnist_784, in which each row holds 784 pixel columns followed by the
// class label.  It is independent of the IDX decoder in package mnist.
package arff

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/bpowers/mnist"
	"github.com/bpowers/mnist/internal/download"
)

const (
	DefaultBaseURL = "https://www.openml.org/data/download/52667/"
	FileName       = "mnist_784.arff"

	// TrainRows is where mnist_784 divides: the first 60000 rows are the
	// training images and the remaining 10000 the test images.  The
	// boundary is specific to this file.
	TrainRows = 60000
	// PixelColumns is the number of leading pixel columns in each row.
	PixelColumns = 28 * 28
)

// Option configures Fetch and Load.
type Option func(*options)

type options struct {
	baseURL string
	folder  string
	logger  *slog.Logger
	client  *http.Client
}

// WithBaseURL overrides DefaultBaseURL.  FileName is appended to it.
func WithBaseURL(baseURL string) Option {
	return func(opts *options) {
		opts.baseURL = baseURL
	}
}

// WithFolder sets the local folder, relative to the working directory
// unless absolute.  The working directory is the default.
func WithFolder(folder string) Option {
	return func(opts *options) {
		opts.folder = folder
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(opts *options) {
		if logger != nil {
			opts.logger = logger
		}
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(opts *options) {
		opts.client = client
	}
}

func newOptions(opts []Option) options {
	o := options{
		baseURL: DefaultBaseURL,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Fetch downloads mnist_784.arff into the folder unless it is already
// there, and returns its local path.
func Fetch(opts ...Option) (string, error) {
	o := newOptions(opts)
	return o.fetch()
}

func (o *options) fetch() (string, error) {
	folder := o.folder
	if folder == "" {
		folder = "."
	}
	folder, err := filepath.Abs(folder)
	if err != nil {
		return "", fmt.Errorf("filepath.Abs: %w", err)
	}
	if err := download.EnsureDir(folder); err != nil {
		return "", err
	}

	path := filepath.Join(folder, FileName)
	_, err = download.IfMissing(o.baseURL+FileName, path, download.Options{
		Client: o.client,
		Logger: o.logger,
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

// Load fetches mnist_784.arff if needed, parses it and returns the
// requested partition as flat 784-byte images and their labels.
func Load(split mnist.Split, opts ...Option) (images [][]uint8, labels []uint8, err error) {
	o := newOptions(opts)
	path, err := o.fetch()
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &mnist.FilesystemError{Op: "open", Path: path, Err: err}
	}
	defer func() {
		_ = f.Close()
	}()

	if st, err := f.Stat(); err == nil {
		o.logger.Info("processing", "path", path, "size", humanize.Bytes(uint64(st.Size())))
	}
	parsed, err := Parse(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	images, labels, err = Partition(parsed, split)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	o.logger.Info("done", "split", split, "rows", len(labels))
	return images, labels, nil
}

// Partition selects the rows of split from f, then separates each
// row's first PixelColumns values (the image) from its last (the label).
// Train is rows [0, TrainRows) and Test everything after.
func Partition(f *File, split mnist.Split) (images [][]uint8, labels []uint8, err error) {
	if len(f.Attributes) < PixelColumns+1 {
		return nil, nil, fmt.Errorf("arff: %d columns, want at least %d pixels and a label", len(f.Attributes), PixelColumns)
	}

	rows := f.Rows
	boundary := min(TrainRows, len(rows))
	if split == mnist.Test {
		rows = rows[boundary:]
	} else {
		rows = rows[:boundary]
	}

	images = make([][]uint8, len(rows))
	labels = make([]uint8, len(rows))
	for i, row := range rows {
		images[i] = row[:PixelColumns:PixelColumns]
		labels[i] = row[len(row)-1]
	}
	return images, labels, nil
}
