// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package mnist

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
)

// Kind selects which distribution a Dataset refers to.
type Kind int

const (
	// Default is the handwritten digit dataset.
	Default Kind = iota
	// Fashion is Fashion-MNIST, which shares MNIST's file names and layout.
	Fashion
)

const (
	DefaultBaseURL = "https://azureopendatastorage.blob.core.windows.net/mnist/"
	FashionBaseURL = "http://fashion-mnist.s3-website.eu-central-1.amazonaws.com/"
)

// Canonical archive names, in the order they are fetched.
const (
	TrainImagesFile = "train-images-idx3-ubyte.gz"
	TrainLabelsFile = "train-labels-idx1-ubyte.gz"
	TestImagesFile  = "t10k-images-idx3-ubyte.gz"
	TestLabelsFile  = "t10k-labels-idx1-ubyte.gz"

	compressedSuffix = ".gz"
)

// ParseKind maps "default" and "fashion" to their Kind.  Anything else
// selects Default.
func ParseKind(name string) Kind {
	if strings.EqualFold(strings.TrimSpace(name), "fashion") {
		return Fashion
	}
	return Default
}

func (k Kind) String() string {
	switch k {
	case Fashion:
		return "fashion"
	default:
		return "default"
	}
}

func (k Kind) baseURL() string {
	if k == Fashion {
		return FashionBaseURL
	}
	return DefaultBaseURL
}

// prefix keeps the two distributions from colliding when they share a folder.
func (k Kind) prefix() string {
	if k == Fashion {
		return "f"
	}
	return ""
}

// Split selects the train or test partition.
type Split int

const (
	Train Split = iota
	Test
)

func (s Split) String() string {
	if s == Test {
		return "test"
	}
	return "train"
}

// Dataset describes where one distribution comes from and where it is
// kept locally.  It is immutable once created.
type Dataset struct {
	kind    Kind
	baseURL string
	folder  string
	prefix  string
	files   [4]string

	logger   *slog.Logger
	client   *http.Client
	progress io.Writer
}

// New configures a Dataset without touching the network or the
// filesystem.  Call EnsureLocal to fetch it.
func New(kind Kind, opts ...Option) (*Dataset, error) {
	var options datasetOptions
	options.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	for _, opt := range opts {
		opt(&options)
	}

	baseURL := options.baseURL
	if baseURL == "" {
		baseURL = kind.baseURL()
	}

	folder := options.folder
	if folder == "" {
		folder = "."
	}
	// a relative folder is taken relative to the working directory
	folder, err := filepath.Abs(folder)
	if err != nil {
		return nil, fmt.Errorf("filepath.Abs: %w", err)
	}

	return &Dataset{
		kind:     kind,
		baseURL:  baseURL,
		folder:   folder,
		prefix:   kind.prefix(),
		files:    [4]string{TrainImagesFile, TrainLabelsFile, TestImagesFile, TestLabelsFile},
		logger:   options.logger,
		client:   options.client,
		progress: options.progress,
	}, nil
}

func (d *Dataset) Kind() Kind {
	return d.kind
}

func (d *Dataset) BaseURL() string {
	return d.baseURL
}

// Folder is the absolute path archives and extracted files are kept in.
func (d *Dataset) Folder() string {
	return d.folder
}

// Prefix is prepended to every canonical file name on disk.
func (d *Dataset) Prefix() string {
	return d.prefix
}

// Files returns the canonical archive names: train images, train
// labels, test images, test labels.
func (d *Dataset) Files() []string {
	return append([]string(nil), d.files[:]...)
}

func (d *Dataset) remoteURL(name string) string {
	return d.baseURL + name
}

func (d *Dataset) compressedPath(name string) string {
	return filepath.Join(d.folder, d.prefix+name)
}

func (d *Dataset) extractedPath(name string) string {
	return filepath.Join(d.folder, d.prefix+strings.TrimSuffix(name, compressedSuffix))
}

// ImagePath is the extracted image file for split.
func (d *Dataset) ImagePath(split Split) string {
	if split == Test {
		return d.extractedPath(TestImagesFile)
	}
	return d.extractedPath(TrainImagesFile)
}

// LabelPath is the extracted label file for split.
func (d *Dataset) LabelPath(split Split) string {
	if split == Test {
		return d.extractedPath(TestLabelsFile)
	}
	return d.extractedPath(TrainLabelsFile)
}
