// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package mnist

import (
	"io"
	"log/slog"
	"net/http"
)

// Option configures a Dataset.
type Option func(*datasetOptions)

type datasetOptions struct {
	baseURL  string
	folder   string
	logger   *slog.Logger
	client   *http.Client
	progress io.Writer
}

// WithBaseURL overrides the preset remote address for the dataset's
// kind.  File names are appended to it verbatim, so it normally ends
// in a slash.
func WithBaseURL(baseURL string) Option {
	return func(opts *datasetOptions) {
		opts.baseURL = baseURL
	}
}

// WithFolder sets the local folder.  Relative paths are resolved
// against the current working directory, which is also the default.
func WithFolder(folder string) Option {
	return func(opts *datasetOptions) {
		opts.folder = folder
	}
}

// WithLogger sets an optional logger for download and extraction progress.
// If not provided, no logging output will be produced.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *datasetOptions) {
		if logger != nil {
			opts.logger = logger
		}
	}
}

// WithHTTPClient sets the client used for downloads.  http.DefaultClient
// is used otherwise.
func WithHTTPClient(client *http.Client) Option {
	return func(opts *datasetOptions) {
		opts.client = client
	}
}

// WithProgress renders a progress bar per download on w.
func WithProgress(w io.Writer) Option {
	return func(opts *datasetOptions) {
		opts.progress = w
	}
}
