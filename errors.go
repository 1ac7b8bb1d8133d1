// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package mnist

import (
	"errors"
	"fmt"

	"github.com/bpowers/mnist/internal/download"
	"github.com/bpowers/mnist/internal/idx"
)

// NetworkError reports an unreachable host, a broken transfer or a
// non-2xx response.  Nothing is retried.
type NetworkError = download.NetworkError

// FilesystemError reports a local file or directory operation that failed.
type FilesystemError = download.FilesystemError

var (
	// ErrBadMagic means a file's leading magic number didn't match the
	// stream type being decoded.
	ErrBadMagic = idx.ErrBadMagic
	// ErrTruncated means a file ended before its header or its declared
	// records were complete.
	ErrTruncated = errors.New("truncated")
	// ErrBadDimensions means an image file's rows and columns weren't
	// the expected 28x28.
	ErrBadDimensions = errors.New("unexpected image dimensions")
	// ErrCorruptArchive means a downloaded archive couldn't be decompressed.
	ErrCorruptArchive = download.ErrCorruptArchive
)

// FormatError reports a file that isn't a well-formed stream of the
// expected type.  Err matches one of ErrBadMagic, ErrTruncated,
// ErrBadDimensions or ErrCorruptArchive under errors.Is.
type FormatError struct {
	// Path is empty when decoding from memory.
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid IDX data: %v", e.Err)
	}
	return fmt.Sprintf("%s: invalid IDX data: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func newFormatError(path string, err error) *FormatError {
	if errors.Is(err, idx.ErrShortHeader) || errors.Is(err, idx.ErrShortPayload) {
		err = fmt.Errorf("%w: %w", ErrTruncated, err)
	}
	return &FormatError{Path: path, Err: err}
}
