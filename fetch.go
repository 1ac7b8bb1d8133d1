// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package mnist

import (
	"errors"

	"github.com/dustin/go-humanize"

	"github.com/bpowers/mnist/internal/download"
)

// Fetch configures a Dataset and immediately ensures its files are
// present locally.
func Fetch(kind Kind, opts ...Option) (*Dataset, error) {
	d, err := New(kind, opts...)
	if err != nil {
		return nil, err
	}
	if err := d.EnsureLocal(); err != nil {
		return nil, err
	}
	return d, nil
}

// EnsureLocal creates the folder if needed, downloads any of the four
// archives that are missing from it, and extracts every archive next
// to itself with the .gz suffix removed.  Extraction always runs and
// always overwrites.
//
// Errors are returned as they occur without retry: *NetworkError for
// transfers, *FilesystemError for local I/O and *FormatError for
// archives that can't be decompressed.  Files completed before the
// failure are left in place.
func (d *Dataset) EnsureLocal() error {
	if err := download.EnsureDir(d.folder); err != nil {
		return err
	}

	opts := download.Options{
		Client:   d.client,
		Logger:   d.logger,
		Progress: d.progress,
	}
	for _, name := range d.files {
		if _, err := download.IfMissing(d.remoteURL(name), d.compressedPath(name), opts); err != nil {
			return err
		}
	}

	for _, name := range d.files {
		src, dst := d.compressedPath(name), d.extractedPath(name)
		n, err := download.Gunzip(src, dst)
		if err != nil {
			if errors.Is(err, download.ErrCorruptArchive) {
				return &FormatError{Path: src, Err: err}
			}
			return err
		}
		d.logger.Info("extracted", "path", dst, "size", humanize.Bytes(uint64(n)))
	}

	return nil
}
