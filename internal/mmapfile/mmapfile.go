// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package mmapfile slurps whole files into memory.  On unix systems the
// file is mapped read-only and copied out with a sequential access hint;
// elsewhere it is read with a single io.ReadFull.
package mmapfile

import (
	"fmt"
	"os"
)

// ReadFile returns the full contents of the file at path in a heap
// allocated slice.  The returned slice does not alias any mapping.
func ReadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	stats, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("f.Stat: %w", err)
	}
	if !stats.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: not a regular file", path)
	}
	size := stats.Size()
	if size == 0 {
		return []byte{}, nil
	}
	if int64(int(size)) != size {
		return nil, fmt.Errorf("%s: file too large to map (%d bytes)", path, size)
	}

	return readAll(f, int(size))
}
