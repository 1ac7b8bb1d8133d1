// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

//go:build unix

package mmapfile

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

func readAll(f *os.File, size int) ([]byte, error) {
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap: %w", err)
	}
	defer func() {
		_ = unix.Munmap(data)
	}()

	// advice is only a hint; a failure here doesn't affect correctness
	_ = unix.Madvise(data, unix.MADV_SEQUENTIAL)

	out := make([]byte, size)
	copy(out, data)
	return out, nil
}
