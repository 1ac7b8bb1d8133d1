// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

//go:build !unix

package mmapfile

import (
	"fmt"
	"io"
	"os"
)

func readAll(f *os.File, size int) ([]byte, error) {
	out := make([]byte, size)
	if _, err := io.ReadFull(f, out); err != nil {
		return nil, fmt.Errorf("io.ReadFull: %w", err)
	}
	return out, nil
}
