// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package download

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
)

var ErrCorruptArchive = errors.New("corrupt gzip archive")

// Gunzip decompresses the gzip file at src into dst, replacing anything
// already at dst.  It returns the number of decompressed bytes written.
func Gunzip(src, dst string) (n int64, err error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, &FilesystemError{Op: "open", Path: src, Err: err}
	}
	defer func() {
		_ = in.Close()
	}()

	zr, err := gzip.NewReader(in)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrCorruptArchive, src, err)
	}
	defer func() {
		_ = zr.Close()
	}()

	dir := filepath.Dir(dst)
	out, err := os.CreateTemp(dir, "."+filepath.Base(dst)+".*.partial")
	if err != nil {
		return 0, &FilesystemError{Op: "create", Path: dir, Err: err}
	}
	defer func() {
		if err != nil {
			_ = out.Close()
			_ = os.Remove(out.Name())
		}
	}()

	body := &readErrRecorder{r: zr}
	n, err = io.Copy(out, body)
	if err != nil {
		if body.err != nil {
			return 0, fmt.Errorf("%w: %s: %v", ErrCorruptArchive, src, err)
		}
		return 0, &FilesystemError{Op: "write", Path: out.Name(), Err: err}
	}

	if err = out.Close(); err != nil {
		return 0, &FilesystemError{Op: "close", Path: out.Name(), Err: err}
	}
	if err = os.Rename(out.Name(), dst); err != nil {
		return 0, &FilesystemError{Op: "rename", Path: dst, Err: err}
	}

	return n, nil
}
