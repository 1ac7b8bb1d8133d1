// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package download retrieves remote files into a local folder, skipping
// any whose destination already exists.
package download

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
)

// Options controls how a file is retrieved.  The zero value uses
// http.DefaultClient, discards logs and shows no progress.
type Options struct {
	Client   *http.Client
	Logger   *slog.Logger
	Progress io.Writer
}

func (o *Options) client() *http.Client {
	if o.Client == nil {
		return http.DefaultClient
	}
	return o.Client
}

func (o *Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Logger
}

// EnsureDir creates dir and any missing parents.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &FilesystemError{Op: "mkdir", Path: dir, Err: err}
	}
	return nil
}

// IfMissing downloads url to path unless path already exists.  Presence
// alone is enough to skip the request; the existing contents are not
// inspected.  The body is written to a temporary file next to path and
// renamed into place once complete, so an aborted transfer never leaves
// a file behind that would suppress the next attempt.
func IfMissing(url, path string, opts Options) (downloaded bool, err error) {
	logger := opts.logger()

	if _, err := os.Stat(path); err == nil {
		logger.Debug("already present, skipping download", "path", path)
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, &FilesystemError{Op: "stat", Path: path, Err: err}
	}

	logger.Info("downloading", "url", url, "path", path)

	resp, err := opts.client().Get(url)
	if err != nil {
		return false, &NetworkError{URL: url, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, &NetworkError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("bad status: %s", resp.Status),
		}
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.partial")
	if err != nil {
		return false, &FilesystemError{Op: "create", Path: dir, Err: err}
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	body := &readErrRecorder{r: resp.Body}
	bar := newProgressBar(opts.Progress, filepath.Base(path), resp.ContentLength)
	n, copyErr := io.Copy(tmp, bar.proxy(body))
	bar.finish(copyErr == nil)
	if copyErr != nil {
		if body.err != nil {
			return false, &NetworkError{URL: url, Err: copyErr}
		}
		return false, &FilesystemError{Op: "write", Path: tmp.Name(), Err: copyErr}
	}
	if resp.ContentLength >= 0 && n != resp.ContentLength {
		return false, &NetworkError{URL: url, Err: fmt.Errorf("short body: got %d of %d bytes", n, resp.ContentLength)}
	}

	if err = tmp.Close(); err != nil {
		return false, &FilesystemError{Op: "close", Path: tmp.Name(), Err: err}
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return false, &FilesystemError{Op: "rename", Path: path, Err: err}
	}

	logger.Info("downloaded", "path", path, "size", humanize.Bytes(uint64(n)))

	return true, nil
}

// readErrRecorder remembers the first error returned from the wrapped
// reader, so a failed copy can be attributed to the network or the disk.
type readErrRecorder struct {
	r   io.Reader
	err error
}

func (r *readErrRecorder) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if err != nil && err != io.EOF && r.err == nil {
		r.err = err
	}
	return n, err
}
