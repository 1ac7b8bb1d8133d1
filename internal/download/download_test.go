// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package download

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, body []byte) (*httptest.Server, *atomic.Int64) {
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		switch r.URL.Path {
		case "/ok":
			w.Header().Set("Content-Length", strconv.Itoa(len(body)))
			_, _ = w.Write(body)
		case "/truncated":
			w.Header().Set("Content-Length", strconv.Itoa(len(body)+100))
			_, _ = w.Write(body)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func listDir(t *testing.T, dir string) []string {
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestIfMissing(t *testing.T) {
	body := bytes.Repeat([]byte("mnist"), 1000)
	srv, requests := newTestServer(t, body)
	dir := t.TempDir()
	path := filepath.Join(dir, "file.gz")

	downloaded, err := IfMissing(srv.URL+"/ok", path, Options{Client: srv.Client()})
	require.NoError(t, err)
	assert.True(t, downloaded)
	assert.Equal(t, int64(1), requests.Load())

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, body, contents)

	// presence alone suppresses the request
	downloaded, err = IfMissing(srv.URL+"/ok", path, Options{Client: srv.Client()})
	require.NoError(t, err)
	assert.False(t, downloaded)
	assert.Equal(t, int64(1), requests.Load())

	// no temporary files are left behind
	assert.Equal(t, []string{"file.gz"}, listDir(t, dir))
}

func TestIfMissing_Progress(t *testing.T) {
	body := bytes.Repeat([]byte{1}, 64*1024)
	srv, _ := newTestServer(t, body)
	path := filepath.Join(t.TempDir(), "file.gz")

	var progress bytes.Buffer
	downloaded, err := IfMissing(srv.URL+"/ok", path, Options{Client: srv.Client(), Progress: &progress})
	require.NoError(t, err)
	assert.True(t, downloaded)
	assert.Contains(t, progress.String(), "file.gz")
}

func TestIfMissing_StatusError(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	dir := t.TempDir()
	path := filepath.Join(dir, "missing.gz")

	downloaded, err := IfMissing(srv.URL+"/missing", path, Options{Client: srv.Client()})
	require.Error(t, err)
	assert.False(t, downloaded)

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, http.StatusNotFound, netErr.StatusCode)
	assert.Equal(t, srv.URL+"/missing", netErr.URL)

	assert.Empty(t, listDir(t, dir))
}

func TestIfMissing_TruncatedBody(t *testing.T) {
	srv, _ := newTestServer(t, []byte("partial"))
	dir := t.TempDir()
	path := filepath.Join(dir, "truncated.gz")

	_, err := IfMissing(srv.URL+"/truncated", path, Options{Client: srv.Client()})
	require.Error(t, err)
	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))

	// the next attempt must not be suppressed by a partial file
	assert.Empty(t, listDir(t, dir))
}

func TestIfMissing_Unreachable(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	url := srv.URL + "/ok"
	srv.Close()

	_, err := IfMissing(url, filepath.Join(t.TempDir(), "x"), Options{})
	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Zero(t, netErr.StatusCode)
}

func TestIfMissing_FilesystemError(t *testing.T) {
	srv, requests := newTestServer(t, []byte("data"))

	_, err := IfMissing(srv.URL+"/ok", filepath.Join(t.TempDir(), "no-such-dir", "file.gz"), Options{Client: srv.Client()})
	var fsErr *FilesystemError
	require.True(t, errors.As(err, &fsErr))
	assert.Equal(t, "create", fsErr.Op)
	assert.Equal(t, int64(1), requests.Load())
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureDir(dir))
	// idempotent
	require.NoError(t, EnsureDir(dir))

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	err := EnsureDir(filepath.Join(file, "sub"))
	var fsErr *FilesystemError
	require.True(t, errors.As(err, &fsErr))
	assert.Equal(t, "mkdir", fsErr.Op)
}
