// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package download

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGzip(t *testing.T, path string, contents []byte) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(contents)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
}

func TestGunzip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "labels.gz")
	dst := filepath.Join(dir, "labels")
	expected := []byte{0, 0, 8, 1, 0, 0, 0, 3, 7, 2, 9}
	writeGzip(t, src, expected)

	n, err := Gunzip(src, dst)
	require.NoError(t, err)
	assert.Equal(t, int64(len(expected)), n)
	actual, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, expected, actual)

	// a previous extraction is overwritten unconditionally
	require.NoError(t, os.WriteFile(dst, []byte("stale contents that are longer"), 0644))
	_, err = Gunzip(src, dst)
	require.NoError(t, err)
	actual, err = os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, expected, actual)
}

func TestGunzip_Corrupt(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "bad.gz")
	dst := filepath.Join(dir, "bad")

	// not gzip at all
	require.NoError(t, os.WriteFile(src, []byte("definitely not gzip"), 0644))
	_, err := Gunzip(src, dst)
	assert.ErrorIs(t, err, ErrCorruptArchive)

	// valid header, truncated stream
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err = zw.Write(bytes.Repeat([]byte("0123456789"), 1000))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(src, buf.Bytes()[:buf.Len()/2], 0644))
	_, err = Gunzip(src, dst)
	assert.ErrorIs(t, err, ErrCorruptArchive)

	_, statErr := os.Stat(dst)
	assert.True(t, os.IsNotExist(statErr))
	assert.Equal(t, []string{"bad.gz"}, listDir(t, dir))
}

func TestGunzip_MissingSource(t *testing.T) {
	_, err := Gunzip(filepath.Join(t.TempDir(), "nope.gz"), filepath.Join(t.TempDir(), "nope"))
	var fsErr *FilesystemError
	require.True(t, errors.As(err, &fsErr))
	assert.Equal(t, "open", fsErr.Op)
}
