// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package mnist

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bpowers/mnist/internal/synth"
)

func flatten(img Image) []byte {
	var out []byte
	for _, row := range img {
		out = append(out, row...)
	}
	return out
}

func TestLoad(t *testing.T) {
	srv, dist := newTestServer(t, 6, 3)

	for _, kind := range []Kind{Default, Fashion} {
		d, err := Fetch(kind, WithBaseURL(srv.URL+"/"), WithFolder(t.TempDir()), WithHTTPClient(srv.Client()))
		require.NoError(t, err)

		for _, tc := range []struct {
			split    Split
			expected synth.Split
		}{
			{Train, dist.Train},
			{Test, dist.Test},
		} {
			images, labels, err := d.Load(tc.split)
			require.NoError(t, err)
			require.Len(t, images, len(tc.expected.Images))
			assert.Equal(t, tc.expected.Labels, labels)
			for i, img := range images {
				assert.Equal(t, ImageRows, img.Rows())
				assert.Equal(t, ImageCols, img.Cols())
				assert.Equal(t, tc.expected.Images[i], flatten(img))
			}
			for _, l := range labels {
				assert.Less(t, l, uint8(10))
			}
		}
	}
}

func TestLoad_RequiresStandardDimensions(t *testing.T) {
	d, err := New(Default, WithFolder(t.TempDir()))
	require.NoError(t, err)

	imgs, err := synth.Images(2, 2, [][]byte{{1, 2, 3, 4}})
	require.NoError(t, err)
	labels, err := synth.Labels([]uint8{1})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(d.ImagePath(Test), imgs, 0644))
	require.NoError(t, os.WriteFile(d.LabelPath(Test), labels, 0644))

	images, gotLabels, err := d.Load(Test)
	assert.Nil(t, images)
	assert.Nil(t, gotLabels)
	var fmtErr *FormatError
	require.True(t, errors.As(err, &fmtErr))
	assert.ErrorIs(t, err, ErrBadDimensions)
	assert.Equal(t, d.ImagePath(Test), fmtErr.Path)

	// the general decoder accepts the same file
	decoded, err := DecodeImages(d.ImagePath(Test))
	require.NoError(t, err)
	assert.Equal(t, []Image{{{1, 2}, {3, 4}}}, decoded)
}

func TestLoad_MismatchedCountsAreTheCallersProblem(t *testing.T) {
	d, err := New(Default, WithFolder(t.TempDir()))
	require.NoError(t, err)

	split := synth.RandomSplit(newTestRand(), 2)
	imgs, err := synth.Images(28, 28, split.Images)
	require.NoError(t, err)
	labels, err := synth.Labels([]uint8{1, 2, 3})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(d.ImagePath(Train), imgs, 0644))
	require.NoError(t, os.WriteFile(d.LabelPath(Train), labels, 0644))

	images, gotLabels, err := d.Load(Train)
	require.NoError(t, err)
	assert.Len(t, images, 2)
	assert.Len(t, gotLabels, 3)
}

func TestLoad_NotFetched(t *testing.T) {
	d, err := New(Default, WithFolder(t.TempDir()))
	require.NoError(t, err)

	_, _, err = d.Load(Train)
	var fsErr *FilesystemError
	require.True(t, errors.As(err, &fsErr))
}
