// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package mnist

import (
	"gonum.org/v1/gonum/mat"
)

// ImagesDense flattens images into an N x (rows*cols) matrix, one image
// per row, with pixel values unscaled.  It returns nil for no images.
// All images must share the first image's shape.
func ImagesDense(images []Image) *mat.Dense {
	if len(images) == 0 {
		return nil
	}
	width := images[0].Rows() * images[0].Cols()
	if width == 0 {
		return nil
	}

	data := make([]float64, 0, len(images)*width)
	for _, img := range images {
		for _, row := range img {
			for _, px := range row {
				data = append(data, float64(px))
			}
		}
	}
	return mat.NewDense(len(images), width, data)
}

// LabelsVec converts labels to a vector.  It returns nil for no labels.
func LabelsVec(labels []uint8) *mat.VecDense {
	if len(labels) == 0 {
		return nil
	}
	data := make([]float64, len(labels))
	for i, l := range labels {
		data[i] = float64(l)
	}
	return mat.NewVecDense(len(data), data)
}
