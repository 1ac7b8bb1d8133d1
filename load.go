// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package mnist

// Load decodes the extracted image and label files for split.  Images
// must be 28x28 or a *FormatError wrapping ErrBadDimensions is returned.
// The two results are not checked against each other: a caller that
// depends on len(images) == len(labels) must verify it.
func (d *Dataset) Load(split Split) (images []Image, labels []uint8, err error) {
	images, err = decodeImagesFile(d.ImagePath(split), true)
	if err != nil {
		return nil, nil, err
	}
	labels, err = DecodeLabels(d.LabelPath(split))
	if err != nil {
		return nil, nil, err
	}

	d.logger.Debug("loaded split", "kind", d.kind, "split", split, "images", len(images), "labels", len(labels))

	return images, labels, nil
}
