// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package mnist

import (
	"encoding/binary"

	"github.com/dgryski/go-farm"
)

// Fingerprint is a 64-bit digest of a decoded split, for comparing
// loads across runs or machines.  It covers the image shapes, pixels and
// labels in order.  It is not checked against anything when loading.
func Fingerprint(images []Image, labels []uint8) uint64 {
	size := 8 + len(labels)
	for _, img := range images {
		size += 8 + img.Rows()*img.Cols()
	}

	buf := make([]byte, 0, size)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(images)))
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(labels)))
	for _, img := range images {
		buf = binary.BigEndian.AppendUint32(buf, uint32(img.Rows()))
		buf = binary.BigEndian.AppendUint32(buf, uint32(img.Cols()))
		for _, row := range img {
			buf = append(buf, row...)
		}
	}
	buf = append(buf, labels...)

	return farm.Fingerprint64(buf)
}
