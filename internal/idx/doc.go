// Copyright 2023 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package idx reads and writes IDX files, the fixed-header binary
// format the MNIST family of datasets is distributed in.
//
// An IDX file is a header followed by a dense payload of unsigned
// bytes:
//
//	┌───────────────────┐
//	│ magic             │  4 bytes, big-endian
//	├───────────────────┤
//	│ count             │  4 bytes, big-endian
//	├───────────────────┤
//	│ dim 1 ... dim k   │  4 bytes each, big-endian
//	├───────────────────┤
//	│ payload           │  count * dim 1 * ... * dim k bytes
//	│                   │
//	└───────────────────┘
//
// Label files have no trailing dimensions (k = 0) and image files have
// two (rows and columns). A Format names the magic number and the
// number of trailing dimensions a stream is expected to carry, so both
// share one framing path.
package idx
