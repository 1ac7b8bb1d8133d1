// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package mnist fetches the MNIST and Fashion-MNIST distributions and
// decodes their IDX files into in-memory arrays.
//
// Configuring a dataset and fetching it are separate steps:
//
//	ds, err := mnist.New(mnist.Fashion, mnist.WithFolder("data"))
//	if err != nil {
//		return err
//	}
//	if err := ds.EnsureLocal(); err != nil {
//		return err
//	}
//	images, labels, err := ds.Load(mnist.Train)
//
// EnsureLocal downloads only the archives missing from the folder and
// then re-extracts all four.  Files on disk act as a cache with no
// eviction and no integrity check: presence alone suppresses a download.
//
// The OpenML columnar distribution of the same data is handled by the
// separate arff package.
package mnist
