// Command gen-testdata writes a small random distribution with MNIST's
// archive names and layout, for serving from a local file server in
// place of the real hosts:
//
//	gen-testdata --dir /tmp/mnist-mirror --train 600 --test 100
//	(cd /tmp/mnist-mirror && python3 -m http.server)
//	MNIST_BASE_URL=http://localhost:8000/ ...
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/bpowers/mnist/internal/synth"
)

func main() {
	dir := pflag.String("dir", "testdata", "directory to write the four archives to")
	trainCount := pflag.Int("train", 600, "number of training images")
	testCount := pflag.Int("test", 100, "number of test images")
	seed := pflag.Int64("seed", time.Now().UnixNano(), "random seed")
	prefix := pflag.String("prefix", "", "prefix for every file name, e.g. \"f\" to lay files out as a local Fashion-MNIST folder")
	pflag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *trainCount < 0 || *testCount < 0 {
		fmt.Fprintln(os.Stderr, "gen-testdata: counts must be non-negative")
		os.Exit(2)
	}

	if _, err := synth.WriteDistribution(*dir, *prefix, *trainCount, *testCount, *seed); err != nil {
		logger.Error("writing distribution failed", "err", err)
		os.Exit(1)
	}

	logger.Info("wrote distribution", "dir", *dir, "train", *trainCount, "test", *testCount, "seed", *seed)
}
