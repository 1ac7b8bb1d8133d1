// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package download

import (
	"io"

	"github.com/vbauerster/mpb/v6"
	"github.com/vbauerster/mpb/v6/decor"
)

// progressBar renders a single transfer.  A nil *progressBar is valid
// and renders nothing.
type progressBar struct {
	p   *mpb.Progress
	bar *mpb.Bar
}

func newProgressBar(w io.Writer, name string, total int64) *progressBar {
	if w == nil {
		return nil
	}
	if total < 0 {
		total = 0
	}
	p := mpb.New(mpb.WithOutput(w), mpb.WithWidth(48))
	bar := p.AddBar(total,
		mpb.PrependDecorators(
			decor.Name(name+" "),
			decor.CountersKibiByte("% .1f / % .1f"),
		),
		mpb.AppendDecorators(decor.Percentage()),
	)
	return &progressBar{p: p, bar: bar}
}

func (pb *progressBar) proxy(r io.Reader) io.Reader {
	if pb == nil {
		return r
	}
	return pb.bar.ProxyReader(r)
}

func (pb *progressBar) finish(ok bool) {
	if pb == nil {
		return
	}
	if ok {
		// the total may have been unknown up front
		if !pb.bar.Completed() {
			pb.bar.SetTotal(pb.bar.Current(), true)
		}
	} else {
		pb.bar.Abort(false)
	}
	pb.p.Wait()
}
