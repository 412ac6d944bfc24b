// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"io"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/dotplot/dotplot"
	"github.com/grailbio/dotplot/encoding/pointio"
)

// Collection of options set via cmdline flags
type plotFlags struct {
	format      string
	out         string
	index       string
	fingerprint bool
	parallelism int
}

// plot resolves argv, computes the dot plot and writes its points to
// flags.out, or to stdout if flags.out is empty.
func plot(ctx context.Context, stdout io.Writer, flags plotFlags, argv []string) (err error) {
	format, err := pointio.ParseFormat(flags.format)
	if err != nil {
		return err
	}
	in, err := resolveInput(ctx, argv, flags.index)
	if err != nil {
		return err
	}
	points, err := dotplot.Compute(in.seq1, in.seq2, in.opts)
	if err != nil {
		return err
	}
	if flags.fingerprint {
		log.Printf("plot: %d points, fingerprint %016x", len(points), dotplot.Fingerprint(points))
	}

	out := stdout
	if flags.out != "" {
		var dst file.File
		if dst, err = file.Create(ctx, flags.out); err != nil {
			return err
		}
		defer file.CloseAndReport(ctx, dst, &err)
		out = dst.Writer(ctx)
	}
	parallelism := flags.parallelism
	if parallelism < 1 {
		parallelism = 1
	}
	w, err := pointio.NewWriter(out, format, parallelism)
	if err != nil {
		return err
	}
	for _, p := range points {
		if err = w.Write(p); err != nil {
			break
		}
	}
	if e := w.Close(); e != nil && err == nil {
		err = e
	}
	if err == nil && flags.out != "" {
		log.Printf("plot: done, %d points written to %s", len(points)-1, flags.out)
	}
	return err
}
