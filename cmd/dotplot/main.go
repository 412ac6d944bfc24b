// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"runtime"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/dotplot/encoding/pointio"
	"v.io/x/lib/cmdline"
)

const plotLong = `
Computes the dot plot of two sequences and prints its points, one per line.

Arguments are either

  sequence1 sequence2 window_size threshold
  fasta_file1 fasta_file2 window_size threshold
  fasta_file_with_at_least_2_sequences window_size threshold

A sequence argument consisting only of residues (ACDEFGHIKLMNPQRSTVWY, either
case) and whitespace is used literally; anything else is a FASTA path, and
".fasta" is appended to it unless it already ends in ".fasta" or ".FASTA"
(optionally followed by ".gz").  The first record of a FASTA file is used, or
the first two when a single file is given.

window_size and threshold are non-negative integers; window_size must be at
least 1.
`

func newCmdPlot() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "plot",
		Short:    "Compute a dot plot",
		Long:     plotLong,
		ArgsName: "seq1 [seq2] window_size threshold",
	}
	flags := plotFlags{}
	cmd.Flags.StringVar(&flags.format, "format", pointio.Text.String(), "Output format; 'text', 'tsv', 'tsv-bgz' and 'rio' supported")
	cmd.Flags.StringVar(&flags.out, "out", "", "Output path. Defaults to stdout")
	cmd.Flags.StringVar(&flags.index, "index", "", "FASTA index (.fai) of the single FASTA input. If set, only the first two sequences are read from the FASTA file")
	cmd.Flags.BoolVar(&flags.fingerprint, "fingerprint", false, "Log a fingerprint of the point list")
	cmd.Flags.IntVar(&flags.parallelism, "parallelism", runtime.NumCPU(), "Number of compression goroutines for -format=tsv-bgz")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 3 && len(argv) != 4 {
			return env.UsageErrorf("plot takes 3 or 4 arguments, but got %v", argv)
		}
		return plot(vcontext.Background(), env.Stdout, flags, argv)
	})
	return cmd
}

func newCmdFaidx() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "faidx",
		Short:    "Generate a samtools-compatible FASTA index",
		ArgsName: "fastapath [indexpath]",
	}
	cmd.Runner = cmdutil.RunnerFunc(runFaidx)
	return cmd
}

func runFaidx(env *cmdline.Env, argv []string) error {
	if len(argv) != 1 && len(argv) != 2 {
		return env.UsageErrorf("faidx takes fastapath [indexpath], but got %v", argv)
	}
	indexPath := argv[0] + ".fai"
	if len(argv) == 2 {
		indexPath = argv[1]
	}
	return faidx(vcontext.Background(), argv[0], indexPath)
}

func main() {
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(
		&cmdline.Command{
			Name:     "dotplot",
			Short:    "Dot plots of two sequences with sliding-window filtering",
			LookPath: false,
			Children: []*cmdline.Command{
				newCmdPlot(),
				newCmdFaidx(),
			},
		})
}
