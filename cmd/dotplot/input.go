// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	"github.com/grailbio/dotplot/dotplot"
	"github.com/grailbio/dotplot/encoding/fasta"
	"github.com/klauspost/compress/gzip"
)

// input is the fully resolved input of a plot run.
type input struct {
	seq1, seq2 string
	opts       dotplot.Opts
}

// parseCount parses a window size or threshold argument.  Only plain decimal
// digits are accepted.
func parseCount(name, arg string) (int, error) {
	if arg == "" || strings.TrimLeft(arg, "0123456789") != "" {
		return 0, errors.E(errors.Invalid, fmt.Sprintf("%s must be a non-negative integer, got %q", name, arg))
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errors.E(errors.Invalid, err, fmt.Sprintf("%s %q", name, arg))
	}
	return n, nil
}

// fastaPath appends ".fasta" to path unless it already names a FASTA file.
func fastaPath(path string) string {
	base := strings.TrimSuffix(path, ".gz")
	if strings.HasSuffix(base, ".fasta") || strings.HasSuffix(base, ".FASTA") {
		return path
	}
	return path + ".fasta"
}

// readFasta returns the first n sequences of the FASTA file at path.  If
// indexPath is nonempty, the sequences are read by random access through the
// index.
func readFasta(ctx context.Context, path, indexPath string, n int) (seqs []string, err error) {
	if _, err = file.Stat(ctx, path); err != nil {
		if errors.Is(errors.NotExist, err) {
			return nil, errors.E(errors.NotExist, fmt.Sprintf("File: %s does not exist.", path), err)
		}
		return nil, errors.E(err, path)
	}
	var in file.File
	if in, err = file.Open(ctx, path); err != nil {
		return nil, errors.E(err, path)
	}
	defer func() {
		if cerr := in.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()

	var fa fasta.Fasta
	if indexPath != "" {
		if fileio.DetermineType(path) == fileio.Gzip {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("%s: -index cannot be used with a compressed FASTA file", path))
		}
		var idx file.File
		if idx, err = file.Open(ctx, indexPath); err != nil {
			return nil, errors.E(err, indexPath)
		}
		defer func() {
			if cerr := idx.Close(ctx); cerr != nil && err == nil {
				err = cerr
			}
		}()
		if fa, err = fasta.NewIndexed(in.Reader(ctx), idx.Reader(ctx)); err != nil {
			return nil, errors.E(err, indexPath)
		}
	} else {
		reader := io.Reader(in.Reader(ctx))
		if fileio.DetermineType(path) == fileio.Gzip {
			var gz *gzip.Reader
			if gz, err = gzip.NewReader(reader); err != nil {
				return nil, errors.E(err, path)
			}
			defer func() {
				if cerr := gz.Close(); cerr != nil && err == nil {
					err = errors.E(cerr, path)
				}
			}()
			reader = gz
		}
		if fa, err = fasta.New(reader); err != nil {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("File: %s does not contain any sequence or is not in right format (.fasta).", path), err)
		}
	}
	if seqs, err = fasta.Sequences(fa, n); err != nil {
		return nil, errors.E(err, path)
	}
	for i := range seqs {
		seqs[i] = dotplot.NormalizeSequence(seqs[i])
	}
	return seqs, nil
}

// resolveSequence turns a sequence argument into a sequence: either the
// argument itself, or the first record of the FASTA file it names.
func resolveSequence(ctx context.Context, arg string) (string, error) {
	if dotplot.IsLiteralSequence(arg) {
		return dotplot.NormalizeSequence(arg), nil
	}
	seqs, err := readFasta(ctx, fastaPath(arg), "", 1)
	if err != nil {
		return "", err
	}
	return seqs[0], nil
}

// resolveInput interprets the positional arguments of the plot command.
func resolveInput(ctx context.Context, argv []string, indexPath string) (in input, err error) {
	n := len(argv)
	if n != 3 && n != 4 {
		return in, errors.E(errors.Invalid, fmt.Sprintf("expected 3 or 4 arguments, got %d", n))
	}
	if in.opts.WindowSize, err = parseCount("window_size", argv[n-2]); err != nil {
		return
	}
	if in.opts.Threshold, err = parseCount("threshold", argv[n-1]); err != nil {
		return
	}
	if err = in.opts.Validate(); err != nil {
		return
	}

	if n == 3 {
		path := fastaPath(argv[0])
		var seqs []string
		if seqs, err = readFasta(ctx, path, indexPath, 2); err != nil {
			return
		}
		if len(seqs) < 2 {
			return in, errors.E(errors.Invalid, fmt.Sprintf("File: %s contains %d sequence(s), at least 2 required", path, len(seqs)))
		}
		in.seq1, in.seq2 = seqs[0], seqs[1]
	} else {
		if indexPath != "" {
			return in, errors.E(errors.Invalid, "-index requires a single FASTA input")
		}
		if in.seq1, err = resolveSequence(ctx, argv[0]); err != nil {
			return
		}
		if in.seq2, err = resolveSequence(ctx, argv[1]); err != nil {
			return
		}
	}

	for i, s := range []string{in.seq1, in.seq2} {
		if err = dotplot.ValidateSequence(s); err != nil {
			return in, errors.E(err, fmt.Sprintf("sequence %d", i+1))
		}
	}
	log.Debug.Printf("resolved input: %d x %d residues, %+v", len(in.seq1), len(in.seq2), in.opts)
	return in, nil
}
