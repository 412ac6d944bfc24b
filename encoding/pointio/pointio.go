// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package pointio writes dot plot point lists for downstream plotting tools.
//
// Points are written one at a time, in PointList order.  The first point of
// a list is the (len(seq1), len(seq2)) sentinel; writers do not treat it
// specially, so readers get it back as the first record as well.
package pointio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/dotplot/dotplot"
	"github.com/grailbio/hts/bgzf"
)

// Format is an output encoding.
type Format int

const (
	// Text writes one "[x y]" line per point.
	Text Format = iota
	// TSV writes a "#X\tY" header followed by one row per point.
	TSV
	// TSVBGZF is TSV compressed with BGZF.
	TSVBGZF
	// Rio writes a recordio file with one record per point.  See ReadRio.
	Rio
)

var formatNames = []string{
	Text:    "text",
	TSV:     "tsv",
	TSVBGZF: "tsv-bgz",
	Rio:     "rio",
}

// String returns the flag spelling of f.
func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// ParseFormat parses a format name as accepted by the -format flag.
func ParseFormat(name string) (Format, error) {
	for f, n := range formatNames {
		if n == name {
			return Format(f), nil
		}
	}
	return Text, errors.E(errors.Invalid, fmt.Sprintf("unknown output format %q; 'text', 'tsv', 'tsv-bgz' and 'rio' supported", name))
}

// Writer emits points one at a time.  Close must be called exactly once,
// after the last Write; it flushes buffered output but does not close the
// underlying io.Writer.
type Writer interface {
	Write(p dotplot.Point) error
	Close() error
}

// NewWriter creates a Writer that encodes points in the given format.
// Parallelism is the number of BGZF compression goroutines; it is ignored by
// the other formats.
func NewWriter(out io.Writer, format Format, parallelism int) (Writer, error) {
	switch format {
	case Text:
		return &textWriter{w: bufio.NewWriter(out)}, nil
	case TSV:
		return newTSVWriter(out, nil), nil
	case TSVBGZF:
		bgzfWriter := bgzf.NewWriter(out, parallelism)
		return newTSVWriter(bgzfWriter, bgzfWriter), nil
	case Rio:
		return newRioWriter(out), nil
	}
	return nil, errors.E(errors.Invalid, fmt.Sprintf("unknown output format %v", format))
}

// WritePoints writes all points to out in the given format.
func WritePoints(out io.Writer, format Format, points []dotplot.Point) (err error) {
	w, err := NewWriter(out, format, 1)
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
	return
}

type textWriter struct {
	w   *bufio.Writer
	buf []byte
}

// Write implements Writer.Write.
func (t *textWriter) Write(p dotplot.Point) error {
	t.buf = append(t.buf[:0], '[')
	t.buf = strconv.AppendInt(t.buf, int64(p.X), 10)
	t.buf = append(t.buf, ' ')
	t.buf = strconv.AppendInt(t.buf, int64(p.Y), 10)
	t.buf = append(t.buf, ']', '\n')
	_, err := t.w.Write(t.buf)
	return err
}

// Close implements Writer.Close.
func (t *textWriter) Close() error {
	return t.w.Flush()
}

type tsvWriter struct {
	w      *tsv.Writer
	closer io.Closer // non-nil for compressed output
	err    error
}

func newTSVWriter(out io.Writer, closer io.Closer) *tsvWriter {
	t := &tsvWriter{w: tsv.NewWriter(out), closer: closer}
	t.w.WriteString("#X")
	t.w.WriteString("Y")
	t.err = t.w.EndLine()
	return t
}

// Write implements Writer.Write.
func (t *tsvWriter) Write(p dotplot.Point) error {
	if t.err != nil {
		return t.err
	}
	t.w.WriteInt64(int64(p.X))
	t.w.WriteInt64(int64(p.Y))
	t.err = t.w.EndLine()
	return t.err
}

// Close implements Writer.Close.
func (t *tsvWriter) Close() error {
	err := t.err
	if e := t.w.Flush(); e != nil && err == nil {
		err = e
	}
	if t.closer != nil {
		if e := t.closer.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
