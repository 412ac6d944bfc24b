// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package fasta

import (
	"bufio"
	"bytes"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/tsv"
)

// indexer accumulates the faidx entry of the sequence being scanned.
type indexer struct {
	out      *tsv.Writer
	entry    indexEntry
	inSeq    bool
	lineSeen bool
	firstErr error
}

func (x *indexer) setErr(err error) {
	if err != nil && x.firstErr == nil {
		x.firstErr = err
	}
}

// flush writes the entry of the current sequence, if any.
func (x *indexer) flush() {
	if !x.inSeq {
		return
	}
	x.out.WriteString(x.entry.name)
	x.out.WriteInt64(int64(x.entry.length))
	x.out.WriteInt64(int64(x.entry.offset))
	x.out.WriteInt64(int64(x.entry.lineBase))
	x.out.WriteInt64(int64(x.entry.lineWidth))
	x.setErr(x.out.EndLine())
}

// GenerateIndex generates an index (*.fai) from FASTA.  The index can be later
// passed to NewIndexed() to random-access the FASTA file quickly.
//
// The index format is defined by "samtool faidx"
// (http://www.htslib.org/doc/faidx.html).
func GenerateIndex(out io.Writer, in io.Reader) error {
	var (
		x       = indexer{out: tsv.NewWriter(out)}
		r       = bufio.NewReader(in)
		cumByte int64
		eof     bool
	)
	for !eof && x.firstErr == nil {
		fullLine, err := r.ReadBytes('\n')
		if err == io.EOF { // Process fullLine, then exit the loop
			eof = true
		} else if err != nil {
			x.setErr(err)
		}
		cumByte += int64(len(fullLine))
		line := bytes.TrimRight(fullLine, "\r\n")
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' { // Start a new sequence.
			x.flush()
			x.entry = indexEntry{name: seqName(string(line)), offset: uint64(cumByte)}
			x.inSeq = true
			x.lineSeen = false
			continue
		}
		if !x.inSeq {
			x.setErr(errors.E("malformed FASTA file"))
			break
		}
		if !x.lineSeen {
			x.entry.lineWidth = uint64(len(fullLine))
			x.entry.lineBase = uint64(len(line))
			x.lineSeen = true
		}
		x.entry.length += uint64(len(line))
	}
	x.flush()
	x.setErr(x.out.Flush())
	if cumByte == 0 {
		x.setErr(errors.E("empty FASTA file"))
	}
	return x.firstErr
}
