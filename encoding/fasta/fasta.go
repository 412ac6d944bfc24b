// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package fasta contains code for parsing (optionally indexed) FASTA files.
// See http://www.htslib.org/doc/faidx.html.  Briefly, FASTA files consist of a
// number of named sequences that may be interrupted by newlines.  For example:
//
// >sp|P69905|HBA_HUMAN
// MVLSPADKTNVKAAWGKVGA
// HAGEYGAEALERMF
// >sp|P68871|HBB_HUMAN
// MVHLTPEEKSAVTALWGKV
//
// Sequence names are the stretch of characters excluding spaces immediately
// after '>'.  Any text after a space is ignored, so '>seq1 A viral protein'
// becomes 'seq1'.  Sequence data is returned as it appears in the file,
// without line terminators; callers normalize case themselves.
package fasta

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

const (
	bufferInitSize = 1024 * 1024 * 300 // 300 MB
)

// Fasta represents FASTA-formatted data, consisting of a set of named
// sequences.
type Fasta interface {
	// Get returns a substring of the given sequence name at the given
	// coordinates, which are treated as a 0-based half-open interval
	// [start, end). Get is thread-safe.
	Get(seqName string, start, end uint64) (string, error)

	// Len returns the length of the given sequence.
	Len(seqName string) (uint64, error)

	// SeqNames returns the names of all sequences, in the order of appearance in
	// the FASTA file.
	SeqNames() []string
}

type fasta struct {
	seqs     map[string]string
	seqNames []string
}

// seqName extracts the sequence name from a header line (including '>').
func seqName(header string) string {
	return strings.Split(header[1:], " ")[0]
}

// New creates a new Fasta that holds all the FASTA data from the given reader
// in memory.  It is an error for the data to contain no sequence, to contain
// sequence lines before the first header, or to repeat a sequence name.
func New(r io.Reader) (Fasta, error) {
	f := &fasta{seqs: make(map[string]string)}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, bufferInitSize)
	var (
		name      string
		seq       strings.Builder
		seenFirst bool
	)
	add := func() error {
		if _, ok := f.seqs[name]; ok {
			return errors.Errorf("duplicate sequence name: %s", name)
		}
		f.seqs[name] = seq.String()
		f.seqNames = append(f.seqNames, name)
		seq.Reset()
		return nil
	}
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' { // Start a new sequence.
			if seenFirst {
				if err := add(); err != nil {
					return nil, err
				}
			}
			name = seqName(line)
			seenFirst = true
			continue
		}
		if !seenFirst {
			return nil, errors.Errorf("malformed FASTA file: sequence data before the first header")
		}
		seq.WriteString(line)
	}
	if scanner.Err() != nil {
		return nil, errors.Wrap(scanner.Err(), "couldn't read FASTA data")
	}
	if !seenFirst {
		return nil, errors.Errorf("no sequences in FASTA data")
	}
	if err := add(); err != nil {
		return nil, err
	}
	return f, nil
}

// Get implements Fasta.Get().
func (f *fasta) Get(seqName string, start, end uint64) (string, error) {
	s, ok := f.seqs[seqName]
	if !ok {
		return "", errors.Errorf("sequence not found: %s", seqName)
	}
	if end <= start {
		return "", errors.Errorf("start must be less than end")
	}
	if end > uint64(len(s)) {
		return "", errors.Errorf("invalid query range %d - %d for sequence %s with length %d",
			start, end, seqName, len(s))
	}
	return s[start:end], nil
}

// Len implements Fasta.Len().
func (f *fasta) Len(seqName string) (uint64, error) {
	s, ok := f.seqs[seqName]
	if !ok {
		return 0, errors.Errorf("sequence not found: %s", seqName)
	}
	return uint64(len(s)), nil
}

// SeqNames implements Fasta.SeqNames().
func (f *fasta) SeqNames() []string {
	return f.seqNames
}

// Sequences returns the first n sequences of f in file order.  Empty
// sequences are returned as "" (Get rejects empty ranges).  If f holds fewer
// than n sequences, all of them are returned.
func Sequences(f Fasta, n int) ([]string, error) {
	names := f.SeqNames()
	if len(names) > n {
		names = names[:n]
	}
	seqs := make([]string, 0, len(names))
	for _, name := range names {
		l, err := f.Len(name)
		if err != nil {
			return nil, err
		}
		if l == 0 {
			seqs = append(seqs, "")
			continue
		}
		s, err := f.Get(name, 0, l)
		if err != nil {
			return nil, err
		}
		seqs = append(seqs, s)
	}
	return seqs, nil
}
