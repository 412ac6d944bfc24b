// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package dotplot

import (
	"github.com/grailbio/base/simd"
)

// upperTable maps every byte to its upper-case ASCII equivalent.
var upperTable [256]byte

func init() {
	for i := range upperTable {
		c := byte(i)
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		upperTable[i] = c
	}
}

// MatchGrid is the dense match grid of two sequences.  It has len(seq2) rows
// and len(seq1) columns, and cell (j, i) is 1 iff seq1[i] == seq2[j] after
// case normalization, 0 otherwise.
//
// A MatchGrid is immutable once built.  Rows belonging to identical residues
// of seq2 share storage, so building the grid touches at most
// (alphabet size) x len(seq1) bytes.
type MatchGrid struct {
	nRow, nCol int
	rows       [][]byte
}

// NewMatchGrid builds the match grid of seq1 (columns) against seq2 (rows).
// Either sequence may be empty, in which case the grid has a zero-sized
// axis.
func NewMatchGrid(seq1, seq2 string) *MatchGrid {
	g := &MatchGrid{
		nRow: len(seq2),
		nCol: len(seq1),
		rows: make([][]byte, len(seq2)),
	}
	if g.nCol == 0 {
		return g
	}
	var rowCache [256][]byte
	for j := 0; j < g.nRow; j++ {
		residue := upperTable[seq2[j]]
		row := rowCache[residue]
		if row == nil {
			row = simd.MakeUnsafe(g.nCol)
			for i := 0; i < g.nCol; i++ {
				if upperTable[seq1[i]] == residue {
					row[i] = 1
				} else {
					row[i] = 0
				}
			}
			rowCache[residue] = row
		}
		g.rows[j] = row
	}
	return g
}

// Dims returns the number of rows (len(seq2)) and columns (len(seq1)).
func (g *MatchGrid) Dims() (nRow, nCol int) { return g.nRow, g.nCol }

// At returns the grid value at row j, column i.
func (g *MatchGrid) At(j, i int) byte { return g.rows[j][i] }

// Row returns row j of the grid.  The caller must not modify it.
func (g *MatchGrid) Row(j int) []byte { return g.rows[j] }
