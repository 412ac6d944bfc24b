// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package dotplot

import (
	"testing"

	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gridRows(g *MatchGrid) [][]byte {
	nRow, nCol := g.Dims()
	rows := make([][]byte, nRow)
	for j := range rows {
		rows[j] = make([]byte, nCol)
		for i := range rows[j] {
			rows[j][i] = g.At(j, i)
		}
	}
	return rows
}

func TestNewMatchGrid(t *testing.T) {
	g := NewMatchGrid("ACA", "aCGc")
	nRow, nCol := g.Dims()
	expect.EQ(t, nRow, 4)
	expect.EQ(t, nCol, 3)
	expect.EQ(t, gridRows(g), [][]byte{
		{1, 0, 1},
		{0, 1, 0},
		{0, 0, 0},
		{0, 1, 0},
	})
	// Rows of identical residues share storage.
	assert.True(t, &g.Row(1)[0] == &g.Row(3)[0])
}

func TestNewMatchGridEmpty(t *testing.T) {
	g := NewMatchGrid("", "ACD")
	nRow, nCol := g.Dims()
	expect.EQ(t, nRow, 3)
	expect.EQ(t, nCol, 0)
	g = NewMatchGrid("ACD", "")
	nRow, nCol = g.Dims()
	expect.EQ(t, nRow, 0)
	expect.EQ(t, nCol, 3)
}

func TestFilterWindowKeepsCounts(t *testing.T) {
	// The main diagonal matches everywhere except at (2, 2).
	g := NewMatchGrid("ACDEF", "ACWEF")
	m, err := FilterWindow(g, Opts{WindowSize: 3, Threshold: 2})
	require.NoError(t, err)
	nRow, nCol := m.Dims()
	expect.EQ(t, nRow, 5)
	expect.EQ(t, nCol, 5)
	expect.EQ(t, m.At(0, 0), 2)
	expect.EQ(t, m.At(1, 1), 2)
	// The anchor at (2, 2) passes the threshold but is not a match itself.
	expect.EQ(t, m.At(2, 2), 0)
	// Padding.
	for k := 3; k < 5; k++ {
		for i := 0; i < 5; i++ {
			expect.EQ(t, m.At(k, i), 0)
			expect.EQ(t, m.At(i, k), 0)
		}
	}

	m, err = FilterWindow(g, Opts{WindowSize: 3, Threshold: 3})
	require.NoError(t, err)
	for j := 0; j < 5; j++ {
		for i := 0; i < 5; i++ {
			expect.EQ(t, m.At(j, i), 0)
		}
	}
}

func TestFilterWindowInvalid(t *testing.T) {
	_, err := FilterWindow(NewMatchGrid("A", "A"), Opts{WindowSize: 0})
	assert.Error(t, err)
}

func TestMatrixString(t *testing.T) {
	m := newMatrix(2, 2)
	m.data[0] = 12
	m.data[3] = 3
	assert.Equal(t, "12  0\n 0  3", m.String())
	assert.Equal(t, "", newMatrix(0, 3).String())
}

func TestMatrixStringFiltered(t *testing.T) {
	m, err := FilterWindow(NewMatchGrid("ACDEF", "ACWEF"), Opts{WindowSize: 2, Threshold: 1})
	assert.NoError(t, err)
	assert.Equal(t, "2 0 0 0 0\n0 1 0 0 0\n0 0 0 0 0\n0 0 0 2 0\n0 0 0 0 0", m.String())
}
