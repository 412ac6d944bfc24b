// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package dotplot

import (
	"fmt"
	"strconv"
	"strings"
)

// Matrix is a dense 2 dimensional matrix of non-negative window counts.
// Row j corresponds to sequence2[j], column i to sequence1[i].
type Matrix struct {
	nRow, nCol int
	data       []int // row-major nRow*nCol array.
}

// newMatrix returns an n x m matrix of zeros.
func newMatrix(n, m int) *Matrix {
	return &Matrix{
		nRow: n,
		nCol: m,
		data: make([]int, n*m),
	}
}

// Dims returns the number of rows and columns of the matrix.
func (m *Matrix) Dims() (nRow, nCol int) { return m.nRow, m.nCol }

// At returns the value at row j, column i.
func (m *Matrix) At(j, i int) int { return m.data[j*m.nCol+i] }

// String renders the matrix one row per line, with columns right-aligned
// and separated by a single space.
func (m *Matrix) String() string {
	width := 1
	for _, d := range m.data {
		if l := len(strconv.Itoa(d)); l > width {
			width = l
		}
	}
	var b strings.Builder
	for j := 0; j < m.nRow; j++ {
		if j > 0 {
			b.WriteByte('\n')
		}
		for i, d := range m.data[j*m.nCol : (j+1)*m.nCol] {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%*d", width, d)
		}
	}
	return b.String()
}
