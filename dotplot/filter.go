// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package dotplot

// FilterWindow computes the filtered match counts of grid.
//
// For every anchor (j, i) with j <= nRow-WindowSize and i <= nCol-WindowSize,
// the number of matches on the diagonal run grid[j+k][i+k], k in
// [0, WindowSize), is computed.  The count is kept at position (j, i) of the
// returned nRow x nCol matrix iff it is >= Threshold and grid[j][i] is itself
// a match; every other cell is zero.  Cells in the last WindowSize-1 rows and
// columns are never anchors, so they are always zero.
//
// This equals a "valid" cross-correlation of grid with the WindowSize x
// WindowSize identity kernel, thresholded, zero-padded at the high end of
// both axes and multiplied elementwise by grid.  Each diagonal is swept once
// with a running sum, so the cost is O(nRow*nCol) regardless of WindowSize.
//
// An error is returned only if opts is invalid.
func FilterWindow(grid *MatchGrid, opts Opts) (*Matrix, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	nRow, nCol := grid.Dims()
	result := newMatrix(nRow, nCol)
	w := opts.WindowSize
	if nRow < w || nCol < w {
		return result, nil
	}
	threshold := opts.Threshold

	// sweep walks the diagonal that starts at (r0, c0).
	sweep := func(r0, c0 int) {
		n := nRow - r0
		if nCol-c0 < n {
			n = nCol - c0
		}
		if n < w {
			return
		}
		sum := 0
		for k := 0; k < w; k++ {
			sum += int(grid.rows[r0+k][c0+k])
		}
		for r, c := r0, c0; ; r, c = r+1, c+1 {
			if sum >= threshold && grid.rows[r][c] != 0 {
				result.data[r*nCol+c] = sum
			}
			if r+w >= r0+n {
				break
			}
			sum += int(grid.rows[r+w][c+w]) - int(grid.rows[r][c])
		}
	}
	for r0 := nRow - w; r0 >= 0; r0-- {
		sweep(r0, 0)
	}
	for c0 := 1; c0 <= nCol-w; c0++ {
		sweep(0, c0)
	}
	return result, nil
}
