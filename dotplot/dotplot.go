// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package dotplot

import (
	"github.com/grailbio/base/log"
)

// maxDebugCells limits the size of matrices dumped at debug level.
const maxDebugCells = 1024

// Compute returns the dot plot PointList of seq1 against seq2.
//
// opts is validated before anything is computed; on error no points are
// returned.  Empty sequences and windows longer than either sequence are not
// errors: they yield a sentinel-only list.
func Compute(seq1, seq2 string, opts Opts) ([]Point, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	grid := NewMatchGrid(seq1, seq2)
	filtered, err := FilterWindow(grid, opts)
	if err != nil {
		return nil, err
	}
	if log.At(log.Debug) && len(seq1)*len(seq2) <= maxDebugCells {
		log.Debug.Printf("dotplot: filtered counts:\n%v", filtered)
	}
	points := ExtractPoints(filtered)
	log.Debug.Printf("dotplot: %dx%d grid, window %d, threshold %d: %d points",
		len(seq1), len(seq2), opts.WindowSize, opts.Threshold, len(points)-1)
	return points, nil
}
