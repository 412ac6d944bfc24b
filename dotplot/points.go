// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package dotplot

import (
	"encoding/binary"

	"blainsmith.com/go/seahash"
)

// Point is a coordinate pair of a PointList.  X indexes sequence1, Y indexes
// sequence2.
type Point struct {
	X, Y int
}

// ExtractPoints flattens a filtered matrix into a PointList.
//
// The first element is always the sentinel (nCol, nRow), i.e.
// (len(seq1), len(seq2)).  It is followed by (i, j) for every cell with
// m.At(j, i) > 0, with i as the outer index and j as the inner one.
func ExtractPoints(m *Matrix) []Point {
	nRow, nCol := m.Dims()
	points := []Point{{X: nCol, Y: nRow}}
	for i := 0; i < nCol; i++ {
		for j := 0; j < nRow; j++ {
			if m.data[j*nCol+i] > 0 {
				points = append(points, Point{X: i, Y: j})
			}
		}
	}
	return points
}

// Fingerprint returns a hash of the ordered point list.  Two point lists have
// the same fingerprint iff (with overwhelming probability) they contain the
// same points in the same order.
func Fingerprint(points []Point) uint64 {
	h := seahash.New()
	var buf [16]byte
	for _, p := range points {
		binary.LittleEndian.PutUint64(buf[:8], uint64(p.X))
		binary.LittleEndian.PutUint64(buf[8:], uint64(p.Y))
		h.Write(buf[:])
	}
	return h.Sum64()
}
