// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package dotplot computes dot plots of two residue sequences.
//
// A dot plot marks the cells (i, j) of the sequence1 x sequence2 match grid
// where sequence1[i] == sequence2[j] and where the diagonal run of
// Opts.WindowSize cells starting at (i, j) contains at least Opts.Threshold
// matches.  The computation runs in three stages:
//
//   NewMatchGrid   builds the dense {0,1} match grid (len(seq2) rows,
//                  len(seq1) columns).
//   FilterWindow   counts matches along every diagonal window, zeroes the
//                  counts below the threshold, and masks the counts against
//                  the grid itself.
//   ExtractPoints  flattens the filtered grid into a PointList whose first
//                  element is always the (len(seq1), len(seq2)) sentinel.
//
// Compute chains the three stages.  Everything is single-threaded and
// deterministic; nothing is cached between calls.
package dotplot
