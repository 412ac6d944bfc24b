// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

/*
dotplot computes the dot plot of two protein sequences with threshold-based
sliding-window filtering, and prints the surviving coordinates for a plotting
tool.

The first printed point is always (len(seq1), len(seq2)), the plot
dimensions.  Every following point (i, j) satisfies seq1[i] == seq2[j], and
the diagonal window of the given size starting at (i, j) contains at least
threshold matches.

Sample usage:

	dotplot plot ACGCGCG ACACGCA 3 2
	dotplot plot seq1.fasta seq2.fasta 5 3
	dotplot plot -format=tsv -out=plot.tsv seq3.fasta 2 2
	dotplot faidx seq3.fasta
*/
package main
