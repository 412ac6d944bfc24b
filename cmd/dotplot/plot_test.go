// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/dotplot/dotplot"
	"github.com/grailbio/dotplot/encoding/pointio"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/expect"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"v.io/x/lib/cmdline"
)

const (
	twoSeqFasta = ">seq1 first\nACGC\nGCG\n>seq2\nacac\ngca\n>seq3\nMKVL\n"
	// Output of "plot ACGCGCG ACACGCA 3 2".
	wantText = "[7 7]\n[0 0]\n[0 2]\n[1 1]\n[1 3]\n[2 4]\n[3 1]\n[3 3]\n[4 4]\n"
)

func writeFile(t *testing.T, dir, name, data string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, ioutil.WriteFile(path, []byte(data), 0644))
	return path
}

func writeGzipFile(t *testing.T, dir, name, data string) string {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write([]byte(data))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return writeFile(t, dir, name, buf.String())
}

func runPlot(t *testing.T, flags plotFlags, argv ...string) (string, error) {
	if flags.format == "" {
		flags.format = "text"
	}
	var stdout bytes.Buffer
	err := plot(vcontext.Background(), &stdout, flags, argv)
	return stdout.String(), err
}

func TestPlotLiteral(t *testing.T) {
	got, err := runPlot(t, plotFlags{}, "ACGCGCG", "ACACGCA", "3", "2")
	require.NoError(t, err)
	expect.EQ(t, got, wantText)

	got, err = runPlot(t, plotFlags{}, "acg cgcg", "ACACGCA", "3", "2")
	require.NoError(t, err)
	expect.EQ(t, got, wantText)

	got, err = runPlot(t, plotFlags{}, "AC", "GT", "1", "1")
	require.NoError(t, err)
	expect.EQ(t, got, "[2 2]\n")
}

func TestPlotFastaInputs(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	writeFile(t, dir, "a.fasta", ">a\nACGCGCG\n")
	writeFile(t, dir, "b.FASTA", ">b\nACA\nCGCA\n>unused\nMMMM\n")
	writeFile(t, dir, "both.fasta", twoSeqFasta)
	writeGzipFile(t, dir, "both_gz.fasta.gz", twoSeqFasta)

	tests := []struct {
		argv []string
	}{
		{[]string{filepath.Join(dir, "a.fasta"), filepath.Join(dir, "b.FASTA"), "3", "2"}},
		// ".fasta" is appended to names without a FASTA extension.
		{[]string{filepath.Join(dir, "a"), "ACACGCA", "3", "2"}},
		{[]string{filepath.Join(dir, "both.fasta"), "3", "2"}},
		{[]string{filepath.Join(dir, "both"), "3", "2"}},
		{[]string{filepath.Join(dir, "both_gz.fasta.gz"), "3", "2"}},
	}
	for _, test := range tests {
		got, err := runPlot(t, plotFlags{}, test.argv...)
		require.NoError(t, err, "%v", test.argv)
		expect.EQ(t, got, wantText, "%v", test.argv)
	}
}

func TestPlotIndexed(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	fastaPath := writeFile(t, dir, "both.fasta", twoSeqFasta)
	require.NoError(t, faidx(vcontext.Background(), fastaPath, fastaPath+".fai"))

	got, err := runPlot(t, plotFlags{index: fastaPath + ".fai"}, fastaPath, "3", "2")
	require.NoError(t, err)
	expect.EQ(t, got, wantText)

	_, err = runPlot(t, plotFlags{index: fastaPath + ".fai"}, fastaPath, fastaPath, "3", "2")
	assert.True(t, errors.Is(errors.Invalid, err), "%v", err)
}

func TestPlotOutputFile(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	tsvPath := filepath.Join(dir, "out.tsv")
	stdout, err := runPlot(t, plotFlags{format: "tsv", out: tsvPath, fingerprint: true}, "ACGCGCG", "ACACGCA", "3", "2")
	require.NoError(t, err)
	expect.EQ(t, stdout, "")
	data, err := ioutil.ReadFile(tsvPath)
	require.NoError(t, err)
	expect.EQ(t, string(data), "#X\tY\n7\t7\n0\t0\n0\t2\n1\t1\n1\t3\n2\t4\n3\t1\n3\t3\n4\t4\n")

	rioPath := filepath.Join(dir, "out.rio")
	_, err = runPlot(t, plotFlags{format: "rio", out: rioPath}, "ACGCGCG", "ACACGCA", "3", "2")
	require.NoError(t, err)
	f, err := os.Open(rioPath)
	require.NoError(t, err)
	defer f.Close() // nolint: errcheck
	points, err := pointio.ReadRio(f)
	require.NoError(t, err)
	want, err := dotplot.Compute("ACGCGCG", "ACACGCA", dotplot.Opts{WindowSize: 3, Threshold: 2})
	require.NoError(t, err)
	expect.EQ(t, points, want)
}

func TestPlotErrors(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	oneSeq := writeFile(t, dir, "one.fasta", ">only\nMKVL\n")
	bad := writeFile(t, dir, "bad.fasta", ">bad\nMKXL\n")
	empty := writeFile(t, dir, "empty.fasta", "")

	tests := []struct {
		name  string
		flags plotFlags
		argv  []string
		kind  errors.Kind
		match string
	}{
		{"missing file", plotFlags{}, []string{filepath.Join(dir, "nope"), "ACD", "3", "2"}, errors.NotExist, "does not exist"},
		{"single record", plotFlags{}, []string{oneSeq, "3", "2"}, errors.Invalid, "at least 2 required"},
		{"empty file", plotFlags{}, []string{empty, "ACD", "3", "2"}, errors.Invalid, "does not contain any sequence"},
		{"bad residue", plotFlags{}, []string{bad, "ACD", "3", "2"}, errors.Invalid, "invalid residue 'X'"},
		{"zero window", plotFlags{}, []string{"ACD", "ACD", "0", "2"}, errors.Invalid, "window size must be positive"},
		{"negative threshold", plotFlags{}, []string{"ACD", "ACD", "3", "-2"}, errors.Invalid, "threshold"},
		{"non-numeric window", plotFlags{}, []string{"ACD", "ACD", "three", "2"}, errors.Invalid, "window_size"},
		{"bad format", plotFlags{format: "png"}, []string{"ACD", "ACD", "3", "2"}, errors.Invalid, "unknown output format"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			stdout, err := runPlot(t, test.flags, test.argv...)
			require.Error(t, err)
			assert.True(t, errors.Is(test.kind, err), "%v", err)
			assert.Contains(t, err.Error(), test.match)
			// Nothing is written on failure.
			expect.EQ(t, stdout, "")
		})
	}
}

func TestReadFastaStatErrors(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := vcontext.Background()

	_, err := readFasta(ctx, filepath.Join(dir, "nope.fasta"), "", 1)
	require.Error(t, err)
	assert.True(t, errors.Is(errors.NotExist, err), "%v", err)

	// A directory exists, so it must not be reported as missing.
	sub := filepath.Join(dir, "sub.fasta")
	require.NoError(t, os.Mkdir(sub, 0755))
	_, err = readFasta(ctx, sub, "", 1)
	require.Error(t, err)
	assert.False(t, errors.Is(errors.NotExist, err), "%v", err)
	assert.NotContains(t, err.Error(), "does not exist")
	assert.Contains(t, err.Error(), sub)
}

func TestReadFastaGzip(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := vcontext.Background()

	path := writeGzipFile(t, dir, "two.fasta.gz", twoSeqFasta)
	for i := 0; i < 2; i++ {
		seqs, err := readFasta(ctx, path, "", 2)
		require.NoError(t, err)
		expect.EQ(t, seqs, []string{"ACGCGCG", "ACACGCA"})
	}

	notGzip := writeFile(t, dir, "plain.fasta.gz", twoSeqFasta)
	_, err := readFasta(ctx, notGzip, "", 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), notGzip)
}

func TestFaidxUsage(t *testing.T) {
	var stderr bytes.Buffer
	env := &cmdline.Env{Stdout: ioutil.Discard, Stderr: &stderr}
	for _, argv := range [][]string{nil, {"a.fasta", "a.fai", "extra"}} {
		stderr.Reset()
		err := runFaidx(env, argv)
		assert.Equal(t, cmdline.ErrUsage, err)
		assert.Contains(t, stderr.String(), "faidx takes fastapath [indexpath]")
	}
}

func TestParseCount(t *testing.T) {
	n, err := parseCount("w", "012")
	require.NoError(t, err)
	expect.EQ(t, n, 12)
	for _, arg := range []string{"", "+1", "-1", "1.5", "1e3", " 1"} {
		_, err := parseCount("w", arg)
		assert.Error(t, err, arg)
	}
}

func TestFastaPath(t *testing.T) {
	expect.EQ(t, fastaPath("seq3"), "seq3.fasta")
	expect.EQ(t, fastaPath("seq3.fasta"), "seq3.fasta")
	expect.EQ(t, fastaPath("seq3.FASTA"), "seq3.FASTA")
	expect.EQ(t, fastaPath("seq3.fasta.gz"), "seq3.fasta.gz")
	expect.EQ(t, fastaPath("seq3.fa"), "seq3.fa.fasta")
}
