// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package pointio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/grailbio/base/recordio"
	"github.com/grailbio/base/recordio/recordiozstd"
	"github.com/grailbio/dotplot/dotplot"
)

const (
	// rioVersionHeader is the recordio header key holding the file version.
	rioVersionHeader = "dotplotversion"
	rioVersion       = "DOTPLOT_POINTS_V1"

	trailerVersion = 1
	pointBytes     = 16

	// maxPreallocPoints bounds the capacity reserved from the trailer count.
	maxPreallocPoints = 1 << 20
)

func marshalPoint(scratch []byte, v interface{}) ([]byte, error) {
	t := scratch
	if len(t) < pointBytes {
		t = make([]byte, pointBytes)
	}
	t = t[:pointBytes]
	p := v.(dotplot.Point)
	binary.LittleEndian.PutUint64(t[:8], uint64(int64(p.X)))
	binary.LittleEndian.PutUint64(t[8:16], uint64(int64(p.Y)))
	return t, nil
}

func unmarshalPoint(in []byte) (interface{}, error) {
	if len(in) != pointBytes {
		return nil, fmt.Errorf("point record has %d bytes, want %d", len(in), pointBytes)
	}
	return dotplot.Point{
		X: int(int64(binary.LittleEndian.Uint64(in[:8]))),
		Y: int(int64(binary.LittleEndian.Uint64(in[8:16]))),
	}, nil
}

func rioTrailer(numPoints int) []byte {
	var buffer bytes.Buffer
	if err := binary.Write(&buffer, binary.LittleEndian, int64(trailerVersion)); err != nil {
		panic("couldn't write trailer version")
	}
	if err := binary.Write(&buffer, binary.LittleEndian, int64(numPoints)); err != nil {
		panic("couldn't write numPoints to trailer")
	}
	return buffer.Bytes()
}

func parseRioTrailer(trailer []byte) (int64, error) {
	r := bytes.NewReader(trailer)
	var version, numPoints int64
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return 0, err
	}
	if version != trailerVersion {
		return 0, fmt.Errorf("unrecognized trailer version: got %d, want %d", version, trailerVersion)
	}
	if err := binary.Read(r, binary.LittleEndian, &numPoints); err != nil {
		return 0, err
	}
	if numPoints < 0 {
		return 0, fmt.Errorf("negative point count in trailer: %d", numPoints)
	}
	return numPoints, nil
}

type rioWriter struct {
	w         recordio.Writer
	numPoints int
}

func newRioWriter(out io.Writer) *rioWriter {
	recordiozstd.Init()
	w := recordio.NewWriter(out, recordio.WriterOpts{
		Marshal:      marshalPoint,
		Transformers: []string{recordiozstd.Name},
	})
	w.AddHeader(rioVersionHeader, rioVersion)
	w.AddHeader(recordio.KeyTrailer, true)
	return &rioWriter{w: w}
}

// Write implements Writer.Write.  Errors are sticky and reported by Close.
func (r *rioWriter) Write(p dotplot.Point) error {
	r.w.Append(p)
	r.numPoints++
	return nil
}

// Close implements Writer.Close.
func (r *rioWriter) Close() error {
	r.w.SetTrailer(rioTrailer(r.numPoints))
	return r.w.Finish()
}

// ReadRio reads a point list written in the Rio format.
func ReadRio(in io.ReadSeeker) ([]dotplot.Point, error) {
	recordiozstd.Init()
	scanner := recordio.NewScanner(in, recordio.ScannerOpts{
		Unmarshal: unmarshalPoint,
	})
	versionFound := false
	for _, kv := range scanner.Header() {
		if kv.Key == rioVersionHeader {
			if v, ok := kv.Value.(string); !ok || v != rioVersion {
				return nil, fmt.Errorf("point file version mismatch: got %v, want %v", kv.Value, rioVersion)
			}
			versionFound = true
		}
	}
	if !versionFound {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%s not found in recordio header", rioVersionHeader)
	}
	numPoints, err := parseRioTrailer(scanner.Trailer())
	if err != nil {
		return nil, err
	}
	capacity := numPoints
	if capacity > maxPreallocPoints {
		capacity = maxPreallocPoints
	}
	points := make([]dotplot.Point, 0, capacity)
	for scanner.Scan() {
		points = append(points, scanner.Get().(dotplot.Point))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if int64(len(points)) != numPoints {
		return nil, fmt.Errorf("read %d points, trailer says %d", len(points), numPoints)
	}
	return points, nil
}
