// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	"github.com/grailbio/dotplot/encoding/fasta"
)

// faidx writes the index of the FASTA file at fastaPath to indexPath.
func faidx(ctx context.Context, fastaPath, indexPath string) (err error) {
	if fileio.DetermineType(fastaPath) == fileio.Gzip {
		return errors.E(errors.Invalid, fastaPath+": cannot index a compressed FASTA file")
	}
	var in file.File
	if in, err = file.Open(ctx, fastaPath); err != nil {
		return errors.E(err, fastaPath)
	}
	defer func() {
		if cerr := in.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	var out file.File
	if out, err = file.Create(ctx, indexPath); err != nil {
		return errors.E(err, indexPath)
	}
	defer file.CloseAndReport(ctx, out, &err)
	if err = fasta.GenerateIndex(out.Writer(ctx), in.Reader(ctx)); err != nil {
		return errors.E(err, fastaPath)
	}
	log.Printf("faidx: index of %s written to %s", fastaPath, indexPath)
	return nil
}
