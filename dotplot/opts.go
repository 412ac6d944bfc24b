// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package dotplot

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

// Opts holds the filtering parameters of a dot plot.  It is passed by value
// and never modified by this package.
type Opts struct {
	// WindowSize is the length of the diagonal window.  Must be >= 1.
	WindowSize int
	// Threshold is the minimum number of matches a diagonal window must
	// contain for its anchor to survive.  A negative threshold lets every
	// window pass.  A threshold above WindowSize can never be met, so the
	// result is sentinel-only.
	Threshold int
}

// DefaultOpts sets the default values to Opts.
var DefaultOpts = Opts{
	WindowSize: 3,
	Threshold:  2,
}

// Validate returns an errors.Invalid error if o cannot be used to compute a
// dot plot.
func (o Opts) Validate() error {
	if o.WindowSize <= 0 {
		return errors.E(errors.Invalid, fmt.Sprintf("dotplot: window size must be positive, got %d", o.WindowSize))
	}
	return nil
}
