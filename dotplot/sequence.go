// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package dotplot

import (
	"fmt"
	"strings"

	"github.com/grailbio/base/errors"
)

// Alphabet lists the residues accepted in a sequence.
const Alphabet = "ACDEFGHIKLMNPQRSTVWY"

// residueTable[c] is true iff c is in Alphabet, in either case.
var residueTable [256]bool

func init() {
	for i := 0; i < len(Alphabet); i++ {
		residueTable[Alphabet[i]] = true
		residueTable[Alphabet[i]-'A'+'a'] = true
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// NormalizeSequence upper-cases s and removes all whitespace from it.
func NormalizeSequence(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isSpace(c) {
			continue
		}
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}

// IsLiteralSequence reports whether arg looks like a sequence typed on the
// command line rather than a file name: it is non-empty and consists only of
// residues (either case) and whitespace.
func IsLiteralSequence(arg string) bool {
	if len(arg) == 0 {
		return false
	}
	for i := 0; i < len(arg); i++ {
		if c := arg[i]; !residueTable[c] && !isSpace(c) {
			return false
		}
	}
	return true
}

// ValidateSequence returns an errors.Invalid error if s contains a byte that
// is not an upper-case residue.  The empty sequence is valid.
func ValidateSequence(s string) error {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !residueTable[c] || (c >= 'a' && c <= 'z') {
			return errors.E(errors.Invalid, fmt.Sprintf("dotplot: invalid residue %q at offset %d", c, i))
		}
	}
	return nil
}
