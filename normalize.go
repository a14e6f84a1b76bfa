// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package vanta

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// normalizeName repairs a string that failed utf8.ValidString by replacing
// every invalid byte sequence with the Unicode replacement rune, then
// applies NFC normalization so names that arrive pre-composed from one
// platform and decomposed from another compare and hash the same way.
func normalizeName(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteRune(utf8.RuneError)
			i++
			continue
		}
		b.WriteRune(r)
		i += size
	}
	return norm.NFC.String(b.String())
}
