// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package vanta

import "unicode/utf8"

// Name is a human-readable label attached to an entity, used for debugging,
// serialization round-trips, and resource-cache logical names. Names are
// not required to be unique.
type Name struct {
	Text string
}

// setName validates text as UTF-8 and assigns it. Text that fails
// validation is first repaired and NFC-normalized by normalizeName (which
// uses golang.org/x/text/unicode/norm); valid text is stored as given.
func setName(n *Name, text string) {
	if !utf8.ValidString(text) {
		text = normalizeName(text)
	}
	n.Text = text
}
