// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package vanta

import "errors"

// Sentinel errors for expected, recoverable conditions. Of these, only
// ErrCyclicParent is returned anywhere in the module; nothing in this
// package panics on a structural violation.
var (
	// ErrNotFound names a failed component lookup or resource load. No
	// function returns it; the asset package reports a missing resource
	// with its own asset.ErrNotFound.
	ErrNotFound = errors.New("vanta: not found")

	// ErrInvalidHandle names use of a handle that failed creation or was
	// already freed. No function returns it.
	ErrInvalidHandle = errors.New("vanta: invalid handle")

	// ErrCyclicParent is returned by ComponentAttach when attaching
	// would create a cycle in the hierarchy.
	ErrCyclicParent = errors.New("vanta: cyclic parent")
)
