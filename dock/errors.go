// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/errors.go
// Summary: Error taxonomy shared by structural edits and layout loading.

package dock

import "errors"

var (
	// ErrInvalidTarget means an operation referenced a node, tab or window
	// that does not exist (or is the wrong kind).
	ErrInvalidTarget = errors.New("invalid target")

	// ErrIndexOutOfRange means a tab index was outside the group.
	ErrIndexOutOfRange = errors.New("tab index out of range")

	// ErrUnknownContentType means no constructor is registered for a tag.
	ErrUnknownContentType = errors.New("unknown content type")

	// ErrUnsupportedVersion means a persisted record is newer than this
	// loader understands.
	ErrUnsupportedVersion = errors.New("unsupported layout version")

	// ErrDegenerateSplit is reported as a warning when a split ratio had to
	// be clamped. It never fails an operation.
	ErrDegenerateSplit = errors.New("degenerate split ratio")
)
