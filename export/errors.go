// SPDX-License-Identifier: MIT

package export

import "errors"

var (
	// ErrUnknownFormat indicates a format name other than "yaml" or "cbor".
	ErrUnknownFormat = errors.New("export: unknown format")

	// ErrUnsupportedVersion indicates a decoded snapshot of another version.
	ErrUnsupportedVersion = errors.New("export: unsupported snapshot version")
)
