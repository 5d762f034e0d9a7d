// SPDX-License-Identifier: MIT

package localorbit

import "errors"

var (
	// ErrNilInput indicates a nil orbit list or supercell.
	ErrNilInput = errors.New("localorbit: nil orbit list or supercell")

	// ErrIndexOutOfRange indicates an offset index outside [0, NumberOfUniqueOffsets()).
	ErrIndexOutOfRange = errors.New("localorbit: offset index out of range")

	// ErrIncommensurate indicates a supercell that is not a whole number of
	// primitive cells.
	ErrIncommensurate = errors.New("localorbit: supercell does not tile the primitive cell")
)
