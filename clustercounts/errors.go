// SPDX-License-Identifier: MIT

package clustercounts

import "errors"

var (
	// ErrNilStructure indicates a nil structure argument.
	ErrNilStructure = errors.New("clustercounts: nil structure")

	// ErrNilOrbitList indicates a nil orbit list argument.
	ErrNilOrbitList = errors.New("clustercounts: nil orbit list")

	// ErrSizeMismatch indicates a site tuple whose length differs from the
	// cluster order.
	ErrSizeMismatch = errors.New("clustercounts: site tuple does not match cluster order")
)
