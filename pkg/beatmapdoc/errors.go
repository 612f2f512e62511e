package beatmapdoc

import "github.com/zeebo/errs"

var (
	// Error is the error class for engine failures.
	Error = errs.Class("beatmapdoc")
	// ErrFileNotFound is returned by the load calls when the document file
	// does not exist. No file is created.
	ErrFileNotFound = errs.Class("file not found")
)
