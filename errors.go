package md2epub

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptySource        = errors.New("source content cannot be empty")
	ErrIntermediateFailed = errors.New("intermediate HTML conversion failed")
	ErrLabelParse         = errors.New("label parsing failed")
)
