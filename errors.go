package comp40

import "errors"

var (
	// ErrHeader indicates the compressed header is malformed.
	ErrHeader = errors.New("comp40: malformed header")
	// ErrDimensions indicates the header holds odd dimensions.
	ErrDimensions = errors.New("comp40: image dimensions must be even")
	// ErrTruncated indicates the body holds fewer words than the header
	// implies.
	ErrTruncated = errors.New("comp40: truncated body")
	// ErrTrailing indicates there is data after the body.
	ErrTrailing = errors.New("comp40: trailing data after body")
	// ErrWordCount indicates a Compressed value whose word count does not
	// match its dimensions.
	ErrWordCount = errors.New("comp40: word count does not match dimensions")
	// ErrNotFound indicates there is no archived image with the given name.
	ErrNotFound = errors.New("comp40: no such image")
	// ErrEmptyImage indicates there are no pixels to compare.
	ErrEmptyImage = errors.New("comp40: no overlapping pixels")
)
