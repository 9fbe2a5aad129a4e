package types

import "errors"

// Domain errors shared across components
var (
	// ErrLineOverflow is returned under OverflowReject when a single line
	// alone exceeds a fresh fragment's entire budget
	ErrLineOverflow = errors.New("single line exceeds chunk budget")
)
