package analysis

import "errors"

// ErrNotFound indicates the referenced history record does not exist or is
// not owned by the caller.
var ErrNotFound = errors.New("analysis: history not found")

// InvalidResponseError: the model answered but the payload carries no
// usable palette name. Raw keeps the payload for diagnosis; it is never
// coerced into a fabricated palette.
type InvalidResponseError struct {
	Raw any
}

func (e *InvalidResponseError) Error() string { return "analysis: invalid ai response" }
