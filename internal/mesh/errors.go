package mesh

import "errors"

// Malformed-call errors. A builder that hits one of these stops accepting
// input and returns the error from Build.
var (
	ErrGroupOpen         = errors.New("mesh: group already open")
	ErrNoGroup           = errors.New("mesh: no open group")
	ErrBuilt             = errors.New("mesh: builder already built")
	ErrAttributeMismatch = errors.New("mesh: vertex attribute counts differ")
	ErrIndexRange        = errors.New("mesh: index out of range")
)
