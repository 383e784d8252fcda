package assistant

import "errors"

// Failure taxonomy for command execution. All failures are raised at the
// point of detection and propagate to the HTTP boundary unmodified; callers
// test with errors.Is and read the message for the user-facing text.
var (
	// ErrBadRequest marks malformed or incomplete commands.
	ErrBadRequest = errors.New("bad request")

	// ErrNotFound marks task/user/project references that did not resolve.
	ErrNotFound = errors.New("not found")

	// ErrForbidden marks authorization gate rejections.
	ErrForbidden = errors.New("forbidden")
)
