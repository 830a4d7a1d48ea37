package sessions

import "errors"

// Error taxonomy for the session lifecycle. Handlers map these to HTTP
// status codes with errors.Is; services wrap them with context via %w.
var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrForbidden            = errors.New("session belongs to another user")
	ErrSectionNotFound      = errors.New("section not found")
	ErrSectionLocked        = errors.New("previous sections must be submitted first")
	ErrOutOfOrderSubmission = errors.New("section is not the next unsubmitted section")
	ErrAlreadySubmitted     = errors.New("section already submitted")
	ErrIncompleteAnswerSet  = errors.New("answer set is incomplete or invalid")
	ErrSectionsRemaining    = errors.New("not all sections have been submitted")
	ErrSessionNotCompleted  = errors.New("session is not completed")

	// ErrVersionConflict is returned by stores when a conditional update
	// finds the session version already advanced by a concurrent writer.
	ErrVersionConflict = errors.New("session was modified concurrently")

	// ErrOpenSessionExists is returned by stores when inserting a second
	// non-completed session for the same user.
	ErrOpenSessionExists = errors.New("user already has an open session")
)
