package expreplay

import "errors"

// ExpReplayError implements errors unique to an experience replay
// buffer.
type ExpReplayError struct {
	Op  string
	Err error
}

// Error satisifes the error interface
func (e *ExpReplayError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying error
func (e *ExpReplayError) Unwrap() error {
	return e.Err
}

// ErrInsufficientSamples is reported when more samples are requested
// than the buffer holds
var ErrInsufficientSamples = errors.New("batch size exceeds buffer size")

// ErrInvalidTransition is reported when a transition does not match the
// feature size of the buffer
var ErrInvalidTransition = errors.New("invalid transition")

// IsInsufficientSamples returns whether or not an error reports that
// there are insufficient samples in the buffer to draw a batch.
func IsInsufficientSamples(err error) bool {
	return errors.Is(err, ErrInsufficientSamples)
}

// IsInvalidTransition returns whether or not an error reports that a
// transition could not be stored in the buffer
func IsInvalidTransition(err error) bool {
	return errors.Is(err, ErrInvalidTransition)
}
