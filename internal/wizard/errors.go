package wizard

import (
	"errors"
	"fmt"
)

var (
	// ErrWrongStep is returned when an operation is attempted from a step
	// that does not allow it. StepError wraps it with details.
	ErrWrongStep = errors.New("operation not allowed at this step")

	ErrCannotContinue       = errors.New("current step has not been completed")
	ErrNotConfirmed         = errors.New("itinerary has not been confirmed")
	ErrUnknownDestination   = errors.New("unknown destination")
	ErrUnknownDuration      = errors.New("unknown duration")
	ErrUnknownTravellerType = errors.New("unknown traveller type")
	ErrUnknownCounter       = errors.New("unknown room counter")
	ErrInvalidRoomConfig    = errors.New("invalid room configuration")
	ErrCorruptState         = errors.New("corrupt wizard state")
	ErrSessionNotFound      = errors.New("wizard session not found")
)

// StepError records which operation was rejected and at which step.
type StepError struct {
	Op   string
	Step Step
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: not allowed at step %d (%s)", e.Op, int(e.Step), e.Step)
}

func (e *StepError) Unwrap() error { return ErrWrongStep }

// corruptSession marks a stored session that could not be decoded so
// callers can discard it with errors.Is(err, ErrCorruptState).
func corruptSession(id string, err error) error {
	if errors.Is(err, ErrCorruptState) {
		return fmt.Errorf("decoding wizard session %s: %w", id, err)
	}
	return fmt.Errorf("decoding wizard session %s: %w: %w", id, ErrCorruptState, err)
}
