package practice

import "errors"

var (
	// ErrNoCards is returned by Configure when the session has nothing to
	// practice. The controller is already Finished when it is returned.
	ErrNoCards = errors.New("no cards to practice")

	// ErrNotInSetup is returned when Configure is called outside PhaseSetup.
	ErrNotInSetup = errors.New("session is not in setup")

	// ErrNotFinished is returned when Restart is called before the session
	// has finished.
	ErrNotFinished = errors.New("session is not finished")
)
