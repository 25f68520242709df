package eval

import (
	"errors"
	"fmt"
)

// ===============
// Runtime Control
// ===============
//
// A frame either completes (a nil Signal) or hands one of these back
// to its caller. Signals are returned, never panicked, so every frame
// decides explicitly what happens to the state when one passes by.

type Signal interface {
	signal()
}

// Rewind asks the frames on the way out to unwind. Each frame it
// crosses takes one off Distance; the frame that sees Distance == 1
// restores its checkpoint and starts over.
type Rewind struct{ Distance int }

// Failure is an ordinary evaluation error. Frames pass it outwards
// untouched, keeping whatever the failed statement already changed,
// until a Try catches it.
type Failure struct{ Message string }

func (Rewind) signal()  {}
func (Failure) signal() {}

// rewindDistance is what the "b" command raises. It unwinds past the
// statement at the prompt and past its parent, so the parent re-runs.
const rewindDistance = 2

// ErrQuit ends the run without restoring anything.
var ErrQuit = errors.New("quitting")

// UncaughtError is returned by Run when a Failure reaches the top.
type UncaughtError struct {
	Message string
}

func (e *UncaughtError) Error() string {
	return fmt.Sprintf("uncaught error: %s", e.Message)
}
