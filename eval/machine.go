package eval

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"rewind/parser"
)

// Frame is one activation of a statement: the statement itself and
// the state as it stood right before the statement started.
type Frame struct {
	Stmt       parser.Stmt
	Checkpoint State
	Restarts   int // times this frame absorbed a rewind
}

// Config wires a Machine to its collaborators. Evaluator defaults to
// Native and Logger to a disabled logger.
type Config struct {
	Evaluator Evaluator
	Input     Input
	Output    Output
	Logger    *zerolog.Logger
}

// Machine steps through a statement tree one frame at a time,
// prompting before every statement, including nested ones.
type Machine struct {
	eval    Evaluator
	out     Output
	session *Session
	base    zerolog.Logger
	log     zerolog.Logger
	frames  []*Frame
}

func NewMachine(cfg Config) *Machine {
	m := &Machine{
		eval:    cfg.Evaluator,
		out:     cfg.Output,
		session: NewSession(cfg.Input, cfg.Output),
		base:    zerolog.Nop(),
	}
	if m.eval == nil {
		m.eval = Native{}
	}
	if cfg.Logger != nil {
		m.base = *cfg.Logger
	}
	m.log = m.base
	return m
}

// Session returns the session used at prompts, e.g. to inspect the
// final state once Run returns.
func (m *Machine) Session() *Session { return m.session }

// Depth is the number of frames currently open.
func (m *Machine) Depth() int { return len(m.frames) }

// Frames returns the open frames, outermost first.
func (m *Machine) Frames() []*Frame {
	frames := make([]*Frame, len(m.frames))
	copy(frames, m.frames)
	return frames
}

func (m *Machine) push(stmt parser.Stmt, checkpoint State) *Frame {
	f := &Frame{Stmt: stmt, Checkpoint: checkpoint}
	m.frames = append(m.frames, f)
	return f
}

func (m *Machine) pop() { m.frames = m.frames[:len(m.frames)-1] }

// Run executes root from an empty state. A rewind that escapes the
// outermost frame starts everything over; an uncaught failure ends the
// run with an *UncaughtError. ErrQuit, or any error from Input, ends it
// at once. The state reached is returned in every case.
func (m *Machine) Run(root parser.Stmt) (State, error) {
	for {
		m.log = m.base.With().Str("run", uuid.NewString()).Logger()
		m.log.Debug().Str("root", Truncate(root.String())).Msg("run started")
		st := NewState()
		sig, err := m.frame(&st, root)
		if err != nil {
			m.log.Debug().Err(err).Msg("run aborted")
			return st, err
		}
		switch sig := sig.(type) {
		case nil:
			m.log.Debug().Int("history", len(st.History)).Msg("run finished")
			return st, nil
		case Rewind:
			m.out.WriteLine(LINE_REWIND, "First statement")
		case Failure:
			m.out.WriteLine(LINE_ERROR, "Uncaught error: "+sig.Message)
			return st, &UncaughtError{Message: sig.Message}
		}
	}
}

// frame is the checkpoint/prompt/execute cycle every statement goes
// through. Failures and errors pass straight out. A rewind with a
// distance left is passed out one shorter; one that has run out is
// absorbed here by restoring the checkpoint and starting again.
func (m *Machine) frame(st *State, stmt parser.Stmt) (Signal, error) {
	restarts := 0
	for {
		f := m.push(stmt, st.Clone())
		f.Restarts = restarts
		m.log.Trace().Int("depth", len(m.frames)).Str("stmt", Truncate(stmt.String())).Msg("frame entered")
		sig, err := m.step(st, stmt)
		m.pop()
		if err != nil {
			return nil, err
		}
		r, ok := sig.(Rewind)
		if !ok {
			return sig, nil
		}
		if r.Distance > 1 {
			m.log.Debug().Int("depth", len(m.frames)+1).Int("distance", r.Distance-1).Msg("rewind passed out")
			return Rewind{Distance: r.Distance - 1}, nil
		}
		*st = f.Checkpoint
		restarts++
		m.log.Debug().Int("depth", len(m.frames)+1).Int("restarts", restarts).Msg("rewind absorbed")
		m.out.WriteLine(LINE_REWIND, "Stepped back to "+stmt.String())
	}
}

func (m *Machine) step(st *State, stmt parser.Stmt) (Signal, error) {
	cmd, err := m.session.Step(*st, stmt)
	if err != nil {
		return nil, err
	}
	if cmd == CMD_BACK {
		return Rewind{Distance: rewindDistance}, nil
	}
	return m.execute(st, stmt)
}
