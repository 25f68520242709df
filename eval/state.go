package eval

import "rewind/parser"

// Binding is a name paired with the value it held.
type Binding struct {
	Name  string
	Value Value
}

// HistoryItem records a statement as it starts executing. Prior is
// set only for assignments to an already bound variable, and holds the
// value about to be overwritten.
type HistoryItem struct {
	Stmt  parser.Stmt
	Prior *Binding
}

// History is the chronological log of executed statements.
type History []HistoryItem

// Append returns h with item added at the end.
func (h History) Append(item HistoryItem) History { return append(h, item) }

// Priors returns, oldest first, every value name held right before
// an assignment overwrote it.
func (h History) Priors(name string) []Value {
	values := []Value{}
	for _, item := range h {
		if item.Prior != nil && item.Prior.Name == name {
			values = append(values, item.Prior.Value)
		}
	}
	return values
}

// State is what a frame checkpoints and restores: the history
// and the environment always travel together.
type State struct {
	History History
	Env     *Environment
}

func NewState() State {
	return State{History: History{}, Env: NewEnvironment()}
}

// Clone returns a copy of s that later changes to either side do not
// reach. History is append-only, so the clone keeps the same backing
// array capped at its current length: an append on either side copies
// instead of writing into the other's items.
func (s State) Clone() State {
	n := len(s.History)
	return State{History: s.History[:n:n], Env: s.Env.Clone()}
}
