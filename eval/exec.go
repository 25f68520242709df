package eval

import (
	"fmt"

	"rewind/parser"
)

// execute runs a single statement against st. Children are never run
// directly: they go back through frame so that each one gets its own
// checkpoint and prompt.
func (m *Machine) execute(st *State, node parser.Stmt) (Signal, error) {
	switch node := node.(type) {
	case *parser.Assign:
		return m.execAssign(st, node)
	case *parser.If:
		return m.execIf(st, node)
	case *parser.While:
		return m.execWhile(st, node)
	case *parser.Print:
		record(st, node, nil)
		m.out.WriteLine(LINE_TRACE, node.Expr.String())
		return nil, nil
	case *parser.Seq:
		return m.execSeq(st, node)
	case *parser.Try:
		return m.execTry(st, node)
	case *parser.Pass:
		record(st, node, nil)
		return nil, nil
	}
	panic(fmt.Sprintf("unhandled node %#+v", node))
}

// record appends the history item for node before it has any effect.
func record(st *State, node parser.Stmt, prior *Binding) {
	st.History = st.History.Append(HistoryItem{Stmt: node, Prior: prior})
}

func (m *Machine) execAssign(st *State, node *parser.Assign) (Signal, error) {
	var prior *Binding
	if v, ok := st.Env.Get(node.Name); ok {
		prior = &Binding{Name: node.Name, Value: v}
	}
	record(st, node, prior)
	value, err := m.eval.Evaluate(node.Value, st.Env)
	if err != nil {
		return m.fail(err.Error()), nil
	}
	st.Env.Set(node.Name, value)
	m.out.WriteLine(LINE_TRACE, fmt.Sprintf("Assigned %s to %s", Inspect(value), node.Name))
	return nil, nil
}

// cond evaluates a guard, which has to come out as a boolean.
func (m *Machine) cond(st *State, expr parser.Expr) (bool, Signal) {
	value, err := m.eval.Evaluate(expr, st.Env)
	if err != nil {
		return false, m.fail(err.Error())
	}
	b, err := AsBool(value)
	if err != nil {
		return false, m.fail(err.Error())
	}
	return b, nil
}

func (m *Machine) execIf(st *State, node *parser.If) (Signal, error) {
	record(st, node, nil)
	ok, sig := m.cond(st, node.Cond)
	if sig != nil {
		return sig, nil
	}
	if ok {
		return m.frame(st, node.Then)
	}
	return m.frame(st, node.Else)
}

// execWhile runs one iteration and then the whole loop again as a
// fresh child frame, so every iteration is checkpointed on its own.
func (m *Machine) execWhile(st *State, node *parser.While) (Signal, error) {
	record(st, node, nil)
	ok, sig := m.cond(st, node.Cond)
	if sig != nil || !ok {
		return sig, nil
	}
	if sig, err := m.frame(st, node.Body); sig != nil || err != nil {
		return sig, err
	}
	m.out.WriteLine(LINE_TRACE, "While iteration finished")
	return m.frame(st, node)
}

func (m *Machine) execSeq(st *State, node *parser.Seq) (Signal, error) {
	record(st, node, nil)
	if sig, err := m.frame(st, node.First); sig != nil || err != nil {
		return sig, err
	}
	return m.frame(st, node.Second)
}

// execTry runs the handler when the body fails. Whatever the body
// changed before failing stays in place. Rewinds are not caught.
func (m *Machine) execTry(st *State, node *parser.Try) (Signal, error) {
	record(st, node, nil)
	sig, err := m.frame(st, node.Body)
	if err != nil {
		return nil, err
	}
	if f, ok := sig.(Failure); ok {
		m.out.WriteLine(LINE_TRACE, fmt.Sprintf("Caught error: %s", f.Message))
		return m.frame(st, node.Handler)
	}
	return sig, nil
}

// fail reports msg where it is raised and returns it as a Failure.
func (m *Machine) fail(msg string) Signal {
	m.out.WriteLine(LINE_ERROR, "ERR: "+msg)
	m.log.Debug().Int("depth", len(m.frames)).Str("message", msg).Msg("failure raised")
	return Failure{Message: msg}
}
