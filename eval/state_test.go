package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rewind/parser"
)

func TestStateCloneIsIndependent(t *testing.T) {
	st := NewState()
	st.Env.Set("x", Number(1))
	st.History = st.History.Append(HistoryItem{Stmt: parser.NewPass()})

	clone := st.Clone()
	clone.Env.Set("x", Number(2))
	clone.Env.Set("y", Number(3))
	clone.History = clone.History.Append(HistoryItem{Stmt: parser.NewPass()})

	x, _ := st.Env.Get("x")
	assert.Equal(t, Number(1), x)
	_, ok := st.Env.Get("y")
	assert.False(t, ok)
	assert.Len(t, st.History, 1)
	assert.Len(t, clone.History, 2)
}

func TestStateCloneSharesHistoryItems(t *testing.T) {
	st := NewState()
	for i := 0; i < 3; i++ {
		st.History = st.History.Append(HistoryItem{Stmt: parser.NewPass()})
	}
	clone := st.Clone()
	assert.Same(t, &st.History[0], &clone.History[0])
}

func TestStateCloneSurvivesAppendsOnBothSides(t *testing.T) {
	pass := parser.NewPass()
	assign := parser.NewAssign("x", parser.NewNumber(1))

	st := NewState()
	st.History = make(History, 0, 8).Append(HistoryItem{Stmt: pass})
	checkpoint := st.Clone()

	// the live state grows into its spare capacity
	st.History = st.History.Append(HistoryItem{Stmt: assign})

	// restoring and running again appends on the checkpoint's side
	restored := checkpoint
	restored.History = restored.History.Append(HistoryItem{Stmt: pass})

	require.Len(t, st.History, 2)
	assert.Same(t, assign, st.History[1].Stmt)
	require.Len(t, restored.History, 2)
	assert.Same(t, pass, restored.History[1].Stmt)
	assert.Len(t, checkpoint.History, 1)
}

func TestHistoryPriors(t *testing.T) {
	assign := parser.NewAssign("x", parser.NewNumber(0))
	h := History{}.
		Append(HistoryItem{Stmt: assign}).
		Append(HistoryItem{Stmt: assign, Prior: &Binding{"x", Number(1)}}).
		Append(HistoryItem{Stmt: assign, Prior: &Binding{"y", Number(9)}}).
		Append(HistoryItem{Stmt: assign, Prior: &Binding{"x", String("two")}})

	assert.Equal(t, []Value{Number(1), String("two")}, h.Priors("x"))
	assert.Equal(t, []Value{Number(9)}, h.Priors("y"))
	assert.Empty(t, h.Priors("z"))
}

func TestEnvironmentNamesSorted(t *testing.T) {
	env := NewEnvironment()
	env.Set("b", TRUE)
	env.Set("a", NIL)
	env.Set("c", Number(1))
	assert.Equal(t, []string{"a", "b", "c"}, env.Names())
	assert.Equal(t, 3, env.Len())
}
