package eval

import (
	"fmt"
	"strconv"
)

type ValueType uint8

const (
	_ = ValueType(iota)
	VT_NIL
	VT_BOOLEAN
	VT_NUMBER
	VT_STRING
)

func (t ValueType) String() string {
	switch t {
	case VT_NIL:
		return "nil"
	case VT_BOOLEAN:
		return "boolean"
	case VT_NUMBER:
		return "number"
	case VT_STRING:
		return "string"
	}
	return fmt.Sprintf("ValueType(%d)", uint8(t))
}

// Value is anything an expression can reduce to. Values are immutable,
// so copying the environment's map is enough to snapshot them.
type Value interface {
	Type() ValueType
	String() string
}

type Nil struct{}
type Boolean bool
type Number float64
type String string

func (v Nil) Type() ValueType     { return VT_NIL }
func (v Boolean) Type() ValueType { return VT_BOOLEAN }
func (v Number) Type() ValueType  { return VT_NUMBER }
func (v String) Type() ValueType  { return VT_STRING }

func (v Nil) String() string { return "nil" }
func (v Boolean) String() string {
	if v {
		return "true"
	}
	return "false"
}
func (v Number) String() string { return strconv.FormatFloat(float64(v), 'g', -1, 64) }
func (v String) String() string { return string(v) }

// ==========
// Singletons
// ==========

var (
	NIL   = Nil{}
	TRUE  = Boolean(true)
	FALSE = Boolean(false)
)

func newBool(b bool) Value {
	if b {
		return TRUE
	}
	return FALSE
}

// AsBool extracts a Go bool from v, failing on anything that
// is not a Boolean.
func AsBool(v Value) (bool, error) {
	b, ok := v.(Boolean)
	if !ok {
		return false, fmt.Errorf("Expected boolean, got %s", Inspect(v))
	}
	return bool(b), nil
}
