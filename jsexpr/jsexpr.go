// Package jsexpr evaluates expressions with a JavaScript engine
// instead of the native evaluator. Each evaluation gets a fresh VM
// holding a copy of the current bindings, so scripts cannot touch
// the environment. Arithmetic and comparison follow JavaScript;
// boolean operands and division are checked as the native evaluator
// checks them.
package jsexpr

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dop251/goja"

	"rewind/eval"
	"rewind/lexer"
	"rewind/parser"
)

// Engine implements eval.Evaluator on top of goja.
type Engine struct{}

func New() *Engine { return &Engine{} }

func (e *Engine) Evaluate(expr parser.Expr, env eval.Snapshot) (eval.Value, error) {
	vm := goja.New()
	installHelpers(vm)
	for _, name := range env.Names() {
		v, _ := env.Get(name)
		if err := vm.Set(name, toJS(v)); err != nil {
			return nil, fmt.Errorf("failed to set %s: %w", name, err)
		}
	}
	val, err := vm.RunString(Render(expr))
	if err != nil {
		var exc *goja.Exception
		if errors.As(err, &exc) {
			return nil, errors.New(exc.Value().String())
		}
		return nil, err
	}
	return fromJS(val)
}

// Helper names start with $, which the lexer never accepts in an
// identifier, so they cannot collide with program variables.
const (
	boolHelper = "$bool"
	divHelper  = "$div"
)

// installHelpers defines the functions Render calls where JavaScript
// alone would be more lenient than the native evaluator: operands of
// !, and, or must be booleans and division by zero fails.
func installHelpers(vm *goja.Runtime) {
	vm.Set(boolHelper, func(call goja.FunctionCall) goja.Value {
		op, v := call.Argument(0).String(), call.Argument(1)
		if _, ok := v.Export().(bool); !ok {
			panic(vm.ToValue(fmt.Sprintf("cannot apply %s to %s", op, display(v))))
		}
		return v
	})
	vm.Set(divHelper, func(call goja.FunctionCall) goja.Value {
		r := call.Argument(1).ToFloat()
		if r == 0 {
			panic(vm.ToValue("division by zero"))
		}
		return vm.ToValue(call.Argument(0).ToFloat() / r)
	})
}

func display(v goja.Value) string {
	if value, err := fromJS(v); err == nil {
		return eval.Inspect(value)
	}
	return v.String()
}

func toJS(v eval.Value) interface{} {
	switch v := v.(type) {
	case eval.Boolean:
		return bool(v)
	case eval.Number:
		return float64(v)
	case eval.String:
		return string(v)
	}
	return nil
}

func fromJS(val goja.Value) (eval.Value, error) {
	if val == nil || goja.IsNull(val) || goja.IsUndefined(val) {
		return eval.NIL, nil
	}
	switch v := val.Export().(type) {
	case bool:
		return eval.Boolean(v), nil
	case int64:
		return eval.Number(float64(v)), nil
	case float64:
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return nil, fmt.Errorf("%s is not a number", val.String())
		}
		return eval.Number(v), nil
	case string:
		return eval.String(v), nil
	}
	return nil, fmt.Errorf("unsupported result %s", val.String())
}

var jsOps = map[lexer.TokenType]string{
	lexer.EQUAL_EQUAL: "===",
	lexer.BANG_EQUAL:  "!==",
}

// Render writes expr as JavaScript source.
func Render(expr parser.Expr) string {
	var buf strings.Builder
	render(&buf, expr)
	return buf.String()
}

func render(buf *strings.Builder, expr parser.Expr) {
	switch node := expr.(type) {
	case *parser.Literal:
		switch node.Lit.Type {
		case lexer.STRING:
			buf.WriteString(strconv.Quote(node.Lit.Literal.(string)))
		case lexer.NIL:
			buf.WriteString("null")
		default:
			buf.WriteString(node.Lit.Lexeme)
		}
	case *parser.Identifier:
		buf.WriteString(node.Id.Lexeme)
	case *parser.Unary:
		buf.WriteString("(")
		buf.WriteString(node.Op.Lexeme)
		if node.Op.Type == lexer.BANG {
			call(buf, boolHelper, node.Op.Lexeme, node.Right)
		} else {
			render(buf, node.Right)
		}
		buf.WriteString(")")
	case *parser.Binary:
		if node.Op.Type == lexer.SLASH {
			buf.WriteString(divHelper + "(")
			render(buf, node.Left)
			buf.WriteString(", ")
			render(buf, node.Right)
			buf.WriteString(")")
			return
		}
		op, ok := jsOps[node.Op.Type]
		if !ok {
			op = node.Op.Lexeme
		}
		infix(buf, node.Left, op, node.Right)
	case *parser.And:
		logical(buf, node.Op.Lexeme, node.Left, "&&", node.Right)
	case *parser.Or:
		logical(buf, node.Op.Lexeme, node.Left, "||", node.Right)
	default:
		panic(fmt.Sprintf("unhandled node %#+v", expr))
	}
}

// call writes a boolean check of expr, reporting name on failure.
func call(buf *strings.Builder, helper, name string, expr parser.Expr) {
	buf.WriteString(helper + "(")
	buf.WriteString(strconv.Quote(name))
	buf.WriteString(", ")
	render(buf, expr)
	buf.WriteString(")")
}

// logical checks only the left operand, which decides whether the
// right one is looked at.
func logical(buf *strings.Builder, name string, left parser.Expr, op string, right parser.Expr) {
	buf.WriteString("(")
	call(buf, boolHelper, name, left)
	buf.WriteString(" " + op + " ")
	render(buf, right)
	buf.WriteString(")")
}

func infix(buf *strings.Builder, left parser.Expr, op string, right parser.Expr) {
	buf.WriteString("(")
	render(buf, left)
	buf.WriteString(" ")
	buf.WriteString(op)
	buf.WriteString(" ")
	render(buf, right)
	buf.WriteString(")")
}
