package eval

import (
	"fmt"

	"rewind/lexer"
	"rewind/parser"
)

// Evaluator reduces an expression to a value against a read-only
// view of the environment. Errors become Failure signals.
type Evaluator interface {
	Evaluate(expr parser.Expr, env Snapshot) (Value, error)
}

// EvaluatorFunc adapts a plain function to Evaluator.
type EvaluatorFunc func(expr parser.Expr, env Snapshot) (Value, error)

func (f EvaluatorFunc) Evaluate(expr parser.Expr, env Snapshot) (Value, error) {
	return f(expr, env)
}

// Native is the built-in tree-walking expression evaluator.
type Native struct{}

func (Native) Evaluate(expr parser.Expr, env Snapshot) (Value, error) {
	return evalExpr(expr, env)
}

func evalExpr(node parser.Expr, env Snapshot) (Value, error) {
	switch node := node.(type) {
	case *parser.Literal:
		return evalLiteral(node)
	case *parser.Identifier:
		name := node.Id.Lexeme
		value, ok := env.Get(name)
		if !ok {
			return nil, fmt.Errorf("%q is not defined", name)
		}
		return value, nil
	case *parser.Unary:
		right, err := evalExpr(node.Right, env)
		if err != nil {
			return nil, err
		}
		return unary(node.Op, right)
	case *parser.Binary:
		left, err := evalExpr(node.Left, env)
		if err != nil {
			return nil, err
		}
		right, err := evalExpr(node.Right, env)
		if err != nil {
			return nil, err
		}
		return binary(node.Op, left, right)
	case *parser.And:
		return evalLogical(node.Op, node.Left, node.Right, env, false)
	case *parser.Or:
		return evalLogical(node.Op, node.Left, node.Right, env, true)
	}
	panic(fmt.Sprintf("unhandled node %#+v", node))
}

func evalLiteral(node *parser.Literal) (Value, error) {
	switch node.Lit.Type {
	case lexer.NUMBER:
		return Number(node.Lit.Literal.(float64)), nil
	case lexer.STRING:
		return String(node.Lit.Literal.(string)), nil
	case lexer.TRUE:
		return TRUE, nil
	case lexer.FALSE:
		return FALSE, nil
	case lexer.NIL:
		return NIL, nil
	}
	return nil, fmt.Errorf("invalid literal %s", node.Lit.Lexeme)
}

// evalLogical short-circuits: the left operand must be a boolean, and
// when it equals stopOn it is the result without looking at the right.
func evalLogical(op lexer.Token, l, r parser.Expr, env Snapshot, stopOn bool) (Value, error) {
	left, err := evalExpr(l, env)
	if err != nil {
		return nil, err
	}
	b, ok := left.(Boolean)
	if !ok {
		return nil, fmt.Errorf("cannot apply %s to %s", op.Lexeme, Inspect(left))
	}
	if bool(b) == stopOn {
		return left, nil
	}
	return evalExpr(r, env)
}

// =========
// Operators
// =========

func unary(op lexer.Token, right Value) (Value, error) {
	switch op.Type {
	case lexer.BANG:
		if b, ok := right.(Boolean); ok {
			return !b, nil
		}
	case lexer.MINUS:
		if n, ok := right.(Number); ok {
			return -n, nil
		}
	}
	return nil, fmt.Errorf("cannot apply %s to %s", op.Lexeme, Inspect(right))
}

func binary(op lexer.Token, left, right Value) (Value, error) {
	switch op.Type {
	case lexer.EQUAL_EQUAL:
		return newBool(left == right), nil
	case lexer.BANG_EQUAL:
		return newBool(left != right), nil
	}
	switch l := left.(type) {
	case Number:
		if r, ok := right.(Number); ok {
			return numberOp(op, l, r)
		}
	case String:
		if r, ok := right.(String); ok {
			return stringOp(op, l, r)
		}
	}
	return nil, fmt.Errorf("cannot apply %s to %s and %s", op.Lexeme, Inspect(left), Inspect(right))
}

func numberOp(op lexer.Token, l, r Number) (Value, error) {
	switch op.Type {
	case lexer.PLUS:
		return l + r, nil
	case lexer.MINUS:
		return l - r, nil
	case lexer.STAR:
		return l * r, nil
	case lexer.SLASH:
		if r == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return l / r, nil
	case lexer.LESS:
		return newBool(l < r), nil
	case lexer.LESS_EQUAL:
		return newBool(l <= r), nil
	case lexer.GREATER:
		return newBool(l > r), nil
	case lexer.GREATER_EQUAL:
		return newBool(l >= r), nil
	}
	return nil, fmt.Errorf("cannot apply %s to numbers", op.Lexeme)
}

func stringOp(op lexer.Token, l, r String) (Value, error) {
	switch op.Type {
	case lexer.PLUS:
		return l + r, nil
	case lexer.LESS:
		return newBool(l < r), nil
	case lexer.LESS_EQUAL:
		return newBool(l <= r), nil
	case lexer.GREATER:
		return newBool(l > r), nil
	case lexer.GREATER_EQUAL:
		return newBool(l >= r), nil
	}
	return nil, fmt.Errorf("cannot apply %s to strings", op.Lexeme)
}
