package parser

import (
	"bytes"
	"strings"
)

func (node *Module) String() string {
	stmts := []string{}
	for _, stmt := range node.Stmts {
		stmts = append(stmts, stmt.String())
	}
	return strings.Join(stmts, "\n")
}

// Statements

func (node *Assign) String() string {
	return node.Name + " = " + node.Value.String()
}

func (node *If) String() string {
	var buf bytes.Buffer
	buf.WriteString("if (")
	buf.WriteString(node.Cond.String())
	buf.WriteString(") ")
	buf.WriteString(block(node.Then))
	buf.WriteString(" else ")
	buf.WriteString(block(node.Else))
	return buf.String()
}

func (node *While) String() string {
	var buf bytes.Buffer
	buf.WriteString("while (")
	buf.WriteString(node.Cond.String())
	buf.WriteString(") ")
	buf.WriteString(block(node.Body))
	return buf.String()
}

func (node *Try) String() string {
	var buf bytes.Buffer
	buf.WriteString("try ")
	buf.WriteString(block(node.Body))
	buf.WriteString(" catch ")
	buf.WriteString(block(node.Handler))
	return buf.String()
}

func (node *Seq) String() string  { return node.First.String() + "; " + node.Second.String() }
func (node *Print) String() string { return "print " + node.Expr.String() }
func (node *Pass) String() string  { return "pass" }

func block(s Stmt) string { return "{" + s.String() + "}" }

// Expressions

func (node *Binary) String() string { return infix(node.Left, node.Op.Lexeme, node.Right) }
func (node *And) String() string    { return infix(node.Left, "and", node.Right) }
func (node *Or) String() string     { return infix(node.Left, "or", node.Right) }

func infix(left Expr, op string, right Expr) string {
	var buf bytes.Buffer
	buf.WriteString("(")
	buf.WriteString(left.String())
	buf.WriteString(" ")
	buf.WriteString(op)
	buf.WriteString(" ")
	buf.WriteString(right.String())
	buf.WriteString(")")
	return buf.String()
}

func (node *Unary) String() string {
	var buf bytes.Buffer
	buf.WriteString("(")
	buf.WriteString(node.Op.Lexeme)
	buf.WriteString(node.Right.String())
	buf.WriteString(")")
	return buf.String()
}

func (node *Identifier) String() string { return node.Id.Lexeme }
func (node *Literal) String() string    { return node.Lit.Lexeme }
