package parser

import (
	"strconv"
	"strings"

	"rewind/lexer"
)

type Node interface {
	String() string
	node()
}

type Expr interface {
	Node
	Tok() lexer.Token
	expr()
}

// Stmt is a node of the statement tree. Statements are never mutated
// once built, so subtrees may be shared (a While body is evaluated as
// the same node on every iteration).
type Stmt interface {
	Node
	stmt()
}

// Module is a parsed source file.
type Module struct {
	Filename string
	Stmts    []Stmt
}

// Root folds the module's top-level statements into a single tree.
func (m *Module) Root() Stmt { return NewSeq(m.Stmts...) }

// ==========
// Statements
// ==========

type (
	Assign struct {
		Name  string
		Value Expr
	}
	If struct {
		Cond Expr
		Then Stmt
		Else Stmt
	}
	While struct {
		Cond Expr
		Body Stmt
	}
	Print struct {
		Expr Expr
	}
	Seq struct {
		First  Stmt
		Second Stmt
	}
	Try struct {
		Body    Stmt
		Handler Stmt
	}
	Pass struct{}
)

// ===========
// Expressions
// ===========

type (
	Literal struct {
		Lit lexer.Token
	}
	Identifier struct {
		Id lexer.Token
	}
	Unary struct {
		Op    lexer.Token
		Right Expr
	}
	Binary struct {
		Op    lexer.Token
		Left  Expr
		Right Expr
	}
	And struct {
		Op    lexer.Token
		Left  Expr
		Right Expr
	}
	Or struct {
		Op    lexer.Token
		Left  Expr
		Right Expr
	}
)

func (*Module) node() {}
func (*Assign) node() {}
func (*If) node()     {}
func (*While) node()  {}
func (*Print) node()  {}
func (*Seq) node()    {}
func (*Try) node()    {}
func (*Pass) node()   {}

func (*Assign) stmt() {}
func (*If) stmt()     {}
func (*While) stmt()  {}
func (*Print) stmt()  {}
func (*Seq) stmt()    {}
func (*Try) stmt()    {}
func (*Pass) stmt()   {}

func (*Literal) node()    {}
func (*Identifier) node() {}
func (*Unary) node()      {}
func (*Binary) node()     {}
func (*And) node()        {}
func (*Or) node()         {}

func (*Literal) expr()    {}
func (*Identifier) expr() {}
func (*Unary) expr()      {}
func (*Binary) expr()     {}
func (*And) expr()        {}
func (*Or) expr()         {}

func (node *Literal) Tok() lexer.Token    { return node.Lit }
func (node *Identifier) Tok() lexer.Token { return node.Id }
func (node *Unary) Tok() lexer.Token      { return node.Op }
func (node *Binary) Tok() lexer.Token     { return node.Op }
func (node *And) Tok() lexer.Token        { return node.Op }
func (node *Or) Tok() lexer.Token         { return node.Op }

// ============
// Constructors
// ============
//
// These build trees directly, without going through the lexer. Tokens
// are synthesised so that String() renders the same text the parser
// would have seen.

var opLexemes = map[lexer.TokenType]string{
	lexer.MINUS:         "-",
	lexer.PLUS:          "+",
	lexer.SLASH:         "/",
	lexer.STAR:          "*",
	lexer.BANG:          "!",
	lexer.BANG_EQUAL:    "!=",
	lexer.EQUAL_EQUAL:   "==",
	lexer.GREATER:       ">",
	lexer.GREATER_EQUAL: ">=",
	lexer.LESS:          "<",
	lexer.LESS_EQUAL:    "<=",
	lexer.AND:           "and",
	lexer.OR:            "or",
}

func opToken(typ lexer.TokenType) lexer.Token {
	return lexer.Token{Type: typ, Lexeme: opLexemes[typ]}
}

func NewNumber(f float64) *Literal {
	return &Literal{lexer.Token{
		Type:    lexer.NUMBER,
		Lexeme:  strconv.FormatFloat(f, 'g', -1, 64),
		Literal: f,
	}}
}

func NewString(s string) *Literal {
	return &Literal{lexer.Token{Type: lexer.STRING, Lexeme: quote(s), Literal: s}}
}

// quote writes s as a string literal using only the escapes the lexer
// reads back.
func quote(s string) string {
	var buf strings.Builder
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			buf.WriteString(`\\`)
		case '"':
			buf.WriteString(`\"`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case 0:
			buf.WriteString(`\0`)
		default:
			buf.WriteRune(r)
		}
	}
	buf.WriteByte('"')
	return buf.String()
}

func NewBool(b bool) *Literal {
	if b {
		return &Literal{lexer.Token{Type: lexer.TRUE, Lexeme: "true"}}
	}
	return &Literal{lexer.Token{Type: lexer.FALSE, Lexeme: "false"}}
}

func NewNil() *Literal { return &Literal{lexer.Token{Type: lexer.NIL, Lexeme: "nil"}} }

func NewIdentifier(name string) *Identifier {
	return &Identifier{lexer.Token{Type: lexer.IDENTIFIER, Lexeme: name, Literal: name}}
}

func NewUnary(op lexer.TokenType, right Expr) *Unary {
	return &Unary{Op: opToken(op), Right: right}
}

// NewBinary builds a binary expression; AND and OR produce the
// short-circuiting And and Or nodes.
func NewBinary(op lexer.TokenType, left, right Expr) Expr {
	switch op {
	case lexer.AND:
		return &And{Op: opToken(op), Left: left, Right: right}
	case lexer.OR:
		return &Or{Op: opToken(op), Left: left, Right: right}
	}
	return &Binary{Op: opToken(op), Left: left, Right: right}
}

func NewAssign(name string, value Expr) *Assign { return &Assign{Name: name, Value: value} }
func NewPrint(expr Expr) *Print                  { return &Print{Expr: expr} }
func NewWhile(cond Expr, body Stmt) *While       { return &While{Cond: cond, Body: body} }
func NewTry(body, handler Stmt) *Try             { return &Try{Body: body, Handler: handler} }
func NewPass() *Pass                             { return &Pass{} }

// NewIf builds a conditional; a nil else branch becomes Pass.
func NewIf(cond Expr, then, els Stmt) *If {
	if els == nil {
		els = NewPass()
	}
	return &If{Cond: cond, Then: then, Else: els}
}

// NewSeq folds stmts to the right: NewSeq(a, b, c) is Seq(a, Seq(b, c)).
// A single statement is returned as is, and no statements at all is Pass.
func NewSeq(stmts ...Stmt) Stmt {
	filtered := make([]Stmt, 0, len(stmts))
	for _, s := range stmts {
		if s != nil {
			filtered = append(filtered, s)
		}
	}
	if len(filtered) == 0 {
		return NewPass()
	}
	rv := filtered[len(filtered)-1]
	for i := len(filtered) - 2; i >= 0; i-- {
		rv = &Seq{First: filtered[i], Second: rv}
	}
	return rv
}
