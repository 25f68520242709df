package parser

import "rewind/lexer"

type (
	unaryParser  func() Expr
	binaryParser func(Expr) Expr
)

type Parser struct {
	filename      string
	tokens        []lexer.Token
	Errors        []ParserError
	curr          int // how many we have consumed.
	unaryParsers  map[lexer.TokenType]unaryParser
	binaryParsers map[lexer.TokenType]binaryParser
	precedences   map[lexer.TokenType]int
}

const (
	PREC_LOWEST  = iota
	PREC_OR      // or
	PREC_AND     // and
	PREC_EQ      // ==, !=
	PREC_CMP     // <=, <, >, >=
	PREC_SUM     // +, -
	PREC_PRODUCT // *, /
	PREC_UNARY   // !, -
)

// ====
// init
// ====

func New(fn string, tokens []lexer.Token) *Parser {
	p := &Parser{
		filename: fn,
		tokens:   tokens,
		Errors:   []ParserError{},
		curr:     0,
	}
	p.unaryParsers = map[lexer.TokenType]unaryParser{
		lexer.LEFT_PAREN: p.grouping,
		lexer.IDENTIFIER: p.identifier,
		lexer.NUMBER:     p.literal,
		lexer.STRING:     p.literal,
		lexer.TRUE:       p.literal,
		lexer.FALSE:      p.literal,
		lexer.NIL:        p.literal,
		lexer.BANG:       p.unary,
		lexer.MINUS:      p.unary,
	}
	// note: need to make sure that every entry in binaryParsers
	// has a corresponding entry in precedences.
	p.binaryParsers = map[lexer.TokenType]binaryParser{
		lexer.AND:           p.and,
		lexer.OR:            p.or,
		lexer.EQUAL_EQUAL:   p.binary,
		lexer.BANG_EQUAL:    p.binary,
		lexer.GREATER:       p.binary,
		lexer.GREATER_EQUAL: p.binary,
		lexer.LESS:          p.binary,
		lexer.LESS_EQUAL:    p.binary,
		lexer.PLUS:          p.binary,
		lexer.MINUS:         p.binary,
		lexer.STAR:          p.binary,
		lexer.SLASH:         p.binary,
	}
	p.precedences = map[lexer.TokenType]int{
		lexer.OR:            PREC_OR,
		lexer.AND:           PREC_AND,
		lexer.EQUAL_EQUAL:   PREC_EQ,
		lexer.BANG_EQUAL:    PREC_EQ,
		lexer.GREATER:       PREC_CMP,
		lexer.GREATER_EQUAL: PREC_CMP,
		lexer.LESS:          PREC_CMP,
		lexer.LESS_EQUAL:    PREC_CMP,
		lexer.PLUS:          PREC_SUM,
		lexer.MINUS:         PREC_SUM,
		lexer.STAR:          PREC_PRODUCT,
		lexer.SLASH:         PREC_PRODUCT,
	}
	return p
}

// =====
// utils
// =====

// consume consumes one token
func (p *Parser) consume() lexer.Token {
	if !p.isAtEnd() {
		p.curr++
	}
	return p.previous()
}

// previous returns the most recently consumed token
func (p *Parser) previous() lexer.Token {
	if p.curr == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.curr-1]
}

// peek returns the token to be consumed
func (p *Parser) peek() lexer.Token { return p.tokens[p.curr] }

// peekNext returns the token after the one to be consumed
func (p *Parser) peekNext() lexer.Token {
	if p.isAtEnd() {
		return p.peek()
	}
	return p.tokens[p.curr+1]
}

// isAtEnd returns true if the current token is an EOF token
func (p *Parser) isAtEnd() bool { return p.peek().Type == lexer.EOF }

// check returns if the peek token matches the given type
func (p *Parser) check(t lexer.TokenType) bool {
	return !p.isAtEnd() && p.peek().Type == t
}

// match consumes the token if it matches any of the given types
func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.consume()
			return true
		}
	}
	return false
}

// ===========
// entry point
// ===========

// module → stmt*

func (p *Parser) Parse() *Module {
	module := &Module{Filename: p.filename, Stmts: []Stmt{}}
	for !p.isAtEnd() {
		if p.match(lexer.SEMICOLON) {
			continue
		}
		if stmt := p.declaration(); stmt != nil {
			module.Stmts = append(module.Stmts, stmt)
		}
	}
	return module
}

// =================
// statement parsing
// =================
//
//   stmt   → assign | if | while | print | try | pass | block
//   assign → IDENT "=" expression ";"?
//   if     → "if" "(" expression ")" stmt ( "else" stmt )?
//   while  → "while" "(" expression ")" stmt
//   print  → "print" expression ";"?
//   try    → "try" stmt "catch" stmt
//   pass   → "pass" ";"?
//   block  → "{" stmt* "}"

// declaration parses one statement, recovering from parse errors.
func (p *Parser) declaration() (stmt Stmt) {
	defer func() {
		// This will be called repeatedly as we parse statements, so
		// this is a good place to synchronize().
		if rv := recover(); rv != nil {
			if _, ok := rv.(ParserError); ok {
				p.synchronize()
				stmt = nil
				return
			}
			panic(rv)
		}
	}()
	return p.statement()
}

func (p *Parser) statement() Stmt {
	switch {
	case p.check(lexer.IF):
		return p.ifStmt()
	case p.check(lexer.WHILE):
		return p.whileStmt()
	case p.check(lexer.PRINT):
		return p.printStmt()
	case p.check(lexer.TRY):
		return p.tryStmt()
	case p.check(lexer.PASS):
		return p.passStmt()
	case p.check(lexer.LEFT_BRACE):
		return p.blockStmt()
	case p.check(lexer.IDENTIFIER) && p.peekNext().Type == lexer.EQUAL:
		return p.assignStmt()
	}
	panic(p.error(p.peek(), "expected a statement, got %s", p.peek().Type))
}

func (p *Parser) assignStmt() Stmt {
	name := p.consume()
	p.consume() // the '=' token
	value := p.expression()
	p.match(lexer.SEMICOLON)
	return NewAssign(name.Lexeme, value)
}

func (p *Parser) ifStmt() Stmt {
	p.consume()
	p.expect(lexer.LEFT_PAREN, "expected (")
	cond := p.expression()
	p.expect(lexer.RIGHT_PAREN, "unclosed (")
	then := p.statement()
	var elseStmt Stmt = nil
	if p.match(lexer.ELSE) {
		elseStmt = p.statement()
	}
	return NewIf(cond, then, elseStmt)
}

func (p *Parser) whileStmt() Stmt {
	p.consume()
	p.expect(lexer.LEFT_PAREN, "expected (")
	cond := p.expression()
	p.expect(lexer.RIGHT_PAREN, "unclosed (")
	return NewWhile(cond, p.statement())
}

func (p *Parser) printStmt() Stmt {
	p.consume()
	expr := p.expression()
	p.match(lexer.SEMICOLON)
	return NewPrint(expr)
}

func (p *Parser) tryStmt() Stmt {
	p.consume()
	body := p.statement()
	p.expect(lexer.CATCH, "expected catch after try body")
	return NewTry(body, p.statement())
}

func (p *Parser) passStmt() Stmt {
	p.consume()
	p.match(lexer.SEMICOLON)
	return NewPass()
}

func (p *Parser) blockStmt() Stmt {
	p.consume()
	stmts := []Stmt{}
	for !p.isAtEnd() && !p.check(lexer.RIGHT_BRACE) {
		if p.match(lexer.SEMICOLON) {
			continue
		}
		stmts = append(stmts, p.declaration())
	}
	p.expect(lexer.RIGHT_BRACE, "unmatched {")
	return NewSeq(stmts...)
}

// ==================
// expression parsing
// ==================

// expression matches a single expression.
func (p *Parser) expression() Expr { return p.precedence(PREC_LOWEST) }
func (p *Parser) precedence(prec int) Expr {
	unary, ok := p.unaryParsers[p.peek().Type]
	if !ok {
		panic(p.error(p.peek(), "not an expression: %s", p.peek().Type))
	}
	expr := unary()
	for !p.check(lexer.SEMICOLON) && prec < p.peekPrecedence() {
		expr = p.binaryParsers[p.peek().Type](expr)
	}
	return expr
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := p.precedences[p.peek().Type]; ok {
		return prec
	}
	return PREC_LOWEST
}

func (p *Parser) unary() Expr {
	tok := p.consume()
	return &Unary{Op: tok, Right: p.precedence(PREC_UNARY - 1)}
}

func (p *Parser) grouping() Expr {
	p.consume()
	expr := p.expression()
	p.expect(lexer.RIGHT_PAREN, "unmatched (")
	return expr
}

func (p *Parser) binary(left Expr) Expr {
	tok := p.consume()
	return &Binary{Op: tok, Left: left, Right: p.precedence(p.precedences[tok.Type])}
}

func (p *Parser) and(left Expr) Expr {
	tok := p.consume()
	return &And{Op: tok, Left: left, Right: p.precedence(PREC_AND)}
}

func (p *Parser) or(left Expr) Expr {
	tok := p.consume()
	return &Or{Op: tok, Left: left, Right: p.precedence(PREC_OR)}
}

func (p *Parser) identifier() Expr {
	return &Identifier{Id: p.consume()}
}

func (p *Parser) literal() Expr {
	return &Literal{Lit: p.consume()}
}

// Parse lexes and parses source in one go, returning every lexer or
// parser error encountered.
func Parse(filename, source string) (*Module, []error) {
	l := lexer.New(filename, source)
	l.ScanTokens()
	if len(l.Errors) != 0 {
		errs := make([]error, len(l.Errors))
		for i := range l.Errors {
			errs[i] = &l.Errors[i]
		}
		return nil, errs
	}
	p := New(filename, l.Tokens)
	module := p.Parse()
	if len(p.Errors) != 0 {
		errs := make([]error, len(p.Errors))
		for i, err := range p.Errors {
			errs[i] = err
		}
		return nil, errs
	}
	return module, nil
}
