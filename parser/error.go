package parser

import (
	"fmt"

	"rewind/lexer"
)

// Represents a parsing error. We use this internally to signal
// that we cannot continue parsing some statement -- the panic is
// recovered in declaration(), which then synchronizes.
type ParserError struct {
	Filename string
	Token    lexer.Token
	Message  string
}

func (pe ParserError) Error() string { return pe.String() }
func (pe ParserError) String() string {
	return fmt.Sprintf("%s:%d:%d: %s", pe.Filename, pe.Token.Line, pe.Token.Column, pe.Message)
}

func (p *Parser) error(tok lexer.Token, s string, args ...interface{}) ParserError {
	err := ParserError{
		Filename: p.filename,
		Token:    tok,
		Message:  fmt.Sprintf(s, args...),
	}
	p.Errors = append(p.Errors, err)
	return err
}

func (p *Parser) expect(typ lexer.TokenType, s string, args ...interface{}) lexer.Token {
	if !p.match(typ) {
		panic(p.error(p.peek(), s, args...))
	}
	return p.previous()
}

// synchronize synchronizes the parser by discarding tokens
// until we reach a token which starts a statement. This means
// that cascading errors are discarded, and we still report as
// many errors as possible.
func (p *Parser) synchronize() {
	p.consume()
	for !p.isAtEnd() {
		if p.previous().Type == lexer.SEMICOLON {
			return
		}
		switch p.peek().Type {
		case lexer.IF, lexer.WHILE, lexer.PRINT, lexer.TRY, lexer.PASS:
			return
		}
		p.consume()
	}
}
