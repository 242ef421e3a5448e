// Package lexer scans source text into tokens on demand. Unlike the
// batch scanners elsewhere in this codebase's history, NextToken
// produces exactly one token per call so the compiler can drive it
// with a single token of lookahead.
package lexer

import (
	"ember/token"
)

// Lexer holds the scanning position within a source string. The
// source must outlive every Token it hands out, since Token.Lexeme is
// a slice into it.
type Lexer struct {
	source  string
	start   int
	current int
	line    int
}

// New creates a Lexer positioned at the start of source.
func New(source string) *Lexer {
	return &Lexer{source: source, start: 0, current: 0, line: 1}
}

func (l *Lexer) atEnd() bool {
	return l.current >= len(l.source)
}

func (l *Lexer) advance() byte {
	c := l.source[l.current]
	l.current++
	return c
}

func (l *Lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.source[l.current]
}

func (l *Lexer) peekNext() byte {
	if l.current+1 >= len(l.source) {
		return 0
	}
	return l.source[l.current+1]
}

func (l *Lexer) match(expected byte) bool {
	if l.atEnd() || l.source[l.current] != expected {
		return false
	}
	l.current++
	return true
}

func (l *Lexer) makeToken(kind token.Kind) token.Token {
	return token.Token{Kind: kind, Lexeme: l.source[l.start:l.current], Line: l.line}
}

func (l *Lexer) errorToken(message string) token.Token {
	return token.Token{Kind: token.ERROR, Message: message, Line: l.line}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}

// skipWhitespace consumes spaces, tabs, carriage returns, newlines,
// and both comment forms, stopping at the first byte of the next
// token (or at EOF). The bool return is false only when a block
// comment runs off the end of the source, in which case the Token is
// a ready-to-return error token.
func (l *Lexer) skipWhitespace() (token.Token, bool) {
	for {
		switch l.peek() {
		case ' ', '\r', '\t':
			l.advance()
		case '\n':
			l.line++
			l.advance()
		case '#':
			if l.peekNext() == '[' {
				l.advance()
				l.advance()
				terminated := false
				for !l.atEnd() {
					if l.peek() == ']' && l.peekNext() == '#' {
						l.advance()
						l.advance()
						terminated = true
						break
					}
					if l.peek() == '\n' {
						l.line++
					}
					l.advance()
				}
				if !terminated {
					return l.errorToken("Unterminated block comment."), false
				}
			} else {
				for l.peek() != '\n' && !l.atEnd() {
					l.advance()
				}
			}
		default:
			return token.Token{}, true
		}
	}
}

func (l *Lexer) string() token.Token {
	for l.peek() != '"' && !l.atEnd() {
		if l.peek() == '\n' {
			l.line++
		}
		l.advance()
	}
	if l.atEnd() {
		return l.errorToken("Unterminated string.")
	}
	l.advance() // closing quote
	return l.makeToken(token.STRING)
}

func (l *Lexer) number() token.Token {
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance() // consume the '.'
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	return l.makeToken(token.NUMBER)
}

func (l *Lexer) identifier() token.Token {
	for isAlphaNumeric(l.peek()) {
		l.advance()
	}
	lexeme := l.source[l.start:l.current]
	if kind, ok := token.Keywords[lexeme]; ok {
		return l.makeToken(kind)
	}
	return l.makeToken(token.IDENTIFIER)
}

// twoChar returns oneKind unless the next byte is second, in which
// case it consumes it and returns twoKind. Used for every
// longest-match operator pair (==, <=, >=, +=, -=, *=, /=); != is
// matched directly since a bare ! is an error rather than a token.
func (l *Lexer) twoChar(second byte, oneKind, twoKind token.Kind) token.Kind {
	if l.match(second) {
		return twoKind
	}
	return oneKind
}

// NextToken scans and returns the next token in the source. It is
// safe to keep calling NextToken after an EOF or ERROR token; EOF is
// sticky and ERROR tokens always advance past the offending byte.
func (l *Lexer) NextToken() token.Token {
	if tok, ok := l.skipWhitespace(); !ok {
		return tok
	}

	l.start = l.current
	if l.atEnd() {
		return l.makeToken(token.EOF)
	}

	c := l.advance()

	if isAlpha(c) {
		return l.identifier()
	}
	if isDigit(c) {
		return l.number()
	}

	switch c {
	case '(':
		return l.makeToken(token.LEFT_PAREN)
	case ')':
		return l.makeToken(token.RIGHT_PAREN)
	case ',':
		return l.makeToken(token.COMMA)
	case ';':
		return l.makeToken(token.SEMICOLON)
	case ':':
		return l.makeToken(token.COLON)
	case '?':
		return l.makeToken(token.QUESTION)
	case '"':
		return l.string()
	case '=':
		return l.makeToken(l.twoChar('=', token.EQUAL, token.EQUAL_EQUAL))
	case '<':
		return l.makeToken(l.twoChar('=', token.LESS, token.LESS_EQUAL))
	case '>':
		return l.makeToken(l.twoChar('=', token.GREATER, token.GREATER_EQUAL))
	case '+':
		if l.match('+') {
			return l.makeToken(token.PLUS_PLUS)
		}
		return l.makeToken(l.twoChar('=', token.PLUS, token.PLUS_EQUAL))
	case '-':
		if l.match('-') {
			return l.makeToken(token.MINUS_MINUS)
		}
		return l.makeToken(l.twoChar('=', token.MINUS, token.MINUS_EQUAL))
	case '*':
		return l.makeToken(l.twoChar('=', token.STAR, token.STAR_EQUAL))
	case '/':
		return l.makeToken(l.twoChar('=', token.SLASH, token.SLASH_EQUAL))
	case '!':
		if l.match('=') {
			return l.makeToken(token.BANG_EQUAL)
		}
		return l.errorToken("Unexpected character '!'. Use 'not' for negation.")
	}

	return l.errorToken("Unexpected character.")
}
