package main

import (
	"io"
	"text/scanner"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Lexer turns script text into tokens, one call at a time.
//
// Once the end of input has been reached every further call to Next
// returns the same EOF token.
type Lexer struct {
	src []byte
	pos scanner.Position
	eof *Token
}

// NewLexer creates a lexer over src. Sources larger than maxSize bytes
// are rejected; maxSize <= 0 disables the check.
func NewLexer(src []byte, filename string, maxSize int) (*Lexer, error) {
	if maxSize > 0 && len(src) > maxSize {
		return nil, makeErr(LexError, scanner.Position{Filename: filename},
			"source is %d bytes, larger than the %d byte buffer", len(src), maxSize)
	}
	return &Lexer{
		src: src,
		pos: scanner.Position{Filename: filename, Line: 1, Column: 1},
	}, nil
}

// ReadSource reads a whole script from r, failing with a LexError as
// soon as more than maxSize bytes are available.
func ReadSource(r io.Reader, filename string, maxSize int) ([]byte, error) {
	if maxSize > 0 {
		r = io.LimitReader(r, int64(maxSize)+1)
	}
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, wrapErr(IOError, err, "read %s", filename)
	}
	if maxSize > 0 && len(src) > maxSize {
		return nil, makeErr(LexError, scanner.Position{Filename: filename},
			"source is larger than the %d byte buffer", maxSize)
	}
	return src, nil
}

func isWordByte(ch byte) bool {
	return ch == '_' ||
		('a' <= ch && ch <= 'z') ||
		('A' <= ch && ch <= 'Z') ||
		('0' <= ch && ch <= '9')
}

func isBlank(ch byte) bool {
	switch ch {
	case ' ', '\t', '\r', '\v', '\f':
		return true
	}
	return false
}

var punctKinds = map[byte]TokenKind{
	'{': TokenLBrace,
	'}': TokenRBrace,
	'(': TokenLParen,
	')': TokenRParen,
	'=': TokenEquals,
}

func (l *Lexer) advance() byte {
	ch := l.src[l.pos.Offset]
	l.pos.Offset++
	if ch == '\n' {
		l.pos.Line++
		l.pos.Column = 1
	} else {
		l.pos.Column++
	}
	return ch
}

// Next returns the next token.
func (l *Lexer) Next() (Token, error) {
	if l.eof != nil {
		return *l.eof, nil
	}
	for l.pos.Offset < len(l.src) && isBlank(l.src[l.pos.Offset]) {
		l.advance()
	}
	start := l.pos
	if start.Offset >= len(l.src) {
		l.eof = &Token{Kind: TokenEOF, Pos: start}
		return *l.eof, nil
	}
	ch := l.src[start.Offset]
	switch {
	case ch == '\n':
		l.advance()
		return Token{Kind: TokenEOL, Pos: start}, nil
	case ch == '"':
		return l.scanString(start)
	case isWordByte(ch):
		for l.pos.Offset < len(l.src) && isWordByte(l.src[l.pos.Offset]) {
			l.advance()
		}
		return Token{Kind: TokenWord, Text: string(l.src[start.Offset:l.pos.Offset]), Pos: start}, nil
	}
	if kind, ok := punctKinds[ch]; ok {
		l.advance()
		return Token{Kind: kind, Pos: start}, nil
	}
	r, _ := utf8.DecodeRune(l.src[start.Offset:])
	return Token{}, makeErr(LexError, start, "unexpected character %q", r)
}

func (l *Lexer) scanString(start scanner.Position) (Token, error) {
	l.advance()
	for l.pos.Offset < len(l.src) {
		if l.src[l.pos.Offset] == '"' {
			text := string(l.src[start.Offset+1 : l.pos.Offset])
			l.advance()
			return Token{Kind: TokenString, Text: text, Pos: start}, nil
		}
		l.advance()
	}
	return Token{}, Err{Kind: LexError, Pos: start, Err: errors.New("unterminated string literal")}
}
