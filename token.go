package main

import (
	"fmt"
	"text/scanner"
)

// TokenKind identifies the lexical class of a token.
type TokenKind uint8

const (
	TokenEOF TokenKind = iota
	TokenWord
	TokenString
	TokenLBrace // {
	TokenRBrace // }
	TokenLParen // (
	TokenRParen // )
	TokenEquals // =
	TokenEOL
)

var tokenKindNames = [...]string{
	TokenEOF:    "end of file",
	TokenWord:   "word",
	TokenString: "string",
	TokenLBrace: "'{'",
	TokenRBrace: "'}'",
	TokenLParen: "'('",
	TokenRParen: "')'",
	TokenEquals: "'='",
	TokenEOL:    "end of line",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", k)
}

// Token is a lexical unit. Text is only set for words and strings.
type Token struct {
	Kind TokenKind
	Text string
	Pos  scanner.Position
}

func (t Token) String() string {
	switch t.Kind {
	case TokenWord:
		return fmt.Sprintf("word %s", t.Text)
	case TokenString:
		return fmt.Sprintf("string %q", t.Text)
	default:
		return t.Kind.String()
	}
}
