package main

import (
	"fmt"
	"text/scanner"

	"github.com/pkg/errors"
)

// ErrKind classifies every error that can abort a run.
type ErrKind int

const (
	IOError ErrKind = iota + 1
	LexError
	SyntaxError
	ReferenceError
	CapacityError
	AllocationError
	ConfigError
)

var errKindNames = map[ErrKind]string{
	IOError:         "io error",
	LexError:        "lex error",
	SyntaxError:     "syntax error",
	ReferenceError:  "reference error",
	CapacityError:   "capacity error",
	AllocationError: "allocation error",
	ConfigError:     "config error",
}

func (k ErrKind) String() string {
	if name, ok := errKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrKind(%d)", int(k))
}

// Err is the single error type returned by the lexer, parser,
// renderer and codec. Pos is the zero Position when the error is not
// tied to a place in the script.
type Err struct {
	Kind ErrKind
	Pos  scanner.Position
	Err  error
}

func (e Err) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Err)
	if e.Pos.Line == 0 {
		if e.Pos.Filename != "" {
			return fmt.Sprintf("%s: %s", e.Pos.Filename, msg)
		}
		return msg
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename, e.Pos.Line, e.Pos.Column, msg)
}

func (e Err) Unwrap() error { return e.Err }

func makeErr(kind ErrKind, pos scanner.Position, format string, args ...any) Err {
	return Err{Kind: kind, Pos: pos, Err: fmt.Errorf(format, args...)}
}

// wrapErr keeps cause (and its stack) behind a kinded error.
func wrapErr(kind ErrKind, cause error, format string, args ...any) Err {
	return Err{Kind: kind, Err: errors.Wrapf(cause, format, args...)}
}

// withPos attaches pos to err unless it already carries a position.
func withPos(err error, pos scanner.Position) error {
	var e Err
	if !errors.As(err, &e) {
		return err
	}
	if e.Pos.Line == 0 {
		e.Pos = pos
	}
	return e
}

// KindOf returns the kind of err, or 0 when err is not an Err.
func KindOf(err error) ErrKind {
	var e Err
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsKind(err error, kind ErrKind) bool {
	return err != nil && KindOf(err) == kind
}
