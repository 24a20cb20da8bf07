package main

// SampleLoader decodes the audio file at path into an interleaved tape.
type SampleLoader interface {
	LoadSample(path string) (*Tape, error)
}

const (
	funcLoad = "load"
	funcPlay = "play"
)

func isFunc(name string) bool {
	return name == funcLoad || name == funcPlay
}

// Parser is a single-pass recursive-descent parser. It loads samples
// into the schedule's registry and appends instances as it goes; the
// first error aborts the parse.
type Parser struct {
	lex    *Lexer
	loader SampleLoader
	sched  *Schedule
}

func NewParser(lex *Lexer, loader SampleLoader, sched *Schedule) *Parser {
	return &Parser{lex: lex, loader: loader, sched: sched}
}

// Parse is shorthand for NewParser(lex, loader, sched).Parse().
func Parse(lex *Lexer, loader SampleLoader, sched *Schedule) error {
	return NewParser(lex, loader, sched).Parse()
}

func (p *Parser) expect(kind TokenKind) (Token, error) {
	t, err := p.lex.Next()
	if err != nil {
		return t, err
	}
	if t.Kind != kind {
		return t, makeErr(SyntaxError, t.Pos, "expected %s but found %s", kind, t)
	}
	return t, nil
}

// Parse consumes the whole token stream.
func (p *Parser) Parse() error {
	for {
		t, err := p.lex.Next()
		if err != nil {
			return err
		}
		switch t.Kind {
		case TokenEOF:
			return nil
		case TokenEOL:
		case TokenLBrace:
			if err := p.parseBlock(); err != nil {
				return err
			}
		case TokenWord:
			if err := p.parseAssign(t); err != nil {
				return err
			}
		default:
			return makeErr(SyntaxError, t.Pos, "unexpected token %s", t)
		}
	}
}

// parseAssign handles `name = func ...` once name has been read.
func (p *Parser) parseAssign(name Token) error {
	if isFunc(name.Text) {
		return makeErr(SyntaxError, name.Pos, "unexpected function %s", name.Text)
	}
	if _, err := p.expect(TokenEquals); err != nil {
		return err
	}
	fn, err := p.lex.Next()
	if err != nil {
		return err
	}
	if fn.Kind != TokenWord {
		return makeErr(SyntaxError, fn.Pos, "expected a function name but found %s", fn)
	}
	switch fn.Text {
	case funcLoad:
		path, err := p.parseLoadArgs()
		if err != nil {
			return err
		}
		return p.load(name, path)
	case funcPlay:
		return makeErr(SyntaxError, fn.Pos, "unexpected function %s", fn.Text)
	default:
		// Unknown functions on the right-hand side are ignored.
		logger.Debug("ignoring unknown function", "name", name.Text, "func", fn.Text, "pos", fn.Pos)
		return nil
	}
}

func (p *Parser) parseLoadArgs() (string, error) {
	if _, err := p.expect(TokenLParen); err != nil {
		return "", err
	}
	t, err := p.lex.Next()
	if err != nil {
		return "", err
	}
	if t.Kind != TokenString {
		return "", makeErr(SyntaxError, t.Pos, "expected a string but found %s", t)
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return "", err
	}
	return t.Text, nil
}

func (p *Parser) load(name Token, path string) error {
	tape, err := p.loader.LoadSample(path)
	if err != nil {
		if KindOf(err) == 0 {
			err = wrapErr(IOError, err, "load %s", path)
		}
		return withPos(err, name.Pos)
	}
	s, replaced, err := p.sched.Registry.Store(name.Text, path, tape)
	if err != nil {
		return withPos(err, name.Pos)
	}
	logger.Debug("loaded sample", "name", s.Name, "path", path, "values", s.Count(), "replaced", replaced)
	return nil
}

// parseBlock reads play statements up to the closing brace. The row
// counter is bumped by every end of line; a play statement is
// scheduled at the counter minus one.
func (p *Parser) parseBlock() error {
	row := 0
	for {
		t, err := p.lex.Next()
		if err != nil {
			return err
		}
		switch {
		case t.Kind == TokenRBrace:
			return nil
		case t.Kind == TokenEOF:
			return makeErr(SyntaxError, t.Pos, "unexpected end of file while parsing music block")
		case t.Kind == TokenEOL:
			row++
		case t.Kind == TokenWord && t.Text == funcPlay:
			if err := p.parsePlayArgs(t, row-1); err != nil {
				return err
			}
		default:
			return makeErr(SyntaxError, t.Pos,
				"the only function allowed in a music block is play, got %s", t)
		}
	}
}

func (p *Parser) parsePlayArgs(play Token, row int) error {
	if _, err := p.expect(TokenLParen); err != nil {
		return err
	}
	t, err := p.lex.Next()
	if err != nil {
		return err
	}
	if t.Kind != TokenWord {
		return makeErr(SyntaxError, t.Pos, "expected a sample name but found %s", t)
	}
	s := p.sched.Registry.Lookup(t.Text)
	if s == nil {
		return makeErr(ReferenceError, t.Pos, "no sample named %s", t.Text)
	}
	if row < 0 {
		return makeErr(SyntaxError, play.Pos, "play must not share a line with the opening brace")
	}
	in, err := p.sched.Add(s, row)
	if err != nil {
		return withPos(err, play.Pos)
	}
	logger.Debug("scheduled", "sample", s.Name, "row", row, "offset", in.Offset)
	_, err = p.expect(TokenRParen)
	return err
}
