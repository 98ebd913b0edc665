// Package reader turns Lisp source text into value.Sexp forms.
//
// Parsing is recursive-descent: readForm reads one form at the current
// cursor position, calling itself for nested list elements and for the
// form following a quote-family reader macro. There is no separate
// tokenize-then-parse pass; the cursor is advanced byte by byte as forms
// are recognized.
package reader

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/kestrels/wordlisp/pkg/value"
)

// Reader consumes one source string against one Environment, allocating
// every list, string, and symbol it reads through that Environment's heap
// and symbol pool.
type Reader struct {
	env  *value.Environment
	src  string
	pos  int
	line int
	col  int
}

// New creates a Reader over src that allocates through env.
func New(env *value.Environment, src string) *Reader {
	return &Reader{env: env, src: src, line: 1, col: 1}
}

// ReadAll parses every top-level form in the source and returns them in
// source order.
func (r *Reader) ReadAll() ([]value.Sexp, error) {
	var forms []value.Sexp
	for {
		if err := r.skipAtmosphere(); err != nil {
			return nil, err
		}
		if r.atEOF() {
			return forms, nil
		}
		form, err := r.readForm()
		if err != nil {
			return nil, err
		}
		forms = append(forms, form)
	}
}

// ReadProgram parses every top-level form and returns them chained as a
// single cons list: its car is the first form, its cdr another cons, and
// so on.
func (r *Reader) ReadProgram() (value.Sexp, error) {
	forms, err := r.ReadAll()
	if err != nil {
		return value.Nil, err
	}
	list := value.Nil
	for i := len(forms) - 1; i >= 0; i-- {
		list = r.env.Cons(forms[i], list)
	}
	return list, nil
}

func (r *Reader) atEOF() bool { return r.pos >= len(r.src) }

func (r *Reader) peekByte() byte {
	if r.atEOF() {
		return 0
	}
	return r.src[r.pos]
}

func (r *Reader) advanceByte() byte {
	b := r.src[r.pos]
	r.pos++
	if b == '\n' {
		r.line++
		r.col = 1
	} else {
		r.col++
	}
	return b
}

func (r *Reader) errorf(format string, args ...interface{}) error {
	return &value.ParseError{Message: fmt.Sprintf(format, args...), Line: r.line, Column: r.col}
}

// skipAtmosphere consumes whitespace and ';' comments, neither of which
// separate forms semantically.
func (r *Reader) skipAtmosphere() error {
	for !r.atEOF() {
		c := r.peekByte()
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			r.advanceByte()
		case c == ';':
			for !r.atEOF() && r.peekByte() != '\n' {
				r.advanceByte()
			}
		default:
			return nil
		}
	}
	return nil
}

// quoteWrapper names, for each reader-macro character, the symbol the
// following form gets wrapped in.
var quoteWrapper = map[byte]string{
	'\'': "quote",
	'`':  "quasiquote",
	',':  "unquote",
}

// readForm reads exactly one form, top-level or nested, applying any
// pending quote-family wrapper.
func (r *Reader) readForm() (value.Sexp, error) {
	if err := r.skipAtmosphere(); err != nil {
		return value.Nil, err
	}
	if r.atEOF() {
		return value.Nil, r.errorf("unexpected end of input")
	}

	if wrapperName, ok := quoteWrapper[r.peekByte()]; ok {
		macro := r.advanceByte()
		if err := r.skipAtmosphere(); err != nil {
			return value.Nil, err
		}
		if r.atEOF() {
			return value.Nil, r.errorf("unexpected end of input after '%c'", macro)
		}
		inner, err := r.readForm()
		if err != nil {
			return value.Nil, err
		}
		wrapper := r.env.Intern(wrapperName)
		return r.env.Cons(wrapper, r.env.Cons(inner, value.Nil)), nil
	}

	switch c := r.peekByte(); {
	case c == '(':
		return r.readList()
	case c == ')':
		return value.Nil, r.errorf("unbalanced parenthesis: unexpected ')'")
	case c == '"':
		return r.readString()
	case c == '#':
		return r.readHash()
	default:
		return r.readAtom()
	}
}

func (r *Reader) readList() (value.Sexp, error) {
	r.advanceByte() // consume '('
	var elems []value.Sexp
	for {
		if err := r.skipAtmosphere(); err != nil {
			return value.Nil, err
		}
		if r.atEOF() {
			return value.Nil, r.errorf("unexpected end of input: expected ')' to close '('")
		}
		if r.peekByte() == ')' {
			r.advanceByte()
			break
		}
		elem, err := r.readForm()
		if err != nil {
			return value.Nil, err
		}
		elems = append(elems, elem)
	}
	list := value.Nil
	for i := len(elems) - 1; i >= 0; i-- {
		list = r.env.Cons(elems[i], list)
	}
	return list, nil
}

func (r *Reader) readString() (value.Sexp, error) {
	r.advanceByte() // consume opening '"'
	var sb strings.Builder
	for {
		if r.atEOF() {
			return value.Nil, r.errorf("unexpected end of input: expected '\"' to close string")
		}
		c := r.advanceByte()
		if c == '"' {
			return r.env.NewString(sb.String()), nil
		}
		if c == '\\' {
			if r.atEOF() {
				return value.Nil, r.errorf("unexpected end of input after '\\' escape")
			}
			esc := r.advanceByte()
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case '\\':
				sb.WriteByte('\\')
			default:
				return value.Nil, r.errorf("invalid escape character '\\%c' in string", esc)
			}
			continue
		}
		sb.WriteByte(c)
	}
}

// readHash reads a "#..." atom: #t, #f, or an error for anything else.
func (r *Reader) readHash() (value.Sexp, error) {
	r.advanceByte() // consume '#'
	if r.atEOF() {
		return value.Nil, r.errorf("unexpected end of input while parsing '#' atom")
	}
	c := r.advanceByte()
	switch c {
	case 't':
		return value.NewBool(true), nil
	case 'f':
		return value.NewBool(false), nil
	default:
		return value.Nil, r.errorf("invalid '#%c' atom", c)
	}
}

func isSymbolBoundary(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '(' || r == ')' || r == ';'
}

// readAtom reads a number or symbol token: the run of bytes up to the next
// whitespace, paren, or comment start, then classifies it.
func (r *Reader) readAtom() (value.Sexp, error) {
	start := r.pos
	for !r.atEOF() {
		rn, size := utf8.DecodeRuneInString(r.src[r.pos:])
		if isSymbolBoundary(rn) {
			break
		}
		for i := 0; i < size; i++ {
			r.advanceByte()
		}
	}
	token := r.src[start:r.pos]
	if token == "" {
		return value.Nil, r.errorf("unexpected character '%c'", r.peekByte())
	}

	if sexp, ok, err := parseNumber(token); ok || err != nil {
		if err != nil {
			return value.Nil, r.errorf("%s", err.Error())
		}
		return sexp, nil
	}

	return r.env.Intern(token), nil
}

// parseNumber attempts to read token as a number: INT if the value is
// exactly representable as a 32-bit integer, FLOAT otherwise. ok is false
// (with a nil error) when token simply isn't shaped like a number at all,
// in which case the caller treats it as a symbol; a non-nil error means it
// looked like a number but didn't fit.
func parseNumber(token string) (value.Sexp, bool, error) {
	if token == "" {
		return value.Nil, false, nil
	}
	c := token[0]
	if !(c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9')) {
		return value.Nil, false, nil
	}
	if (c == '+' || c == '-' || c == '.') && len(token) == 1 {
		return value.Nil, false, nil
	}

	f, err := strconv.ParseFloat(token, 64)
	if err != nil {
		numErr, ok := err.(*strconv.NumError)
		if ok && numErr.Err == strconv.ErrSyntax {
			// Doesn't parse as a number at all -- it's a symbol like "-" or "->foo".
			return value.Nil, false, nil
		}
		return value.Nil, true, fmt.Errorf("number literal out of range: %q", token)
	}

	if i := int32(f); float64(i) == f {
		return value.NewInt(i), true, nil
	}
	f32 := float32(f)
	if math.IsInf(float64(f32), 0) && !math.IsInf(f, 0) {
		return value.Nil, true, fmt.Errorf("number literal out of range: %q", token)
	}
	if f32 == 0 && f != 0 {
		return value.Nil, true, fmt.Errorf("number literal out of range: %q", token)
	}
	return value.NewFloat(f32), true, nil
}
