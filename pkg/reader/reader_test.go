package reader

import (
	"testing"

	"github.com/kestrels/wordlisp/pkg/printer"
	"github.com/kestrels/wordlisp/pkg/value"
)

func readOne(t *testing.T, env *value.Environment, src string) value.Sexp {
	t.Helper()
	forms, err := New(env, src).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll(%q) returned error: %v", src, err)
	}
	if len(forms) != 1 {
		t.Fatalf("ReadAll(%q) produced %d forms, want 1", src, len(forms))
	}
	return forms[0]
}

func TestAtomRoundTrip(t *testing.T) {
	cases := []string{"42", "-7", "3.25", `"hello"`, "#t", "#f", "foo"}
	for _, src := range cases {
		env := value.NewEnvironment()
		form := readOne(t, env, src)
		if got := printer.Print(form); got != src {
			t.Errorf("round trip of %q = %q, want %q", src, got, src)
		}
	}
}

func TestListRoundTrip(t *testing.T) {
	env := value.NewEnvironment()
	form := readOne(t, env, "(a b c)")
	if got := printer.Print(form); got != "(a b c)" {
		t.Errorf("round trip of (a b c) = %q", got)
	}
}

func TestQuoteReaderMacros(t *testing.T) {
	cases := []struct {
		src     string
		wrapper string
	}{
		{"'x", "quote"},
		{"`x", "quasiquote"},
		{",x", "unquote"},
	}
	for _, c := range cases {
		env := value.NewEnvironment()
		form := readOne(t, env, c.src)
		if !form.IsCons() {
			t.Fatalf("%q did not parse to a cons", c.src)
		}
		head, _ := form.Car()
		if !head.IsSymbol() || head.AsSymbol().Name() != c.wrapper {
			t.Errorf("%q: head = %+v, want symbol %q", c.src, head, c.wrapper)
		}
		rest, _ := form.Cdr()
		second, ok := rest.Car()
		if !ok || !second.IsSymbol() || second.AsSymbol().Name() != "x" {
			t.Errorf("%q: second element = %+v, want symbol x", c.src, second)
		}
		tail, _ := rest.Cdr()
		if !tail.IsNil() {
			t.Errorf("%q: expected a two-element list", c.src)
		}
	}
}

func TestUnbalancedParenIsParseError(t *testing.T) {
	env := value.NewEnvironment()
	_, err := New(env, "(a b c").ReadAll()
	if err == nil {
		t.Fatal("expected a parse error for unbalanced '('")
	}
	if _, ok := err.(*value.ParseError); !ok {
		t.Fatalf("error type = %T, want *value.ParseError", err)
	}
}

func TestStrayCloseParenIsParseError(t *testing.T) {
	env := value.NewEnvironment()
	_, err := New(env, ")").ReadAll()
	if err == nil {
		t.Fatal("expected a parse error for a stray ')'")
	}
}

func TestUnterminatedStringIsParseError(t *testing.T) {
	env := value.NewEnvironment()
	_, err := New(env, `"hello`).ReadAll()
	if err == nil {
		t.Fatal("expected a parse error for an unterminated string")
	}
}

func TestBadEscapeIsParseError(t *testing.T) {
	env := value.NewEnvironment()
	_, err := New(env, `"\q"`).ReadAll()
	if err == nil {
		t.Fatal("expected a parse error for '\\q'")
	}
}

func TestNumberOverflowIsParseError(t *testing.T) {
	env := value.NewEnvironment()
	_, err := New(env, "1e400").ReadAll()
	if err == nil {
		t.Fatal("expected a parse error for an out-of-range number literal")
	}
}

func TestCommentsAreIgnored(t *testing.T) {
	env := value.NewEnvironment()
	forms, err := New(env, "; a comment\n42 ; trailing\n").ReadAll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(forms) != 1 || !forms[0].IsInt() || forms[0].AsInt() != 42 {
		t.Fatalf("forms = %+v, want a single INT 42", forms)
	}
}

func TestStringEscapes(t *testing.T) {
	env := value.NewEnvironment()
	form := readOne(t, env, `"a\nb\\c"`)
	s, ok := form.AsString()
	if !ok {
		t.Fatal("expected a STRING")
	}
	if s != "a\nb\\c" {
		t.Fatalf("string = %q, want %q", s, "a\nb\\c")
	}
}

func TestIntegerVsFloatClassification(t *testing.T) {
	env := value.NewEnvironment()
	if form := readOne(t, env, "4"); !form.IsInt() {
		t.Error("4 should read as INT")
	}
	if form := readOne(t, env, "4.5"); !form.IsFloat() {
		t.Error("4.5 should read as FLOAT")
	}
	if form := readOne(t, env, "4.0"); !form.IsInt() {
		t.Error("4.0 is exactly representable as an int32 and should read as INT")
	}
}

func TestOrdinaryDecimalFractionsParse(t *testing.T) {
	env := value.NewEnvironment()
	for _, src := range []string{"3.14", "0.1", "1.1", "2.71828", "0.001"} {
		form := readOne(t, env, src)
		if !form.IsFloat() {
			t.Errorf("%q should read as a FLOAT, not a parse error", src)
		}
	}
}

func TestReadProgramChainsForms(t *testing.T) {
	env := value.NewEnvironment()
	program, err := New(env, "1 2 3").ReadProgram()
	if err != nil {
		t.Fatalf("ReadProgram error: %v", err)
	}
	if got := printer.Print(program); got != "(1 2 3)" {
		t.Fatalf("ReadProgram printed %q, want (1 2 3)", got)
	}
}
