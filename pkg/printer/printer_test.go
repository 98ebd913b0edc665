package printer

import (
	"testing"

	"github.com/kestrels/wordlisp/pkg/value"
)

func TestPrintImmediates(t *testing.T) {
	cases := []struct {
		v    value.Sexp
		want string
	}{
		{value.Nil, "'()"},
		{value.NewInt(42), "42"},
		{value.NewInt(-7), "-7"},
		{value.NewBool(true), "#t"},
		{value.NewBool(false), "#f"},
	}
	for _, c := range cases {
		if got := Print(c.v); got != c.want {
			t.Errorf("Print(%+v) = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestPrintFloatShortestRoundTrip(t *testing.T) {
	if got := Print(value.NewFloat(3.25)); got != "3.25" {
		t.Errorf("Print(3.25) = %q, want 3.25", got)
	}
}

func TestPrintString(t *testing.T) {
	env := value.NewEnvironment()
	s := env.NewString("hello")
	if got := Print(s); got != `"hello"` {
		t.Errorf("Print(string) = %q, want %q", got, `"hello"`)
	}
}

func TestPrintStringDoesNotReescape(t *testing.T) {
	env := value.NewEnvironment()
	s := env.NewString(`a"b`)
	if got := Print(s); got != `"a"b"` {
		t.Errorf("Print unescaped string = %q, want %q", got, `"a"b"`)
	}
}

func TestPrintSymbol(t *testing.T) {
	env := value.NewEnvironment()
	if got := Print(env.Intern("foo")); got != "foo" {
		t.Errorf("Print(symbol) = %q, want foo", got)
	}
}

func TestPrintProperList(t *testing.T) {
	env := value.NewEnvironment()
	list := env.Cons(value.NewInt(1), env.Cons(value.NewInt(2), env.Cons(value.NewInt(3), value.Nil)))
	if got := Print(list); got != "(1 2 3)" {
		t.Errorf("Print(list) = %q, want (1 2 3)", got)
	}
}

func TestPrintUserProc(t *testing.T) {
	env := value.NewEnvironment()
	named := env.NewUserProc("square", nil, nil)
	if got := Print(named); got != "#PROC:square" {
		t.Errorf("Print(named user proc) = %q, want #PROC:square", got)
	}

	anon := env.NewUserProc("", nil, nil)
	if got := Print(anon); got != "#PROC:<unnamed>" {
		t.Errorf("Print(anonymous user proc) = %q, want #PROC:<unnamed>", got)
	}
}

func TestPrintBuiltinProc(t *testing.T) {
	env := value.NewEnvironment()
	b := env.NewBuiltinProc("+", func(*value.Environment, value.Sexp) (value.Sexp, error) {
		return value.Nil, nil
	})
	if got := Print(b); got != "#BUILTIN:+" {
		t.Errorf("Print(builtin proc) = %q, want #BUILTIN:+", got)
	}
}
