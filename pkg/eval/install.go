package eval

import "github.com/kestrels/wordlisp/pkg/value"

// Install populates env's global scope with every special form and
// built-in procedure, each installed as a BUILTIN_PROC. Special forms and
// ordinary built-ins share one table and are distinguished only by
// whether a given Fn evaluates its own arguments.
func Install(env *value.Environment) {
	entries := []struct {
		name string
		fn   value.BuiltinFunc
	}{
		// Special forms: consume their argument list unevaluated.
		{"quote", specialQuote},
		{"if", specialIf},
		{"define", specialDefine},
		{"set!", specialSet},
		{"lambda", specialLambda},
		{"let", specialLet},
		{"let*", specialLetStar},
		{"progn", specialProgn},

		// Ordinary built-ins: evaluate their arguments themselves.
		{"+", builtinAdd},
		{"-", builtinSub},
		{"*", builtinMul},
		{"/", builtinDiv},
		{"sqrt", builtinSqrt},
		{"=", builtinEq},
		{"<", builtinCompare("<", func(a, b float64) bool { return a < b })},
		{"<=", builtinCompare("<=", func(a, b float64) bool { return a <= b })},
		{">", builtinCompare(">", func(a, b float64) bool { return a > b })},
		{">=", builtinCompare(">=", func(a, b float64) bool { return a >= b })},
		{"car", builtinCar},
		{"cdr", builtinCdr},
		{"cons", builtinCons},
		{"null?", builtinIsNull},
	}

	for _, e := range entries {
		sym := env.Symbols.Intern(e.name)
		env.DefineIn(env.GlobalScope(), sym, env.NewBuiltinProc(e.name, e.fn))
	}
}
