package eval

import (
	"github.com/kestrels/wordlisp/pkg/symbol"
	"github.com/kestrels/wordlisp/pkg/value"
)

// Truthy reports whether v counts as true in a conditional context: only
// the boolean value #t is truthy. Every other value -- #f, 0, "", '(),
// symbols, lists -- is false.
func Truthy(v value.Sexp) bool {
	return v.IsBool() && v.AsBool()
}

func symbolsFrom(forms []value.Sexp) ([]symbol.Symbol, error) {
	syms := make([]symbol.Symbol, len(forms))
	for i, f := range forms {
		if !f.IsSymbol() {
			return nil, &value.EvalError{Message: "expected a symbol in parameter list"}
		}
		syms[i] = f.AsSymbol()
	}
	return syms, nil
}

// specialQuote returns its single argument unevaluated.
func specialQuote(env *value.Environment, args value.Sexp) (value.Sexp, error) {
	forms, err := ListExact(args, 1)
	if err != nil {
		return value.Nil, err
	}
	return forms[0], nil
}

// specialIf evaluates the condition, then evaluates and returns exactly
// one branch depending on Truthy.
func specialIf(env *value.Environment, args value.Sexp) (value.Sexp, error) {
	forms, err := ListExact(args, 3)
	if err != nil {
		return value.Nil, err
	}
	cond, err := Eval(env, forms[0])
	if err != nil {
		return value.Nil, err
	}
	if Truthy(cond) {
		return Eval(env, forms[1])
	}
	return Eval(env, forms[2])
}

// specialDefine implements both define shapes: a value definition
// `(define name expr)` and a procedure definition
// `(define (name params...) body...)`.
func specialDefine(env *value.Environment, args value.Sexp) (value.Sexp, error) {
	declPrefix, bodyRest, err := ListPrefix(args, 1)
	if err != nil {
		return value.Nil, err
	}
	decl := declPrefix[0]

	switch {
	case decl.IsSymbol():
		valueForms, err := ListExact(bodyRest, 1)
		if err != nil {
			return value.Nil, &value.EvalError{Message: "define: expected exactly one value expression"}
		}
		v, err := Eval(env, valueForms[0])
		if err != nil {
			return value.Nil, err
		}
		env.Define(decl.AsSymbol(), v)
		return value.Nil, nil

	case decl.IsCons():
		declParts, err := ListAll(decl)
		if err != nil {
			return value.Nil, err
		}
		if len(declParts) == 0 || !declParts[0].IsSymbol() {
			return value.Nil, &value.EvalError{Message: "define: procedure name must be a symbol"}
		}
		name := declParts[0].AsSymbol()
		params, err := symbolsFrom(declParts[1:])
		if err != nil {
			return value.Nil, err
		}

		bodyForms, err := ListAll(bodyRest)
		if err != nil {
			return value.Nil, err
		}
		if len(bodyForms) == 0 {
			return value.Nil, &value.EvalError{Message: "define: procedure body must have at least one form"}
		}

		proc := env.NewUserProc(name.Name(), params, bodyForms)
		env.Define(name, proc)
		return value.Nil, nil

	default:
		return value.Nil, &value.EvalError{Message: "define: name must be a symbol or a procedure declaration"}
	}
}

// specialSet evaluates its value and mutates the nearest existing binding
// of the given symbol; set! against an undefined name is a no-op.
func specialSet(env *value.Environment, args value.Sexp) (value.Sexp, error) {
	forms, err := ListExact(args, 2)
	if err != nil {
		return value.Nil, err
	}
	if !forms[0].IsSymbol() {
		return value.Nil, &value.EvalError{Message: "set!: name must be a symbol"}
	}
	v, err := Eval(env, forms[1])
	if err != nil {
		return value.Nil, err
	}
	env.Set(forms[0].AsSymbol(), v)
	return v, nil
}

// specialLambda constructs a USER_PROC closing over the current scope.
func specialLambda(env *value.Environment, args value.Sexp) (value.Sexp, error) {
	declPrefix, bodyRest, err := ListPrefix(args, 1)
	if err != nil {
		return value.Nil, err
	}
	paramForms, err := ListAll(declPrefix[0])
	if err != nil {
		return value.Nil, err
	}
	params, err := symbolsFrom(paramForms)
	if err != nil {
		return value.Nil, err
	}
	bodyForms, err := ListAll(bodyRest)
	if err != nil {
		return value.Nil, err
	}
	if len(bodyForms) == 0 {
		return value.Nil, &value.EvalError{Message: "lambda: body must have at least one form"}
	}
	return env.NewUserProc("", params, bodyForms), nil
}

type letBinding struct {
	sym symbol.Symbol
	val value.Sexp
}

func evalLetBindings(env *value.Environment, bindingsList value.Sexp) ([]letBinding, error) {
	bindingForms, err := ListAll(bindingsList)
	if err != nil {
		return nil, err
	}
	out := make([]letBinding, 0, len(bindingForms))
	for _, b := range bindingForms {
		parts, err := ListExact(b, 2)
		if err != nil {
			return nil, err
		}
		if !parts[0].IsSymbol() {
			return nil, &value.EvalError{Message: "let: binding name must be a symbol"}
		}
		v, err := Eval(env, parts[1])
		if err != nil {
			return nil, err
		}
		out = append(out, letBinding{sym: parts[0].AsSymbol(), val: v})
	}
	return out, nil
}

// specialLet dispatches between unnamed and named let, based on whether
// the first argument is a symbol (the named-let loop procedure's name) or
// a bindings list.
func specialLet(env *value.Environment, args value.Sexp) (value.Sexp, error) {
	firstPrefix, rest, err := ListPrefix(args, 1)
	if err != nil {
		return value.Nil, err
	}
	if firstPrefix[0].IsSymbol() {
		return evalNamedLet(env, firstPrefix[0].AsSymbol(), rest)
	}
	return evalLet(env, firstPrefix[0], rest)
}

// evalLet implements unnamed let: values evaluated in the enclosing scope,
// then all bindings installed at once into a fresh scope.
func evalLet(env *value.Environment, bindingsList, bodyRest value.Sexp) (value.Sexp, error) {
	bindings, err := evalLetBindings(env, bindingsList)
	if err != nil {
		return value.Nil, err
	}
	bodyForms, err := ListAll(bodyRest)
	if err != nil {
		return value.Nil, err
	}

	saved := env.PushScope(env.CurrentScope())
	defer env.SetScope(saved)
	for _, b := range bindings {
		env.Define(b.sym, b.val)
	}
	return evalBody(env, bodyForms)
}

// evalLetStar implements let*: a scope is pre-installed and each binding's
// value expression is evaluated (and immediately inserted) in that same
// scope, so later bindings see earlier ones.
func evalLetStar(env *value.Environment, bindingsList, bodyRest value.Sexp) (value.Sexp, error) {
	bindingForms, err := ListAll(bindingsList)
	if err != nil {
		return value.Nil, err
	}
	bodyForms, err := ListAll(bodyRest)
	if err != nil {
		return value.Nil, err
	}

	saved := env.PushScope(env.CurrentScope())
	defer env.SetScope(saved)

	for _, b := range bindingForms {
		parts, err := ListExact(b, 2)
		if err != nil {
			return value.Nil, err
		}
		if !parts[0].IsSymbol() {
			return value.Nil, &value.EvalError{Message: "let*: binding name must be a symbol"}
		}
		v, err := Eval(env, parts[1])
		if err != nil {
			return value.Nil, err
		}
		env.Define(parts[0].AsSymbol(), v)
	}
	return evalBody(env, bodyForms)
}

func specialLetStar(env *value.Environment, args value.Sexp) (value.Sexp, error) {
	firstPrefix, rest, err := ListPrefix(args, 1)
	if err != nil {
		return value.Nil, err
	}
	return evalLetStar(env, firstPrefix[0], rest)
}

// evalNamedLet implements `(let proc-id ((id val)...) body...)`: a fresh
// scope holds the loop variables and a USER_PROC bound under proc-id,
// closing over that same scope so recursive calls see both.
func evalNamedLet(env *value.Environment, procName symbol.Symbol, rest value.Sexp) (value.Sexp, error) {
	bindingsPrefix, bodyRest, err := ListPrefix(rest, 1)
	if err != nil {
		return value.Nil, err
	}
	bindings, err := evalLetBindings(env, bindingsPrefix[0])
	if err != nil {
		return value.Nil, err
	}
	bodyForms, err := ListAll(bodyRest)
	if err != nil {
		return value.Nil, err
	}
	if len(bodyForms) == 0 {
		return value.Nil, &value.EvalError{Message: "let: body must have at least one form"}
	}

	saved := env.PushScope(env.CurrentScope())
	defer env.SetScope(saved)

	params := make([]symbol.Symbol, len(bindings))
	for i, b := range bindings {
		env.Define(b.sym, b.val)
		params[i] = b.sym
	}

	proc := env.NewUserProc(procName.Name(), params, bodyForms)
	env.Define(procName, proc)

	return evalBody(env, bodyForms)
}

// specialProgn evaluates every form in order and returns the last value.
func specialProgn(env *value.Environment, args value.Sexp) (value.Sexp, error) {
	forms, err := ListAll(args)
	if err != nil {
		return value.Nil, err
	}
	return evalBody(env, forms)
}
