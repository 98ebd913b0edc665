// Package eval implements the evaluator: the special forms and built-in
// procedures, dispatched against a *value.Environment.
package eval

import (
	"fmt"

	"github.com/kestrels/wordlisp/pkg/value"
)

// Eval evaluates form against env and returns its value: literals are
// self-evaluating, a SYMBOL resolves through the scope chain (or NIL if
// unbound), and a cons cell is a procedure call.
func Eval(env *value.Environment, form value.Sexp) (value.Sexp, error) {
	switch {
	case form.IsSymbol():
		if v, ok := env.Lookup(form.AsSymbol()); ok {
			return v, nil
		}
		return value.Nil, nil

	case form.IsCons():
		return evalCall(env, form)

	default:
		return form, nil
	}
}

func evalCall(env *value.Environment, form value.Sexp) (value.Sexp, error) {
	headForm, _ := form.Car()
	args, _ := form.Cdr()

	if !headForm.IsSymbol() {
		return value.Nil, &value.EvalError{Message: "procedure call must begin with a symbol"}
	}
	sym := headForm.AsSymbol()

	binding, ok := env.Lookup(sym)
	if !ok {
		return value.Nil, &value.EvalError{Message: fmt.Sprintf("%s: proc not found", sym.Name())}
	}

	if proc, isUser := binding.AsUserProc(); isUser {
		return callUserProc(env, proc, args)
	}
	if proc, isBuiltin := binding.AsBuiltinProc(); isBuiltin {
		return proc.Fn(env, args)
	}
	return value.Nil, &value.EvalError{Message: fmt.Sprintf("%s: not a procedure", sym.Name())}
}

// callUserProc calls a user-defined procedure: a new Scope whose prev is
// the procedure's captured closure frame (lexical scoping, not the
// caller's frame), each declared parameter bound to its evaluated
// argument in the caller's scope, extra arguments silently discarded, too
// few arguments an eval error, and the previous scope restored via defer
// on every exit path.
func callUserProc(env *value.Environment, proc *value.UserProc, rawArgs value.Sexp) (value.Sexp, error) {
	argForms, err := ListAll(rawArgs)
	if err != nil {
		return value.Nil, err
	}
	if len(argForms) < len(proc.Params) {
		return value.Nil, &value.EvalError{Message: fmt.Sprintf("%s: too few arguments", procLabel(proc))}
	}

	evaluated := make([]value.Sexp, len(proc.Params))
	for i := range proc.Params {
		v, err := Eval(env, argForms[i])
		if err != nil {
			return value.Nil, err
		}
		evaluated[i] = v
	}

	saved := env.PushScope(proc.Closure)
	defer env.SetScope(saved)

	frame := env.CurrentScope()
	for i, p := range proc.Params {
		env.DefineIn(frame, p, evaluated[i])
	}

	return evalBody(env, proc.Body)
}

func procLabel(proc *value.UserProc) string {
	if proc.Name == "" {
		return "<unnamed proc>"
	}
	return proc.Name
}

// evalBody evaluates a sequence of forms in order, returning the last
// value; used by user-procedure bodies, progn, and every scope-introducing
// special form.
func evalBody(env *value.Environment, body []value.Sexp) (value.Sexp, error) {
	var result value.Sexp = value.Nil
	for _, form := range body {
		v, err := Eval(env, form)
		if err != nil {
			return value.Nil, err
		}
		result = v
	}
	return result, nil
}
