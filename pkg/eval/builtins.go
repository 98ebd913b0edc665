package eval

import (
	"math"

	"github.com/kestrels/wordlisp/pkg/value"
)

// numToSexp collapses an arithmetic result back to INT when it is exactly
// representable as a 32-bit integer, FLOAT otherwise, so a computation
// that happens to land on a whole number stays an INT.
func numToSexp(v float64) value.Sexp {
	if i := int32(v); float64(i) == v {
		return value.NewInt(i)
	}
	return value.NewFloat(float32(v))
}

// evalNumbers evaluates each form in args left to right, requiring each
// result to be numeric before moving on to the next form -- a form after
// the first non-numeric result is never evaluated, so its side effects
// never happen, matching the fold's fail-on-first-bad-argument behavior.
func evalNumbers(env *value.Environment, args value.Sexp, procName string) ([]float64, error) {
	forms, err := ListAll(args)
	if err != nil {
		return nil, err
	}
	vals := make([]float64, len(forms))
	for i, f := range forms {
		v, err := Eval(env, f)
		if err != nil {
			return nil, err
		}
		if !v.IsNumber() {
			return nil, &value.EvalError{Message: procName + ": arguments must be numeric"}
		}
		vals[i] = v.AsFloat64()
	}
	return vals, nil
}

// builtinAdd implements `+`: sum of zero or more numbers, 0 for no
// arguments.
func builtinAdd(env *value.Environment, args value.Sexp) (value.Sexp, error) {
	vals, err := evalNumbers(env, args, "+")
	if err != nil {
		return value.Nil, err
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return numToSexp(sum), nil
}

// builtinSub implements `-`: unary negation, or a left fold of subtraction
// over two or more numbers.
func builtinSub(env *value.Environment, args value.Sexp) (value.Sexp, error) {
	vals, err := evalNumbers(env, args, "-")
	if err != nil {
		return value.Nil, err
	}
	if len(vals) == 0 {
		return value.Nil, &value.EvalError{Message: "-: requires at least 1 argument"}
	}
	if len(vals) == 1 {
		return numToSexp(-vals[0]), nil
	}
	res := vals[0]
	for _, v := range vals[1:] {
		res -= v
	}
	return numToSexp(res), nil
}

// builtinMul implements `*`: product of zero or more numbers, identity 1.
func builtinMul(env *value.Environment, args value.Sexp) (value.Sexp, error) {
	vals, err := evalNumbers(env, args, "*")
	if err != nil {
		return value.Nil, err
	}
	res := 1.0
	for _, v := range vals {
		res *= v
	}
	return numToSexp(res), nil
}

// builtinDiv implements `/`. Unary `/` is the identity on its argument,
// not its reciprocal; n-ary `/` is a left fold of division.
func builtinDiv(env *value.Environment, args value.Sexp) (value.Sexp, error) {
	vals, err := evalNumbers(env, args, "/")
	if err != nil {
		return value.Nil, err
	}
	if len(vals) == 0 {
		return value.Nil, &value.EvalError{Message: "/: requires at least 1 argument"}
	}
	if len(vals) == 1 {
		return numToSexp(vals[0]), nil
	}
	res := vals[0]
	for _, v := range vals[1:] {
		res /= v
	}
	return numToSexp(res), nil
}

// builtinSqrt implements `sqrt`, promoting an INT argument to FLOAT before
// taking the square root and collapsing back to INT if the result is
// integral (a perfect square).
func builtinSqrt(env *value.Environment, args value.Sexp) (value.Sexp, error) {
	vals, err := EvalExact(env, args, 1)
	if err != nil {
		return value.Nil, &value.EvalError{Message: "sqrt: " + err.Error()}
	}
	if !vals[0].IsNumber() {
		return value.Nil, &value.EvalError{Message: "sqrt: arguments must be numeric"}
	}
	return numToSexp(math.Sqrt(vals[0].AsFloat64())), nil
}

// builtinEq implements `=`: every argument compares equal to the first by
// Sexp's equality rule (value equality for immediates, reference equality
// for pointers). Every argument is evaluated, in order, regardless of
// where an inequality is first found.
func builtinEq(env *value.Environment, args value.Sexp) (value.Sexp, error) {
	forms, err := ListAll(args)
	if err != nil {
		return value.Nil, err
	}
	if len(forms) == 0 {
		return value.Nil, &value.EvalError{Message: "=: requires at least 1 argument"}
	}
	first, err := Eval(env, forms[0])
	if err != nil {
		return value.Nil, err
	}
	equal := true
	for _, f := range forms[1:] {
		v, err := Eval(env, f)
		if err != nil {
			return value.Nil, err
		}
		if !first.Equal(v) {
			equal = false
		}
	}
	return value.NewBool(equal), nil
}

func builtinCompare(name string, cmp func(a, b float64) bool) value.BuiltinFunc {
	return func(env *value.Environment, args value.Sexp) (value.Sexp, error) {
		vals, err := evalNumbers(env, args, name)
		if err != nil {
			return value.Nil, err
		}
		if len(vals) == 0 {
			return value.Nil, &value.EvalError{Message: name + ": requires at least 1 argument"}
		}
		for i := 1; i < len(vals); i++ {
			if !cmp(vals[i-1], vals[i]) {
				return value.NewBool(false), nil
			}
		}
		return value.NewBool(true), nil
	}
}

// builtinCar implements `car`, failing unless the argument is a cons.
func builtinCar(env *value.Environment, args value.Sexp) (value.Sexp, error) {
	vals, err := EvalExact(env, args, 1)
	if err != nil {
		return value.Nil, &value.EvalError{Message: "car: " + err.Error()}
	}
	car, ok := vals[0].Car()
	if !ok {
		return value.Nil, &value.EvalError{Message: "car: argument is not a cons"}
	}
	return car, nil
}

// builtinCdr implements `cdr`, failing unless the argument is a cons.
func builtinCdr(env *value.Environment, args value.Sexp) (value.Sexp, error) {
	vals, err := EvalExact(env, args, 1)
	if err != nil {
		return value.Nil, &value.EvalError{Message: "cdr: " + err.Error()}
	}
	cdr, ok := vals[0].Cdr()
	if !ok {
		return value.Nil, &value.EvalError{Message: "cdr: argument is not a cons"}
	}
	return cdr, nil
}

// builtinCons implements `cons`, allocating a new pair.
func builtinCons(env *value.Environment, args value.Sexp) (value.Sexp, error) {
	vals, err := EvalExact(env, args, 2)
	if err != nil {
		return value.Nil, &value.EvalError{Message: "cons: " + err.Error()}
	}
	return env.Cons(vals[0], vals[1]), nil
}

// builtinIsNull implements `null?`.
func builtinIsNull(env *value.Environment, args value.Sexp) (value.Sexp, error) {
	vals, err := EvalExact(env, args, 1)
	if err != nil {
		return value.Nil, &value.EvalError{Message: "null?: " + err.Error()}
	}
	return value.NewBool(vals[0].IsNil()), nil
}
