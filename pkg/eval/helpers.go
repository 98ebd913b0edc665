package eval

import "github.com/kestrels/wordlisp/pkg/value"

// ListPrefix extracts the first n elements of an unevaluated argument list,
// returning them plus whatever tail remains. It fails with "too few
// elements" if list is shorter than n.
func ListPrefix(list value.Sexp, n int) ([]value.Sexp, value.Sexp, error) {
	prefix := make([]value.Sexp, 0, n)
	cur := list
	for i := 0; i < n; i++ {
		car, ok := cur.Car()
		if !ok {
			return nil, value.Nil, &value.EvalError{Message: "too few elements in argument list"}
		}
		prefix = append(prefix, car)
		cdr, _ := cur.Cdr()
		cur = cdr
	}
	return prefix, cur, nil
}

// ListExact is ListPrefix plus a check that nothing but NIL follows the
// prefix, i.e. the list has exactly n elements.
func ListExact(list value.Sexp, n int) ([]value.Sexp, error) {
	prefix, rest, err := ListPrefix(list, n)
	if err != nil {
		return nil, err
	}
	if !rest.IsNil() {
		return nil, &value.EvalError{Message: "too many elements in argument list"}
	}
	return prefix, nil
}

// ListAll walks an unevaluated argument list to its end and returns every
// element, failing if the list is improper (its final cdr is neither NIL
// nor another cons).
func ListAll(list value.Sexp) ([]value.Sexp, error) {
	var out []value.Sexp
	cur := list
	for {
		if cur.IsNil() {
			return out, nil
		}
		car, ok := cur.Car()
		if !ok {
			return nil, &value.EvalError{Message: "improper argument list"}
		}
		out = append(out, car)
		cdr, _ := cur.Cdr()
		cur = cdr
	}
}

// EvalExact checks that an unevaluated argument list has exactly n
// elements via ListExact, then evaluates each of them in order, left to
// right. Fixed-arity built-ins (sqrt, car, cdr, cons, null?) use this so
// their arity check and their evaluation order come from the same place.
func EvalExact(env *value.Environment, list value.Sexp, n int) ([]value.Sexp, error) {
	forms, err := ListExact(list, n)
	if err != nil {
		return nil, err
	}
	return evalForms(env, forms)
}

func evalForms(env *value.Environment, forms []value.Sexp) ([]value.Sexp, error) {
	out := make([]value.Sexp, len(forms))
	for i, f := range forms {
		v, err := Eval(env, f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
