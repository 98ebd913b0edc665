package value

import "github.com/kestrels/wordlisp/pkg/symbol"

// ConsCell is the payload of a CONS_CELL heap object: an ordered pair used
// to build lists.
type ConsCell struct {
	Car Sexp
	Cdr Sexp
}

// stringObject is the payload of a STRING heap object. It is unexported
// because callers only ever see a STRING through Sexp.AsString; nothing
// outside this package needs to hold one directly.
type stringObject struct {
	Value string
}

// BuiltinFunc is the Go function a BUILTIN_PROC dispatches to. It receives
// the Environment it was called in and the callee's unevaluated argument
// list as a cons chain. Special forms and ordinary built-ins share this
// same function type and are distinguished only by whether the Fn
// evaluates its arguments itself.
type BuiltinFunc func(env *Environment, args Sexp) (Sexp, error)

// BuiltinProc is the payload of a BUILTIN_PROC heap object: a name (used
// only for printing, in the #BUILTIN:<name> format) and the Go function
// implementing it.
type BuiltinProc struct {
	Name string
	Fn   BuiltinFunc
}

// UserProc is the payload of a USER_PROC heap object: a lambda's formal
// parameters, its body, and the lexical scope it closed over at creation
// time. Name is set by the procedure form of define and by named let, and
// the printer uses it; a lambda's Name is empty, even when the lambda's
// value is later bound with define.
type UserProc struct {
	Name    string
	Params  []symbol.Symbol
	Body    []Sexp
	Closure *Header
}

// Scope is the payload of a SCOPE heap object: one frame of the lexical
// environment chain, a map of bindings plus a link to the enclosing frame.
// Prev is nil for the global scope.
type Scope struct {
	Bindings map[symbol.Symbol]Sexp
	Prev     *Header
}
