package value

import (
	"github.com/kestrels/wordlisp/pkg/symbol"
)

// Environment owns one interpreter instance's heap, symbol pool, and
// current lexical scope chain. It is the handle pkg/reader and pkg/eval
// are built against instead of reaching into Heap directly, threading both
// the heap and the active scope through every reader and eval call.
type Environment struct {
	Heap    *Heap
	Symbols *symbol.Pool

	global  *Header
	current *Header
}

// NewEnvironment creates an Environment with a single, empty global scope
// current.
func NewEnvironment() *Environment {
	heap := NewHeap()
	global := heap.newScope(nil)
	return &Environment{
		Heap:    heap,
		Symbols: symbol.NewPool(),
		global:  global,
		current: global,
	}
}

// Intern is a convenience wrapper returning a SYMBOL Sexp for name.
func (e *Environment) Intern(name string) Sexp {
	return NewSymbol(e.Symbols.Intern(name))
}

// Cons allocates a new CONS_CELL and returns a PTR Sexp to it.
func (e *Environment) Cons(car, cdr Sexp) Sexp {
	return newPtr(e.Heap.newConsCell(car, cdr))
}

// NewString allocates a new STRING and returns a PTR Sexp to it.
func (e *Environment) NewString(s string) Sexp {
	return newPtr(e.Heap.newString(s))
}

// NewUserProc allocates a new USER_PROC closing over the current scope and
// returns a PTR Sexp to it.
func (e *Environment) NewUserProc(name string, params []symbol.Symbol, body []Sexp) Sexp {
	proc := &UserProc{Name: name, Params: params, Body: body, Closure: e.current}
	return newPtr(e.Heap.newUserProc(proc))
}

// NewUserProcIn allocates a USER_PROC closing over an explicit scope,
// rather than the environment's current scope, for constructing a proc
// against a scope that isn't necessarily the live one. pkg/eval does not
// call it; named let and lambda use NewUserProc.
func (e *Environment) NewUserProcIn(name string, params []symbol.Symbol, body []Sexp, closure *Header) Sexp {
	proc := &UserProc{Name: name, Params: params, Body: body, Closure: closure}
	return newPtr(e.Heap.newUserProc(proc))
}

// NewBuiltinProc allocates a new BUILTIN_PROC and returns a PTR Sexp to it.
func (e *Environment) NewBuiltinProc(name string, fn BuiltinFunc) Sexp {
	proc := &BuiltinProc{Name: name, Fn: fn}
	return newPtr(e.Heap.newBuiltinProc(proc))
}

// CurrentScope returns the Header of the environment's active scope frame.
func (e *Environment) CurrentScope() *Header { return e.current }

// GlobalScope returns the Header of the outermost scope frame.
func (e *Environment) GlobalScope() *Header { return e.global }

// PushScope replaces the current scope with a fresh empty frame chained to
// parent, and returns the frame that was active before the call so the
// caller can restore it later with SetScope. Callers are expected to pair
// this with a deferred restore, e.g.:
//
//	saved := env.PushScope(closure)
//	defer env.SetScope(saved)
func (e *Environment) PushScope(parent *Header) *Header {
	saved := e.current
	e.current = e.Heap.newScope(parent)
	return saved
}

// SetScope makes scope the environment's active frame. Used to restore the
// caller's scope after a procedure call returns.
func (e *Environment) SetScope(scope *Header) { e.current = scope }

// Define binds sym to val in the current scope, overwriting any existing
// binding for sym in that same frame; redefinition is allowed.
func (e *Environment) Define(sym symbol.Symbol, val Sexp) {
	scope, _ := scopeAt(e.current)
	scope.Bindings[sym] = val
}

// DefineIn binds sym to val in an explicit scope frame rather than the
// environment's current one.
func (e *Environment) DefineIn(frame *Header, sym symbol.Symbol, val Sexp) {
	scope, _ := scopeAt(frame)
	scope.Bindings[sym] = val
}

// Lookup searches the scope chain starting at the current frame, walking
// Prev links out to the global frame, and returns the first binding found
// for sym.
func (e *Environment) Lookup(sym symbol.Symbol) (Sexp, bool) {
	return e.LookupFrom(e.current, sym)
}

// LookupFrom searches the scope chain starting at frame instead of the
// environment's current frame. Lookup is its only caller: eval resolves
// names inside a closure body by pushing a frame chained to the closure's
// captured scope and calling Lookup.
func (e *Environment) LookupFrom(frame *Header, sym symbol.Symbol) (Sexp, bool) {
	for h := frame; h != nil; {
		scope, ok := scopeAt(h)
		if !ok {
			return Nil, false
		}
		if v, found := scope.Bindings[sym]; found {
			return v, true
		}
		h = scope.Prev
	}
	return Nil, false
}

// Set rebinds sym to val in the nearest scope frame (starting at current)
// that already has a binding for it; set! never creates a new binding. It
// reports whether such a frame was found.
func (e *Environment) Set(sym symbol.Symbol, val Sexp) bool {
	for h := e.current; h != nil; {
		scope, ok := scopeAt(h)
		if !ok {
			return false
		}
		if _, found := scope.Bindings[sym]; found {
			scope.Bindings[sym] = val
			return true
		}
		h = scope.Prev
	}
	return false
}
