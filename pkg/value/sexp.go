package value

import (
	"math"

	"github.com/kestrels/wordlisp/pkg/symbol"
)

// Flag discriminates what a Sexp currently holds: NIL, an immediate
// INT/FLOAT/BOOL/SYMBOL, or PTR to a heap object whose concrete type is
// read from its Header.
type Flag uint8

const (
	FlagNil Flag = iota
	FlagInt
	FlagFloat
	FlagBool
	FlagSymbol
	FlagPtr
)

func (f Flag) String() string {
	switch f {
	case FlagNil:
		return "nil"
	case FlagInt:
		return "int"
	case FlagFloat:
		return "float"
	case FlagBool:
		return "bool"
	case FlagSymbol:
		return "symbol"
	case FlagPtr:
		return "ptr"
	default:
		return "unknown"
	}
}

// Sexp is the tagged value every reader form, evaluation result, and
// environment binding is passed around as: a flag plus a small, cheap to
// copy payload, rather than a single packed machine word. A packed word
// would need to steal bits out of a live pointer to tag it, which leaves
// the garbage collector unable to see the pointer anymore; keeping flag
// and payload as separate struct fields sidesteps that, at the cost of a
// few words per value instead of one; it is still copied by value. bits holds an INT's int32, a FLOAT's float32 bits, or
// a BOOL as 0/1; sym holds a SYMBOL's interned reference; ptr holds a heap
// Header. Only the field matching flag is meaningful.
type Sexp struct {
	flag Flag
	bits uint64
	sym  symbol.Symbol
	ptr  *Header
}

// Nil is the canonical empty-list / absence value.
var Nil = Sexp{flag: FlagNil}

// NewInt returns the INT Sexp for v.
func NewInt(v int32) Sexp { return Sexp{flag: FlagInt, bits: uint64(uint32(v))} }

// NewFloat returns the FLOAT Sexp for v.
func NewFloat(v float32) Sexp { return Sexp{flag: FlagFloat, bits: uint64(math.Float32bits(v))} }

// NewBool returns the BOOL Sexp for v.
func NewBool(v bool) Sexp {
	if v {
		return Sexp{flag: FlagBool, bits: 1}
	}
	return Sexp{flag: FlagBool, bits: 0}
}

// NewSymbol returns the SYMBOL Sexp referencing sym.
func NewSymbol(sym symbol.Symbol) Sexp { return Sexp{flag: FlagSymbol, sym: sym} }

func newPtr(h *Header) Sexp { return Sexp{flag: FlagPtr, ptr: h} }

// IsNil reports whether s is the empty list.
func (s Sexp) IsNil() bool { return s.flag == FlagNil }

// IsInt reports whether s holds an INT.
func (s Sexp) IsInt() bool { return s.flag == FlagInt }

// IsFloat reports whether s holds a FLOAT.
func (s Sexp) IsFloat() bool { return s.flag == FlagFloat }

// IsBool reports whether s holds a BOOL.
func (s Sexp) IsBool() bool { return s.flag == FlagBool }

// IsSymbol reports whether s holds a SYMBOL.
func (s Sexp) IsSymbol() bool { return s.flag == FlagSymbol }

// IsPtr reports whether s holds a heap pointer of any type.
func (s Sexp) IsPtr() bool { return s.flag == FlagPtr }

// IsNumber reports whether s holds an INT or a FLOAT.
func (s Sexp) IsNumber() bool { return s.flag == FlagInt || s.flag == FlagFloat }

// IsCons reports whether s points to a CONS_CELL.
func (s Sexp) IsCons() bool {
	if s.flag != FlagPtr {
		return false
	}
	_, ok := consCellAt(s.ptr)
	return ok
}

// IsString reports whether s points to a STRING.
func (s Sexp) IsString() bool {
	if s.flag != FlagPtr {
		return false
	}
	_, ok := stringAt(s.ptr)
	return ok
}

// IsUserProc reports whether s points to a USER_PROC.
func (s Sexp) IsUserProc() bool {
	if s.flag != FlagPtr {
		return false
	}
	_, ok := userProcAt(s.ptr)
	return ok
}

// IsBuiltinProc reports whether s points to a BUILTIN_PROC.
func (s Sexp) IsBuiltinProc() bool {
	if s.flag != FlagPtr {
		return false
	}
	_, ok := builtinProcAt(s.ptr)
	return ok
}

// AsInt returns s's INT payload. Valid only when IsInt(s).
func (s Sexp) AsInt() int32 { return int32(uint32(s.bits)) }

// AsFloat returns s's FLOAT payload. Valid only when IsFloat(s).
func (s Sexp) AsFloat() float32 { return math.Float32frombits(uint32(s.bits)) }

// AsBool returns s's BOOL payload. Valid only when IsBool(s).
func (s Sexp) AsBool() bool { return s.bits != 0 }

// AsSymbol returns s's SYMBOL payload. Valid only when IsSymbol(s).
func (s Sexp) AsSymbol() symbol.Symbol { return s.sym }

// AsFloat64 widens an INT or FLOAT Sexp to float64 for arithmetic; it
// panics if s is not a number (callers are expected to check IsNumber
// first, the same contract every other As* accessor carries).
func (s Sexp) AsFloat64() float64 {
	switch s.flag {
	case FlagInt:
		return float64(s.AsInt())
	case FlagFloat:
		return float64(s.AsFloat())
	default:
		panic("value: AsFloat64 on non-numeric Sexp")
	}
}

// Car returns the car of a CONS_CELL, or Nil/false if s is not a cons.
func (s Sexp) Car() (Sexp, bool) {
	cell, ok := consCellAt(s.ptr)
	if !ok {
		return Nil, false
	}
	return cell.Car, true
}

// Cdr returns the cdr of a CONS_CELL, or Nil/false if s is not a cons.
func (s Sexp) Cdr() (Sexp, bool) {
	cell, ok := consCellAt(s.ptr)
	if !ok {
		return Nil, false
	}
	return cell.Cdr, true
}

// AsString returns s's STRING payload and whether s was a STRING.
func (s Sexp) AsString() (string, bool) {
	str, ok := stringAt(s.ptr)
	if !ok {
		return "", false
	}
	return str.Value, true
}

// AsUserProc returns s's USER_PROC payload and whether s was a USER_PROC.
func (s Sexp) AsUserProc() (*UserProc, bool) { return userProcAt(s.ptr) }

// AsBuiltinProc returns s's BUILTIN_PROC payload and whether s was one.
func (s Sexp) AsBuiltinProc() (*BuiltinProc, bool) { return builtinProcAt(s.ptr) }

// header exposes the raw heap pointer to code inside this package.
func (s Sexp) header() *Header { return s.ptr }

// Equal compares two Sexps: reference equality for pointer cases (two
// structurally-equal but distinct cons cells compare unequal, since
// equality for a pointer means pointing at the same heap object, not
// having the same contents), value equality for immediates, and NIL's two
// representations (explicit NIL and a null PTR) are equivalent for
// list-termination purposes.
func (a Sexp) Equal(b Sexp) bool {
	aNil := a.IsNil() || (a.flag == FlagPtr && a.ptr == nil)
	bNil := b.IsNil() || (b.flag == FlagPtr && b.ptr == nil)
	if aNil && bNil {
		return true
	}
	if a.flag != b.flag {
		return false
	}
	switch a.flag {
	case FlagNil:
		return true
	case FlagPtr:
		return a.ptr == b.ptr
	case FlagSymbol:
		return a.sym == b.sym
	default:
		return a.bits == b.bits
	}
}
