package value

import "testing"

func TestImmediateConstructorsAndPredicates(t *testing.T) {
	cases := []struct {
		name string
		v    Sexp
		is   func(Sexp) bool
	}{
		{"int", NewInt(42), Sexp.IsInt},
		{"float", NewFloat(3.25), Sexp.IsFloat},
		{"bool-true", NewBool(true), Sexp.IsBool},
		{"bool-false", NewBool(false), Sexp.IsBool},
		{"nil", Nil, Sexp.IsNil},
	}
	for _, c := range cases {
		if !c.is(c.v) {
			t.Errorf("%s: predicate false for constructed value", c.name)
		}
	}
}

func TestIntRoundTrip(t *testing.T) {
	v := NewInt(-7)
	if got := v.AsInt(); got != -7 {
		t.Fatalf("AsInt() = %d, want -7", got)
	}
}

func TestBoolRoundTrip(t *testing.T) {
	if !NewBool(true).AsBool() {
		t.Fatal("AsBool() on NewBool(true) was false")
	}
	if NewBool(false).AsBool() {
		t.Fatal("AsBool() on NewBool(false) was true")
	}
}

func TestConsCarCdr(t *testing.T) {
	env := NewEnvironment()
	pair := env.Cons(NewInt(1), NewInt(2))

	if !pair.IsCons() {
		t.Fatal("Cons result is not IsCons()")
	}
	car, ok := pair.Car()
	if !ok || car.AsInt() != 1 {
		t.Fatalf("Car() = %+v, %v; want 1, true", car, ok)
	}
	cdr, ok := pair.Cdr()
	if !ok || cdr.AsInt() != 2 {
		t.Fatalf("Cdr() = %+v, %v; want 2, true", cdr, ok)
	}
}

func TestEqualityValueVsReference(t *testing.T) {
	env := NewEnvironment()

	if !NewInt(5).Equal(NewInt(5)) {
		t.Error("two INT Sexps with the same value should be Equal")
	}
	if NewInt(5).Equal(NewInt(6)) {
		t.Error("two INT Sexps with different values should not be Equal")
	}

	a := env.Cons(NewInt(1), Nil)
	b := env.Cons(NewInt(1), Nil)
	if a.Equal(b) {
		t.Error("two structurally-equal but distinct cons cells should not be Equal (reference equality)")
	}
	if !a.Equal(a) {
		t.Error("a cons cell should Equal itself")
	}
}

func TestSymbolEquality(t *testing.T) {
	env := NewEnvironment()
	a := env.Intern("foo")
	b := env.Intern("foo")
	c := env.Intern("bar")

	if !a.Equal(b) {
		t.Error("two SYMBOL Sexps interned from the same name should be Equal")
	}
	if a.Equal(c) {
		t.Error("SYMBOL Sexps interned from different names should not be Equal")
	}
}

func TestNilEquivalence(t *testing.T) {
	if !Nil.Equal(Nil) {
		t.Error("Nil should Equal itself")
	}
	if !Nil.IsNil() {
		t.Error("Nil.IsNil() should be true")
	}
}

func TestHeapBumpAllocation(t *testing.T) {
	env := NewEnvironment()
	before := env.Heap.ObjectCount()
	env.Cons(NewInt(1), Nil)
	env.NewString("hello")
	after := env.Heap.ObjectCount()

	if after-before != 2 {
		t.Fatalf("ObjectCount increased by %d, want 2", after-before)
	}
}

func TestHeapSegmentGrowth(t *testing.T) {
	env := NewEnvironment()
	if got := env.Heap.SegmentCount(); got != 1 {
		t.Fatalf("SegmentCount() = %d, want 1 on a fresh heap", got)
	}

	for i := 0; i < segmentCapacity*3; i++ {
		env.NewString("x")
	}

	if got := env.Heap.SegmentCount(); got < 2 {
		t.Fatalf("SegmentCount() = %d after overflowing one segment, want >= 2", got)
	}
}

func TestEnvironmentDefineAndLookup(t *testing.T) {
	env := NewEnvironment()
	sym := env.Symbols.Intern("x")

	if _, ok := env.Lookup(sym); ok {
		t.Fatal("Lookup found a binding before Define was called")
	}

	env.Define(sym, NewInt(10))
	v, ok := env.Lookup(sym)
	if !ok || v.AsInt() != 10 {
		t.Fatalf("Lookup after Define = %+v, %v; want 10, true", v, ok)
	}
}

func TestEnvironmentScopeChainLookup(t *testing.T) {
	env := NewEnvironment()
	outer := env.Symbols.Intern("outer")
	env.Define(outer, NewInt(1))

	saved := env.PushScope(env.CurrentScope())
	defer env.SetScope(saved)

	if v, ok := env.Lookup(outer); !ok || v.AsInt() != 1 {
		t.Fatalf("inner scope should see outer binding via prev chain, got %+v, %v", v, ok)
	}
}

func TestEnvironmentSetRequiresExistingBinding(t *testing.T) {
	env := NewEnvironment()
	sym := env.Symbols.Intern("y")

	if ok := env.Set(sym, NewInt(1)); ok {
		t.Fatal("Set() on an undefined symbol should report false")
	}

	env.Define(sym, NewInt(1))
	if ok := env.Set(sym, NewInt(2)); !ok {
		t.Fatal("Set() on a defined symbol should report true")
	}
	v, _ := env.Lookup(sym)
	if v.AsInt() != 2 {
		t.Fatalf("Lookup after Set() = %d, want 2", v.AsInt())
	}
}

func TestClosureCapturesDefiningScopeNotCallSite(t *testing.T) {
	env := NewEnvironment()
	nSym := env.Symbols.Intern("n")
	env.Define(nSym, NewInt(3))

	proc := env.NewUserProc("adder", nil, nil)

	saved := env.PushScope(env.CurrentScope())
	env.Define(nSym, NewInt(999))
	other := env.CurrentScope()
	env.SetScope(saved)

	p, ok := proc.AsUserProc()
	if !ok {
		t.Fatal("NewUserProc did not return a USER_PROC Sexp")
	}
	if p.Closure == other {
		t.Fatal("closure frame should be the scope active at construction, not one pushed afterward")
	}
}
