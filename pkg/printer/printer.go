// Package printer renders value.Sexp forms back to source text.
package printer

import (
	"strconv"
	"strings"

	"github.com/kestrels/wordlisp/pkg/value"
)

// Print renders s as text.
func Print(s value.Sexp) string {
	var sb strings.Builder
	write(&sb, s)
	return sb.String()
}

func write(sb *strings.Builder, s value.Sexp) {
	switch {
	case s.IsNil():
		sb.WriteString("'()")

	case s.IsInt():
		sb.WriteString(strconv.FormatInt(int64(s.AsInt()), 10))

	case s.IsFloat():
		sb.WriteString(strconv.FormatFloat(float64(s.AsFloat()), 'g', -1, 32))

	case s.IsBool():
		if s.AsBool() {
			sb.WriteString("#t")
		} else {
			sb.WriteString("#f")
		}

	case s.IsSymbol():
		sb.WriteString(s.AsSymbol().Name())

	case s.IsString():
		str, _ := s.AsString()
		sb.WriteByte('"')
		sb.WriteString(str)
		sb.WriteByte('"')

	case s.IsUserProc():
		proc, _ := s.AsUserProc()
		if proc.Name == "" {
			sb.WriteString("#PROC:<unnamed>")
		} else {
			sb.WriteString("#PROC:" + proc.Name)
		}

	case s.IsBuiltinProc():
		proc, _ := s.AsBuiltinProc()
		sb.WriteString("#BUILTIN:" + proc.Name)

	case s.IsCons():
		sb.WriteByte('(')
		writeListElements(sb, s)
		sb.WriteByte(')')

	default:
		sb.WriteString("'()")
	}
}

func writeListElements(sb *strings.Builder, list value.Sexp) {
	first := true
	for cur := list; cur.IsCons(); {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		car, _ := cur.Car()
		write(sb, car)
		cdr, _ := cur.Cdr()
		cur = cdr
	}
}
