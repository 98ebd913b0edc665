package value

import (
	"unsafe"

	"github.com/davecgh/go-spew/spew"

	"github.com/kestrels/wordlisp/pkg/symbol"
)

// ObjectType tags a heap allocation with its concrete payload kind.
type ObjectType uint16

const (
	TypeUnknown ObjectType = iota
	TypeConsCell
	TypeString
	TypeUserProc
	TypeBuiltinProc
	TypeScope
)

func (t ObjectType) String() string {
	switch t {
	case TypeConsCell:
		return "cons-cell"
	case TypeString:
		return "string"
	case TypeUserProc:
		return "user-proc"
	case TypeBuiltinProc:
		return "builtin-proc"
	case TypeScope:
		return "scope"
	default:
		return "unknown"
	}
}

// Header is the fixed-size record that precedes every heap object
// conceptually: a type tag, a payload size and alignment, and a flags byte
// reserved for future GC/marking use.
//
// The payload itself is not laid out in the bytes immediately following the
// header. The garbage collector must be able to see and trace any pointers
// a payload holds, which a raw byte arena cannot offer; instead payload
// holds an unsafe.Pointer to a normally-allocated Go value of the
// concrete payload type, and the Header is the stable handle callers keep
// instead of a raw address.
type Header struct {
	Type      ObjectType
	Size      uint32
	Alignment uint8
	Flags     uint8
	payload   unsafe.Pointer
}

// objectAlignment is the alignment recorded in every Header. Sexp keeps its
// flag in a separate field (see sexp.go), so no tag bits are stored in a
// pointer; Go already aligns every allocation at least to its largest
// field's natural alignment (8 on any platform this module targets), so
// this is a fixed value rather than one computed per allocation.
const objectAlignment = 8

// segmentCapacity is the number of Header slots in a segment: 32 KiB
// divided by 32, i.e. 1024. A Header occupies 24 bytes on a 64-bit
// platform, so a segment's slot array is 24 KiB there.
const segmentCapacity = 32 * 1024 / 32

type segment struct {
	slots []Header
	top   int
}

func newSegment() *segment {
	return &segment{slots: make([]Header, segmentCapacity)}
}

// Heap is a bump allocator over a growing list of fixed-size segments.
// Allocation is O(1) amortised, objects are never freed, compacted, or
// moved, and segments grow by simple append -- there is no reclamation
// during execution.
type Heap struct {
	segments []*segment
	count    int
}

// NewHeap creates a heap with a single backing segment.
func NewHeap() *Heap {
	h := &Heap{}
	h.segments = append(h.segments, newSegment())
	return h
}

// allocate hands out the next Header slot in the active segment, growing a
// new segment first if the active one is exhausted.
func (h *Heap) allocate(typ ObjectType, size uintptr, payload unsafe.Pointer) *Header {
	seg := h.segments[len(h.segments)-1]
	if seg.top >= len(seg.slots) {
		seg = newSegment()
		h.segments = append(h.segments, seg)
	}
	hdr := &seg.slots[seg.top]
	seg.top++
	hdr.Type = typ
	hdr.Size = uint32(size)
	hdr.Alignment = objectAlignment
	hdr.payload = payload
	h.count++
	return hdr
}

// ObjectCount returns the number of objects allocated so far.
func (h *Heap) ObjectCount() int { return h.count }

// SegmentCount returns the number of backing segments allocated so far.
func (h *Heap) SegmentCount() int { return len(h.segments) }

// Dump renders a debug summary of the heap's segments and object count.
func (h *Heap) Dump() string {
	type segmentSummary struct {
		Capacity int
		Used     int
	}
	summary := struct {
		Objects  int
		Segments []segmentSummary
	}{Objects: h.count}
	for _, seg := range h.segments {
		summary.Segments = append(summary.Segments, segmentSummary{
			Capacity: len(seg.slots),
			Used:     seg.top,
		})
	}
	return spew.Sdump(summary)
}

func (h *Heap) newConsCell(car, cdr Sexp) *Header {
	cell := &ConsCell{Car: car, Cdr: cdr}
	return h.allocate(TypeConsCell, unsafe.Sizeof(*cell), unsafe.Pointer(cell))
}

func (h *Heap) newString(s string) *Header {
	str := &stringObject{Value: s}
	return h.allocate(TypeString, unsafe.Sizeof(*str), unsafe.Pointer(str))
}

func (h *Heap) newUserProc(proc *UserProc) *Header {
	return h.allocate(TypeUserProc, unsafe.Sizeof(*proc), unsafe.Pointer(proc))
}

func (h *Heap) newBuiltinProc(proc *BuiltinProc) *Header {
	return h.allocate(TypeBuiltinProc, unsafe.Sizeof(*proc), unsafe.Pointer(proc))
}

func (h *Heap) newScope(prev *Header) *Header {
	scope := &Scope{Bindings: make(map[symbol.Symbol]Sexp, 8), Prev: prev}
	return h.allocate(TypeScope, unsafe.Sizeof(*scope), unsafe.Pointer(scope))
}

func consCellAt(h *Header) (*ConsCell, bool) {
	if h == nil || h.Type != TypeConsCell {
		return nil, false
	}
	return (*ConsCell)(h.payload), true
}

func stringAt(h *Header) (*stringObject, bool) {
	if h == nil || h.Type != TypeString {
		return nil, false
	}
	return (*stringObject)(h.payload), true
}

func userProcAt(h *Header) (*UserProc, bool) {
	if h == nil || h.Type != TypeUserProc {
		return nil, false
	}
	return (*UserProc)(h.payload), true
}

func builtinProcAt(h *Header) (*BuiltinProc, bool) {
	if h == nil || h.Type != TypeBuiltinProc {
		return nil, false
	}
	return (*BuiltinProc)(h.payload), true
}

func scopeAt(h *Header) (*Scope, bool) {
	if h == nil || h.Type != TypeScope {
		return nil, false
	}
	return (*Scope)(h.payload), true
}
