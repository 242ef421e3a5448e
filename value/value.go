// Package value defines the VM's tagged Value type and the heap
// object model (currently just interned strings) that Values can
// reference.
package value

import (
	"fmt"
	"strconv"
)

// Kind discriminates the variants a Value may hold.
type Kind int

const (
	KindBool Kind = iota
	KindNil
	KindNumber
	KindObject
)

// Value is a tagged union over the language's primitive shapes. Only
// one of the payload fields is meaningful, selected by Kind — Go has
// no native tagged union, so this follows the same shape as a C
// struct-with-union, just with one field per variant instead of a
// single overlapping one.
type Value struct {
	kind   Kind
	number float64
	boolean bool
	obj    *Obj
}

func Bool(b bool) Value    { return Value{kind: KindBool, boolean: b} }
func Nil() Value           { return Value{kind: KindNil} }
func Number(n float64) Value { return Value{kind: KindNumber, number: n} }
func Object(o *Obj) Value  { return Value{kind: KindObject, obj: o} }

func (v Value) IsBool() bool   { return v.kind == KindBool }
func (v Value) IsNil() bool    { return v.kind == KindNil }
func (v Value) IsNumber() bool { return v.kind == KindNumber }
func (v Value) IsObject() bool { return v.kind == KindObject }

func (v Value) AsBool() bool     { return v.boolean }
func (v Value) AsNumber() float64 { return v.number }
func (v Value) AsObject() *Obj   { return v.obj }

// IsString reports whether v holds a String object.
func (v Value) IsString() bool {
	return v.kind == KindObject && v.obj != nil && v.obj.Type == ObjString
}

// AsString returns the Go string backing a String object. Callers
// must check IsString first.
func (v Value) AsString() string {
	return v.obj.str
}

// Equal compares two Values for the language's `==` operator.
//
// Parameters:
//   - a, b: Value
//     The two values to compare. Order does not matter.
//
// Returns:
//   - bool: true if a and b hold the same Kind and that Kind's
//     values compare equal — booleans and numbers by value, nil
//     unconditionally, objects by reference identity (which, because
//     of interning, is structural equality for strings). Values of
//     different Kinds are never equal.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindBool:
		return a.boolean == b.boolean
	case KindNil:
		return true
	case KindNumber:
		return a.number == b.number
	case KindObject:
		return a.obj == b.obj
	default:
		return false
	}
}

// String renders v the way the language's `print` statement does:
// nil, true/false, the shortest %g-equivalent float representation,
// or a string's raw bytes.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		if v.boolean {
			return "true"
		}
		return "false"
	case KindNil:
		return "nil"
	case KindNumber:
		return strconv.FormatFloat(v.number, 'g', -1, 64)
	case KindObject:
		return v.obj.String()
	default:
		return fmt.Sprintf("<invalid value kind %d>", v.kind)
	}
}
