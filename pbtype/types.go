// Package pbtype implements the PakBus/BMP5 primitive data type table and
// the typed binary codec built on top of it (BMP5 Transparent Commands
// Manual, Appendix A).
package pbtype

import "fmt"

// Type identifies one of the PakBus primitive wire types by its protocol
// code. Type extensions must register a matching entry in typeTable.
type Type uint8

// The PakBus primitive types, named exactly as the BMP5 manual names them.
// Values equal the wire code transmitted in a table-definition FieldType
// byte (low seven bits) and in the Get Values Type byte.
const (
	Byte    Type = 1
	UInt2   Type = 2
	UInt4   Type = 3
	Int1    Type = 4
	Int2    Type = 5
	Int4    Type = 6
	FP2     Type = 7
	FP4     Type = 8
	IEEE4B  Type = 9
	Bool    Type = 10
	ASCII   Type = 11
	Sec     Type = 12
	USec    Type = 13
	NSec    Type = 14
	FP3     Type = 15
	ASCIIZ  Type = 16
	Bool8   Type = 17
	IEEE8B  Type = 18
	Short   Type = 19
	Long    Type = 20
	UShort  Type = 21
	ULong   Type = 22
	SecNano Type = 23
	IEEE4L  Type = 24
	IEEE8L  Type = 25
	Bool2   Type = 27
	Bool4   Type = 28
)

// byteOrder distinguishes the wire byte order of a fixed-width type.
type byteOrder uint8

const (
	bigEndian byteOrder = iota
	littleEndian
	noOrder // types with no ordinary integer layout: ASCII(Z), FP2, FP3, FP4, USec
)

// info describes one primitive type's wire shape. size is -1 for
// variable-length types (ASCII, ASCIIZ).
type info struct {
	name  string
	size  int
	order byteOrder
}

var typeTable = map[Type]info{
	Byte:    {"Byte", 1, bigEndian},
	UInt2:   {"UInt2", 2, bigEndian},
	UInt4:   {"UInt4", 4, bigEndian},
	Int1:    {"Int1", 1, bigEndian},
	Int2:    {"Int2", 2, bigEndian},
	Int4:    {"Int4", 4, bigEndian},
	FP2:     {"FP2", 2, noOrder},
	FP3:     {"FP3", 3, noOrder},
	FP4:     {"FP4", 4, noOrder},
	IEEE4B:  {"IEEE4B", 4, bigEndian},
	IEEE8B:  {"IEEE8B", 8, bigEndian},
	Bool8:   {"Bool8", 1, bigEndian},
	Bool:    {"Bool", 1, bigEndian},
	Bool2:   {"Bool2", 2, bigEndian},
	Bool4:   {"Bool4", 4, bigEndian},
	Sec:     {"Sec", 4, bigEndian},
	USec:    {"USec", 6, noOrder},
	NSec:    {"NSec", 8, bigEndian},
	ASCII:   {"ASCII", -1, noOrder},
	ASCIIZ:  {"ASCIIZ", -1, noOrder},
	Short:   {"Short", 2, littleEndian},
	Long:    {"Long", 4, littleEndian},
	UShort:  {"UShort", 2, littleEndian},
	ULong:   {"ULong", 4, littleEndian},
	IEEE4L:  {"IEEE4L", 4, littleEndian},
	IEEE8L:  {"IEEE8L", 8, littleEndian},
	SecNano: {"SecNano", 8, littleEndian},
}

// byName maps the BMP5 spelling of a type back to its Type; TypeByName
// looks names up in it.
var byName = func() map[string]Type {
	m := make(map[string]Type, len(typeTable))
	for t, inf := range typeTable {
		m[inf.name] = t
	}
	return m
}()

// Size returns the fixed wire size of t in bytes, or -1 for variable-length
// types (ASCII, ASCIIZ).
func (t Type) Size() (int, error) {
	inf, ok := typeTable[t]
	if !ok {
		return 0, fmt.Errorf("%w: code %d", ErrUnsupportedType, t)
	}
	return inf.size, nil
}

// String returns the BMP5 type name, e.g. "FP2", or a numeric fallback for
// an unregistered code.
func (t Type) String() string {
	if inf, ok := typeTable[t]; ok {
		return inf.name
	}
	return fmt.Sprintf("Type<%d>", uint8(t))
}

// ParseFieldType splits a Table Definition File field-type byte into the
// read-only flag (bit 7) and the primitive Type (bits 0-6), per §4.5.
func ParseFieldType(b byte) (readOnly bool, typ Type) {
	return b&0x80 != 0, Type(b & 0x7f)
}

// TypeByName looks up a primitive Type by its BMP5 name (e.g. "IEEE4B").
// ok is false for an unrecognised name.
func TypeByName(name string) (Type, bool) {
	t, ok := byName[name]
	return t, ok
}
