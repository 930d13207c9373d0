package pbtype

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Encode packs values against types in order, using each type's wire byte
// order and width from the primitive type table (§4.1). len(types) must
// equal len(values); a mismatch is a caller bug, not a codec failure, and
// panics like a slice index out of range would.
func Encode(types []Type, values []interface{}) ([]byte, error) {
	if len(types) != len(values) {
		panic(fmt.Sprintf("pbtype: Encode: %d types but %d values", len(types), len(values)))
	}
	var buf []byte
	for i, t := range types {
		b, err := encodeOne(t, values[i])
		if err != nil {
			return nil, fmt.Errorf("pbtype: Encode: field %d (%s): %w", i, t, err)
		}
		buf = append(buf, b...)
	}
	return buf, nil
}

func encodeOne(t Type, v interface{}) ([]byte, error) {
	switch t {
	case Byte:
		return []byte{v.(byte)}, nil
	case Bool, Bool8:
		if v.(bool) {
			return []byte{0xff}, nil
		}
		return []byte{0x00}, nil
	case Bool2:
		b := make([]byte, 2)
		if v.(bool) {
			binary.BigEndian.PutUint16(b, 1)
		}
		return b, nil
	case Bool4:
		b := make([]byte, 4)
		if v.(bool) {
			binary.BigEndian.PutUint32(b, 1)
		}
		return b, nil
	case Int1:
		return []byte{byte(v.(int8))}, nil
	case UInt2:
		b := make([]byte, 2)
		binary.BigEndian.PutUint16(b, v.(uint16))
		return b, nil
	case Int2:
		b := make([]byte, 2)
		binary.BigEndian.PutUint16(b, uint16(v.(int16)))
		return b, nil
	case UInt4:
		b := make([]byte, 4)
		binary.BigEndian.PutUint32(b, v.(uint32))
		return b, nil
	case Int4, Sec:
		b := make([]byte, 4)
		binary.BigEndian.PutUint32(b, uint32(v.(int32)))
		return b, nil
	case Short:
		b := make([]byte, 2)
		binary.LittleEndian.PutUint16(b, uint16(v.(int16)))
		return b, nil
	case UShort:
		b := make([]byte, 2)
		binary.LittleEndian.PutUint16(b, v.(uint16))
		return b, nil
	case Long:
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, uint32(v.(int32)))
		return b, nil
	case ULong:
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, v.(uint32))
		return b, nil
	case IEEE4B:
		b := make([]byte, 4)
		binary.BigEndian.PutUint32(b, math.Float32bits(v.(float32)))
		return b, nil
	case IEEE4L:
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, math.Float32bits(v.(float32)))
		return b, nil
	case IEEE8B:
		b := make([]byte, 8)
		binary.BigEndian.PutUint64(b, math.Float64bits(v.(float64)))
		return b, nil
	case IEEE8L:
		b := make([]byte, 8)
		binary.LittleEndian.PutUint64(b, math.Float64bits(v.(float64)))
		return b, nil
	case NSec:
		p := v.(TimePair)
		b := make([]byte, 8)
		binary.BigEndian.PutUint32(b[0:4], uint32(p.Sec))
		binary.BigEndian.PutUint32(b[4:8], uint32(p.Tick))
		return b, nil
	case SecNano:
		p := v.(TimePair)
		b := make([]byte, 8)
		binary.LittleEndian.PutUint32(b[0:4], uint32(p.Sec))
		binary.LittleEndian.PutUint32(b[4:8], uint32(p.Tick))
		return b, nil
	case ASCII:
		return []byte(v.(string)), nil
	case ASCIIZ:
		return append([]byte(v.(string)), 0x00), nil
	case FP2:
		return nil, fmt.Errorf("%w: FP2 is decode-only", ErrUnsupportedType)
	case FP3, FP4, USec:
		return v.([]byte), nil
	default:
		return nil, fmt.Errorf("%w: code %d", ErrUnsupportedType, t)
	}
}

// Decode unpacks count(types) values from buf in order, returning the
// decoded values and the number of bytes consumed. asciiLen supplies the
// length used for every ASCII field in types (ASCII has no
// self-describing length on the wire, per §3); it is ignored for every
// other type. Pass 0 if no ASCII field is present.
func Decode(types []Type, buf []byte, asciiLen int) ([]interface{}, int, error) {
	values := make([]interface{}, 0, len(types))
	off := 0
	for i, t := range types {
		v, n, err := decodeOne(t, buf[off:], asciiLen)
		if err != nil {
			return nil, off, fmt.Errorf("pbtype: Decode: field %d (%s): %w", i, t, err)
		}
		values = append(values, v)
		off += n
	}
	return values, off, nil
}

func need(buf []byte, n int) error {
	if len(buf) < n {
		return fmt.Errorf("%w: need %d bytes, have %d", ErrMalformedCodec, n, len(buf))
	}
	return nil
}

func decodeOne(t Type, buf []byte, asciiLen int) (interface{}, int, error) {
	switch t {
	case Byte:
		if err := need(buf, 1); err != nil {
			return nil, 0, err
		}
		return buf[0], 1, nil
	case Bool, Bool8:
		if err := need(buf, 1); err != nil {
			return nil, 0, err
		}
		return buf[0] != 0, 1, nil
	case Bool2:
		if err := need(buf, 2); err != nil {
			return nil, 0, err
		}
		return buf[0] != 0 || buf[1] != 0, 2, nil
	case Bool4:
		if err := need(buf, 4); err != nil {
			return nil, 0, err
		}
		nonzero := false
		for _, b := range buf[:4] {
			if b != 0 {
				nonzero = true
			}
		}
		return nonzero, 4, nil
	case Int1:
		if err := need(buf, 1); err != nil {
			return nil, 0, err
		}
		return int8(buf[0]), 1, nil
	case UInt2:
		if err := need(buf, 2); err != nil {
			return nil, 0, err
		}
		return binary.BigEndian.Uint16(buf), 2, nil
	case Int2:
		if err := need(buf, 2); err != nil {
			return nil, 0, err
		}
		return int16(binary.BigEndian.Uint16(buf)), 2, nil
	case UInt4:
		if err := need(buf, 4); err != nil {
			return nil, 0, err
		}
		return binary.BigEndian.Uint32(buf), 4, nil
	case Int4:
		if err := need(buf, 4); err != nil {
			return nil, 0, err
		}
		return int32(binary.BigEndian.Uint32(buf)), 4, nil
	case Sec:
		if err := need(buf, 4); err != nil {
			return nil, 0, err
		}
		return int32(binary.BigEndian.Uint32(buf)), 4, nil
	case Short:
		if err := need(buf, 2); err != nil {
			return nil, 0, err
		}
		return int16(binary.LittleEndian.Uint16(buf)), 2, nil
	case UShort:
		if err := need(buf, 2); err != nil {
			return nil, 0, err
		}
		return binary.LittleEndian.Uint16(buf), 2, nil
	case Long:
		if err := need(buf, 4); err != nil {
			return nil, 0, err
		}
		return int32(binary.LittleEndian.Uint32(buf)), 4, nil
	case ULong:
		if err := need(buf, 4); err != nil {
			return nil, 0, err
		}
		return binary.LittleEndian.Uint32(buf), 4, nil
	case IEEE4B:
		if err := need(buf, 4); err != nil {
			return nil, 0, err
		}
		return math.Float32frombits(binary.BigEndian.Uint32(buf)), 4, nil
	case IEEE4L:
		if err := need(buf, 4); err != nil {
			return nil, 0, err
		}
		return math.Float32frombits(binary.LittleEndian.Uint32(buf)), 4, nil
	case IEEE8B:
		if err := need(buf, 8); err != nil {
			return nil, 0, err
		}
		return math.Float64frombits(binary.BigEndian.Uint64(buf)), 8, nil
	case IEEE8L:
		if err := need(buf, 8); err != nil {
			return nil, 0, err
		}
		return math.Float64frombits(binary.LittleEndian.Uint64(buf)), 8, nil
	case NSec:
		if err := need(buf, 8); err != nil {
			return nil, 0, err
		}
		return TimePair{
			Sec:  int32(binary.BigEndian.Uint32(buf[0:4])),
			Tick: int32(binary.BigEndian.Uint32(buf[4:8])),
		}, 8, nil
	case SecNano:
		if err := need(buf, 8); err != nil {
			return nil, 0, err
		}
		return TimePair{
			Sec:  int32(binary.LittleEndian.Uint32(buf[0:4])),
			Tick: int32(binary.LittleEndian.Uint32(buf[4:8])),
		}, 8, nil
	case FP2:
		if err := need(buf, 2); err != nil {
			return nil, 0, err
		}
		val, err := DecodeFP2(binary.BigEndian.Uint16(buf))
		if err != nil {
			return nil, 0, err
		}
		return val, 2, nil
	case FP3:
		if err := need(buf, 3); err != nil {
			return nil, 0, err
		}
		return append([]byte(nil), buf[:3]...), 3, nil
	case FP4:
		if err := need(buf, 4); err != nil {
			return nil, 0, err
		}
		return append([]byte(nil), buf[:4]...), 4, nil
	case USec:
		if err := need(buf, 6); err != nil {
			return nil, 0, err
		}
		return append([]byte(nil), buf[:6]...), 6, nil
	case ASCII:
		if err := need(buf, asciiLen); err != nil {
			return nil, 0, err
		}
		return string(buf[:asciiLen]), asciiLen, nil
	case ASCIIZ:
		nul := -1
		for i, b := range buf {
			if b == 0 {
				nul = i
				break
			}
		}
		if nul < 0 {
			return nil, 0, fmt.Errorf("%w: ASCIIZ missing NUL terminator", ErrMalformedCodec)
		}
		return string(buf[:nul]), nul + 1, nil
	default:
		return nil, 0, fmt.Errorf("%w: code %d", ErrUnsupportedType, t)
	}
}
