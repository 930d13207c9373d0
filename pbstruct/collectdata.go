package pbstruct

import (
	"encoding/binary"

	"github.com/cscipb/pakbus/pbtype"
)

// Record is one decoded Collect-Data record (§3). TimeOfRec is nil only
// if the table's stream never carries one, which doesn't happen in
// practice — interval tables read one up front and synthesise the rest,
// event-driven tables read one per record.
type Record struct {
	RecNbr    uint32
	TimeOfRec *pbtype.TimePair
	Fields    map[string][]interface{}
}

// RecordFragment is one Collect-Data record-stream fragment (§3): either
// a byte-offset fragment of a single oversized record (IsOffset), or a
// run of complete records.
type RecordFragment struct {
	TableNbr     uint16
	TableName    string
	BegRecNbr    uint32
	IsOffset     bool
	ByteOffset   uint32
	RawFragment  []byte // set when IsOffset
	Records      []Record
}

// ParseCollectData parses a Collect-Data response's RecData against the
// supplied table definitions (§4.5). fieldNbrs is the caller's 1-based
// field selection from the original request; an empty slice means every
// field in table definition order, matching the request builder's own
// "empty list means all fields" convention.
func ParseCollectData(raw []byte, tables []TableDef, fieldNbrs []int) (fragments []RecordFragment, moreRecsExist bool, err error) {
	off := 0

	for off < len(raw)-1 {
		frag := RecordFragment{}

		if len(raw[off:]) < 6 {
			return fragments, false, pbtype.ErrMalformedCodec
		}
		frag.TableNbr = binary.BigEndian.Uint16(raw[off : off+2])
		frag.BegRecNbr = binary.BigEndian.Uint32(raw[off+2 : off+6])
		off += 6

		if int(frag.TableNbr) < 1 || int(frag.TableNbr) > len(tables) {
			return fragments, false, &ErrTableNotFound{Name: "<table number unresolved>"}
		}
		table := tables[frag.TableNbr-1]
		frag.TableName = table.Header.Name

		if len(raw[off:]) < 1 {
			return fragments, false, pbtype.ErrMalformedCodec
		}
		isOffset := raw[off]&0x80 != 0
		frag.IsOffset = isOffset

		if isOffset {
			if len(raw[off:]) < 4 {
				return fragments, false, pbtype.ErrMalformedCodec
			}
			word := binary.BigEndian.Uint32(raw[off : off+4])
			off += 4
			frag.ByteOffset = word & 0x7FFFFFFF
			// all remaining bytes except the final MoreRecsExist byte
			frag.RawFragment = append([]byte(nil), raw[off:len(raw)-1]...)
			off = len(raw) - 1
			fragments = append(fragments, frag)
			break
		}

		if len(raw[off:]) < 2 {
			return fragments, false, pbtype.ErrMalformedCodec
		}
		word := binary.BigEndian.Uint16(raw[off : off+2])
		off += 2
		nbrOfRecs := int(word & 0x7FFF)

		intervalZero := table.Header.TblInterval.Sec == 0 && table.Header.TblInterval.Tick == 0
		var baseTime pbtype.TimePair
		haveBaseTime := false
		if !intervalZero {
			values, n, derr := pbtype.Decode([]pbtype.Type{pbtype.NSec}, raw[off:], 0)
			if derr != nil {
				return fragments, false, derr
			}
			off += n
			baseTime = values[0].(pbtype.TimePair)
			haveBaseTime = true
		}

		fields := fieldNbrs
		if len(fields) == 0 {
			fields = make([]int, len(table.Fields))
			for i := range table.Fields {
				fields[i] = i + 1
			}
		}

		var unresolved []string
		for _, fn := range fields {
			if fn < 1 || fn > len(table.Fields) {
				unresolved = append(unresolved, table.FieldName(fn))
			}
		}
		if len(unresolved) > 0 {
			return fragments, false, &ErrFieldNotResolved{Names: unresolved}
		}

		for n := 0; n < nbrOfRecs; n++ {
			rec := Record{RecNbr: frag.BegRecNbr + uint32(n), Fields: map[string][]interface{}{}}

			if haveBaseTime {
				t := pbtype.TimePair{
					Sec:  baseTime.Sec + int32(n)*table.Header.TblInterval.Sec,
					Tick: baseTime.Tick + int32(n)*table.Header.TblInterval.Tick,
				}
				rec.TimeOfRec = &t
			} else {
				values, nn, derr := pbtype.Decode([]pbtype.Type{pbtype.NSec}, raw[off:], 0)
				if derr != nil {
					return fragments, false, derr
				}
				off += nn
				t := values[0].(pbtype.TimePair)
				rec.TimeOfRec = &t
			}

			for _, fn := range fields {
				fd := table.Fields[fn-1]
				if fd.Type == pbtype.ASCII {
					values, nn, derr := pbtype.Decode([]pbtype.Type{pbtype.ASCII}, raw[off:], int(fd.Dimension))
					if derr != nil {
						return fragments, false, derr
					}
					off += nn
					rec.Fields[fd.Name] = values
					continue
				}
				types := make([]pbtype.Type, fd.Dimension)
				for i := range types {
					types[i] = fd.Type
				}
				values, nn, derr := pbtype.Decode(types, raw[off:], 0)
				if derr != nil {
					return fragments, false, derr
				}
				off += nn
				rec.Fields[fd.Name] = values
			}

			frag.Records = append(frag.Records, rec)
		}

		fragments = append(fragments, frag)
	}

	if len(raw[off:]) < 1 {
		return fragments, false, pbtype.ErrMalformedCodec
	}
	moreRecsExist = raw[off] != 0
	return fragments, moreRecsExist, nil
}

// FieldName returns the field name at 1-based index n if it exists, or a
// placeholder naming the out-of-range index for error reporting.
func (t TableDef) FieldName(n int) string {
	if n >= 1 && n <= len(t.Fields) {
		return t.Fields[n-1].Name
	}
	return "<field out of range>"
}
