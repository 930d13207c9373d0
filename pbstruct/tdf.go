package pbstruct

import (
	"github.com/cscipb/pakbus/pbframe"
	"github.com/cscipb/pakbus/pbtype"
)

// FieldDef is one field of a table definition (§3).
type FieldDef struct {
	ReadOnly    bool
	Type        pbtype.Type
	Name        string
	AliasNames  []string
	Processing  string
	Units       string
	Description string
	BegIdx      uint32
	Dimension   uint32
	SubDim      []uint32
}

// TableHeader is a table definition's fixed-shape preamble (§3).
type TableHeader struct {
	Name        string
	TableSize   uint32
	TimeType    byte
	TblTimeInto pbtype.TimePair
	TblInterval pbtype.TimePair
}

// TableDef is one parsed table definition entry (§3). Signature is the
// 16-bit PakBus signature of the exact byte range the entry was parsed
// from, echoed in Collect-Data requests so the peer can reject a stale
// client-side catalogue.
type TableDef struct {
	Header    TableHeader
	Fields    []FieldDef
	Signature uint16
}

// FieldByName returns the field named name (or one of its alias names),
// or ok=false.
func (t TableDef) FieldByName(name string) (FieldDef, int, bool) {
	for i, f := range t.Fields {
		if f.Name == name {
			return f, i, true
		}
		for _, alias := range f.AliasNames {
			if alias == name {
				return f, i, true
			}
		}
	}
	return FieldDef{}, 0, false
}

// ParseTableDefFile parses a complete Table Definition File (the decoded
// contents of the reserved ".TDF" file) into its FslVersion and a table
// definition per table, per §4.5.
func ParseTableDefFile(raw []byte) (fslVersion byte, tables []TableDef, err error) {
	if len(raw) < 1 {
		return 0, nil, pbtype.ErrMalformedCodec
	}
	fslVersion = raw[0]
	off := 1

	for off < len(raw) {
		start := off
		table := TableDef{}

		types := []pbtype.Type{pbtype.ASCIIZ, pbtype.UInt4, pbtype.Byte, pbtype.NSec, pbtype.NSec}
		values, n, derr := pbtype.Decode(types, raw[off:], 0)
		if derr != nil {
			return fslVersion, tables, derr
		}
		off += n
		table.Header = TableHeader{
			Name:        values[0].(string),
			TableSize:   values[1].(uint32),
			TimeType:    values[2].(byte),
			TblTimeInto: values[3].(pbtype.TimePair),
			TblInterval: values[4].(pbtype.TimePair),
		}

		for {
			if off >= len(raw) {
				return fslVersion, tables, pbtype.ErrMalformedCodec
			}
			fieldTypeByte := raw[off]
			off++
			if fieldTypeByte == 0 {
				break
			}
			readOnly, typ := pbtype.ParseFieldType(fieldTypeByte)
			field := FieldDef{ReadOnly: readOnly, Type: typ}

			name, n, derr := decodeASCIIZ(raw[off:])
			if derr != nil {
				return fslVersion, tables, derr
			}
			off += n
			field.Name = name

			for {
				alias, n, derr := decodeASCIIZ(raw[off:])
				if derr != nil {
					return fslVersion, tables, derr
				}
				off += n
				if alias == "" {
					break
				}
				field.AliasNames = append(field.AliasNames, alias)
			}

			strTypes := []pbtype.Type{pbtype.ASCIIZ, pbtype.ASCIIZ, pbtype.ASCIIZ, pbtype.UInt4, pbtype.UInt4}
			strValues, n, derr := pbtype.Decode(strTypes, raw[off:], 0)
			if derr != nil {
				return fslVersion, tables, derr
			}
			off += n
			field.Processing = strValues[0].(string)
			field.Units = strValues[1].(string)
			field.Description = strValues[2].(string)
			field.BegIdx = strValues[3].(uint32)
			field.Dimension = strValues[4].(uint32)

			for {
				if len(raw[off:]) < 4 {
					return fslVersion, tables, pbtype.ErrMalformedCodec
				}
				subValues, n, derr := pbtype.Decode([]pbtype.Type{pbtype.UInt4}, raw[off:], 0)
				if derr != nil {
					return fslVersion, tables, derr
				}
				off += n
				subdim := subValues[0].(uint32)
				if subdim == 0 {
					break
				}
				field.SubDim = append(field.SubDim, subdim)
			}

			table.Fields = append(table.Fields, field)
		}

		table.Signature = pbframe.Signature(raw[start:off])
		tables = append(tables, table)
	}

	return fslVersion, tables, nil
}

func decodeASCIIZ(buf []byte) (string, int, error) {
	values, n, err := pbtype.Decode([]pbtype.Type{pbtype.ASCIIZ}, buf, 0)
	if err != nil {
		return "", 0, err
	}
	return values[0].(string), n, nil
}
