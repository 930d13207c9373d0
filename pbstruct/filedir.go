package pbstruct

import "github.com/cscipb/pakbus/pbtype"

// FileEntry is one directory entry in a parsed file directory listing
// (§4.5). Attribute holds at most 12 nonzero attribute bytes; a zero
// attribute ends the list early.
type FileEntry struct {
	Name       string
	Size       uint32
	LastUpdate string
	Attribute  []byte
}

// FileDirectory is a parsed file directory listing, the decoded contents
// of the reserved directory pseudo-file (§4.5).
type FileDirectory struct {
	DirVersion byte
	Files      []FileEntry
}

// ParseFileDirectory parses a file directory listing body.
func ParseFileDirectory(raw []byte) (FileDirectory, error) {
	var dir FileDirectory
	if len(raw) < 1 {
		return dir, pbtype.ErrMalformedCodec
	}
	dir.DirVersion = raw[0]
	off := 1

	for {
		name, n, err := decodeASCIIZ(raw[off:])
		if err != nil {
			return dir, err
		}
		off += n
		if name == "" {
			break
		}

		entry := FileEntry{Name: name}
		values, n, err := pbtype.Decode([]pbtype.Type{pbtype.UInt4, pbtype.ASCIIZ}, raw[off:], 0)
		if err != nil {
			return dir, err
		}
		off += n
		entry.Size = values[0].(uint32)
		entry.LastUpdate = values[1].(string)

		for i := 0; i < 12; i++ {
			if off >= len(raw) {
				return dir, pbtype.ErrMalformedCodec
			}
			attr := raw[off]
			off++
			if attr == 0 {
				break
			}
			entry.Attribute = append(entry.Attribute, attr)
		}

		dir.Files = append(dir.Files, entry)
	}

	return dir, nil
}
