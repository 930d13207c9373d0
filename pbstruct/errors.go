// Package pbstruct implements the structural parsers built on the
// primitive codec and the framing signature: the Table Definition File
// parser, the file directory listing parser, and the Collect-Data record
// stream parser (§4.5).
package pbstruct

import "fmt"

// ErrTableNotFound reports that a caller named a table absent from the
// table definitions it supplied (§7).
type ErrTableNotFound struct {
	Name string
}

func (e *ErrTableNotFound) Error() string {
	return fmt.Sprintf("pbstruct: table %q not found", e.Name)
}

// ErrFieldNotResolved reports that one or more requested field names
// don't match any field in the relevant table definition (§7).
type ErrFieldNotResolved struct {
	Names []string
}

func (e *ErrFieldNotResolved) Error() string {
	return fmt.Sprintf("pbstruct: field name(s) not resolved: %v", e.Names)
}
