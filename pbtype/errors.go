package pbtype

import "errors"

// ErrMalformedCodec reports a decode that ran off the end of the buffer, or
// an ASCIIZ value missing its NUL terminator.
var ErrMalformedCodec = errors.New("pbtype: malformed codec input")

// ErrUnsupportedType reports an unknown or unregistered Type code.
var ErrUnsupportedType = errors.New("pbtype: unsupported type")
