package pbframe

// ByteSource is the minimal read side a FrameReader needs from a
// transport: "receive up to n bytes", mirroring a raw socket recv(n).
// transport.Transport satisfies this without pbframe importing it.
type ByteSource interface {
	Recv(n int) ([]byte, error)
}

// FrameReader pulls one complete PakBus packet at a time off a ByteSource,
// per the Receive algorithm in §4.2: read bytes until a Frame delimiter is
// seen, skip any run of back-to-back delimiters (handles two packets sent
// back to back with no gap), then collect until the next delimiter.
type FrameReader struct {
	src ByteSource
}

// NewFrameReader wraps src.
func NewFrameReader(src ByteSource) *FrameReader {
	return &FrameReader{src: src}
}

func (r *FrameReader) readByte() (byte, error) {
	b, err := r.src.Recv(1)
	if err != nil {
		return 0, err
	}
	if len(b) == 0 {
		return 0, &ErrFrameCorrupt{Reason: "transport returned zero bytes"}
	}
	return b[0], nil
}

// ReadPacket blocks for one delimited, unquoted, signature-verified
// packet and strips its trailing nullifier. It returns *ErrFrameCorrupt
// for bad quoting or a nonzero signature; any other error is the
// underlying transport's.
func (r *FrameReader) ReadPacket() ([]byte, error) {
	b, err := r.readByte()
	if err != nil {
		return nil, err
	}
	for b != Frame {
		b, err = r.readByte()
		if err != nil {
			return nil, err
		}
	}
	for b == Frame {
		b, err = r.readByte()
		if err != nil {
			return nil, err
		}
	}
	var framed []byte
	for b != Frame {
		framed = append(framed, b)
		b, err = r.readByte()
		if err != nil {
			return nil, err
		}
	}
	return Decode(framed)
}
