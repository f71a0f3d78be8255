package wire

import (
	"encoding/binary"
	"fmt"
	"io"

	"qgo/errs"
)

// MessageKind is byte 1 of the frame header.
type MessageKind byte

const (
	MsgAsync       MessageKind = 0
	MsgSyncRequest MessageKind = 1
	MsgResponse    MessageKind = 2
)

const headerSize = 8

// Frame is the decoded 8-byte header plus the (already decompressed)
// body bytes of one message.
type Frame struct {
	Little     bool
	Kind       MessageKind
	Compressed bool
	Body       []byte
}

// Order returns the binary.ByteOrder the frame's header declared, so the
// caller can pass it straight through to Decode.
func (f Frame) Order() binary.ByteOrder {
	if f.Little {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// ReadFrame reads one complete frame from r: the 8-byte header, then
// exactly enough body bytes to satisfy the declared total length
// (which counts the header itself). A compressed body is inflated
// before being returned, so Frame.Body is always ready for Decode.
func ReadFrame(r io.Reader) (Frame, error) {
	var hdr [headerSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return Frame{}, &errs.ConnectionError{Op: "read frame header", Err: err}
	}

	little := hdr[0] == 1
	var order binary.ByteOrder = binary.BigEndian
	if little {
		order = binary.LittleEndian
	}
	total := order.Uint32(hdr[4:8])
	if total < headerSize {
		return Frame{}, &errs.DeserializationError{Kind: "frame", Err: fmt.Errorf("declared length %d is shorter than the header", total)}
	}

	bodyLen := int(total) - headerSize
	body := make([]byte, bodyLen)
	if bodyLen > 0 {
		if _, err := io.ReadFull(r, body); err != nil {
			return Frame{}, &errs.ConnectionError{Op: "read frame body", Err: err}
		}
	}

	compressed := hdr[2] == 1
	if compressed {
		decompressed, err := DecompressLZ(body)
		if err != nil {
			return Frame{}, &errs.DeserializationError{Kind: "compression", Err: err}
		}
		body = decompressed
	}

	return Frame{
		Little:     little,
		Kind:       MessageKind(hdr[1]),
		Compressed: compressed,
		Body:       body,
	}, nil
}

// WriteFrame writes tv as one frame of the given kind. The client
// always declares little-endian (byte 0 = 1) and writes uncompressed
// bodies — the protocol lets the client pick its write endianness, and
// the server never requires client-side compression.
func WriteFrame(w io.Writer, kind MessageKind, tv TV) error {
	body, err := Encode(tv)
	if err != nil {
		return err
	}

	var hdr [headerSize]byte
	hdr[0] = 1 // little-endian
	hdr[1] = byte(kind)
	hdr[2] = 0 // uncompressed
	hdr[3] = 0 // reserved
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(headerSize+len(body)))

	if _, err := w.Write(hdr[:]); err != nil {
		return &errs.ConnectionError{Op: "write frame header", Err: err}
	}
	if len(body) > 0 {
		if _, err := w.Write(body); err != nil {
			return &errs.ConnectionError{Op: "write frame body", Err: err}
		}
	}
	return nil
}
