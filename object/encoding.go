package object

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"

	"github.com/nullstate/gitlet/oid"
)

// ErrMismatchedMagic is returned when decoding bytes that do not start
// with the expected object-kind magic.
var ErrMismatchedMagic = errors.New("object: mismatched magic")

// ErrMismatchedVersion is returned when decoding an object encoded with
// a newer or unrecognized version byte.
var ErrMismatchedVersion = errors.New("object: mismatched version")

// commitMagic tags a serialized commit, mirroring the teacher's
// COMMIT_MAGIC convention so a foreign or truncated file on disk is
// rejected with a typed error instead of silently misparsed.
var commitMagic = [4]byte{'G', 'C', 'M', 'T'}

const commitVersion = 1

type encoder struct {
	buf bytes.Buffer
}

func (e *encoder) writeBytes(b []byte) {
	var lenBuf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(lenBuf[:], uint64(len(b)))
	e.buf.Write(lenBuf[:n])
	e.buf.Write(b)
}

func (e *encoder) writeString(s string) {
	e.writeBytes([]byte(s))
}

func (e *encoder) writeOID(o oid.OID) {
	e.buf.Write(o[:])
}

func (e *encoder) writeBool(b bool) {
	if b {
		e.buf.WriteByte(1)
	} else {
		e.buf.WriteByte(0)
	}
}

func (e *encoder) writeUvarint(v uint64) {
	var b [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(b[:], v)
	e.buf.Write(b[:n])
}

type decoder struct {
	r *bytes.Reader
}

func newDecoder(b []byte) *decoder {
	return &decoder{r: bytes.NewReader(b)}
}

func (d *decoder) readBytes() ([]byte, error) {
	n, err := binary.ReadUvarint(d.r)
	if err != nil {
		return nil, err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(d.r, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (d *decoder) readString() (string, error) {
	b, err := d.readBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (d *decoder) readOID() (oid.OID, error) {
	var o oid.OID
	if _, err := io.ReadFull(d.r, o[:]); err != nil {
		return oid.Zero, err
	}
	return o, nil
}

func (d *decoder) readBool() (bool, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

func (d *decoder) readUvarint() (uint64, error) {
	return binary.ReadUvarint(d.r)
}
