package object

import "github.com/nullstate/gitlet/oid"

// Blob is an uninterpreted byte sequence. Per spec.md §4.1, the blob
// encoder does not add a nonce or a header: a blob's OID is the SHA-1 of
// its raw bytes, full stop, so two files with identical content always
// collide to the same object regardless of when or where they were
// added.
type Blob struct {
	Hash oid.OID
	Data []byte
}

// NewBlob hashes data and returns the resulting Blob.
func NewBlob(data []byte) *Blob {
	return &Blob{Hash: oid.Of(data), Data: data}
}
