// Package oid implements the content-addressed object identifiers used
// throughout the object store, reference store, and merge engine.
package oid

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"sort"
)

// Size is the digest size, in bytes, of an OID.
const Size = sha1.Size

// HexSize is the length of an OID's hexadecimal string form.
const HexSize = Size * 2

// OID is a 40-character lowercase hexadecimal SHA-1 digest identifying a
// blob or commit by the content of its binary encoding.
type OID [Size]byte

// Zero is the OID with all-zero bytes; it never names a real object.
var Zero OID

// Of returns the OID of b, i.e. the SHA-1 digest of the raw bytes.
func Of(b []byte) OID {
	return OID(sha1.Sum(b))
}

// FromHex parses a 40-character hex string into an OID. It returns the
// zero OID if s is not valid hex of the expected length.
func FromHex(s string) (OID, bool) {
	if len(s) != HexSize {
		return Zero, false
	}
	var o OID
	if _, err := hex.Decode(o[:], []byte(s)); err != nil {
		return Zero, false
	}
	return o, true
}

// String renders the OID as lowercase hex.
func (o OID) String() string {
	return hex.EncodeToString(o[:])
}

// IsZero reports whether o is the zero OID.
func (o OID) IsZero() bool {
	return o == Zero
}

// Less reports whether o sorts before other, byte-wise.
func (o OID) Less(other OID) bool {
	return bytes.Compare(o[:], other[:]) < 0
}

// Slice attaches sort.Interface to a slice of OIDs for deterministic
// byte-wise ordering.
type Slice []OID

func (s Slice) Len() int           { return len(s) }
func (s Slice) Less(i, j int) bool { return s[i].Less(s[j]) }
func (s Slice) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

// Sort sorts oids in increasing byte order.
func Sort(oids []OID) { sort.Sort(Slice(oids)) }

// HasPrefix reports whether o's hex string starts with prefix. prefix is
// assumed lowercase; callers resolving user input should lowercase it
// first.
func (o OID) HasPrefix(prefix string) bool {
	h := o.String()
	if len(prefix) > len(h) {
		return false
	}
	return h[:len(prefix)] == prefix
}
