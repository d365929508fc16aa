package object

import (
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/nullstate/gitlet/oid"
)

// DateFormat is the layout used for a commit's stored timestamp field,
// per spec.md §3: "E MMM dd HH:mm:ss yyyy". The "-0800" offset suffix
// mentioned there is appended wherever the timestamp is displayed (see
// log.go), not stored as part of this field — this mirrors the original
// tool's behavior of stamping a literal Pacific-time suffix onto the
// host's real wall clock regardless of its actual zone, deliberately not
// "fixed" here (spec.md §9).
const DateFormat = "Mon Jan 02 15:04:05 2006"

// EpochTimestamp is the fixed timestamp string used for the repository's
// initial commit.
const EpochTimestamp = "Thu Jan 01 00:00:00 1970"

// FormatTimestamp renders t using DateFormat.
func FormatTimestamp(t time.Time) string {
	return t.Format(DateFormat)
}

// Commit is an immutable snapshot: a message, a tree, zero or one
// parents (the second only present for merge commits), and a timestamp.
// Hash is computed once at construction and never recomputed.
type Commit struct {
	Hash         oid.OID
	Message      string
	Timestamp    string
	Tree         *Tree
	Parent       *oid.OID // nil for the initial commit
	SecondParent *oid.OID // non-nil only for a merge commit
	nonce        [16]byte
}

// New builds and hashes a new commit. parent may be nil (initial commit
// only); secondParent is non-nil only when constructing a merge commit.
//
// Per spec.md §3/§9, the hash is computed from (message, timestamp, a
// fresh random nonce, tree, parent) — notably NOT including secondParent,
// so two merge commits produced in the same tick with the same first
// parent, tree and message collide in OID space only if they also share
// the full hash preimage; secondParent participates in the full encoding
// (needed for storage round-trip) but not in the hash, matching the
// literal wording of spec.md §3 (see DESIGN.md for this as a resolved
// Open Question).
func New(message, timestamp string, tree *Tree, parent, secondParent *oid.OID) *Commit {
	c := &Commit{
		Message:      message,
		Timestamp:    timestamp,
		Tree:         tree,
		Parent:       parent,
		SecondParent: secondParent,
		nonce:        [16]byte(uuid.New()),
	}
	c.Hash = oid.Of(c.hashPreimage())
	return c
}

func (c *Commit) hashPreimage() []byte {
	e := &encoder{}
	e.writeString(c.Message)
	e.writeString(c.Timestamp)
	e.buf.Write(c.nonce[:])
	e.writeUvarint(uint64(c.Tree.Len()))
	c.Tree.Each(func(path string, o oid.OID) {
		e.writeString(path)
		e.writeOID(o)
	})
	e.writeBool(c.Parent != nil)
	if c.Parent != nil {
		e.writeOID(*c.Parent)
	}
	return e.buf.Bytes()
}

// Encode serializes c to its on-disk binary form. Unlike hashPreimage,
// this includes SecondParent, since it must round-trip through Decode.
func (c *Commit) Encode() []byte {
	e := &encoder{}
	e.buf.Write(commitMagic[:])
	e.buf.WriteByte(commitVersion)
	e.buf.Write(c.Hash[:])
	e.buf.Write(c.nonce[:])
	e.writeString(c.Message)
	e.writeString(c.Timestamp)
	e.writeUvarint(uint64(c.Tree.Len()))
	c.Tree.Each(func(path string, o oid.OID) {
		e.writeString(path)
		e.writeOID(o)
	})
	e.writeBool(c.Parent != nil)
	if c.Parent != nil {
		e.writeOID(*c.Parent)
	}
	e.writeBool(c.SecondParent != nil)
	if c.SecondParent != nil {
		e.writeOID(*c.SecondParent)
	}
	return e.buf.Bytes()
}

// DecodeCommit parses a commit previously produced by Encode.
func DecodeCommit(b []byte) (*Commit, error) {
	if len(b) < len(commitMagic)+1 {
		return nil, ErrMismatchedMagic
	}
	var magic [4]byte
	copy(magic[:], b[:4])
	if magic != commitMagic {
		return nil, ErrMismatchedMagic
	}
	if b[4] != commitVersion {
		return nil, ErrMismatchedVersion
	}
	d := newDecoder(b[5:])
	c := &Commit{}
	hash, err := d.readOID()
	if err != nil {
		return nil, err
	}
	c.Hash = hash
	if _, err := io.ReadFull(d.r, c.nonce[:]); err != nil {
		return nil, err
	}
	if c.Message, err = d.readString(); err != nil {
		return nil, err
	}
	if c.Timestamp, err = d.readString(); err != nil {
		return nil, err
	}
	n, err := d.readUvarint()
	if err != nil {
		return nil, err
	}
	c.Tree = NewTree()
	for i := uint64(0); i < n; i++ {
		path, err := d.readString()
		if err != nil {
			return nil, err
		}
		o, err := d.readOID()
		if err != nil {
			return nil, err
		}
		c.Tree.Set(path, o)
	}
	hasParent, err := d.readBool()
	if err != nil {
		return nil, err
	}
	if hasParent {
		p, err := d.readOID()
		if err != nil {
			return nil, err
		}
		c.Parent = &p
	}
	hasSecondParent, err := d.readBool()
	if err != nil {
		return nil, err
	}
	if hasSecondParent {
		p, err := d.readOID()
		if err != nil {
			return nil, err
		}
		c.SecondParent = &p
	}
	return c, nil
}

// IsMerge reports whether c has a second parent.
func (c *Commit) IsMerge() bool {
	return c.SecondParent != nil
}

// IsInitial reports whether c has no parent.
func (c *Commit) IsInitial() bool {
	return c.Parent == nil
}
