// Package index implements the staging area: the set of pending
// additions and removals that `commit` folds into the next snapshot
// (spec.md §3, §4.4).
package index

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/emirpasic/gods/maps/treemap"

	"github.com/nullstate/gitlet/oid"
)

const fileName = "index"

var indexMagic = [4]byte{'G', 'I', 'D', 'X'}

// Index is the staging area: an ordered map of path -> staged blob OID
// for additions, and a set of paths marked for removal. A path is never
// in both at once (spec.md §3 invariant).
type Index struct {
	additions *treemap.Map // string -> oid.OID
	removals  map[string]struct{}
}

// New returns an empty staging area.
func New() *Index {
	return &Index{
		additions: treemap.NewWithStringComparator(),
		removals:  make(map[string]struct{}),
	}
}

// StageAdd records path -> o as a pending addition. If path was staged
// for removal, that's undone instead (spec.md §4.4: "if path is in
// removals, remove it from removals only").
func (idx *Index) StageAdd(path string, o oid.OID) {
	if _, staged := idx.removals[path]; staged {
		delete(idx.removals, path)
		return
	}
	idx.additions.Put(path, o)
}

// StageRemove marks path for removal and drops any pending addition for
// it.
func (idx *Index) StageRemove(path string) {
	idx.additions.Remove(path)
	idx.removals[path] = struct{}{}
}

// UnstageAdd removes path from the additions set without touching
// removals.
func (idx *Index) UnstageAdd(path string) {
	idx.additions.Remove(path)
}

// UnstageRemove removes path from the removals set.
func (idx *Index) UnstageRemove(path string) {
	delete(idx.removals, path)
}

// Clear empties both additions and removals.
func (idx *Index) Clear() {
	idx.additions.Clear()
	idx.removals = make(map[string]struct{})
}

// IsEmpty reports whether there is nothing staged at all.
func (idx *Index) IsEmpty() bool {
	return idx.additions.Size() == 0 && len(idx.removals) == 0
}

// ContainsAdd reports whether path is staged for addition.
func (idx *Index) ContainsAdd(path string) bool {
	_, found := idx.additions.Get(path)
	return found
}

// ContainsRemove reports whether path is staged for removal.
func (idx *Index) ContainsRemove(path string) bool {
	_, found := idx.removals[path]
	return found
}

// GetAdd returns the blob OID staged for path, if any.
func (idx *Index) GetAdd(path string) (oid.OID, bool) {
	v, found := idx.additions.Get(path)
	if !found {
		return oid.Zero, false
	}
	return v.(oid.OID), true
}

// Additions calls fn for every staged addition in lexicographic path
// order (storage order; callers wanting the case-insensitive order used
// by `status` should sort the result themselves).
func (idx *Index) Additions(fn func(path string, o oid.OID)) {
	idx.additions.Each(func(k, v any) {
		fn(k.(string), v.(oid.OID))
	})
}

// Removals returns the staged-for-removal paths in lexicographic order.
func (idx *Index) Removals() []string {
	paths := make([]string, 0, len(idx.removals))
	for p := range idx.removals {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Load reads the staging area persisted in the index file under root (a
// repository's `.gitlet` directory).
// A missing file is treated as an empty, freshly-initialized index.
func Load(root string) (*Index, error) {
	data, err := os.ReadFile(filepath.Join(root, fileName))
	if os.IsNotExist(err) {
		return New(), nil
	}
	if err != nil {
		return nil, err
	}
	return decode(data)
}

// Save persists idx as a single record in the index file under root,
// atomically replacing any previous contents (spec.md §5: "Staging is
// persisted atomically as a single serialized record").
func (idx *Index) Save(root string) error {
	path := filepath.Join(root, fileName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, idx.encode(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (idx *Index) encode() []byte {
	var buf bytes.Buffer
	buf.Write(indexMagic[:])
	writeUvarint(&buf, uint64(idx.additions.Size()))
	idx.additions.Each(func(k, v any) {
		writeString(&buf, k.(string))
		o := v.(oid.OID)
		buf.Write(o[:])
	})
	writeUvarint(&buf, uint64(len(idx.removals)))
	for _, p := range idx.Removals() {
		writeString(&buf, p)
	}
	return buf.Bytes()
}

func decode(data []byte) (*Index, error) {
	if len(data) < 4 || [4]byte{data[0], data[1], data[2], data[3]} != indexMagic {
		return nil, os.ErrInvalid
	}
	r := bytes.NewReader(data[4:])
	idx := New()
	nAdd, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, err
	}
	for i := uint64(0); i < nAdd; i++ {
		path, err := readString(r)
		if err != nil {
			return nil, err
		}
		var o oid.OID
		if _, err := io.ReadFull(r, o[:]); err != nil {
			return nil, err
		}
		idx.additions.Put(path, o)
	}
	nRem, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, err
	}
	for i := uint64(0); i < nRem; i++ {
		path, err := readString(r)
		if err != nil {
			return nil, err
		}
		idx.removals[path] = struct{}{}
	}
	return idx, nil
}

func writeUvarint(buf *bytes.Buffer, v uint64) {
	var b [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(b[:], v)
	buf.Write(b[:n])
}

func writeString(buf *bytes.Buffer, s string) {
	writeUvarint(buf, uint64(len(s)))
	buf.WriteString(s)
}

func readString(r *bytes.Reader) (string, error) {
	n, err := binary.ReadUvarint(r)
	if err != nil {
		return "", err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	return string(b), nil
}
