package repo

import (
	"fmt"
	"io"

	"github.com/nullstate/gitlet/errs"
	"github.com/nullstate/gitlet/object"
)

// yellow wraps s in the teacher's own commit-header color sequence
// (pkg/zeta/pager.go: "\x1b[33mcommit %s\x1b[0m") when useColor is set;
// otherwise it is returned unchanged. Purely cosmetic — never affects
// what is printed when output isn't an interactive terminal.
func yellow(s string, useColor bool) string {
	if !useColor {
		return s
	}
	return "\x1b[33m" + s + "\x1b[0m"
}

// printCommit writes a single commit's fixed-format block per spec.md
// §4.5, shared by Log and GlobalLog.
func printCommit(w io.Writer, c *object.Commit, useColor bool) error {
	if _, err := fmt.Fprintln(w, "==="); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n", yellow(fmt.Sprintf("commit %s", c.Hash), useColor)); err != nil {
		return err
	}
	if c.IsMerge() {
		if _, err := fmt.Fprintf(w, "Merge: %s %s\n", c.Parent.String()[:7], c.SecondParent.String()[:7]); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Date: %s -0800\n", c.Timestamp); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n\n", c.Message); err != nil {
		return err
	}
	return nil
}

// Log walks from the head commit following only Parent edges (never
// SecondParent — spec.md §4.5: "ignores second_parent"), newest first,
// writing each commit's block to w.
func (r *Repository) Log(w io.Writer) error {
	c, err := r.headCommit()
	if err != nil {
		return err
	}
	for {
		if err := printCommit(w, c, r.UseColor); err != nil {
			return err
		}
		if c.Parent == nil {
			return nil
		}
		c, err = r.Store.GetCommit(*c.Parent)
		if err != nil {
			return err
		}
	}
}

// LogCommits returns the same sequence Log prints, as commit values,
// for callers that want the data without the formatting.
func (r *Repository) LogCommits() ([]*object.Commit, error) {
	c, err := r.headCommit()
	if err != nil {
		return nil, err
	}
	var out []*object.Commit
	for {
		out = append(out, c)
		if c.Parent == nil {
			return out, nil
		}
		c, err = r.Store.GetCommit(*c.Parent)
		if err != nil {
			return nil, err
		}
	}
}

// GlobalLog writes every commit in the object store, in unspecified
// order, using the same per-commit block format as Log (spec.md §4.5
// `global-log`).
func (r *Repository) GlobalLog(w io.Writer) error {
	return r.Store.IterCommits(func(c *object.Commit) error {
		return printCommit(w, c, r.UseColor)
	})
}

// Find writes the OID of every commit whose message equals message,
// one per line. It fails with errs.ErrNoMatch if none match (spec.md
// §4.5 `find`).
func (r *Repository) Find(w io.Writer, message string) error {
	found := false
	err := r.Store.IterCommits(func(c *object.Commit) error {
		if c.Message == message {
			found = true
			if _, err := fmt.Fprintln(w, c.Hash); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if !found {
		return errs.ErrNoMatch
	}
	return nil
}
