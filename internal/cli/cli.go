// Package cli implements the front-end of spec.md §6: parses the
// positional verb surface, constructs exactly one Repository per
// invocation, and maps every outcome to its canonical diagnostic.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/nullstate/gitlet/repo"
)

// IsTerminal reports whether fd is attached to an interactive terminal,
// mirroring the teacher's modules/term.IsTerminal (also covering the
// Windows ConEmu/Cygwin pty case).
func IsTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func init() {
	logrus.SetLevel(logrus.WarnLevel)
	if debug := os.Getenv("GITLET_DEBUG"); debug != "" {
		logrus.SetLevel(logrus.DebugLevel)
	}
}

// Run dispatches args (excluding the program name) to the matching
// verb, writing results to stdout and diagnostics to stdout as well —
// per spec.md §6, every documented error is a printed message with exit
// status 0, not a process failure.
func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stdout, "Please enter a command.")
		return 0
	}

	verb, rest := args[0], args[1:]

	if verb == "init" {
		return runResult(stdout, doInit(rest))
	}

	handler, ok := verbs[verb]
	if !ok {
		fmt.Fprintln(stdout, "No command with that name exists.")
		return 0
	}

	r, err := repo.Open(".")
	if err != nil {
		fmt.Fprintln(stdout, "Not in an initialized Gitlet directory.")
		return 0
	}
	r.UseColor = stdoutIsTerminal(stdout)
	return runResult(stdout, handler(r, rest, stdout))
}

// stdoutIsTerminal reports whether w is the program's real stdout and it
// is attached to an interactive terminal. Output redirected to a file or
// pipe (or any io.Writer that isn't *os.File, e.g. in tests) never gets
// ANSI color.
func stdoutIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return IsTerminal(f.Fd())
}

var verbs = map[string]func(r *repo.Repository, args []string, stdout io.Writer) error{
	"add":         func(r *repo.Repository, a []string, _ io.Writer) error { return cmdAdd(r, a) },
	"rm":          func(r *repo.Repository, a []string, _ io.Writer) error { return cmdRm(r, a) },
	"commit":      func(r *repo.Repository, a []string, _ io.Writer) error { return cmdCommit(r, a) },
	"log":         func(r *repo.Repository, a []string, w io.Writer) error { return cmdLog(r, a, w) },
	"global-log":  func(r *repo.Repository, a []string, w io.Writer) error { return cmdGlobalLog(r, a, w) },
	"find":        func(r *repo.Repository, a []string, w io.Writer) error { return cmdFind(r, a, w) },
	"status":      func(r *repo.Repository, a []string, w io.Writer) error { return cmdStatus(r, a, w) },
	"checkout":    func(r *repo.Repository, a []string, _ io.Writer) error { return cmdCheckout(r, a) },
	"branch":      func(r *repo.Repository, a []string, _ io.Writer) error { return cmdBranch(r, a) },
	"rm-branch":   func(r *repo.Repository, a []string, _ io.Writer) error { return cmdRmBranch(r, a) },
	"reset":       func(r *repo.Repository, a []string, _ io.Writer) error { return cmdReset(r, a) },
	"merge":       func(r *repo.Repository, a []string, _ io.Writer) error { return cmdMerge(r, a) },
	"add-remote":  func(r *repo.Repository, a []string, _ io.Writer) error { return cmdAddRemote(r, a) },
	"rm-remote":   func(r *repo.Repository, a []string, _ io.Writer) error { return cmdRmRemote(r, a) },
	"push":        func(r *repo.Repository, a []string, _ io.Writer) error { return cmdPush(r, a) },
	"fetch":       func(r *repo.Repository, a []string, _ io.Writer) error { return cmdFetch(r, a) },
	"pull":        func(r *repo.Repository, a []string, _ io.Writer) error { return cmdPull(r, a) },
}

// runResult prints err's canonical message (if any) to w and always
// returns exit status 0, per spec.md §6's documented behavior.
func runResult(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	fmt.Fprintln(w, err.Error())
	return 0
}

var errIncorrectOperands = errors.New("Incorrect operands")

func requireArgs(args []string, n int) error {
	if len(args) != n {
		return errIncorrectOperands
	}
	return nil
}

func doInit(args []string) error {
	if err := requireArgs(args, 0); err != nil {
		return err
	}
	_, err := repo.Init(".")
	return err
}

func cmdAdd(r *repo.Repository, args []string) error {
	if err := requireArgs(args, 1); err != nil {
		return err
	}
	return r.Add(args[0])
}

func cmdRm(r *repo.Repository, args []string) error {
	if err := requireArgs(args, 1); err != nil {
		return err
	}
	return r.Rm(args[0])
}

func cmdCommit(r *repo.Repository, args []string) error {
	if err := requireArgs(args, 1); err != nil {
		return err
	}
	_, err := r.Commit(args[0])
	return err
}

func cmdLog(r *repo.Repository, args []string, w io.Writer) error {
	if err := requireArgs(args, 0); err != nil {
		return err
	}
	return r.Log(w)
}

func cmdGlobalLog(r *repo.Repository, args []string, w io.Writer) error {
	if err := requireArgs(args, 0); err != nil {
		return err
	}
	return r.GlobalLog(w)
}

func cmdFind(r *repo.Repository, args []string, w io.Writer) error {
	if err := requireArgs(args, 1); err != nil {
		return err
	}
	return r.Find(w, args[0])
}

func cmdStatus(r *repo.Repository, args []string, w io.Writer) error {
	if err := requireArgs(args, 0); err != nil {
		return err
	}
	return r.Status(w)
}

// cmdCheckout implements the three checkout forms of spec.md §6:
// `checkout -- <path>`, `checkout <commit> -- <path>`, `checkout <branch>`.
func cmdCheckout(r *repo.Repository, args []string) error {
	switch {
	case len(args) == 2 && args[0] == "--":
		return r.CheckoutFile(args[1])
	case len(args) == 3 && args[1] == "--":
		return r.CheckoutFileAt(args[0], args[2])
	case len(args) == 1:
		return r.CheckoutBranch(args[0])
	default:
		return errIncorrectOperands
	}
}

func cmdBranch(r *repo.Repository, args []string) error {
	if err := requireArgs(args, 1); err != nil {
		return err
	}
	return r.Branch(args[0])
}

func cmdRmBranch(r *repo.Repository, args []string) error {
	if err := requireArgs(args, 1); err != nil {
		return err
	}
	return r.RmBranch(args[0])
}

func cmdReset(r *repo.Repository, args []string) error {
	if err := requireArgs(args, 1); err != nil {
		return err
	}
	return r.Reset(args[0])
}

func cmdMerge(r *repo.Repository, args []string) error {
	if err := requireArgs(args, 1); err != nil {
		return err
	}
	return r.Merge(args[0])
}

func cmdAddRemote(r *repo.Repository, args []string) error {
	if err := requireArgs(args, 2); err != nil {
		return err
	}
	return r.AddRemote(args[0], args[1])
}

func cmdRmRemote(r *repo.Repository, args []string) error {
	if err := requireArgs(args, 1); err != nil {
		return err
	}
	return r.RmRemote(args[0])
}

func cmdPush(r *repo.Repository, args []string) error {
	if err := requireArgs(args, 2); err != nil {
		return err
	}
	return r.Push(args[0], args[1])
}

func cmdFetch(r *repo.Repository, args []string) error {
	if err := requireArgs(args, 2); err != nil {
		return err
	}
	return r.Fetch(args[0], args[1])
}

func cmdPull(r *repo.Repository, args []string) error {
	if err := requireArgs(args, 2); err != nil {
		return err
	}
	return r.Pull(args[0], args[1])
}
