// Package git shells out to the git binary for the small amount of
// repository state the commit hook needs: work-tree detection, the
// repository root, and the current HEAD hash.
package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// IsWorkTree reports whether dir is inside a git work tree. A missing
// git binary or a directory outside any repository both report false.
func IsWorkTree(ctx context.Context, dir string) bool {
	out, err := run(ctx, dir, "rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

// TopLevel returns the absolute path of the repository root
// containing dir.
func TopLevel(ctx context.Context, dir string) (string, error) {
	out, err := run(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("resolve repository root: %w", err)
	}
	return out, nil
}

// HeadHash returns the full hash of HEAD, or the empty string for a
// repository with no commits yet (the commit being prepared is the
// initial commit and has no parent).
func HeadHash(ctx context.Context, dir string) (string, error) {
	out, err := run(ctx, dir, "rev-parse", "HEAD")
	if err != nil {
		if strings.Contains(err.Error(), "unknown revision") ||
			strings.Contains(err.Error(), "ambiguous argument") {
			return "", nil
		}
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	return out, nil
}

// GitDir returns the absolute path of the .git directory for the
// repository containing dir.
func GitDir(ctx context.Context, dir string) (string, error) {
	out, err := run(ctx, dir, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", fmt.Errorf("resolve git dir: %w", err)
	}
	return out, nil
}

// run executes git with the given arguments in dir and returns
// trimmed stdout. Stderr is folded into the error for diagnostics.
func run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("git %s: %s: %w", strings.Join(args, " "), msg, err)
		}
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}

	return strings.TrimSpace(stdout.String()), nil
}
