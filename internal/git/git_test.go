package git

import (
	"context"
	"os/exec"
	"testing"
)

// initRepo creates a git repository in a temp dir, skipping the test
// when the git binary is unavailable.
func initRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}

	dir := t.TempDir()
	for _, args := range [][]string{
		{"init", "-q"},
		{"config", "user.email", "test@example.com"},
		{"config", "user.name", "Test"},
	} {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v failed: %v\n%s", args, err, out)
		}
	}
	return dir
}

func commit(t *testing.T, dir, message string) {
	t.Helper()
	cmd := exec.Command("git", "commit", "-q", "--allow-empty", "-m", message)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git commit failed: %v\n%s", err, out)
	}
}

func TestIsWorkTree(t *testing.T) {
	ctx := context.Background()
	repo := initRepo(t)

	if !IsWorkTree(ctx, repo) {
		t.Error("IsWorkTree() = false inside a repository")
	}
	if IsWorkTree(ctx, t.TempDir()) {
		t.Error("IsWorkTree() = true outside a repository")
	}
}

func TestTopLevel(t *testing.T) {
	ctx := context.Background()
	repo := initRepo(t)

	top, err := TopLevel(ctx, repo)
	if err != nil {
		t.Fatalf("TopLevel() failed: %v", err)
	}
	if top == "" {
		t.Error("TopLevel() returned empty path")
	}
}

func TestHeadHash(t *testing.T) {
	ctx := context.Background()
	repo := initRepo(t)

	// No commits yet: the commit being prepared has no parent.
	hash, err := HeadHash(ctx, repo)
	if err != nil {
		t.Fatalf("HeadHash() on empty repo failed: %v", err)
	}
	if hash != "" {
		t.Errorf("HeadHash() = %q on empty repo, want empty", hash)
	}

	commit(t, repo, "initial")
	hash, err = HeadHash(ctx, repo)
	if err != nil {
		t.Fatalf("HeadHash() failed: %v", err)
	}
	if len(hash) != 40 {
		t.Errorf("HeadHash() = %q, want a 40-char hash", hash)
	}
}

func TestGitDir(t *testing.T) {
	ctx := context.Background()
	repo := initRepo(t)

	gitDir, err := GitDir(ctx, repo)
	if err != nil {
		t.Fatalf("GitDir() failed: %v", err)
	}
	if gitDir == "" {
		t.Error("GitDir() returned empty path")
	}
}
