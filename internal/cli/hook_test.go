package cli

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test,
// matching t.Chdir from newer Go releases.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

func initTestRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}

	dir := t.TempDir()
	for _, args := range [][]string{
		{"init", "-q"},
		{"config", "user.email", "test@example.com"},
		{"config", "user.name", "Test"},
		{"commit", "-q", "--allow-empty", "-m", "initial"},
	} {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v failed: %v\n%s", args, err, out)
		}
	}
	return dir
}

func TestHook_AppendsTrailerAndRecordsCommit(t *testing.T) {
	repo := initTestRepo(t)
	chdir(t, repo)

	db := testDBArgs(t)
	_, _, err := execute(t, append([]string{"add", "Ada"}, db...)...)
	require.NoError(t, err)

	msgPath := filepath.Join(repo, "COMMIT_EDITMSG")
	require.NoError(t, os.WriteFile(msgPath, []byte("Fix parser\n"), 0o644))

	_, _, err = execute(t, append([]string{"hook", msgPath, "message"}, db...)...)
	require.NoError(t, err)

	updated, err := os.ReadFile(msgPath)
	require.NoError(t, err)
	assert.Equal(t, "Fix parser\n\nSponsored by Ada\n", string(updated))

	// The gratitude log carries the commit context.
	out, _, err := execute(t, append([]string{"history", "--verbose"}, db...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "commit from ")
	assert.Contains(t, out, "parent: ")
}

func TestHook_EmptyPoolCreditsJustMe(t *testing.T) {
	repo := initTestRepo(t)
	chdir(t, repo)

	msgPath := filepath.Join(repo, "COMMIT_EDITMSG")
	require.NoError(t, os.WriteFile(msgPath, []byte("Fix parser\n"), 0o644))

	_, _, err := execute(t, append([]string{"hook", msgPath}, testDBArgs(t)...)...)
	require.NoError(t, err)

	updated, err := os.ReadFile(msgPath)
	require.NoError(t, err)
	assert.Contains(t, string(updated), "Sponsored by just me")
}

func TestHook_OutsideRepositoryIsUsageError(t *testing.T) {
	chdir(t, t.TempDir())

	msgPath := filepath.Join(t.TempDir(), "COMMIT_EDITMSG")
	require.NoError(t, os.WriteFile(msgPath, []byte("msg\n"), 0o644))

	_, _, err := execute(t, append([]string{"hook", msgPath}, testDBArgs(t)...)...)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestInstallHook_WritesScript(t *testing.T) {
	repo := initTestRepo(t)
	chdir(t, repo)

	out, _, err := execute(t, "install-hook")
	require.NoError(t, err)
	assert.Contains(t, out, "Installed")

	hookPath := filepath.Join(repo, ".git", "hooks", "prepare-commit-msg")
	script, err := os.ReadFile(hookPath)
	require.NoError(t, err)
	assert.Contains(t, string(script), "sponcom hook")

	// Reinstalling over our own hook is fine.
	_, _, err = execute(t, "install-hook")
	require.NoError(t, err)
}

func TestInstallHook_RefusesForeignHook(t *testing.T) {
	repo := initTestRepo(t)
	chdir(t, repo)

	hookPath := filepath.Join(repo, ".git", "hooks", "prepare-commit-msg")
	require.NoError(t, os.MkdirAll(filepath.Dir(hookPath), 0o755))
	require.NoError(t, os.WriteFile(hookPath, []byte("#!/bin/sh\necho mine\n"), 0o755))

	_, _, err := execute(t, "install-hook")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestAppendTrailer_Golden(t *testing.T) {
	g := goldie.New(t)
	trailer := "Sponsored by Ada, Grace, and Edsger"

	tests := []struct {
		name    string
		message string
	}{
		{"empty_message", ""},
		{"single_line", "Fix parser\n"},
		{"multi_paragraph", "Subject line\n\nLonger body explaining the change.\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "MSG")
			require.NoError(t, appendTrailer(path, []byte(tt.message), trailer))

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			g.Assert(t, tt.name, got)
		})
	}
}
