package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/sponcom/internal/git"
)

// hookMarker identifies hook scripts written by sponcom so that
// install-hook never clobbers someone else's hook.
const hookMarker = "# installed by sponcom"

// hookScript is the prepare-commit-msg script install-hook writes.
const hookScript = `#!/bin/sh
` + hookMarker + `
exec sponcom hook "$@"
`

// NewInstallHookCommand creates the install-hook command.
func NewInstallHookCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "install-hook",
		Short:         "Install the prepare-commit-msg hook in the current repository",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return installHook(rootOpts, cmd)
		},
	}

	return cmd
}

func installHook(opts *RootOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()

	cwd, err := os.Getwd()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to resolve working directory", err)
	}

	if !git.IsWorkTree(ctx, cwd) {
		return NewExitError(ExitCommandError, "not inside a git repository")
	}

	gitDir, err := git.GitDir(ctx, cwd)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to resolve git dir", err)
	}

	hookPath := filepath.Join(gitDir, "hooks", "prepare-commit-msg")

	if existing, err := os.ReadFile(hookPath); err == nil {
		if !strings.Contains(string(existing), hookMarker) {
			return NewExitError(ExitCommandError,
				fmt.Sprintf("refusing to overwrite existing hook %s", hookPath))
		}
	} else if !os.IsNotExist(err) {
		return WrapExitError(ExitCommandError, "failed to inspect existing hook", err)
	}

	if err := os.MkdirAll(filepath.Dir(hookPath), 0o755); err != nil {
		return WrapExitError(ExitFailure, "failed to create hooks directory", err)
	}
	if err := os.WriteFile(hookPath, []byte(hookScript), 0o755); err != nil {
		return WrapExitError(ExitFailure, "failed to write hook", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Installed %s\n", hookPath)
	return nil
}
