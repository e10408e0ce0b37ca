package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/sponcom/internal/git"
	"github.com/roach88/sponcom/internal/sponsor"
)

// emptyPoolNames is what the commit trailer credits when no sponsors
// are registered.
const emptyPoolNames = "just me"

// NewHookCommand creates the hook command, the prepare-commit-msg
// entry point. Git invokes it as:
//
//	sponcom hook <msg-file> [<source> [<object>]]
func NewHookCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hook <msg-file> [<source> [<object>]]",
		Short: "prepare-commit-msg hook: thank sponsors in the commit message",
		Long: `Credit a random set of sponsors for the commit being prepared and
append a sponsorship trailer to the commit message file.

Each thanked sponsor gets a gratitude event linked to the commit's
metadata (message, working directory, source, parent hash). Git passes
the message file path and, depending on how the commit was started,
the commit source and object name.`,
		Args:          cobra.RangeArgs(1, 3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHook(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runHook(opts *RootOptions, args []string, cmd *cobra.Command) error {
	ctx := cmd.Context()

	cwd, err := os.Getwd()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to resolve working directory", err)
	}

	// Usage errors happen before any transaction is opened.
	if !git.IsWorkTree(ctx, cwd) {
		return NewExitError(ExitCommandError, "not inside a git repository")
	}

	workingDirectory, err := git.TopLevel(ctx, cwd)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to resolve repository root", err)
	}

	parentCommit, err := git.HeadHash(ctx, cwd)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to resolve parent commit", err)
	}

	msgPath := args[0]
	message, err := os.ReadFile(msgPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read commit message file", err)
	}

	describer := sponsor.CommitDescriber{
		CommitMessage:    string(message),
		PreMessagePath:   msgPath,
		WorkingDirectory: workingDirectory,
		ParentCommit:     parentCommit,
	}
	if len(args) > 1 {
		describer.CommitSource = args[1]
	}
	if len(args) > 2 {
		describer.CommitObject = args[2]
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), ErrWriter: cmd.ErrOrStderr(), Verbose: opts.Verbose}

	result, err := sponsor.NewEngine(st).Credit(ctx, cfg.ThankCount, describer)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to credit sponsors", err)
	}

	if result.Reset {
		f.VerboseLog("* resetting")
	}

	names := result.Names
	if result.Empty {
		names = emptyPoolNames
	}

	trailer := fmt.Sprintf(cfg.Trailer, names)
	if err := appendTrailer(msgPath, message, trailer); err != nil {
		return WrapExitError(ExitFailure, "failed to update commit message", err)
	}

	f.VerboseLog("thanked: %s", names)
	return nil
}

// appendTrailer rewrites the commit message file with the sponsorship
// trailer appended as its own paragraph.
func appendTrailer(path string, message []byte, trailer string) error {
	text := strings.TrimRight(string(message), "\n")
	if text == "" {
		text = trailer
	} else {
		text = text + "\n\n" + trailer
	}
	return os.WriteFile(path, []byte(text+"\n"), 0o644)
}
