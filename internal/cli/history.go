package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "history",
		Short:         "Show the gratitude log in chronological order",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showHistory(rootOpts, cmd)
		},
	}

	return cmd
}

func showHistory(opts *RootOptions, cmd *cobra.Command) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	entries, err := st.History(cmd.Context())
	if err != nil {
		return WrapExitError(ExitFailure, "failed to read history", err)
	}

	if opts.Format == "json" {
		f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		rows := make([]map[string]interface{}, 0, len(entries))
		for _, entry := range entries {
			row := map[string]interface{}{
				"id":          entry.Event.ID,
				"sponsor":     entry.SponsorName,
				"timestamp":   entry.Event.Timestamp.Format(time.RFC3339),
				"description": entry.Event.Description,
			}
			if entry.Commit != nil {
				row["commit"] = map[string]interface{}{
					"message":           entry.Commit.CommitMessage,
					"working_directory": entry.Commit.WorkingDirectory,
					"source":            entry.Commit.CommitSource,
					"object":            entry.Commit.CommitObject,
					"parent":            entry.Commit.ParentCommit,
				}
			}
			rows = append(rows, row)
		}
		return f.Success(rows)
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No gratitude recorded yet.")
		return nil
	}

	out := cmd.OutOrStdout()
	for _, entry := range entries {
		fmt.Fprintf(out, "%s  %s - %s\n",
			entry.Event.Timestamp.Format("2006-01-02 15:04:05"),
			entry.SponsorName,
			entry.Event.Description,
		)
		if entry.Commit != nil && opts.Verbose {
			fmt.Fprintf(out, "    dir: %s\n", entry.Commit.WorkingDirectory)
			if entry.Commit.ParentCommit != "" {
				fmt.Fprintf(out, "    parent: %s\n", entry.Commit.ParentCommit)
			}
		}
	}
	return nil
}
