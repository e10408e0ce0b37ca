package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/sponcom/internal/sponsor"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Level int
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a sponsor to the pool",
		Long: `Add a sponsor to the pool with a full credit balance.

The level is the sponsor's credit ceiling: how many times they can be
thanked before the whole pool resets.

Example:
  sponcom add "Ada Lovelace" --level 20`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return addSponsor(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Level, "level", 0, "credit ceiling (defaults to the configured default_level)")

	return cmd
}

func addSponsor(opts *AddOptions, name string, cmd *cobra.Command) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return NewExitError(ExitCommandError, "sponsor name must not be empty")
	}

	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	level := opts.Level
	if level == 0 {
		level = cfg.DefaultLevel
	}
	if level <= 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("level must be positive (got %d)", level))
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	sp := sponsor.New(name, level)
	if err := st.UpsertSponsor(cmd.Context(), sp); err != nil {
		return WrapExitError(ExitFailure, "failed to add sponsor", err)
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), ErrWriter: cmd.ErrOrStderr(), Verbose: opts.Verbose}
	if opts.Format == "json" {
		return f.Success(map[string]interface{}{
			"id":      sp.ID,
			"name":    sp.Name,
			"level":   sp.Level,
			"current": sp.Current,
		})
	}
	return f.Success(fmt.Sprintf("Added sponsor %s (level %d)", sp.Name, sp.Level))
}
