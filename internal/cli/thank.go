package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/sponcom/internal/sponsor"
)

// defaultThankMessage is the audit description when the caller does
// not supply one.
const defaultThankMessage = "manual thanks"

// ThankOptions holds flags for the thank command.
type ThankOptions struct {
	*RootOptions
	Count   int
	Message string
}

// NewThankCommand creates the thank command.
func NewThankCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ThankOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "thank",
		Short: "Thank a random set of sponsors",
		Long: `Thank up to N randomly chosen sponsors with remaining credit,
spending one credit each, and print their names.

When every sponsor's credit is spent the pool resets and the draw runs
once more. With no sponsors registered at all the answer is "just me".

Example:
  sponcom thank --count 2 --message "release day"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return thankSponsors(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Count, "count", 0, "how many sponsors to thank (defaults to the configured thank_count)")
	cmd.Flags().StringVar(&opts.Message, "message", defaultThankMessage, "description recorded in the gratitude log")

	return cmd
}

func thankSponsors(opts *ThankOptions, cmd *cobra.Command) error {
	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	count := opts.Count
	if count == 0 {
		count = cfg.ThankCount
	}
	if count <= 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("count must be positive (got %d)", count))
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), ErrWriter: cmd.ErrOrStderr(), Verbose: opts.Verbose}

	result, err := sponsor.NewEngine(st).Credit(cmd.Context(), count, sponsor.StringDescriber{Message: opts.Message})
	if err != nil {
		return WrapExitError(ExitFailure, "failed to credit sponsors", err)
	}

	if result.Reset {
		f.Diag("* resetting")
	}

	if opts.Format == "json" {
		return f.Success(map[string]interface{}{
			"names":   result.Names,
			"thanked": result.Thanked,
			"reset":   result.Reset,
			"empty":   result.Empty,
		})
	}

	if result.Empty {
		return f.Success("just me")
	}
	return f.Success(result.Names)
}
