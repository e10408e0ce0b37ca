package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List sponsors with their remaining credit",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listSponsors(rootOpts, cmd)
		},
	}

	return cmd
}

func listSponsors(opts *RootOptions, cmd *cobra.Command) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	sponsors, err := st.ListSponsors(cmd.Context())
	if err != nil {
		return WrapExitError(ExitFailure, "failed to list sponsors", err)
	}

	if opts.Format == "json" {
		f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		rows := make([]map[string]interface{}, 0, len(sponsors))
		for _, sp := range sponsors {
			rows = append(rows, map[string]interface{}{
				"id":      sp.ID,
				"name":    sp.Name,
				"level":   sp.Level,
				"current": sp.Current,
			})
		}
		return f.Success(rows)
	}

	if len(sponsors) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No sponsors yet. Add one with: sponcom add <name>")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCREDIT\tID")
	for _, sp := range sponsors {
		fmt.Fprintf(w, "%s\t%d/%d\t%s\n", sp.Name, sp.Current, sp.Level, sp.ID)
	}
	return w.Flush()
}
