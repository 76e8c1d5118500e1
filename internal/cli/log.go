package cli

import (
	"context"

	"github.com/spf13/cobra"

	"netledger/internal/render"
)

// LogOptions holds flags for the log command.
type LogOptions struct {
	*RootOptions
	Limit int
	Plain bool
}

// NewLogCommand creates the log command.
func NewLogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "log [field]",
		Short: "Show the activity log, newest first",
		Long: `Show the history of every record as one list, newest first.

With a field name only changes to that field are shown. "all" shows
everything, including creations and imports.

Example:
  netledger log
  netledger log bandwidth --limit 20`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := ""
			if len(args) == 1 {
				filter = args[0]
			}
			return run(opts.RootOptions, cmd, func(ctx context.Context, a *app) error {
				entries := a.store.ActivityLog(filter)
				if opts.Limit > 0 && len(entries) > opts.Limit {
					entries = entries[:opts.Limit]
				}

				text := "No activity recorded"
				if len(entries) > 0 {
					text = render.ActivityTable(entries, !opts.Plain)
				}
				return a.out.Success(entries, text)
			})
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "show at most n entries (0 for all)")
	cmd.Flags().BoolVar(&opts.Plain, "plain", false, "ASCII table without colour")

	return cmd
}
