package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"netledger/internal/codec"
	"netledger/internal/watcher"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	Watch bool
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import records from CSV, JSON or YAML",
		Long: `Import records from a file. CSV files need a header row; columns are
matched by their export header (AID, Name, Building, IP Location, Public IP,
Private IP, Bandwidth, Status, Install Date) or by field name.

Rows whose AID already matches a record's AID or name are skipped. Rows
without an AID are ignored. Status defaults to active.

With --watch the file is imported again every time it changes, until
interrupted. Rows imported earlier are skipped as duplicates.

Example:
  netledger import networks.csv
  netledger import backup.yaml
  netledger import --watch /srv/drop/networks.csv`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts.RootOptions, cmd, func(ctx context.Context, a *app) error {
				if !opts.Watch {
					return importFile(ctx, a, args[0])
				}
				return watchFile(ctx, a, args[0])
			})
		},
	}

	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "re-import whenever the file changes")

	return cmd
}

func importFile(ctx context.Context, a *app, path string) error {
	result := a.store.Import(ctx, codec.SourceForPath(path))
	if result.Error != "" {
		return NewExitError(ExitFailure, CodeStorage, "import failed: "+result.Error)
	}
	text := fmt.Sprintf("Imported %d record(s), skipped %d duplicate(s)", result.Added, result.Skipped)
	return a.out.Success(result, text)
}

// watchFile imports path once, then again on every change. Failed imports
// while watching are logged and do not stop the watch.
func watchFile(ctx context.Context, a *app, path string) error {
	if err := importFile(ctx, a, path); err != nil {
		a.log.Warn().Err(err).Msg("Initial import failed")
	}

	w := watcher.New(path, func(ctx context.Context) {
		if err := importFile(ctx, a, path); err != nil {
			a.log.Warn().Err(err).Msg("Import failed")
		}
	}).WithLogger(a.log)

	err := w.Watch(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	if err != nil {
		return WrapExitError(ExitCommandError, CodeStorage, "failed to watch "+path, err)
	}
	return nil
}
