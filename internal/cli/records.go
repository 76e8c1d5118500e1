package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"netledger/internal/domain"
	"netledger/internal/render"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Building string
	Plain    bool
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all records",
		Long: `List all records in collection order.

Example:
  netledger list
  netledger list --building "Tower A"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts.RootOptions, cmd, func(ctx context.Context, a *app) error {
				records := a.store.GetAll()
				if opts.Building != "" {
					records = a.store.InBuilding(opts.Building)
				}
				return a.out.Success(records, recordsText(records, opts.Plain))
			})
		},
	}

	cmd.Flags().StringVar(&opts.Building, "building", "", "only show records in this building")
	cmd.Flags().BoolVar(&opts.Plain, "plain", false, "ASCII table without colour")

	return cmd
}

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Plain bool
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show <aid-or-name>",
		Short: "Show one record and its history",
		Args:  cobra.ExactArgs(1),
		Example: `  netledger show NAA-17797
  netledger show "head office"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts.RootOptions, cmd, func(ctx context.Context, a *app) error {
				rec, ok := a.store.Resolve(args[0])
				if !ok {
					return notFound(args[0])
				}

				history := make([]domain.ActivityEntry, 0, len(rec.History))
				for _, e := range rec.History {
					history = append(history, domain.NewActivityEntry(&rec, e))
				}

				text := render.RecordTable([]domain.Record{rec}, !opts.Plain) + "\n" +
					render.ActivityTable(history, !opts.Plain)
				return a.out.Success(rec, text)
			})
		},
	}

	cmd.Flags().BoolVar(&opts.Plain, "plain", false, "ASCII table without colour")

	return cmd
}

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Record domain.Record
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a record",
		Long: `Add a record. A record without an AID is stored with AID "N/A".

Duplicate AIDs and names are accepted; lookups return the first match.

Example:
  netledger add --aid NAA-17797 --name "Head Office" --building "Tower A" --bandwidth 1G`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts.RootOptions, cmd, func(ctx context.Context, a *app) error {
				aid, err := a.store.AddEntry(ctx, opts.Record)
				if err != nil {
					return WrapExitError(ExitCommandError, CodeStorage, "failed to add record", err)
				}
				all := a.store.GetAll()
				return a.out.Success(all[len(all)-1], fmt.Sprintf("Added %s (%s)", aid, opts.Record.Name))
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.Record.AID, "aid", "", "circuit identifier")
	f.StringVar(&opts.Record.Name, "name", "", "display name")
	f.StringVar(&opts.Record.Building, "building", "", "building")
	f.StringVar(&opts.Record.IPLocation, "ip-location", "", "where the IP terminates")
	f.StringVar(&opts.Record.PublicIP, "public-ip", "", "public IP address")
	f.StringVar(&opts.Record.PrivateIP, "private-ip", "", "private IP address")
	f.StringVar(&opts.Record.Bandwidth, "bandwidth", "", "bandwidth, e.g. 1G")
	f.StringVar(&opts.Record.Status, "status", domain.StatusActive, "status (active|suspended|inactive)")
	f.StringVar(&opts.Record.InstallDate, "install-date", "", "install date")

	return cmd
}

// SearchOptions holds flags for the search command.
type SearchOptions struct {
	*RootOptions
	Plain bool
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SearchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find records by name, public IP or building",
		Long: `Find records whose name, public IP or building contains the query,
ignoring case.

Example:
  netledger search office
  netledger search 203.0.113`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts.RootOptions, cmd, func(ctx context.Context, a *app) error {
				records := a.store.Search(args[0])
				return a.out.Success(records, recordsText(records, opts.Plain))
			})
		},
	}

	cmd.Flags().BoolVar(&opts.Plain, "plain", false, "ASCII table without colour")

	return cmd
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <aid-or-name>",
		Short:         "Delete a record and its history",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(rootOpts, cmd, func(ctx context.Context, a *app) error {
				found, err := a.store.DeleteEntry(ctx, args[0])
				if err != nil {
					return WrapExitError(ExitCommandError, CodeStorage, "failed to delete record", err)
				}
				if !found {
					return notFound(args[0])
				}
				return a.out.Success(map[string]string{"deleted": args[0]}, "Deleted "+args[0])
			})
		},
	}
}

// NewBuildingsCommand creates the buildings command.
func NewBuildingsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "buildings",
		Short:         "List the buildings that have records",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(rootOpts, cmd, func(ctx context.Context, a *app) error {
				buildings := a.store.ListBuildings()
				text := strings.Join(buildings, "\n")
				if len(buildings) == 0 {
					text = "No buildings recorded"
				}
				return a.out.Success(buildings, text)
			})
		},
	}
}

func recordsText(records []domain.Record, plain bool) string {
	if len(records) == 0 {
		return "No records found"
	}
	return render.RecordTable(records, !plain)
}

func notFound(identifier string) error {
	return NewExitError(ExitFailure, CodeNotFound, fmt.Sprintf("no record matches %q", identifier))
}
