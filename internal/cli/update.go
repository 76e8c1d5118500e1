package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"netledger/internal/domain"
	"netledger/internal/service"
)

// UpdateOptions holds flags for the update command.
type UpdateOptions struct {
	*RootOptions
	Set    []string
	Note   string
	DryRun bool
}

// NewUpdateCommand creates the update command.
func NewUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &UpdateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "update <aid-or-name>",
		Short: "Change fields of a record",
		Long: `Change one or more fields of a record. Every effective change is
added to the record's history with the old value, the new value and the note.

Fields: ` + strings.Join(domain.MutableFields, ", ") + `

Example:
  netledger update NAA-17797 --set bandwidth=1G --note "Customer Upgrade"
  netledger update "head office" --set status=suspended --dry-run`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(opts.Set) == 0 {
				return NewExitError(ExitCommandError, CodeInvalidInput, "nothing to change; pass --set field=value")
			}
			changes, err := parseAssignments(opts.Set)
			if err != nil {
				return err
			}
			return run(opts.RootOptions, cmd, func(ctx context.Context, a *app) error {
				return updateRecord(ctx, a, opts, args[0], changes)
			})
		},
	}

	cmd.Flags().StringArrayVar(&opts.Set, "set", nil, "field=value to change (repeatable)")
	cmd.Flags().StringVar(&opts.Note, "note", "", "note recorded with each change")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "show the changes without saving")

	return cmd
}

// UpdateResult is the JSON payload of the update command
type UpdateResult struct {
	Identifier string                `json:"identifier"`
	DryRun     bool                  `json:"dry_run"`
	Changes    []service.FieldChange `json:"changes"`
}

func updateRecord(ctx context.Context, a *app, opts *UpdateOptions, identifier string, changes map[string]string) error {
	diff, found := a.store.Diff(identifier, changes)
	if !found {
		return notFound(identifier)
	}

	if !opts.DryRun {
		if _, err := a.store.ApplyUpdate(ctx, identifier, changes, opts.Note); err != nil {
			return WrapExitError(ExitCommandError, CodeStorage, "failed to save update", err)
		}
	}

	result := UpdateResult{Identifier: identifier, DryRun: opts.DryRun, Changes: diff}
	return a.out.Success(result, updateText(result))
}

func updateText(r UpdateResult) string {
	if len(r.Changes) == 0 {
		return "No changes for " + r.Identifier
	}

	var b strings.Builder
	verb := "Updated"
	if r.DryRun {
		verb = "Would update"
	}
	fmt.Fprintf(&b, "%s %s:", verb, r.Identifier)
	for _, c := range r.Changes {
		fmt.Fprintf(&b, "\n  %s: %q -> %q", c.Field, c.OldValue, c.NewValue)
	}
	return b.String()
}

// parseAssignments turns field=value pairs into an update map. Field names
// are lower-cased; values are kept as given.
func parseAssignments(pairs []string) (map[string]string, error) {
	changes := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		field, value, ok := strings.Cut(pair, "=")
		field = strings.ToLower(strings.TrimSpace(field))
		if !ok || field == "" {
			return nil, NewExitError(ExitCommandError, CodeInvalidInput,
				fmt.Sprintf("invalid --set %q: expected field=value", pair))
		}
		if !domain.IsMutable(field) {
			return nil, NewExitError(ExitCommandError, CodeInvalidInput,
				fmt.Sprintf("unknown field %q: must be one of %s", field, strings.Join(domain.MutableFields, ", ")))
		}
		changes[field] = value
	}
	return changes, nil
}
