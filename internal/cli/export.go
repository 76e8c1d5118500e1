package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"netledger/internal/codec"
	"netledger/internal/domain"
	"netledger/internal/notify"
	"netledger/internal/render"
)

// Export file base names
const (
	recordsFileBase  = "network_list"
	activityFileBase = "activity_log"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Building string
	WithLog  bool
	As       string
	NoImage  bool
	Dir      string
	Send     bool
	ChatID   string
}

// ExportResult is the JSON payload of the export command
type ExportResult struct {
	Files    []string `json:"files"`
	Skipped  []string `json:"skipped_images,omitempty"`
	Records  int      `json:"records"`
	Activity int      `json:"activity,omitempty"`
	SentTo   string   `json:"sent_to,omitempty"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write records (and optionally the activity log) to files",
		Long: `Write the records to network_list.<format> and a rendered
network_list.jpg. With --with-log the activity log is written the same way
to activity_log.<format> and activity_log.jpg. With --building only records
in that building, and only their activity, are exported.

With --send the files are delivered to a Telegram chat. The chat ID given
with --chat-id is remembered for later exports.

Example:
  netledger export
  netledger export --building "Tower A" --with-log --send --chat-id -100123`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			exporter, err := codec.ExporterFor(opts.As)
			if err != nil {
				return NewExitError(ExitCommandError, CodeInvalidInput, err.Error())
			}
			return run(opts.RootOptions, cmd, func(ctx context.Context, a *app) error {
				return exportFiles(ctx, a, opts, exporter)
			})
		},
	}

	cmd.Flags().StringVar(&opts.Building, "building", "", "only export records in this building")
	cmd.Flags().BoolVar(&opts.WithLog, "with-log", false, "also export the activity log")
	cmd.Flags().StringVar(&opts.As, "as", "csv", "file format (csv|json|yaml)")
	cmd.Flags().BoolVar(&opts.NoImage, "no-image", false, "skip the rendered JPEG tables")
	cmd.Flags().StringVarP(&opts.Dir, "dir", "o", "", "output directory (default from config)")
	cmd.Flags().BoolVar(&opts.Send, "send", false, "deliver the files to Telegram")
	cmd.Flags().StringVar(&opts.ChatID, "chat-id", "", "Telegram chat ID (default: last one used)")

	return cmd
}

func exportFiles(ctx context.Context, a *app, opts *ExportOptions, exporter codec.Exporter) error {
	dir := opts.Dir
	if dir == "" {
		dir = a.cfg.Export.Dir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return WrapExitError(ExitCommandError, CodeStorage, "failed to create export directory", err)
	}

	records := a.store.GetAll()
	if opts.Building != "" {
		records = a.store.InBuilding(opts.Building)
		if len(records) == 0 {
			return NewExitError(ExitFailure, CodeNotFound, fmt.Sprintf("no records in building %q", opts.Building))
		}
	}

	result := ExportResult{Records: len(records)}

	path := filepath.Join(dir, recordsFileBase+"."+exporter.Format())
	if err := writeFile(path, func(f *os.File) error { return exporter.ExportRecords(records, f) }); err != nil {
		return err
	}
	result.Files = append(result.Files, path)

	if !opts.NoImage {
		path := filepath.Join(dir, recordsFileBase+".jpg")
		if err := saveImage(a, &result, path, render.RecordTable(records, false)); err != nil {
			return WrapExitError(ExitCommandError, CodeStorage, "failed to render records", err)
		}
	}

	if opts.WithLog {
		var entries []domain.ActivityEntry
		if opts.Building != "" {
			aids := make([]string, 0, len(records))
			for _, r := range records {
				aids = append(aids, r.AID)
			}
			entries = a.store.ActivityLogFor("", aids)
		} else {
			entries = a.store.ActivityLog("")
		}
		result.Activity = len(entries)

		path := filepath.Join(dir, activityFileBase+"."+exporter.Format())
		if err := writeFile(path, func(f *os.File) error { return exporter.ExportActivity(entries, f) }); err != nil {
			return err
		}
		result.Files = append(result.Files, path)

		if !opts.NoImage && len(entries) > 0 {
			path := filepath.Join(dir, activityFileBase+".jpg")
			if err := saveImage(a, &result, path, render.ActivityTable(entries, false)); err != nil {
				return WrapExitError(ExitCommandError, CodeStorage, "failed to render activity log", err)
			}
		}
	}

	a.log.Info().Strs("files", result.Files).Msg("Export written")

	if opts.Send {
		chatID, err := deliver(ctx, a, opts, result.Files)
		result.SentTo = chatID
		if err != nil {
			return err
		}
	}

	return a.out.Success(result, exportText(result))
}

// deliver sends files to the chosen chat and remembers it. Every file is
// attempted; the first failure is returned.
func deliver(ctx context.Context, a *app, opts *ExportOptions, files []string) (string, error) {
	chatID := opts.ChatID
	if chatID == "" {
		chatID = a.store.RecipientID()
	}
	if chatID == "" {
		return "", NewExitError(ExitCommandError, CodeInvalidInput, "no chat id provided; pass --chat-id")
	}

	if chatID != a.store.RecipientID() {
		if err := a.store.SetRecipientID(ctx, chatID); err != nil {
			a.log.Warn().Err(err).Msg("Failed to remember chat id")
		}
	}

	sender := opts.Sender
	if sender == nil {
		sender = notify.NewTelegram(a.cfg.Telegram.APIURL, a.cfg.Telegram.Token, a.cfg.TelegramTimeout())
	}

	var errs []error
	for _, file := range files {
		if err := sender.SendDocument(ctx, chatID, file); err != nil {
			a.log.Error().Err(err).Str("file", file).Msg("Failed to send file")
			errs = append(errs, fmt.Errorf("%s: %w", filepath.Base(file), err))
			if errors.Is(err, notify.ErrNoToken) {
				break
			}
			continue
		}
		a.log.Debug().Str("file", file).Str("chat_id", chatID).Msg("File sent")
	}

	if len(errs) > 0 {
		return chatID, WrapExitError(ExitFailure, CodeDelivery,
			fmt.Sprintf("%d of %d file(s) failed to send", len(errs), len(files)), errors.Join(errs...))
	}
	return chatID, nil
}

// saveImage renders text to path and records it in result. A table too tall
// for one JPEG is skipped with a warning; the data file still carries it.
func saveImage(a *app, result *ExportResult, path, text string) error {
	err := render.SaveJPEG(path, text)
	if errors.Is(err, render.ErrImageTooLarge) {
		a.log.Warn().Err(err).Str("file", path).Msg("Skipping image")
		result.Skipped = append(result.Skipped, path)
		return nil
	}
	if err != nil {
		return err
	}
	result.Files = append(result.Files, path)
	return nil
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return WrapExitError(ExitCommandError, CodeStorage, "failed to create "+path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return WrapExitError(ExitCommandError, CodeStorage, "failed to write "+path, err)
	}
	if err := f.Close(); err != nil {
		return WrapExitError(ExitCommandError, CodeStorage, "failed to write "+path, err)
	}
	return nil
}

func exportText(r ExportResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Exported %d record(s)", r.Records)
	if r.Activity > 0 {
		fmt.Fprintf(&b, " and %d activity entries", r.Activity)
	}
	for _, f := range r.Files {
		b.WriteString("\n  " + f)
	}
	for _, f := range r.Skipped {
		b.WriteString("\n  skipped " + f + " (table too large for an image)")
	}
	if r.SentTo != "" {
		b.WriteString("\nSent to " + r.SentTo)
	}
	return b.String()
}
