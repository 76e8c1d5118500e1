package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"netledger/internal/config"
	"netledger/internal/domain"
)

// settingKeys are the stored settings the config command may read or write
var settingKeys = []string{domain.SettingTelegramChatID}

// NewConfigCommand creates the config command and its subcommands.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration and stored settings",
		Long: `Inspect the configuration file and the settings stored next to the
records.

Stored settings: ` + fmt.Sprint(settingKeys),
	}

	cmd.AddCommand(newConfigGetCommand(rootOpts))
	cmd.AddCommand(newConfigSetCommand(rootOpts))
	cmd.AddCommand(newConfigShowCommand(rootOpts))
	cmd.AddCommand(newConfigInitCommand(rootOpts))

	return cmd
}

func newConfigGetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "get <key>",
		Short:         "Print a stored setting",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkSettingKey(args[0]); err != nil {
				return err
			}
			return run(rootOpts, cmd, func(ctx context.Context, a *app) error {
				value := a.store.Setting(args[0])
				return a.out.Success(map[string]string{args[0]: value}, value)
			})
		},
	}
}

func newConfigSetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "set <key> <value>",
		Short:         "Store a setting",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkSettingKey(args[0]); err != nil {
				return err
			}
			return run(rootOpts, cmd, func(ctx context.Context, a *app) error {
				if err := a.store.SetSetting(ctx, args[0], args[1]); err != nil {
					return WrapExitError(ExitCommandError, CodeStorage, "failed to store setting", err)
				}
				return a.out.Success(map[string]string{args[0]: args[1]}, fmt.Sprintf("%s = %s", args[0], args[1]))
			})
		},
	}
}

func newConfigShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show",
		Short:         "Show the effective configuration",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(rootOpts, cmd, func(ctx context.Context, a *app) error {
				source := a.cfgPath
				if source == "" {
					source = "defaults"
				}
				data := map[string]any{
					"source":  source,
					"driver":  a.cfg.Storage.Driver,
					"path":    a.cfg.Storage.Path,
					"export":  a.cfg.Export.Dir,
					"records": a.store.Len(),
				}
				text := fmt.Sprintf("Config: %s\n%s\nRecords: %d", source, a.cfg.Summary(), a.store.Len())
				return a.out.Success(data, text)
			})
		},
	}
}

func newConfigInitCommand(rootOpts *RootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default config file",
		Long: `Write a config file with default values. Without a path the file is
written to the user config directory.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultConfigPath()
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return NewExitError(ExitCommandError, CodeInvalidInput, path+" already exists; use --force to overwrite")
			}

			if err := config.DefaultConfig().Save(path); err != nil {
				return WrapExitError(ExitCommandError, CodeStorage, "failed to write config", err)
			}

			out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return out.Success(map[string]string{"path": path}, "Wrote "+path)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}

func checkSettingKey(key string) error {
	for _, k := range settingKeys {
		if k == key {
			return nil
		}
	}
	return NewExitError(ExitCommandError, CodeInvalidInput, fmt.Sprintf("unknown setting %q: must be one of %v", key, settingKeys))
}
