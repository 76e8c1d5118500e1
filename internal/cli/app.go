package cli

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"netledger/internal/config"
	"netledger/internal/logger"
	"netledger/internal/repository"
	"netledger/internal/repository/jsonfile"
	"netledger/internal/repository/sqlite"
	"netledger/internal/service"
)

// app is everything a command needs for one run
type app struct {
	cfg     *config.Config
	cfgPath string
	log     zerolog.Logger
	repo    repository.Repository
	store   *service.Store
	out     *OutputFormatter
	now     func() time.Time

	events chan service.Event
	done   chan struct{}
}

// openApp loads config, opens storage and builds the Store
func openApp(ctx context.Context, opts *RootOptions, cmd *cobra.Command) (*app, error) {
	cfg, cfgPath, err := loadConfig(opts)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, CodeInvalidInput, "failed to load config", err)
	}

	if opts.Driver != "" {
		cfg.Storage.Driver = opts.Driver
	}
	if opts.DataPath != "" {
		cfg.Storage.Path = opts.DataPath
		cfg.Storage.SettingsPath = ""
	}
	if err := cfg.Validate(); err != nil {
		return nil, WrapExitError(ExitCommandError, CodeInvalidInput, "invalid configuration", err)
	}

	if opts.Verbose {
		cfg.Logging.Level = "debug"
	}
	baseLog, err := logger.NewWithWriter(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return nil, WrapExitError(ExitCommandError, CodeInvalidInput, "invalid logging configuration", err)
	}

	runID := uuid.NewString()
	log := baseLog.With().Str("run_id", runID).Logger()
	log.Debug().
		Str("config", cfgPath).
		Str("driver", cfg.Storage.Driver).
		Str("path", cfg.Storage.Path).
		Msg("Starting")

	repo, err := openRepository(cfg)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, CodeStorage, "failed to open storage", err)
	}

	a := &app{
		cfg:     cfg,
		cfgPath: cfgPath,
		log:     log,
		repo:    repo,
		out:     &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), RunID: runID},
		now:     time.Now,
		events:  make(chan service.Event, 100),
		done:    make(chan struct{}),
	}
	if opts.Now != nil {
		a.now = opts.Now
	}

	eventBus := service.NewEventBus()
	eventBus.Subscribe(a.events)
	go a.logEvents()

	store, err := service.NewStore(ctx, repo,
		service.WithLogger(log),
		service.WithEventBus(eventBus),
		service.WithClock(a.now),
	)
	if err != nil {
		a.Close()
		return nil, WrapExitError(ExitCommandError, CodeStorage, "failed to load inventory", err)
	}
	a.store = store

	return a, nil
}

func loadConfig(opts *RootOptions) (*config.Config, string, error) {
	if opts.ConfigPath != "" {
		return config.LoadFromPath(opts.ConfigPath)
	}
	return config.Load()
}

// openRepository selects the storage backend configured in cfg
func openRepository(cfg *config.Config) (repository.Repository, error) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		repo, err := sqlite.New(cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		return repo, nil
	default:
		return jsonfile.New(cfg.Storage.Path, cfg.Storage.SettingsPath), nil
	}
}

// logEvents writes store events to the debug log until Close
func (a *app) logEvents() {
	defer close(a.done)
	for event := range a.events {
		a.log.Debug().
			Str("event", string(event.Type)).
			Interface("payload", event.Payload).
			Msg("Event")
	}
}

// Close releases storage and drains pending events
func (a *app) Close() {
	close(a.events)
	<-a.done
	if err := a.repo.Close(); err != nil {
		a.log.Warn().Err(err).Msg("Failed to close storage")
	}
}

// run opens the app, calls fn and always closes it
func run(opts *RootOptions, cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := openApp(ctx, opts, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a)
}
