package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/tidsplan/internal/config"
	"github.com/alexanderramin/tidsplan/internal/db"
	"github.com/alexanderramin/tidsplan/internal/repository"
	"github.com/alexanderramin/tidsplan/internal/service"
)

// WarningDemoMode is the id of the toast shown while running on the local
// file store.
const WarningDemoMode = "demo-mode"

// Context owns everything that lives as long as the process: config,
// logger, clock, stores, services and the toast queue.
type Context struct {
	Config *config.Config
	Logger *slog.Logger
	Clock  service.Clock
	Toasts *Toasts

	TaskRepo     repository.TaskRepo
	SettingsRepo repository.SettingsRepo

	Tasks    service.TaskService
	Views    service.ViewService
	Quick    service.QuickListService
	Settings service.SettingsService
	Board    service.BoardService

	closers []func() error
}

// Open builds a Context from cfg. Logs go to logOut.
func Open(cfg *config.Config, logOut io.Writer) (*Context, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	if logOut == nil {
		logOut = io.Discard
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))
	c := &Context{
		Config: cfg,
		Logger: logger,
		Clock:  time.Now,
		Toasts: NewToasts(time.Now),
	}

	switch cfg.Store {
	case config.StoreLocal:
		store, err := repository.OpenLocalStore(cfg.LocalPath, logger)
		if err != nil {
			return nil, err
		}
		c.TaskRepo, c.SettingsRepo = store.Tasks(), store.Settings()
	default:
		database, err := db.OpenDB(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		c.closers = append(c.closers, database.Close)
		c.useSQLite(database)
	}
	c.wireServices()
	return c, nil
}

// NewForDB builds a Context on an already open database. Tests use it with
// an in-memory database.
func NewForDB(cfg *config.Config, database *sql.DB, logger *slog.Logger, clock service.Clock) *Context {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if clock == nil {
		clock = time.Now
	}
	c := &Context{Config: cfg, Logger: logger, Clock: clock, Toasts: NewToasts(clock)}
	c.useSQLite(database)
	c.wireServices()
	return c
}

func (c *Context) useSQLite(database *sql.DB) {
	policy := repository.DefaultRetryPolicy()
	c.TaskRepo = repository.NewRetryingTaskRepo(repository.NewSQLiteTaskRepo(database, c.Logger), policy, c.Logger)
	c.SettingsRepo = repository.NewRetryingSettingsRepo(repository.NewSQLiteSettingsRepo(database), policy, c.Logger)
}

func (c *Context) wireServices() {
	observer := service.NewSlogUseCaseObserver(c.Logger)
	c.Tasks = service.NewTaskService(c.TaskRepo, c.Clock, c.Logger, observer)
	c.Views = service.NewViewService(c.SettingsRepo, c.Clock, observer)
	c.Quick = service.NewQuickListService(c.SettingsRepo, c.Clock)
	c.Settings = service.NewSettingsService(c.SettingsRepo)
	c.Board = service.NewBoardService(c.TaskRepo, c.Clock, observer)
}

// User is the configured owner of every operation.
func (c *Context) User() string {
	return c.Config.User
}

// Today is the current calendar day.
func (c *Context) Today() time.Time {
	return c.Clock()
}

// StartupNotices queues the toasts a fresh start should show, skipping any
// the user dismissed.
func (c *Context) StartupNotices(ctx context.Context) {
	if c.Config.Store != config.StoreLocal {
		return
	}
	prefs, err := c.Settings.Preferences(ctx, c.User())
	if err != nil {
		c.Logger.Warn("loading preferences", "error", err)
	}
	for _, id := range prefs.DismissedWarnings {
		if id == WarningDemoMode {
			return
		}
	}
	c.Toasts.Push(ToastWarning, WarningDemoMode,
		"Demo mode: tasks are kept in "+c.Config.LocalPath+" on this machine only.")
}

// Close releases the stores.
func (c *Context) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i]())
	}
	return errors.Join(errs...)
}
