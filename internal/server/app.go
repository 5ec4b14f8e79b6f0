// Package server initializes and runs the main application: configuration,
// logging, database wiring, graceful shutdown, and the HTTP endpoint.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/fadhilmh/fadhil-app-api/internal/logging"
	"github.com/fadhilmh/fadhil-app-api/internal/server/config"
	"github.com/fadhilmh/fadhil-app-api/internal/server/httpapi"
	"github.com/fadhilmh/fadhil-app-api/internal/server/services"
	"github.com/fadhilmh/fadhil-app-api/internal/server/shared/db"
)

const dbStartupTimeout = 10 * time.Second

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          db.RepositoryManager
	userService *services.UserService
}

func NewApp(c *config.Config) (*App, error) {

	logger := logging.NewDefault()

	manager, err := db.NewMongoRepositoryManager(context.Background(), c.DatabaseURL, c.DatabaseName)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	us := services.NewUserService(manager.Users(), c)

	return &App{config: c, logger: logger, db: manager, userService: us}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// checkDatabase verifies the lazily-connected database in the background so
// an unreachable MongoDB never blocks startup, matching how the original
// deployment behaved.
func (app *App) checkDatabase(ctx context.Context) {
	checkCtx, cancel := context.WithTimeout(ctx, dbStartupTimeout)
	defer cancel()

	if err := app.db.Ping(checkCtx); err != nil {
		app.logger.Error(ctx, "MongoDB Connection Error!", "error", err.Error())
		return
	}

	if err := app.db.EnsureIndexes(checkCtx); err != nil {
		app.logger.Error(ctx, "index init error", "error", err.Error())
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewHTTPServer(":"+app.config.Port, app.logger, app.userService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	go app.checkDatabase(ctx)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	closeCtx, cancel := context.WithTimeout(context.Background(), dbStartupTimeout)
	defer cancel()
	if err := app.db.Close(closeCtx); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
}
