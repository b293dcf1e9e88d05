package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"shoutd/internal/controllers"
	"shoutd/internal/models"
	"shoutd/internal/providers"
	"shoutd/internal/services"
	"shoutd/internal/statistic/interfaces"
	"shoutd/internal/structures"
	"time"
)

type App struct {
	conf      *structures.Config
	logger    providers.Logger
	scheduler interfaces.LifecycleInterface
	service   services.ShoutoutServiceInterface
	commands  *controllers.CommandController
	console   *Console
	WebServer *http.Server
	now       func() time.Time
}

func NewApp(
	conf *structures.Config,
	logger providers.Logger,
	scheduler interfaces.LifecycleInterface,
	service services.ShoutoutServiceInterface,
	commands *controllers.CommandController,
	console *Console,
	mux *http.ServeMux,
) *App {
	app := &App{
		conf:      conf,
		logger:    logger,
		scheduler: scheduler,
		service:   service,
		commands:  commands,
		console:   console,
		now:       time.Now,
	}
	if conf.Metrics.Enabled && conf.Metrics.Addr != "" {
		app.WebServer = &http.Server{
			Addr:         conf.Metrics.Addr,
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		}
	}
	return app
}

// Run restores state, starts the scheduler and the optional listener, and
// serves console records until ctx is done or the input ends. State is
// persisted on the way out.
func (a *App) Run(ctx context.Context) error {
	a.logger.Infof(providers.TypeApp, "Starting %s", a.conf.AppName)
	if err := a.scheduler.Restore(); err != nil {
		a.logger.Errorf(providers.TypeApp, "Restore error: %s", err)
	}

	a.scheduler.Init()

	serverErr := make(chan error, 1)
	if a.WebServer != nil {
		go func() {
			a.logger.Infof(providers.TypeApp, "Listening HTTP clients on %s", a.WebServer.Addr)
			if err := a.WebServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
			}
		}()
	}

	consoleDone := make(chan error, 1)
	go func() {
		consoleDone <- a.console.Serve(func(actor, line string) {
			a.console.Reply(actor, a.commands.Handle(actor, line, a.now()))
		})
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-consoleDone:
		if err != nil {
			a.logger.Errorf(providers.TypeApp, "Console error: %s", err)
		}
		a.logger.Infof(providers.TypeApp, "Console input closed")
	case err := <-serverErr:
		runErr = fmt.Errorf("server error: %w", err)
	}

	a.scheduler.Stop()

	if a.WebServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.WebServer.Shutdown(shutdownCtx); err != nil && runErr == nil {
			runErr = err
		}
	}

	if err := a.scheduler.Persist(); err != nil {
		return err
	}
	a.logger.Infof(providers.TypeApp, "gracefully stopped")
	return runErr
}

// Exec runs a single command line for actor against restored state and
// persists afterwards. Used by the one-shot CLI commands.
func (a *App) Exec(actor, line string) (controllers.Reply, error) {
	if err := a.scheduler.Restore(); err != nil {
		return controllers.Reply{}, err
	}
	reply := a.commands.Handle(actor, line, a.now())
	if err := a.scheduler.Persist(); err != nil {
		return reply, err
	}
	return reply, nil
}

// Stats returns the restored stats view.
func (a *App) Stats() (models.StatsView, error) {
	if err := a.scheduler.Restore(); err != nil {
		return models.StatsView{}, err
	}
	return a.service.Stats(), nil
}
