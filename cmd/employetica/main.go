package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/employetica/server/internal/config"
	"github.com/employetica/server/internal/handler"
	"github.com/employetica/server/internal/lib/billing"
	"github.com/employetica/server/internal/lib/identity"
	"github.com/employetica/server/internal/logger"
	"github.com/employetica/server/internal/repository"
	"github.com/employetica/server/internal/router"
	"github.com/employetica/server/internal/server"
	"github.com/employetica/server/internal/service"
)

const DefaultContextTimeout = 30

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	defer loggerService.Shutdown()

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	verifier, err := identity.New(context.Background(), &cfg.Auth)
	if err != nil {
		log.Fatal().Err(err).Str("provider", cfg.Auth.Provider).Msg("failed to initialize identity verifier")
	}

	repos := repository.NewRepositories(srv.DB.DB)

	services, err := service.NewServices(srv, repos, verifier, billing.NewClient(cfg.Integration))
	if err != nil {
		log.Fatal().Err(err).Msg("could not create services")
	}

	handlers := handler.NewHandlers(srv, services)
	r := router.NewRouter(srv, handlers, services)

	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("failed to start server")
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultContextTimeout*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
