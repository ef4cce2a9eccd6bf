package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"fsanano/go-orders/internal/database"
	"fsanano/go-orders/internal/handler"
	"fsanano/go-orders/internal/metrics"
	"fsanano/go-orders/internal/repository"
	"fsanano/go-orders/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the schema and start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	// 1. Load config, logger and database
	m := metrics.New()
	app, err := boot(m)
	if err != nil {
		return err
	}
	defer app.close()

	cfg, log, db := app.cfg, app.log, app.db

	if err := database.Migrate(db); err != nil {
		return err
	}

	// 2. Setup Logic
	tx := repository.NewTransactor(db)
	users := repository.NewUserRepository(db)
	orders := repository.NewOrderRepository(db)
	offers := repository.NewOfferRepository(db)

	h := handler.NewHandler(db, handler.Services{
		Users:  service.NewUserService(tx, users),
		Orders: service.NewOrderService(tx, orders),
		Offers: service.NewOfferService(tx, offers, orders, users),
	}, log, m)

	// 3. Setup Server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      h,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 4. Run Server with Graceful Shutdown
	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Str("env", cfg.App.Env).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 2)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serverErr:
		if ok {
			log.Error().Err(err).Msg("server failed")
			return err
		}
		return nil
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down server")
	}

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	log.Info().Msg("server exiting")
	return nil
}
