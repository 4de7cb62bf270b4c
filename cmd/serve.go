package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"p9e.in/lms/config"
	"p9e.in/lms/handlers"
	"p9e.in/lms/pkg/logger"
	"p9e.in/lms/pkg/organization"
	"p9e.in/lms/pkg/storage"
	"p9e.in/lms/routes"
)

func newServe() *cobra.Command {
	var skipMigrate bool
	c := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), !skipMigrate)
		},
	}
	c.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not run migrations on start")
	return c
}

func serve(ctx context.Context, migrate bool) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(db)

	if migrate {
		if err := config.Migrations(db); err != nil {
			return fmt.Errorf("could not run migrations: %w", err)
		}
	}

	backend, err := storage.NewBackend(ctx, cfg.Upload)
	if err != nil {
		return err
	}
	if c, ok := backend.(io.Closer); ok {
		defer c.Close()
	}

	h := handlers.New(
		organization.NewService(db),
		storage.NewResolver(storage.ConfigFrom(cfg.Upload), backend),
		db,
		cfg.App,
	)

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           routes.RegisterRoutes(h, *cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof(ctx, "%s %s listening on %s (storage=%s)", cfg.App.Name, cfg.App.Version, srv.Addr, cfg.Upload.StorageType)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Infof(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
