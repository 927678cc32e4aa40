package main

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"mobiz/internal/cli"
	apphttp "mobiz/internal/http"
	"mobiz/internal/log"
	"mobiz/internal/services"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger("info")
	cfg := cli.LoadAndValidateConfig(logger)
	logger = cli.SetupLogger(cfg.LogLevel)

	ctx, stop := cli.SignalContext()
	defer stop()

	stores := cli.OpenStore(ctx, logger, cfg)
	defer stores.Close()

	pub, closePub := cli.NewPublisher(logger, cfg)
	defer closePub()

	svc := services.NewLedgerService(stores.Store, pub, services.WithVersion(cfg.LedgerVersion))

	addr := ":" + cfg.Port
	srv := apphttp.NewServer(addr, svc, apphttp.Options{
		Logger:     logger.WithComponent(log.ComponentHTTP),
		ExportName: filepath.Base(cfg.ResolvedExportPath()),
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting MoBiz server",
			log.FieldOperation, log.OpStartup,
			"addr", addr,
			"backend", cfg.DataBackend,
			"version", cfg.LedgerVersion,
			"amqp", cfg.AMQPEnabled(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received", log.FieldOperation, log.OpShutdown)
	case err := <-errCh:
		if err != nil {
			logger.Error("Server error", log.FieldError, err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", log.FieldError, err)
		return
	}
	logger.Info("Server stopped", log.FieldOperation, log.OpShutdown)
}
