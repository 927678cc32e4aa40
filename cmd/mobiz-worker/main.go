package main

import (
	"context"
	"errors"
	"os"

	"golang.org/x/sync/errgroup"

	"mobiz/internal/amqp"
	"mobiz/internal/cli"
	"mobiz/internal/log"
	"mobiz/internal/worker"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger("info")
	cfg := cli.LoadAndValidateConfig(logger)
	logger = cli.SetupLogger(cfg.LogLevel).WithComponent(log.ComponentWorker)

	logger.Info("Starting mobiz-worker", log.FieldOperation, log.OpStartup)

	if err := checkWorkerConfig(cfg); err != nil {
		logger.Error("Invalid worker configuration", log.FieldError, err)
		os.Exit(1)
	}

	ctx, stop := cli.SignalContext()
	defer stop()

	stores := cli.OpenStore(ctx, logger, cfg)
	defer stores.Close()

	sheetsClient, err := cli.NewSheetsClient(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID, "sheet", cfg.GoogleSheetName)

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	amqpClient.WithLogger(logger.WithComponent(log.ComponentAMQP))
	defer amqpClient.Close()

	w := worker.NewMirrorWorker(stores.Store, sheetsClient, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqpClient.ConsumeRecordAppended(gctx, w.HandleRecordAppended)
	})
	g.Go(func() error {
		return w.RunResync(gctx, cfg.SyncInterval)
	})

	logger.Info("Worker running", "sync_interval", cfg.SyncInterval)

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", log.FieldError, err)
		return
	}
	logger.Info("Worker stopped", log.FieldOperation, log.OpShutdown)
}
