// Command mobiz-export writes the ledger to the versioned CSV export and,
// optionally, replaces the configured Google Sheets tab with the same table.
package main

import (
	"context"
	"flag"
	"os"

	"mobiz/internal/cli"
	"mobiz/internal/log"
	"mobiz/internal/services"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger("info")
	cfg := cli.LoadAndValidateConfig(logger)
	logger = cli.SetupLogger(cfg.LogLevel).WithComponent(log.ComponentExport)

	out := flag.String("out", cfg.ResolvedExportPath(), "CSV output path")
	toSheets := flag.Bool("sheets", false, "also write the export to Google Sheets")
	flag.Parse()

	ctx, stop := cli.SignalContext()
	defer stop()

	stores := cli.OpenStore(ctx, logger, cfg)
	defer stores.Close()

	svc := services.NewLedgerService(stores.Store, nil, services.WithVersion(cfg.LedgerVersion))

	if err := run(ctx, logger, svc, *out, *toSheets, cfg.SheetsEnabled(), func(ctx context.Context) (tableWriter, error) {
		return cli.NewSheetsClient(ctx, cfg)
	}); err != nil {
		logger.Error("Export failed", log.FieldError, err)
		stores.Close()
		os.Exit(1)
	}
}
