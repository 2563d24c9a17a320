package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/relandlord/invoice-intake/internal/config"
	"github.com/relandlord/invoice-intake/internal/drive"
	"github.com/relandlord/invoice-intake/internal/gauth"
	"github.com/relandlord/invoice-intake/internal/gelf"
	"github.com/relandlord/invoice-intake/internal/handler"
	"github.com/relandlord/invoice-intake/internal/router"
	"github.com/relandlord/invoice-intake/internal/service"
	"github.com/relandlord/invoice-intake/internal/sheets"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	godotenv.Load()

	cfg := config.Load()

	// GELF UDP logging
	if cfg.GelfAddr != "" {
		gelfWriter, err := gelf.New(cfg.GelfAddr)
		if err != nil {
			log.Printf("Warning: GELF init failed: %v", err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stderr, gelfWriter))
			log.Printf("GELF logging: enabled (%s)", cfg.GelfAddr)
		}
	}

	if cfg.GoogleToken == "" {
		log.Fatalf("GOOGLE_TOKEN not set")
	}

	// Google clients: built once, shared by every request.
	ctx := context.Background()
	driveSvc, sheetsSvc, err := gauth.NewServices(ctx, []byte(cfg.GoogleToken))
	if err != nil {
		log.Fatalf("Failed to build Google clients: %v", err)
	}

	store := drive.NewClient(driveSvc)
	ledger := sheets.NewLedger(sheetsSvc, cfg.SpreadsheetID, cfg.LedgerRange)

	invoiceSvc := service.NewInvoiceService(store, ledger, service.Options{
		RootFolder: cfg.RootFolder,
		Components: cfg.Components,
	})

	invoiceH := handler.NewInvoiceHandler(invoiceSvc)

	r := router.New(cfg.StaticDir, invoiceH)

	log.Printf("invoice-intake serving on %s (ledger range %q, components %v)",
		cfg.Addr, cfg.LedgerRange, cfg.Components)
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
