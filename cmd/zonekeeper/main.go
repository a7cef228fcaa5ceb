package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jroosing/zonekeeper/internal/api"
	"github.com/jroosing/zonekeeper/internal/api/handlers"
	"github.com/jroosing/zonekeeper/internal/config"
	"github.com/jroosing/zonekeeper/internal/database"
	"github.com/jroosing/zonekeeper/internal/logging"
	"github.com/jroosing/zonekeeper/internal/pdns"
	"github.com/jroosing/zonekeeper/internal/records"
	"github.com/jroosing/zonekeeper/internal/reverse"
	"github.com/jroosing/zonekeeper/internal/validation"
	"github.com/jroosing/zonekeeper/internal/zones"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to JSON configuration file (or set ZONEKEEPER_CONFIG)")
		host       = flag.String("host", "", "Override bind host")
		port       = flag.Int("port", 0, "Override bind port")
		dbPath     = flag.String("db", "", "Override SQLite database path")
		jsonLogs   = flag.Bool("json-logs", false, "Enable JSON structured logging")
		debug      = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	cfg, err := config.Load(config.ResolveConfigPath(*configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *host != "" {
		cfg.API.Host = *host
	}
	if *port != 0 {
		cfg.API.Port = *port
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}
	if *jsonLogs {
		cfg.Logging.Structured = true
		cfg.Logging.StructuredFormat = "json"
	}
	if *debug {
		cfg.Logging.Level = "DEBUG"
	}

	logger := logging.Configure(cfg.Logging)
	logger.Info("zonekeeper starting",
		"host", cfg.API.Host,
		"port", cfg.API.Port,
		"database", cfg.Database.Path,
		"dnssec", cfg.DNSSEC.Enabled,
	)

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	var dnssec *pdns.Client
	var rectifier records.Rectifier
	if cfg.DNSSEC.Enabled {
		dnssec = pdns.NewClient(cfg.DNSSEC.APIURL, cfg.DNSSEC.APIKey, cfg.DNSSEC.ServerID, cfg.DNSSECTimeout())
		rectifier = dnssec
		logger.Info("DNSSEC support enabled", "api_url", cfg.DNSSEC.APIURL, "server_id", cfg.DNSSEC.ServerID)
	}

	validator := validation.New(cfg.DNS.TTL)
	recordSvc := records.NewService(db, validator, rectifier, records.ConflictPolicy(cfg.Records.ConflictPolicy), logger)
	zoneSvc := zones.NewService(db, cfg.DNS, logger)
	reverseCreator := reverse.NewCreator(db, recordSvc, logger)

	h := handlers.New(cfg, db, zoneSvc, recordSvc, reverseCreator, dnssec, logger)
	srv := api.New(cfg, h, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("API listening", "addr", srv.Addr())
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "shutdown error: %v\n", err)
			os.Exit(1)
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(os.Stderr, "server exited with error: %v\n", err)
			os.Exit(1)
		}
	}
}
