// Parcelmap loads a comma-delimited parcel file into an in-memory index keyed by destination country and answers
// queries on it, either from an interactive console menu or over HTTP.
//
// Usage:
//
//	parcelmap -file parcels.csv
//	parcelmap -file parcels.csv -http :8080
//
// Flags:
//
//	-file         Parcel file, one destination,weight,valuation per line (default: parcels.csv)
//	-hash         Bucket hash algorithm: djb2, xxhash or murmur3 (default: djb2)
//	-buckets      Number of buckets (default: 127)
//	-max-records  Maximum number of records, 0 for no limit (default: 0)
//	-log-level    debug, info, warn or error (default: info)
//	-http         Serve queries over HTTP on this address instead of the console menu
package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/gostonefire/parcelmap"
	"github.com/gostonefire/parcelmap/internal/config"
	"github.com/gostonefire/parcelmap/internal/hash"
	"github.com/gostonefire/parcelmap/internal/menu"
	"github.com/gostonefire/parcelmap/internal/server"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load("parcelmap", args)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	hashAlgorithm, err := hash.ByName(cfg.Hash, cfg.Buckets)
	if err != nil {
		return err
	}

	pi, err := parcelmap.NewParcelIndex(
		parcelmap.WithTableSize(cfg.Buckets),
		parcelmap.WithHashAlgorithm(hashAlgorithm),
		parcelmap.WithMaxRecords(cfg.MaxRecords),
		parcelmap.WithLogger(log),
	)
	if err != nil {
		return err
	}

	report, err := pi.LoadFile(cfg.File)
	if err != nil {
		pi.Teardown()
		return fmt.Errorf("failed to load %s: %w", cfg.File, err)
	}
	log.Infow("index ready", "file", cfg.File, "hash", cfg.Hash, "buckets", cfg.Buckets, "records", report.Inserted)

	if cfg.HTTPAddr == "" {
		return menu.New(pi, os.Stdin, os.Stdout, log).Run()
	}

	return serve(cfg.HTTPAddr, pi, log)
}

// serve - Serves queries until interrupted, then tears the index down
func serve(addr string, pi *parcelmap.ParcelIndex, log *zap.SugaredLogger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(pi, log),
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infow("api listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	var err error
	select {
	case err = <-errCh:
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err = srv.Shutdown(shutdownCtx)
	}
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}

	log.Infow("server stopped", "freed", pi.Teardown())
	return err
}

func newLogger(level string) (*zap.SugaredLogger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	if lvl == zapcore.DebugLevel {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return logger.Sugar(), nil
}
