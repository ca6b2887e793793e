package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
)

// Config - Settings for the parcelmap command
type Config struct {
	File       string
	Hash       string
	Buckets    int64
	MaxRecords int
	LogLevel   string
	HTTPAddr   string
}

// Load - Reads defaults from the environment and then lets command line flags override them.
//   - name is the program name used in usage output
//   - args are the command line arguments without the program name
func Load(name string, args []string) (cfg Config, err error) {
	cfg = Config{
		File:     getenv("PARCELMAP_FILE", "parcels.csv"),
		Hash:     getenv("PARCELMAP_HASH", "djb2"),
		Buckets:  127,
		LogLevel: getenv("PARCELMAP_LOG_LEVEL", "info"),
		HTTPAddr: os.Getenv("PARCELMAP_HTTP"),
	}
	if v := os.Getenv("PARCELMAP_BUCKETS"); v != "" {
		if cfg.Buckets, err = strconv.ParseInt(v, 10, 64); err != nil {
			err = fmt.Errorf("PARCELMAP_BUCKETS: %w", err)
			return
		}
	}
	if v := os.Getenv("PARCELMAP_MAX_RECORDS"); v != "" {
		if cfg.MaxRecords, err = strconv.Atoi(v); err != nil {
			err = fmt.Errorf("PARCELMAP_MAX_RECORDS: %w", err)
			return
		}
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&cfg.File, "file", cfg.File, "comma-delimited parcel file to load")
	fs.StringVar(&cfg.Hash, "hash", cfg.Hash, "bucket hash algorithm: djb2, xxhash or murmur3")
	fs.Int64Var(&cfg.Buckets, "buckets", cfg.Buckets, "number of buckets")
	fs.IntVar(&cfg.MaxRecords, "max-records", cfg.MaxRecords, "maximum number of records, 0 for no limit")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	fs.StringVar(&cfg.HTTPAddr, "http", cfg.HTTPAddr, "serve queries over HTTP on this address instead of the console menu")
	if err = fs.Parse(args); err != nil {
		return
	}

	if cfg.Buckets <= 0 {
		err = fmt.Errorf("buckets must be a positive value higher than 0 (zero)")
		return
	}
	if cfg.MaxRecords < 0 {
		err = fmt.Errorf("max-records can not be negative")
		return
	}

	return
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
