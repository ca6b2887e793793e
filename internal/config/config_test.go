//go:build unit

package config

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Run("uses defaults", func(t *testing.T) {
		// Prepare
		for _, k := range []string{"PARCELMAP_FILE", "PARCELMAP_HASH", "PARCELMAP_BUCKETS", "PARCELMAP_MAX_RECORDS", "PARCELMAP_LOG_LEVEL", "PARCELMAP_HTTP"} {
			t.Setenv(k, "")
		}

		// Execute
		cfg, err := Load("parcelmap", nil)

		// Check
		require.NoError(t, err, "load config")
		assert.Equal(t, Config{File: "parcels.csv", Hash: "djb2", Buckets: 127, LogLevel: "info"}, cfg, "defaults")
	})

	t.Run("reads the environment and lets flags win", func(t *testing.T) {
		// Prepare
		t.Setenv("PARCELMAP_FILE", "env.csv")
		t.Setenv("PARCELMAP_HASH", "xxhash")
		t.Setenv("PARCELMAP_BUCKETS", "31")
		t.Setenv("PARCELMAP_MAX_RECORDS", "100")
		t.Setenv("PARCELMAP_HTTP", ":8080")

		// Execute
		cfg, err := Load("parcelmap", []string{"-file", "flag.csv", "-max-records", "5", "-log-level", "debug"})

		// Check
		require.NoError(t, err, "load config")
		assert.Equal(t, "flag.csv", cfg.File, "flag wins")
		assert.Equal(t, "xxhash", cfg.Hash, "env used")
		assert.Equal(t, int64(31), cfg.Buckets, "env used")
		assert.Equal(t, 5, cfg.MaxRecords, "flag wins")
		assert.Equal(t, "debug", cfg.LogLevel, "flag used")
		assert.Equal(t, ":8080", cfg.HTTPAddr, "env used")
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		t.Setenv("PARCELMAP_BUCKETS", "many")
		_, err := Load("parcelmap", nil)
		assert.Error(t, err, "bad env value")

		t.Setenv("PARCELMAP_BUCKETS", "")
		_, err = Load("parcelmap", []string{"-buckets", "0"})
		assert.Error(t, err, "zero buckets")

		_, err = Load("parcelmap", []string{"-max-records", "-1"})
		assert.Error(t, err, "negative record limit")

		_, err = Load("parcelmap", []string{"-nope"})
		assert.Error(t, err, "unknown flag")
	})
}
