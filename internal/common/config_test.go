package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, ":8080", cfg.Server.HTTPAddr)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, int32(20), cfg.Database.MaxConns)
	assert.InDelta(t, 0.60, float64(cfg.Scan.MinConfidence), 1e-6)
	assert.Equal(t, 1<<20, cfg.Scan.MaxTextBytes)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/receipts")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("SCAN_MIN_CONFIDENCE", "0.8")
	t.Setenv("SCAN_MAX_TEXT_BYTES", "2048")
	t.Setenv("DB_MAX_CONN_LIFETIME", "15m")

	cfg := LoadConfig()

	assert.Equal(t, "postgres://localhost/receipts", cfg.Database.DSN)
	assert.Equal(t, ":9090", cfg.Server.HTTPAddr)
	assert.InDelta(t, 0.8, float64(cfg.Scan.MinConfidence), 1e-6)
	assert.Equal(t, 2048, cfg.Scan.MaxTextBytes)
	assert.Equal(t, 15*time.Minute, cfg.Database.MaxConnLifetime)
}

func TestLoadConfigIgnoresMalformedValues(t *testing.T) {
	t.Setenv("SCAN_MAX_TEXT_BYTES", "lots")
	t.Setenv("SCAN_MIN_CONFIDENCE", "very")
	t.Setenv("DB_DIAL_TIMEOUT", "soon")

	cfg := LoadConfig()

	assert.Equal(t, 1<<20, cfg.Scan.MaxTextBytes)
	assert.InDelta(t, 0.60, float64(cfg.Scan.MinConfidence), 1e-6)
	assert.Equal(t, 3*time.Second, cfg.Database.DialTimeout)
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Database: DatabaseConfig{DSN: "postgres://localhost/receipts"},
			Server:   ServerConfig{HTTPAddr: ":8080"},
			Scan:     ScanConfig{MinConfidence: 0.6},
		}
	}

	require.NoError(t, valid().Validate())

	noDSN := valid()
	noDSN.Database.DSN = ""
	assert.Error(t, noDSN.Validate())

	noAddr := valid()
	noAddr.Server.HTTPAddr = ""
	assert.Error(t, noAddr.Validate())

	badThreshold := valid()
	badThreshold.Scan.MinConfidence = 1.5
	assert.Error(t, badThreshold.Validate())
}
