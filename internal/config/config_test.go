package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := Load()
	cfg.Ledger.CollectionAddress = "collection-addr"
	return cfg
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 200, cfg.Ledger.ScanLimit)
	assert.Equal(t, 12*time.Second, cfg.Ledger.ScanTimeout)
	assert.Equal(t, 50*time.Millisecond, cfg.Ledger.QueueMinGap)
	assert.Equal(t, 2*time.Second, cfg.Ledger.QueueCooldown)
	assert.Equal(t, 60*time.Second, cfg.Cache.ListTTL)
	assert.Equal(t, 5*time.Minute, cfg.Cache.ProfileTTL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("SCAN_TIMEOUT", "3s")
	t.Setenv("CACHE_LIST_TTL", "90s")
	t.Setenv("COLLECTION_ADDRESS", "col-from-env")

	cfg := Load()
	assert.Equal(t, 9999, cfg.ServerPort)
	assert.Equal(t, 3*time.Second, cfg.Ledger.ScanTimeout)
	assert.Equal(t, 90*time.Second, cfg.Cache.ListTTL)
	assert.Equal(t, "col-from-env", cfg.Ledger.CollectionAddress)
}

func TestValidateRequiresCollection(t *testing.T) {
	cfg := Load()
	cfg.Ledger.CollectionAddress = ""
	require.Error(t, cfg.Validate())

	cfg.Ledger.CollectionAddress = "collection-addr"
	require.NoError(t, cfg.Validate())
}

func TestValidateServerPort(t *testing.T) {
	cfg := validConfig()
	cfg.ServerPort = 0
	assert.Error(t, cfg.Validate())

	cfg.ServerPort = 70000
	assert.Error(t, cfg.Validate())
}

func TestValidateIdentitySeed(t *testing.T) {
	cfg := validConfig()

	cfg.IdentitySeed = ""
	assert.NoError(t, cfg.Validate(), "empty seed disables writes, still valid")

	cfg.IdentitySeed = strings.Repeat("ab", 32)
	assert.NoError(t, cfg.Validate())

	cfg.IdentitySeed = "not-hex"
	assert.Error(t, cfg.Validate())

	cfg.IdentitySeed = strings.Repeat("ab", 16)
	assert.Error(t, cfg.Validate(), "seed must decode to 32 bytes")
}

func TestSeedBytes(t *testing.T) {
	cfg := validConfig()

	cfg.IdentitySeed = ""
	assert.Nil(t, cfg.SeedBytes())

	cfg.IdentitySeed = strings.Repeat("07", 32)
	seed := cfg.SeedBytes()
	require.Len(t, seed, 32)
	assert.Equal(t, byte(7), seed[0])
}
