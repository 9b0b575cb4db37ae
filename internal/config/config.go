package config

import (
	"encoding/hex"
	"os"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"

	"github.com/mintfeed/mintfeed/internal/logger"
)

// Ledger holds the remote ledger connection and scan tuning.
type Ledger struct {
	RPCEndpoint       string
	CollectionAddress string
	ScanLimit         int
	ScanTimeout       time.Duration
	QueueMinGap       time.Duration
	QueueCooldown     time.Duration
}

// Cache holds the TTL policy for classified reads.
type Cache struct {
	ListTTL    time.Duration
	ProfileTTL time.Duration
}

// S3 holds the image pinning target.
type S3 struct {
	Region  string
	Bucket  string
	BaseURL string
}

// Config is the full service configuration, loaded from the environment.
type Config struct {
	ServerPort int
	LogLevel   string
	LogFile    string

	Ledger Ledger
	Cache  Cache
	S3     S3

	// IdentitySeed is the hex-encoded ed25519 seed for the server wallet.
	// Empty disables the write path (reads still work).
	IdentitySeed string
}

// Load reads configuration from .env and the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		// Not an error: production supplies real environment variables.
		if logger.Log != nil {
			logger.Log.Info(".env file not found, using system environment variables")
		}
	}

	return &Config{
		ServerPort: getEnvAsInt("SERVER_PORT", 8080),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogFile:    getEnv("LOG_FILE", "mintfeed.log"),
		Ledger: Ledger{
			RPCEndpoint:       getEnv("LEDGER_RPC_ENDPOINT", "http://localhost:8899"),
			CollectionAddress: getEnv("COLLECTION_ADDRESS", ""),
			ScanLimit:         getEnvAsInt("SCAN_LIMIT", 200),
			ScanTimeout:       getEnvAsDuration("SCAN_TIMEOUT", 12*time.Second),
			QueueMinGap:       getEnvAsDuration("QUEUE_MIN_GAP", 50*time.Millisecond),
			QueueCooldown:     getEnvAsDuration("QUEUE_COOLDOWN", 2*time.Second),
		},
		Cache: Cache{
			ListTTL:    getEnvAsDuration("CACHE_LIST_TTL", 60*time.Second),
			ProfileTTL: getEnvAsDuration("CACHE_PROFILE_TTL", 5*time.Minute),
		},
		S3: S3{
			Region:  getEnv("AWS_REGION", "us-east-1"),
			Bucket:  getEnv("AWS_BUCKET", ""),
			BaseURL: getEnv("CDN_BASE_URL", ""),
		},
		IdentitySeed: getEnv("IDENTITY_SEED", ""),
	}
}

// Validate checks the settings a running server cannot do without.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ServerPort, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.Ledger),
		validation.Field(&c.IdentitySeed, validation.By(validSeed)),
	)
}

// Validate checks the ledger binding.
func (l Ledger) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.RPCEndpoint, validation.Required, is.URL),
		validation.Field(&l.CollectionAddress, validation.Required),
		validation.Field(&l.ScanLimit, validation.Min(1)),
	)
}

func validSeed(value any) error {
	seed, _ := value.(string)
	if seed == "" {
		return nil
	}
	decoded, err := hex.DecodeString(seed)
	if err != nil || len(decoded) != 32 {
		return validation.NewError("validation_identity_seed", "IDENTITY_SEED must be 32 hex-encoded bytes")
	}
	return nil
}

// SeedBytes decodes the identity seed, or nil when unset.
func (c *Config) SeedBytes() []byte {
	if c.IdentitySeed == "" {
		return nil
	}
	decoded, err := hex.DecodeString(c.IdentitySeed)
	if err != nil {
		return nil
	}
	return decoded
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
