package domain

// Config defines the config for the tickbook server.
type Config struct {
	// Defines the web server configuration.
	ServerAddress string `mapstructure:"server-address"`

	// Defines the logger configuration.
	LoggerFilename     string `mapstructure:"logger-filename"`
	LoggerIsProduction bool   `mapstructure:"logger-is-production"`
	LoggerLevel        string `mapstructure:"logger-level"`

	CORS *CORSConfig `mapstructure:"cors"`

	OTEL *OTELConfig `mapstructure:"otel"`

	// PriceLadder encapsulates the tick to price mapping config.
	PriceLadder *PriceLadderConfig `mapstructure:"price-ladder"`

	// Storage selects the ledger backend.
	Storage *StorageConfig `mapstructure:"storage"`
}

// CORSConfig represents HTTP CORS headers configuration.
type CORSConfig struct {
	AllowedHeaders string `mapstructure:"allowed-headers"`
	AllowedMethods string `mapstructure:"allowed-methods"`
	AllowedOrigin  string `mapstructure:"allowed-origin"`
}

// OTELConfig represents OpenTelemetry and Sentry configuration.
// Tracing is disabled when DSN is empty.
type OTELConfig struct {
	DSN                string  `mapstructure:"dsn"`
	SampleRate         float64 `mapstructure:"sample-rate"`
	EnableTracing      bool    `mapstructure:"enable-tracing"`
	TracesSampleRate   float64 `mapstructure:"traces-sample-rate"`
	ProfilesSampleRate float64 `mapstructure:"profiles-sample-rate"`
	Environment        string  `mapstructure:"environment"`
}

// PriceLadderConfig defines the tick price ladder.
type PriceLadderConfig struct {
	// TickIncrement is the relative price step between adjacent ticks, as a decimal string.
	TickIncrement string `mapstructure:"tick-increment"`
	// MaxTick is the largest supported tick magnitude.
	MaxTick int64 `mapstructure:"max-tick"`
	// PriceCacheSize is the number of tick prices kept in memory.
	PriceCacheSize int `mapstructure:"price-cache-size"`
}

// Supported ledger storage backends.
const (
	StorageBackendMemory = "memory"
	StorageBackendPebble = "pebble"
)

// StorageConfig defines where the ledger is kept.
type StorageConfig struct {
	// Backend is either "memory" or "pebble".
	Backend string `mapstructure:"backend"`
	// Path is the pebble data directory. Ignored by the memory backend.
	Path string `mapstructure:"path"`
}
