package main

import (
	"github.com/osmosis-labs/tickbook/domain"
	"github.com/osmosis-labs/tickbook/orderbook/tickmath"
)

// DefaultConfig defines the default config for the tickbook server.
var DefaultConfig = domain.Config{
	ServerAddress: ":9092",

	LoggerFilename:     "tickbook.log",
	LoggerIsProduction: true,
	LoggerLevel:        "info",

	CORS: &domain.CORSConfig{
		AllowedHeaders: "Origin, Accept, Content-Type, X-Requested-With, X-Account-Id",
		AllowedMethods: "HEAD, GET, POST, OPTIONS",
		AllowedOrigin:  "*",
	},

	OTEL: &domain.OTELConfig{
		Environment: "development",
	},

	PriceLadder: &domain.PriceLadderConfig{
		TickIncrement:  tickmath.DefaultTickIncrement.String(),
		MaxTick:        tickmath.DefaultMaxTick,
		PriceCacheSize: 4096,
	},

	Storage: &domain.StorageConfig{
		Backend: domain.StorageBackendMemory,
		Path:    "tickbook_data",
	},
}
