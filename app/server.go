package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/osmosis-labs/osmosis/osmomath"
	"go.uber.org/zap"

	"github.com/osmosis-labs/tickbook/domain"
	"github.com/osmosis-labs/tickbook/domain/mvc"
	orderbookdomain "github.com/osmosis-labs/tickbook/domain/orderbook"
	"github.com/osmosis-labs/tickbook/log"
	"github.com/osmosis-labs/tickbook/middleware"
	orderbookhttpdelivery "github.com/osmosis-labs/tickbook/orderbook/delivery/http"
	orderbookrepository "github.com/osmosis-labs/tickbook/orderbook/repository"
	"github.com/osmosis-labs/tickbook/orderbook/tickmath"
	orderbookusecase "github.com/osmosis-labs/tickbook/orderbook/usecase"
	systemhttpdelivery "github.com/osmosis-labs/tickbook/system/delivery/http"
)

// TickbookServer serves the order engine over HTTP.
type TickbookServer interface {
	GetOrderBookUsecase() mvc.OrderBookUsecase
	GetLogger() log.Logger
	Shutdown(context.Context) error
	Start(context.Context) error
}

type tickbookServer struct {
	repository       orderbookdomain.LedgerRepository
	orderbookUsecase mvc.OrderBookUsecase
	e                *echo.Echo
	address          string
	logger           log.Logger
}

const tracerName = "tickbook"

// GetOrderBookUsecase implements TickbookServer.
func (s *tickbookServer) GetOrderBookUsecase() mvc.OrderBookUsecase {
	return s.orderbookUsecase
}

// GetLogger implements TickbookServer.
func (s *tickbookServer) GetLogger() log.Logger {
	return s.logger
}

// Shutdown implements TickbookServer.
func (s *tickbookServer) Shutdown(ctx context.Context) error {
	shutdownErr := s.e.Shutdown(ctx)
	if err := s.repository.Close(); err != nil {
		s.logger.Error("failed to close ledger storage", zap.Error(err))
		return errors.Join(shutdownErr, err)
	}
	return shutdownErr
}

// Start implements TickbookServer.
func (s *tickbookServer) Start(context.Context) error {
	s.logger.Info("Starting tickbook server", zap.String("address", s.address))
	err := s.e.Start(s.address)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// NewTickbookServer creates the ledger storage, the order engine and the HTTP handlers.
func NewTickbookServer(config domain.Config, logger log.Logger) (TickbookServer, error) {
	ladder, err := newPriceLadder(config.PriceLadder)
	if err != nil {
		return nil, err
	}

	repository, err := newLedgerRepository(config.Storage, logger)
	if err != nil {
		return nil, err
	}

	orderbookUsecase := orderbookusecase.New(repository, ladder, logger)

	// Setup echo server
	e := echo.New()
	corsConfig := config.CORS
	if corsConfig == nil {
		corsConfig = DefaultConfig.CORS
	}
	middleware := middleware.InitMiddleware(corsConfig)
	e.Use(middleware.CORS)
	e.Use(middleware.InstrumentMiddleware)
	e.Use(middleware.TraceWithParamsMiddleware(tracerName))

	// HTTP handlers
	orderbookhttpdelivery.NewOrderbookHandler(e, orderbookUsecase, logger)
	systemhttpdelivery.NewSystemHandler(e, config, logger, orderbookUsecase)

	return &tickbookServer{
		repository:       repository,
		orderbookUsecase: orderbookUsecase,
		e:                e,
		address:          config.ServerAddress,
		logger:           logger,
	}, nil
}

func newPriceLadder(config *domain.PriceLadderConfig) (*tickmath.PriceLadder, error) {
	if config == nil {
		config = DefaultConfig.PriceLadder
	}

	tickIncrement, err := osmomath.NewBigDecFromStr(config.TickIncrement)
	if err != nil {
		return nil, fmt.Errorf("invalid tick increment %q: %w", config.TickIncrement, err)
	}

	return tickmath.NewPriceLadder(tickIncrement, config.MaxTick, config.PriceCacheSize)
}

func newLedgerRepository(config *domain.StorageConfig, logger log.Logger) (orderbookdomain.LedgerRepository, error) {
	if config == nil {
		config = DefaultConfig.Storage
	}

	switch config.Backend {
	case domain.StorageBackendMemory, "":
		logger.Info("Using in-memory ledger storage")
		return orderbookrepository.NewMemoryRepository(), nil
	case domain.StorageBackendPebble:
		logger.Info("Opening pebble ledger storage", zap.String("path", config.Path))
		repository, err := orderbookrepository.NewPebbleRepository(config.Path)
		if err != nil {
			return nil, err
		}
		return repository, nil
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", config.Backend)
	}
}
