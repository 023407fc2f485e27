package http

import (
	"fmt"
	"net/http"
	"net/http/pprof"
	"runtime"
	"runtime/debug"
	"strings"

	"go.uber.org/zap"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/osmosis-labs/tickbook/domain"
	"github.com/osmosis-labs/tickbook/domain/mvc"
	"github.com/osmosis-labs/tickbook/log"

	"github.com/labstack/echo/v4"
)

type SystemHandler struct {
	logger   log.Logger
	OUsecase mvc.OrderBookUsecase
	config   domain.Config
}

const (
	versionPlaceholder    = "version="
	whiteSpacePlaceholder = " "
)

// NewSystemHandler will initialize the /debug/ppof resources endpoint
func NewSystemHandler(e *echo.Echo, config domain.Config, logger log.Logger, us mvc.OrderBookUsecase) {
	handler := &SystemHandler{
		logger:   logger,
		OUsecase: us,
		config:   config,
	}

	// if debug mod, enable additional profiles that are too intensive
	// for production.
	if !config.LoggerIsProduction {
		runtime.SetMutexProfileFraction(2)
		runtime.SetBlockProfileRate(2)
	}

	e.GET("/debug/pprof/*", echo.WrapHandler(http.DefaultServeMux))
	e.GET("/debug/pprof/cmdline", echo.WrapHandler(http.HandlerFunc(pprof.Cmdline)))
	e.GET("/debug/pprof/profile", echo.WrapHandler(http.HandlerFunc(pprof.Profile)))
	e.GET("/debug/pprof/symbol", echo.WrapHandler(http.HandlerFunc(pprof.Symbol)))
	e.GET("/debug/pprof/trace", echo.WrapHandler(http.HandlerFunc(pprof.Trace)))

	e.GET("/healthcheck", handler.GetHealthStatus)
	e.GET("/config", handler.GetConfig)
	e.GET("/version", handler.GetVersion)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.URL("swagger.yaml")))
	e.File("/swagger/swagger.yaml", "docs/swagger.yaml")
}

// GetConfig returns the config for the tickbook service
func (h *SystemHandler) GetConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, h.config)
}

func (h *SystemHandler) GetVersion(c echo.Context) error {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read build info")
	}

	for _, setting := range buildInfo.Settings {
		if setting.Key == "-ldflags" {
			version, err := extractVersion(setting.Value)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("failed to extract version information: %v", err))
			}

			return c.JSON(http.StatusOK, version)
		}
	}

	return echo.NewHTTPError(http.StatusInternalServerError, "failed to find version information")
}

// extractVersion extracts the version string from the ldflags
func extractVersion(ldFlagsValueStr string) (string, error) {
	index := strings.Index(ldFlagsValueStr, versionPlaceholder)
	if index == -1 {
		return "", fmt.Errorf("no version string found")
	}

	substring := ldFlagsValueStr[index+len(versionPlaceholder):]

	// version is the last flag
	index = strings.Index(substring, whiteSpacePlaceholder)
	if index == -1 {
		return substring, nil
	}

	return substring[:index], nil
}

// GetHealthStatus checks that the ledger storage is readable
func (h *SystemHandler) GetHealthStatus(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.OUsecase.IsHealthy(ctx); err != nil {
		h.logger.Error("Error reading ledger storage", zap.Error(err))
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Error reading ledger storage")
	}

	backend := domain.StorageBackendMemory
	if h.config.Storage != nil {
		backend = h.config.Storage.Backend
	}

	return c.JSON(http.StatusOK, map[string]string{
		"ledger_status":   "running",
		"storage_backend": backend,
	})
}
