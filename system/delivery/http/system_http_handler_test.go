package http_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/osmosis-labs/tickbook/domain"
	"github.com/osmosis-labs/tickbook/domain/mocks"
	"github.com/osmosis-labs/tickbook/log"
	"github.com/osmosis-labs/tickbook/system/delivery/http"
)

func TestExtractVersion(t *testing.T) {

	// Test cases
	testCases := []struct {
		name            string
		ldFlagsValue    string
		expectedVersion string
	}{
		{
			name:         "version is specified first in the ldFlagsValue",
			ldFlagsValue: "-X github.com/osmosis-labs/tickbook/version=0.1.2-4-g79c82c8     -w -s -linkmode=external -extldflags '-Wl,-z,muldefs -static'",

			expectedVersion: "0.1.2-4-g79c82c8",
		},
		{
			name:         "version is specified in the end of ldFlagsValue",
			ldFlagsValue: "-w -s -linkmode=external -extldflags '-Wl,-z,muldefs -static' -X github.com/osmosis-labs/tickbook/version=0.1.2-4-g79c82c8",

			expectedVersion: "0.1.2-4-g79c82c8",
		},
		{
			name:         "version is specified in the middle of ldFlagsValue",
			ldFlagsValue: "-extldflags '-Wl,-z,muldefs -static' -X github.com/osmosis-labs/tickbook/version=0.1.2-4-g79c82c8 -w -s -linkmode=external",

			expectedVersion: "0.1.2-4-g79c82c8",
		},
		{
			name:         "ldFlagsValue only version",
			ldFlagsValue: "-X github.com/osmosis-labs/tickbook/version=0.1.2-4-g79c82c8",

			expectedVersion: "0.1.2-4-g79c82c8",
		},
	}

	// Run tests
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := http.ExtractVersion(tc.ldFlagsValue)
			require.NoError(t, err)

			require.Equal(t, tc.expectedVersion, result)
		})
	}
}

func TestExtractVersion_NotFound(t *testing.T) {
	_, err := http.ExtractVersion("-w -s -linkmode=external")
	require.Error(t, err)
}

func TestGetHealthStatus(t *testing.T) {
	tests := map[string]struct {
		healthErr error

		expectedStatus int
	}{
		"healthy ledger": {
			expectedStatus: 200,
		},
		"unreadable ledger": {
			healthErr:      errors.New("pebble: closed"),
			expectedStatus: 503,
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			config := domain.Config{
				LoggerIsProduction: true,
				Storage:            &domain.StorageConfig{Backend: domain.StorageBackendMemory},
			}

			http.NewSystemHandler(e, config, &log.NoOpLogger{}, &mocks.OrderbookUsecaseMock{
				IsHealthyFunc: func(ctx context.Context) error {
					return tc.healthErr
				},
			})

			req := httptest.NewRequest("GET", "/healthcheck", nil)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			require.Equal(t, tc.expectedStatus, rec.Code)
		})
	}
}
