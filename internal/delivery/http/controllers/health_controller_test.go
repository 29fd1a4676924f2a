package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct{ err error }

func (f fakePinger) PingContext(_ context.Context) error { return f.err }

func TestHealthController(t *testing.T) {
	tests := []struct {
		name       string
		db         Pinger
		wantStatus int
	}{
		{name: "no database", db: nil, wantStatus: http.StatusOK},
		{name: "database up", db: fakePinger{}, wantStatus: http.StatusOK},
		{name: "database down", db: fakePinger{err: assert.AnError}, wantStatus: http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewHealthController(testLogger(), tt.db)
			rr := httptest.NewRecorder()

			ctrl.Health(rr, httptest.NewRequest(http.MethodGet, "http://test/health", nil))

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				var resp HealthResponse
				decodeData(t, decodeEnvelope(t, rr), &resp)
				assert.Equal(t, "ok", resp.Status)
			}
		})
	}
}
