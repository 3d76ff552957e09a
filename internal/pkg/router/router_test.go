package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shandysiswandi/goshield/internal/pkg/instrument"
	"github.com/shandysiswandi/goshield/internal/pkg/uid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubConfig struct{}

func (stubConfig) Close() error { return nil }

func (stubConfig) GetSecond(string) time.Duration { return 0 }

func (stubConfig) GetMinute(string) time.Duration { return 0 }

func (stubConfig) GetHour(string) time.Duration { return 0 }

func (stubConfig) GetDay(string) time.Duration { return 0 }

func (stubConfig) GetInt(string) int { return 0 }

func (stubConfig) GetInt32(string) int32 { return 0 }

func (stubConfig) GetInt64(string) int64 { return 0 }

func (stubConfig) GetUint(string) uint { return 0 }

func (stubConfig) GetUint16(string) uint16 { return 0 }

func (stubConfig) GetUint32(string) uint32 { return 0 }

func (stubConfig) GetUint64(string) uint64 { return 0 }

func (stubConfig) GetFloat32(string) float32 { return 0 }

func (stubConfig) GetFloat64(string) float64 { return 0 }

func (stubConfig) GetBool(string) bool { return false }

func (stubConfig) GetString(string) string { return "" }

func (stubConfig) GetBinary(string) []byte { return nil }

func (stubConfig) GetArray(string) []string { return nil }

func (stubConfig) GetMap(string) map[string]string { return nil }

func newTestRouter() *Router {
	return NewRouter(Config{
		Config:     stubConfig{},
		UUID:       uid.NewUUID(),
		JWT:        nil, // public routes never touch the verifier
		Instrument: instrument.NewNoop(),
	})
}

func serve(r *Router, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, nil))

	return rec
}

func TestRouterWelcome(t *testing.T) {
	rec := serve(newTestRouter(), http.MethodGet, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Welcome to API GoShield")
}

func TestRouterHealth(t *testing.T) {
	rec := serve(newTestRouter(), http.MethodGet, "/health")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouterNotFound(t *testing.T) {
	rec := serve(newTestRouter(), http.MethodGet, "/nope")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "endpoint not found")
}

func TestRouterMethodNotAllowed(t *testing.T) {
	rec := serve(newTestRouter(), http.MethodPost, "/health")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
