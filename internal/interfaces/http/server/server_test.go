package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hapkiduki/boxopt/internal/application/dto"
	"github.com/hapkiduki/boxopt/internal/application/presenter"
	"github.com/hapkiduki/boxopt/internal/application/service"
	"github.com/hapkiduki/boxopt/internal/infrastructure/config"
	"github.com/hapkiduki/boxopt/internal/infrastructure/logging"
	"github.com/hapkiduki/boxopt/internal/infrastructure/render"
	"github.com/hapkiduki/boxopt/internal/interfaces/http/handler"
	"github.com/hapkiduki/boxopt/internal/interfaces/http/middleware"
	"github.com/hapkiduki/boxopt/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServerConfig() config.ServerConfig {
	return config.ServerConfig{
		Host:               "127.0.0.1",
		Port:               0,
		ReadTimeout:        time.Second,
		WriteTimeout:       time.Second,
		IdleTimeout:        time.Second,
		ShutdownTimeout:    time.Second,
		RequestTimeout:     5 * time.Second,
		MaxRequestSize:     1 << 10,
		CORSAllowedOrigins: []string{"*"},
		RateLimitRPS:       100,
		RateLimitBurst:     100,
	}
}

func newTestRouter(t *testing.T, cfg config.ServerConfig) http.Handler {
	t.Helper()
	rcfg := render.DefaultConfig()
	rcfg.Width, rcfg.Height = 64, 48

	r, err := render.New(rcfg)
	require.NoError(t, err)

	log := logging.NewAdapter(logger.NewNop())
	svc := service.NewBoxService(log, render.NewAdapter(r))

	return NewRouter(Deps{
		Config:  cfg,
		Log:     log,
		Boxes:   handler.NewBoxHandler(svc, presenter.Default(), "v-test"),
		Version: "v-test",
		Started: time.Now(),
	})
}

func TestRouter_Health(t *testing.T) {
	h := newTestRouter(t, testServerConfig())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "v-test", rec.Header().Get("X-API-Version"))
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestRouter_ComputeEndToEnd(t *testing.T) {
	h := newTestRouter(t, testServerConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/boxes", strings.NewReader(`{"volume":"1"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.RequestIDHeader, "req-e2e")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp dto.APIResponse[dto.BoxResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 4.7622, resp.Data.Area, 1e-4)
	assert.Equal(t, "req-e2e", resp.Meta.RequestID)
}

func TestRouter_Errors(t *testing.T) {
	h := newTestRouter(t, testServerConfig())

	tests := []struct {
		name   string
		method string
		target string
		ctype  string
		status int
		code   string
	}{
		{"unknown route", http.MethodGet, "/nope", "", http.StatusNotFound, dto.CodeNotFound},
		{"wrong method", http.MethodDelete, "/health", "", http.StatusMethodNotAllowed, dto.CodeMethodNotAllowed},
		{"not json", http.MethodPost, "/api/v1/boxes", "text/plain", http.StatusUnsupportedMediaType, dto.CodeUnsupportedMedia},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader("2"))
			if tt.ctype != "" {
				req.Header.Set("Content-Type", tt.ctype)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			var resp dto.APIResponse[any]
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestRouter_RateLimit(t *testing.T) {
	cfg := testServerConfig()
	cfg.RateLimitRPS, cfg.RateLimitBurst = 0.001, 1
	h := newTestRouter(t, cfg)

	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/health", nil))
	second := httptest.NewRecorder()
	h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	cfg := testServerConfig()
	cfg.Port = port
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- Run(ctx, cfg, newTestRouter(t, cfg), logging.NewAdapter(logger.NewNop())) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + cfg.Address() + "/health")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRun_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	cfg := testServerConfig()
	cfg.Port = ln.Addr().(*net.TCPAddr).Port

	err = Run(context.Background(), cfg, http.NotFoundHandler(), logging.NewAdapter(logger.NewNop()))
	assert.Error(t, err)
}
