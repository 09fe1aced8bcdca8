package handler

import (
	"bytes"
	"encoding/json"
	"image/gif"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hapkiduki/boxopt/internal/application/dto"
	"github.com/hapkiduki/boxopt/internal/application/presenter"
	"github.com/hapkiduki/boxopt/internal/application/service"
	"github.com/hapkiduki/boxopt/internal/infrastructure/logging"
	"github.com/hapkiduki/boxopt/internal/infrastructure/render"
	"github.com/hapkiduki/boxopt/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	cfg := render.DefaultConfig()
	cfg.Width, cfg.Height, cfg.Frames = 96, 72, 3

	r, err := render.New(cfg)
	require.NoError(t, err)

	svc := service.NewBoxService(logging.NewAdapter(logger.NewNop()), render.NewAdapter(r))
	return NewBoxHandler(svc, presenter.Default(), "test").Routes()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) dto.APIResponse[T] {
	t.Helper()
	var resp dto.APIResponse[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func TestBoxHandler_Create(t *testing.T) {
	h := newTestHandler(t)

	for _, body := range []string{`{"volume":"2"}`, `{"volume":2}`} {
		rec := do(t, h, http.MethodPost, "/", body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		resp := decode[dto.BoxResponse](t, rec)
		assert.True(t, resp.Success)
		assert.InDelta(t, 1.5874, resp.Data.Width, 1e-4)
		assert.InDelta(t, 7.5595, resp.Data.Area, 1e-4)
		assert.Equal(t, resp.Data.Width, resp.Data.Length)
		assert.Equal(t, "test", resp.Meta.Version)
	}
}

func TestBoxHandler_Create_Errors(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name string
		body string
		code string
	}{
		{"not a number", `{"volume":"abc"}`, dto.CodeInvalidInput},
		{"zero", `{"volume":0}`, dto.CodeInvalidInput},
		{"negative", `{"volume":"-5"}`, dto.CodeInvalidInput},
		{"missing", `{}`, dto.CodeInvalidInput},
		{"wrong type", `{"volume":true}`, dto.CodeBadRequest},
		{"malformed", `{"volume":`, dto.CodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			resp := decode[any](t, rec)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.NotEmpty(t, resp.Error.Message)
		})
	}
}

func TestBoxHandler_Get(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodGet, "/?volume=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[dto.BoxResponse](t, rec)
	assert.InDelta(t, 1.2599, resp.Data.Width, 1e-4)
	assert.InDelta(t, 0.6300, resp.Data.Height, 1e-4)
	assert.Equal(t, "base", string(resp.Data.Faces[0].Name))

	rec = do(t, h, http.MethodGet, "/?volume=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	errResp := decode[any](t, rec)
	assert.Equal(t, dto.CodeInvalidInput, errResp.Error.Code)
	assert.Equal(t, "volume", errResp.Error.Details["field"])
}

func TestBoxHandler_Summary(t *testing.T) {
	rec := do(t, newTestHandler(t), http.MethodGet, "/summary?volume=2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[dto.SummaryResponse](t, rec)
	require.Len(t, resp.Data.Lines, 5)
	assert.Equal(t, "1.5874", resp.Data.Lines[0].Text)
	assert.Equal(t, "7.5595", resp.Data.Lines[3].Text)
	assert.NotEmpty(t, resp.Data.ID)
}

func TestBoxHandler_Derivation(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodGet, "/derivation?volume=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[dto.DerivationResponse](t, rec)
	assert.Len(t, resp.Data.Steps, presenter.DerivationSteps)

	rec = do(t, h, http.MethodGet, "/derivation?volume=2&format=text", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain"))
	assert.Contains(t, rec.Body.String(), "10. ")
}

func TestBoxHandler_Render(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodGet, "/render.png?volume=2&elev=45", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 96, img.Bounds().Dx())

	rec = do(t, h, http.MethodGet, "/render.gif?volume=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/gif", rec.Header().Get("Content-Type"))
	anim, err := gif.DecodeAll(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Len(t, anim.Image, 3)
}

func TestBoxHandler_Render_Errors(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		target string
		code   string
	}{
		{"/render.bmp?volume=2", dto.CodeUnsupportedFormat},
		{"/render.png?volume=-1", dto.CodeInvalidInput},
		{"/render.png?volume=2&azim=left", dto.CodeBadRequest},
		{"/render.png?volume=2&elev=NaN", dto.CodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, tt.target, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.code, decode[any](t, rec).Error.Code)
		})
	}
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	Health("1.0.0", time.Now().Add(-time.Minute))(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[dto.HealthResponse](t, rec)
	assert.Equal(t, "healthy", resp.Data.Status)
	assert.Equal(t, "1.0.0", resp.Data.Version)
	assert.Equal(t, "1m0s", resp.Data.Uptime)
}
