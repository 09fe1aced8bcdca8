package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/hapkiduki/boxopt/internal/application/dto"
	"github.com/hapkiduki/boxopt/internal/application/port"
	"github.com/hapkiduki/boxopt/internal/application/presenter"
	"github.com/hapkiduki/boxopt/internal/domain/entity"
	"github.com/hapkiduki/boxopt/internal/domain/valueobject"
)

// BoxService is what the handler needs from the application layer.
type BoxService interface {
	Compute(ctx context.Context, raw string) (*entity.Computation, error)
	Render(ctx context.Context, w io.Writer, spec valueobject.BoxSpec, format string, view *port.View) error
	ContentType(format string) string
}

// BoxHandler serves the /api/v1/boxes resource.
type BoxHandler struct {
	svc       BoxService
	presenter *presenter.Presenter
	version   string
}

// NewBoxHandler creates a BoxHandler.
//
// Parameters:
//   - svc: the box service
//   - p: formats numbers and text output
//   - version: the API version reported in response metadata
//
// Returns:
//   - *BoxHandler: the handler
func NewBoxHandler(svc BoxService, p *presenter.Presenter, version string) *BoxHandler {
	return &BoxHandler{svc: svc, presenter: p, version: version}
}

// Routes returns the router of the resource, to be mounted at /api/v1/boxes.
func (h *BoxHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.Get)
	r.Get("/summary", h.Summary)
	r.Get("/derivation", h.Derivation)
	r.Get("/render.{format}", h.Render)
	return r
}

// computeRequest binds the POST body through go-chi/render.
type computeRequest dto.ComputeBoxRequest

// Bind implements render.Binder.
func (c *computeRequest) Bind(*http.Request) error { return nil }

// Create handles POST /api/v1/boxes.
func (h *BoxHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req computeRequest
	if err := render.Bind(r, &req); err != nil {
		fail(w, r, h.version, fmt.Errorf("%w: %w", errBadQuery, err))
		return
	}

	c, err := h.svc.Compute(r.Context(), string(req.Volume))
	if err != nil {
		fail(w, r, h.version, err)
		return
	}
	respond(w, r, http.StatusCreated, h.version, dto.NewBoxResponse(c))
}

// Get handles GET /api/v1/boxes?volume=.
func (h *BoxHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, ok := h.compute(w, r)
	if !ok {
		return
	}
	respond(w, r, http.StatusOK, h.version, dto.NewBoxResponse(c))
}

// Summary handles GET /api/v1/boxes/summary?volume=.
func (h *BoxHandler) Summary(w http.ResponseWriter, r *http.Request) {
	c, ok := h.compute(w, r)
	if !ok {
		return
	}
	respond(w, r, http.StatusOK, h.version, dto.SummaryResponse{
		ID:      c.ID.String(),
		Summary: h.presenter.Summary(c.Spec),
	})
}

// Derivation handles GET /api/v1/boxes/derivation?volume=[&format=text].
func (h *BoxHandler) Derivation(w http.ResponseWriter, r *http.Request) {
	c, ok := h.compute(w, r)
	if !ok {
		return
	}

	if r.URL.Query().Get("format") == "text" {
		var buf bytes.Buffer
		if err := h.presenter.WriteDerivation(&buf, c.Spec); err != nil {
			fail(w, r, h.version, err)
			return
		}
		render.PlainText(w, r, buf.String())
		return
	}

	respond(w, r, http.StatusOK, h.version, dto.DerivationResponse{
		ID:    c.ID.String(),
		Steps: h.presenter.Derivation(c.Spec),
	})
}

// Render handles GET /api/v1/boxes/render.{png,gif}?volume=[&elev=&azim=].
// The image is fully encoded before anything is written so failures
// still produce a JSON error.
func (h *BoxHandler) Render(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")

	view, err := parseView(r)
	if err != nil {
		fail(w, r, h.version, err)
		return
	}

	c, ok := h.compute(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.svc.Render(r.Context(), &buf, c.Spec, format, view); err != nil {
		fail(w, r, h.version, err)
		return
	}

	w.Header().Set("Content-Type", h.svc.ContentType(format))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// compute runs the optimizer on the volume query parameter, writing the
// error response itself when it fails.
func (h *BoxHandler) compute(w http.ResponseWriter, r *http.Request) (*entity.Computation, bool) {
	c, err := h.svc.Compute(r.Context(), r.URL.Query().Get("volume"))
	if err != nil {
		fail(w, r, h.version, err)
		return nil, false
	}
	return c, true
}

// parseView reads the optional elev and azim query parameters.
// It returns nil when neither is present.
func parseView(r *http.Request) (*port.View, error) {
	q := r.URL.Query()
	if !q.Has("elev") && !q.Has("azim") {
		return nil, nil
	}

	var view port.View
	for _, p := range []struct {
		name string
		dst  *float64
		def  float64
	}{
		{"elev", &view.Elevation, math.NaN()},
		{"azim", &view.Azimuth, math.NaN()},
	} {
		raw := q.Get(p.name)
		if raw == "" {
			*p.dst = p.def
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %s must be a finite number, got %q", errBadQuery, p.name, raw)
		}
		*p.dst = v
	}
	return &view, nil
}
