package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/dxfview/pkg/buildinfo"
	"github.com/matzehuels/dxfview/pkg/errors"
	"github.com/matzehuels/dxfview/pkg/pipeline"
	"github.com/matzehuels/dxfview/pkg/render/bounds"
	"github.com/matzehuels/dxfview/pkg/render/fallback"
	"github.com/matzehuels/dxfview/pkg/render/fit"
	"github.com/matzehuels/dxfview/pkg/render/sink"
)

// Response headers set by the render endpoint.
const (
	HeaderRenderID = "X-Render-Id"
	HeaderFallback = "X-Fallback"
	HeaderCache    = "X-Cache"
)

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r.URL.Query())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	format := sink.FormatPNG
	if f := r.URL.Query().Get("format"); f != "" {
		format = sink.NormalizeFormat(f)
	}
	opts.Formats = []string{format}

	body, err := readBody(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	res, err := s.runner.RunBytes(r.Context(), "upload", body, sourceFormat(r), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if res.Err != nil {
		s.logger.Warn("rendered placeholder", "id", RequestID(r.Context()), "message", res.Message, "error", res.Err)
	}

	h := w.Header()
	h.Set("Content-Type", sink.ContentTypes[format])
	h.Set(HeaderRenderID, uuid.NewString())
	if res.Fallback {
		h.Set(HeaderFallback, res.Message)
	}
	if res.CacheInfo.RenderHit {
		h.Set(HeaderCache, "hit")
	} else {
		h.Set(HeaderCache, "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// boundsResponse is the body of POST /v1/bounds. Bounds and Fit are null
// when the drawing has no visible content.
type boundsResponse struct {
	ID         string         `json:"id"`
	Entities   int            `json:"entities"`
	Blocks     int            `json:"blocks"`
	HasVisible bool           `json:"has_visible"`
	Bounds     *bounds.Bounds `json:"bounds"`
	Fit        *fit.Transform `json:"fit"`
	Width      int            `json:"width"`
	Height     int            `json:"height"`
	Message    string         `json:"message,omitempty"`
	Skipped    []string       `json:"skipped,omitempty"`
}

func (s *Server) handleBounds(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r.URL.Query())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.fail(w, r, err)
		return
	}
	body, err := readBody(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	src, err := s.runner.ParseBytes(r.Context(), "upload", body, sourceFormat(r), false)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	fr := pipeline.ComputeFrame(src.Model, opts)

	resp := boundsResponse{
		ID:         RequestID(r.Context()),
		Entities:   len(fr.Entities),
		Blocks:     len(src.Model.Blocks),
		HasVisible: fr.Message == "",
		Width:      opts.Width,
		Height:     opts.Height,
		Message:    fr.Message,
	}
	if resp.HasVisible {
		resp.Bounds = &fr.Bounds
		resp.Fit = &fr.Fit
	}
	for _, e := range fr.Skipped {
		resp.Skipped = append(resp.Skipped, e.Error())
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// Request Decoding
// =============================================================================

// options merges query parameters over the server defaults. Validation is
// left to the pipeline.
func (s *Server) options(q url.Values) (pipeline.Options, error) {
	opts := s.defaults
	opts.Formats = nil

	ints := []struct {
		name string
		dst  []*int
	}{
		{"size", []*int{&opts.Width, &opts.Height}},
		{"width", []*int{&opts.Width}},
		{"height", []*int{&opts.Height}},
	}
	for _, p := range ints {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidSize, "invalid %s %q", p.name, v)
		}
		for _, d := range p.dst {
			*d = n
		}
	}
	if q.Get("size") == "" && q.Get("width") != "" && q.Get("height") == "" {
		opts.Height = opts.Width
	}

	if v := q.Get("rotate"); v != "" {
		deg, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidRotation, "invalid rotate %q", v)
		}
		opts.Rotation = deg
	}
	if v := q.Get("background"); v != "" {
		opts.Background = v
	}
	if v := q.Get("stroke"); v != "" {
		opts.Stroke = v
	}
	for name, dst := range map[string]*bool{
		"isolate":   &opts.Isolate,
		"refresh":   &opts.Refresh,
		"embedfont": &opts.EmbedFont,
	} {
		if v := q.Get(name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidInput, "invalid %s %q", name, v)
			}
			*dst = b
		}
	}
	if v := q.Get("lineweights"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid lineweights %q", v)
		}
		opts.IgnoreLineweights = !b
	}
	return opts, nil
}

// sourceFormat reads the drawing format from ?source= or the Content-Type.
// An empty result means detect from content.
func sourceFormat(r *http.Request) string {
	switch v := strings.ToLower(r.URL.Query().Get("source")); v {
	case pipeline.SourceDXF, pipeline.SourceJSON:
		return v
	}
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mt {
	case "application/json":
		return pipeline.SourceJSON
	case "application/dxf", "image/vnd.dxf", "image/x-dxf":
		return pipeline.SourceDXF
	}
	return ""
}

func readBody(r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty request body")
	}
	return data, nil
}

// =============================================================================
// Responses
// =============================================================================

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	ID    string `json:"id,omitempty"`
}

// statusFor maps error codes to HTTP status codes.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath,
		errors.ErrCodeInvalidRotation, errors.ErrCodeInvalidSize:
		return http.StatusBadRequest
	case errors.ErrCodeParseFailure:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound, errors.ErrCodeBlockNotFound:
		return http.StatusNotFound
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	id := RequestID(r.Context())
	msg := errors.UserMessage(err)
	if code == errors.ErrCodeParseFailure {
		msg = fallback.MsgParseError + ": " + msg
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", id, "error", err)
	} else {
		s.logger.Debug("request rejected", "id", id, "error", err)
	}
	writeJSON(w, status, errorResponse{Error: msg, Code: string(code), ID: id})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
