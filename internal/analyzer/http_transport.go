package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Bahjat/site-audit/internal/model"
	"github.com/Bahjat/site-audit/internal/platform/errs"
)

const (
	analyzeTimeout = 120 * time.Second
	maxRequestBody = 1 << 20 // 1 MB
)

// validationError is a request problem reported verbatim to the client.
type validationError string

func (e validationError) Error() string { return string(e) }

const (
	errURLRequired         validationError = "Please enter a URL."
	errURLScheme           validationError = "The URL must start with http:// or https://."
	errUnknownAnalysisType validationError = `analysis_type must be "full" or "quick".`
)

// Transport handles HTTP requests for page analysis.
type Transport struct {
	service *Service
	logger  *slog.Logger
	version string
}

// NewTransport creates an HTTP transport backed by the given service.
// version is reported by the health endpoint.
func NewTransport(service *Service, logger *slog.Logger, version string) *Transport {
	return &Transport{service: service, logger: logger, version: version}
}

// RegisterRoutes attaches the transport's handlers to the given mux.
func (t *Transport) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/analyze", t.handleAnalyze)
	mux.HandleFunc("GET /api/quick-test/{url...}", t.handleQuickTest)
	mux.HandleFunc("GET /health", t.handleHealth)
}

type analyzeRequest struct {
	URL          string `json:"url"`
	AnalysisType string `json:"analysis_type"`
}

func (r *analyzeRequest) validate() error {
	r.URL = strings.TrimSpace(r.URL)
	if r.URL == "" {
		return errURLRequired
	}
	if !strings.HasPrefix(r.URL, "http://") && !strings.HasPrefix(r.URL, "https://") {
		return errURLScheme
	}
	switch r.AnalysisType {
	case "":
		r.AnalysisType = model.ModeFull
	case model.ModeFull, model.ModeQuick:
	default:
		return errUnknownAnalysisType
	}
	return nil
}

func (t *Transport) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		t.renderError(w, http.StatusBadRequest, "Invalid request body. Please send a JSON object with a \"url\" field.")
		return
	}

	if err := req.validate(); err != nil {
		t.renderError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), analyzeTimeout)
	defer cancel()

	resp, err := t.service.Analyze(ctx, req.URL, req.AnalysisType)
	if err != nil {
		t.handleServiceError(w, err)
		return
	}

	t.renderJSON(w, http.StatusOK, resp)
}

func (t *Transport) handleQuickTest(w http.ResponseWriter, r *http.Request) {
	target := quickTestTarget(r.PathValue("url"), r.URL.RawQuery)
	if target == "" {
		t.renderError(w, http.StatusBadRequest, errURLRequired.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), analyzeTimeout)
	defer cancel()

	resp, err := t.service.QuickTest(ctx, target)
	if err != nil {
		t.handleServiceError(w, err)
		return
	}

	t.renderJSON(w, http.StatusOK, resp)
}

// quickTestTarget rebuilds the target URL from the path remainder. The mux
// collapses "//" so "https://host" arrives as "https:/host". A remainder
// without a scheme gets https://.
func quickTestTarget(rest, rawQuery string) string {
	if rest == "" {
		return ""
	}
	if rawQuery != "" {
		rest += "?" + rawQuery
	}
	for _, scheme := range []string{"http:", "https:"} {
		if after, ok := strings.CutPrefix(rest, scheme); ok {
			return scheme + "//" + strings.TrimLeft(after, "/")
		}
	}
	return "https://" + rest
}

func (t *Transport) handleHealth(w http.ResponseWriter, _ *http.Request) {
	t.renderJSON(w, http.StatusOK, model.HealthResponse{Status: "ok", Version: t.version})
}

func (t *Transport) handleServiceError(w http.ResponseWriter, err error) {
	var appErr *errs.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		switch appErr.Kind {
		case errs.InvalidInput:
			status = http.StatusBadRequest
		case errs.Unreachable:
			status = http.StatusBadGateway
		case errs.Timeout:
			status = http.StatusGatewayTimeout
		case errs.ParsingFailed, errs.CapabilityUnavailable, errs.Unknown:
			// 500 Internal Server Error
		}
		t.renderError(w, status, appErr.Message)
		return
	}

	t.renderError(w, http.StatusInternalServerError, "An unexpected error occurred.")
}

func (t *Transport) renderJSON(w http.ResponseWriter, status int, data any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		t.logger.Error("failed to encode response", "error", err)
		http.Error(w, `{"success":false,"error":"Internal Server Error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (t *Transport) renderError(w http.ResponseWriter, status int, message string) {
	t.renderJSON(w, status, model.AnalyzeResponse{Success: false, Error: message})
}
