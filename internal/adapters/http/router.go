package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kirillkom/kyc-document-validator/internal/config"
	"github.com/kirillkom/kyc-document-validator/internal/core/domain"
	"github.com/kirillkom/kyc-document-validator/internal/core/ports"
	"github.com/kirillkom/kyc-document-validator/internal/infrastructure/export/xlsx"
	"github.com/kirillkom/kyc-document-validator/internal/observability/metrics"
)

const (
	serviceName     = "kyc-api"
	uploadFieldName = "files"
	formatXLSX      = "xlsx"
	formatJSON      = "json"
)

type Router struct {
	cfg       config.Config
	validator ports.BatchValidator
	stager    ports.DocumentStager
	catalog   ports.RequirementCatalog
	publisher ports.ReportExporter

	httpMetrics    *metrics.HTTPServerMetrics
	metricsHandler http.Handler
}

func NewRouter(
	cfg config.Config,
	validator ports.BatchValidator,
	stager ports.DocumentStager,
	catalog ports.RequirementCatalog,
) *Router {
	return &Router{
		cfg:       cfg,
		validator: validator,
		stager:    stager,
		catalog:   catalog,
	}
}

// WithPublisher sends every finished batch to p. Failures are logged only.
func (rt *Router) WithPublisher(p ports.ReportExporter) *Router {
	rt.publisher = p
	return rt
}

// WithMetrics instruments requests and serves the registry on /metrics.
func (rt *Router) WithMetrics(m *metrics.HTTPServerMetrics, handler http.Handler) *Router {
	rt.httpMetrics = m
	rt.metricsHandler = handler
	return rt
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	if rt.metricsHandler != nil {
		mux.Handle("/metrics", rt.metricsHandler)
	}
	mux.HandleFunc("/v1/requirement-sets", rt.listRequirementSets)

	validations := backpressureMiddleware(
		http.HandlerFunc(rt.createValidation),
		rt.cfg.APIMaxInFlight,
		time.Duration(rt.cfg.APIBackpressureWaitMS)*time.Millisecond,
	)
	mux.Handle("/v1/validations", rateLimitMiddleware(validations, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst))

	var handler http.Handler = mux
	if rt.httpMetrics != nil {
		handler = rt.httpMetrics.Middleware(serviceName, handler)
	}
	return requestIDMiddleware(accessLogMiddleware(handler))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) listRequirementSets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"requirement_sets": rt.catalog.RequirementSets()})
}

func (rt *Router) createValidation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = formatJSON
	}
	if format != formatJSON && format != formatXLSX {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported format %q", format))
		return
	}

	maxBytes := int64(rt.cfg.APIMaxUploadMB) << 20
	if maxBytes <= 0 {
		maxBytes = 32 << 20
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "upload exceeds size limit")
			return
		}
		writeError(w, http.StatusBadRequest, "multipart form with field 'files' is required")
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File[uploadFieldName]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "No files uploaded")
		return
	}

	req, err := rt.validationRequest(r)
	if err != nil {
		writeError(w, mapErrorToHTTPStatus(err), err.Error())
		return
	}

	docs, err := rt.stageAll(r.Context(), files)
	defer rt.stager.Release(context.WithoutCancel(r.Context()), docs)
	if err != nil {
		writeError(w, mapErrorToHTTPStatus(err), err.Error())
		return
	}
	req.Documents = docs

	report, err := rt.validator.Validate(r.Context(), req)
	if err != nil {
		writeError(w, mapErrorToHTTPStatus(err), err.Error())
		return
	}

	if rt.publisher != nil {
		if err := rt.publisher.Export(r.Context(), report); err != nil {
			slog.Warn("batch_event_publish_failed",
				"request_id", requestIDFromContext(r.Context()),
				"batch_id", report.BatchID,
				"error", err,
			)
		}
	}

	if format == formatXLSX {
		rt.writeWorkbook(w, report)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (rt *Router) validationRequest(r *http.Request) (ports.ValidationRequest, error) {
	req := ports.ValidationRequest{
		RequiredSet: strings.TrimSpace(r.FormValue("required_set")),
		Strict:      rt.cfg.StrictMode,
	}
	if req.RequiredSet == "" {
		req.RequiredSet = rt.cfg.DefaultRequiredSet
	}
	if raw := strings.TrimSpace(r.FormValue("strict")); raw != "" {
		strict, err := strconv.ParseBool(raw)
		if err != nil {
			return req, domain.WrapError(domain.ErrInvalidInput, "parse strict", fmt.Errorf("strict must be a boolean, got %q", raw))
		}
		req.Strict = strict
	}
	return req, nil
}

// stageAll returns whatever it managed to stage, even on error, so the caller
// can release it.
func (rt *Router) stageAll(ctx context.Context, files []*multipart.FileHeader) ([]domain.SourceDocument, error) {
	docs := make([]domain.SourceDocument, 0, len(files))
	for _, fh := range files {
		doc, err := rt.stageOne(ctx, fh)
		if err != nil {
			return docs, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (rt *Router) stageOne(ctx context.Context, fh *multipart.FileHeader) (domain.SourceDocument, error) {
	file, err := fh.Open()
	if err != nil {
		return domain.SourceDocument{}, fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer file.Close()
	return rt.stager.Stage(ctx, fh.Filename, file)
}

func (rt *Router) writeWorkbook(w http.ResponseWriter, report *domain.BatchReport) {
	raw, err := xlsx.Workbook(report)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", xlsx.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", xlsx.FileName(report)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
