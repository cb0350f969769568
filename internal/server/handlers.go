package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"strings"
	"time"

	"resumelens/internal/analyzer"
	apperrors "resumelens/internal/errors"
	"resumelens/internal/extract"
	"resumelens/internal/observability"
	"resumelens/internal/types"
	"resumelens/internal/utils"

	"go.opentelemetry.io/otel/attribute"
)

// createAnalyzeHandler wraps the analyze handler with observability.
// Accepts either a multipart upload (field "resume") or a JSON body with
// pre-extracted text.
func (s *Server) createAnalyzeHandler(obs *observability.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := obs.Tracer("resumelens.api")
		ctx, span := tracer.Start(ctx, "api.analyze")
		defer span.End()

		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		doc, opts, err := s.parseAnalyzeRequest(ctx, r, obs)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request", err.Error(), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.text_length", len(doc.Text)),
			attribute.String("request.file_name", doc.FileName),
			attribute.Bool("request.job_targeted", opts.JobTitle != ""),
			attribute.String("operation", "analyze"),
		)

		metrics := obs.GetMetrics()
		var report types.Report
		err = metrics.TrackAnalysis(ctx, "analyze", func(ctx context.Context) (int, error) {
			var analyzeErr error
			report, analyzeErr = s.Engine.Analyze(ctx, doc, opts)
			return report.OverallScore, analyzeErr
		})
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "analysis"))
			writeErrorResponse(w, "Failed to analyze resume", err.Error(), statusForError(err))
			return
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.overall_score", report.OverallScore),
			attribute.String("response.primary_role", report.PrimaryRole),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// parseAnalyzeRequest extracts the document and analysis options from either
// a multipart upload or a JSON body.
func (s *Server) parseAnalyzeRequest(ctx context.Context, r *http.Request, obs *observability.Manager) (types.Document, types.AnalyzeOptions, error) {
	contentType := r.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return types.Document{}, types.AnalyzeOptions{}, fmt.Errorf("invalid content type: %w", err)
	}

	if mediaType == "multipart/form-data" {
		return s.parseMultipartResume(ctx, r, obs)
	}

	var req AnalyzeTextRequest
	if err := parseJSONRequest(r, &req); err != nil {
		return types.Document{}, types.AnalyzeOptions{}, err
	}
	if strings.TrimSpace(req.Text) == "" {
		return types.Document{}, types.AnalyzeOptions{}, fmt.Errorf("text field is required")
	}

	doc := types.Document{Text: req.Text, FileName: req.FileName}
	opts := types.AnalyzeOptions{JobTitle: req.JobTitle, JobDescription: req.JobDescription}
	return doc, opts, nil
}

// parseMultipartResume reads the uploaded résumé file and extracts its text.
func (s *Server) parseMultipartResume(ctx context.Context, r *http.Request, obs *observability.Manager) (types.Document, types.AnalyzeOptions, error) {
	if err := r.ParseMultipartForm(s.MaxRequestSize); err != nil {
		return types.Document{}, types.AnalyzeOptions{}, fmt.Errorf("failed to parse multipart form: %w", err)
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		return types.Document{}, types.AnalyzeOptions{}, fmt.Errorf("resume file field is required: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			s.Logger.Warn("Failed to close uploaded file", "error", err)
		}
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		return types.Document{}, types.AnalyzeOptions{}, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	text, err := extract.FromBytes(data, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		obs.GetMetrics().RecordExtractionFailure(ctx, utils.GetFileExtension(header.Filename))
		return types.Document{}, types.AnalyzeOptions{}, err
	}

	doc := types.Document{Text: text, FileName: header.Filename}
	opts := types.AnalyzeOptions{
		JobTitle:       r.FormValue("jobTitle"),
		JobDescription: r.FormValue("jobDescription"),
	}
	return doc, opts, nil
}

// createMatchHandler scores résumé text against a target job title without
// producing a full report.
func (s *Server) createMatchHandler(obs *observability.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := obs.Tracer("resumelens.api")
		_, span := tracer.Start(ctx, "api.match")
		defer span.End()

		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req MatchRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Text) == "" {
			writeErrorResponse(w, "Missing resume text", "text field is required", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.JobTitle) == "" {
			writeErrorResponse(w, "Missing job title", "jobTitle field is required", http.StatusBadRequest)
			return
		}

		sections := analyzer.Segment(req.Text)
		skills := analyzer.ExtractSkills(req.Text, sections)
		roles := analyzer.PredictRoles(skills)
		primary := analyzer.GeneralistRole
		if len(roles) > 0 {
			primary = roles[0]
		}

		response := MatchResponse{
			JobTitle:      req.JobTitle,
			JobMatchScore: analyzer.JobMatchScore(skills, req.JobTitle, req.JobDescription),
			PrimaryRole:   primary,
			MissingSkills: analyzer.MissingSkillsForRole(primary, skills),
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.job_match_score", response.JobMatchScore),
			attribute.String("response.primary_role", response.PrimaryRole),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// healthHandler provides a health check endpoint including classifier and
// certificate status
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"status":  "healthy",
		"service": "resumelens",
		"version": s.Version,
	}

	overallHealthy := true

	if s.Classifier != nil {
		classifierHealthy := s.Classifier.IsHealthy()
		response["classifier"] = map[string]any{
			"enabled": true,
			"healthy": classifierHealthy,
		}
		// Classifier degradation is not fatal: analysis falls back to rules
	} else {
		response["classifier"] = map[string]any{
			"enabled": false,
		}
	}

	if certStatus := s.checkCertificateHealth(r.Context()); certStatus != nil {
		response["certificates"] = certStatus
		if healthy, ok := certStatus["healthy"].(bool); ok && !healthy {
			overallHealthy = false
		}
	}

	if !overallHealthy {
		response["status"] = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode health response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// checkCertificateHealth checks the health of TLS certificates
func (s *Server) checkCertificateHealth(ctx context.Context) map[string]any {
	if s.CertManager == nil {
		return nil
	}

	certStatus := make(map[string]any)

	timeToExpiry, err := s.CertManager.CheckExpiry()
	if err != nil {
		certStatus["healthy"] = false
		certStatus["error"] = fmt.Sprintf("Failed to check certificate expiry: %v", err)
		return certStatus
	}

	if s.obs != nil {
		s.obs.GetMetrics().RecordCertExpiry(ctx, timeToExpiry)
	}

	criticalThreshold := 24 * time.Hour
	warningThreshold := 7 * 24 * time.Hour

	certStatus["time_to_expiry_hours"] = int(timeToExpiry.Hours())
	certStatus["time_to_expiry"] = timeToExpiry.String()

	switch {
	case timeToExpiry <= 0:
		certStatus["healthy"] = false
		certStatus["status"] = "expired"
		certStatus["message"] = "Certificate has expired"
	case timeToExpiry <= criticalThreshold:
		certStatus["healthy"] = false
		certStatus["status"] = "critical"
		certStatus["message"] = "Certificate expires within 24 hours"
	case timeToExpiry <= warningThreshold:
		certStatus["healthy"] = true
		certStatus["status"] = "warning"
		certStatus["message"] = "Certificate expires within 7 days"
	default:
		certStatus["healthy"] = true
		certStatus["status"] = "ok"
		certStatus["message"] = "Certificate is valid"
	}

	certStatus["reload"] = s.CertManager.ReloadStats()

	return certStatus
}

// statsHandler provides server statistics including rate limiting info
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"service": "resumelens",
		"version": s.Version,
		"server": map[string]any{
			"max_request_size_bytes": s.MaxRequestSize,
		},
	}

	if s.RateLimiter != nil {
		response["rate_limiting"] = s.RateLimiter.GetStats()
	} else {
		response["rate_limiting"] = map[string]any{
			"enabled": false,
		}
	}

	if s.RateLimit != nil {
		response["rate_limit_config"] = map[string]any{
			"enabled":          s.RateLimit.Enabled,
			"requests_per_min": s.RateLimit.RequestsPerMin,
			"burst_capacity":   s.RateLimit.BurstCapacity,
			"by_ip":            s.RateLimit.ByIP,
			"by_api_key":       s.RateLimit.ByAPIKey,
		}
	}

	if s.Classifier != nil {
		response["classifier"] = s.Classifier.GetStats()
	} else {
		response["classifier"] = map[string]any{
			"enabled": false,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode stats response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// parseJSONRequest parses JSON request body into the provided struct
func parseJSONRequest(r *http.Request, v any) error {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return fmt.Errorf("content-type must be application/json")
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return fmt.Errorf("request body too large (limit is %d bytes)", maxBytesErr.Limit)
		}
		return fmt.Errorf("failed to read request body: %w", err)
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			log.Printf("Failed to close request body: %v", err)
		}
	}()

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	return nil
}

// statusForError maps extraction and validation failures to 400s; everything
// else is a 500.
func statusForError(err error) int {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case apperrors.ErrorTypeValidation, apperrors.ErrorTypeExtraction:
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

// writeErrorResponse writes a standardized error response
func writeErrorResponse(w http.ResponseWriter, error, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Error:   error,
		Message: message,
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode error response: %v", err)
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}
