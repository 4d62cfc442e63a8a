package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rahul4469/youtube-analyzer/internal/models"
)

// maxBodyBytes caps the analyze request body; a URL never needs more.
const maxBodyBytes = 64 << 10

// Analyzer is implemented by services.Analyzer.
type Analyzer interface {
	Analyze(ctx context.Context, url string) models.AnalysisResult
}

// AnalyzeController serves URL analysis.
type AnalyzeController struct {
	analyzer Analyzer
	log      zerolog.Logger
}

func NewAnalyzeController(analyzer Analyzer, log zerolog.Logger) *AnalyzeController {
	return &AnalyzeController{
		analyzer: analyzer,
		log:      log.With().Str("component", "analyze_controller").Logger(),
	}
}

type analyzeRequest struct {
	URL string `json:"url"`
}

// PostAnalyze decodes {"url": "..."} and always answers 200 with an AnalysisResult.
// An undecodable body counts as a missing URL.
func (c *AnalyzeController) PostAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		c.log.Debug().Err(err).Msg("undecodable analyze request")
		writeJSON(w, http.StatusOK, models.FailedWith(models.ErrEmptyURL))
		return
	}

	result := c.analyzer.Analyze(r.Context(), req.URL)
	if !result.Success() {
		c.log.Info().Str("url", req.URL).Str("error", result.ErrorMessage()).Msg("analysis unsuccessful")
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, `{"success":false,"error":"internal error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}
