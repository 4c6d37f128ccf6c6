package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"ReviewScanner/internal/domain"
	"ReviewScanner/internal/infrastructure/output"
	"ReviewScanner/internal/logging"
	"ReviewScanner/internal/usecase"
)

// Scraper runs the review pipeline for one product URL.
type Scraper interface {
	Scrape(ctx context.Context, rawURL string) (usecase.Result, error)
}

// Handlers serves the review API.
type Handlers struct {
	Scraper Scraper
	Logger  *slog.Logger
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type reviewsResponse struct {
	RunID       string                `json:"runId"`
	ProductID   string                `json:"productId"`
	ReviewsURL  string                `json:"reviewsUrl"`
	PageTitle   string                `json:"pageTitle"`
	Count       int                   `json:"count"`
	Reviews     domain.ReviewTable    `json:"reviews"`
	Records     []domain.ReviewRecord `json:"records,omitempty"`
	Diagnostics []domain.Diagnostic   `json:"diagnostics"`
}

func (s *Server) MountHandlers(h *Handlers) {
	if h.Logger == nil {
		h.Logger = logging.Discard()
	}
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/reviews", h.getReviews)
}

func (h *Handlers) writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		h.Logger.Error("write JSON problem response failed", "error", err)
	}
}

func (h *Handlers) getReviews(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	rawURL := query.Get("url")
	if rawURL == "" {
		h.writeProblem(w, http.StatusBadRequest, "Missing url", "query parameter url is required")
		return
	}

	result, err := h.Scraper.Scrape(r.Context(), rawURL)
	switch {
	case errors.Is(err, domain.ErrInvalidURL):
		h.writeProblem(w, http.StatusBadRequest, "Invalid product URL", err.Error())
		return
	case domain.IsFetchError(err):
		h.writeProblem(w, http.StatusBadGateway, "Fetch failed", err.Error())
		return
	case err != nil:
		h.Logger.ErrorContext(r.Context(), "scrape failed", "error", err)
		h.writeProblem(w, http.StatusInternalServerError, "Internal error", "")
		return
	}

	full := query.Get("view") == "full"

	if query.Get("format") == "csv" {
		var buf bytes.Buffer
		if full {
			err = output.WriteRecordsCSV(&buf, result.Records)
		} else {
			err = output.WriteCSV(&buf, result.Table)
		}
		if err != nil {
			h.Logger.ErrorContext(r.Context(), "render csv failed", "error", err)
			h.writeProblem(w, http.StatusInternalServerError, "Internal error", "")
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(buf.Bytes()); err != nil {
			h.Logger.ErrorContext(r.Context(), "failed to write csv body", "error", err)
		}
		return
	}

	resp := reviewsResponse{
		RunID:       result.RunID,
		ProductID:   result.Target.Product.ProductID,
		ReviewsURL:  result.Target.ReviewsURL,
		PageTitle:   result.PageTitle,
		Count:       len(result.Table),
		Reviews:     result.Table,
		Diagnostics: result.Diagnostics,
	}
	if resp.Reviews == nil {
		resp.Reviews = domain.ReviewTable{}
	}
	if resp.Diagnostics == nil {
		resp.Diagnostics = []domain.Diagnostic{}
	}
	if full {
		resp.Records = result.Records
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.Logger.ErrorContext(r.Context(), "failed to write reviews body", "error", err)
	}
}
