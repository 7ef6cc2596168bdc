package discovery

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"surge/internal/registry"
)

const defaultDaysBack = 30

// Handler exposes discovery runs over HTTP.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/discover", h.discover)
}

type discoverRequest struct {
	DaysBack    int    `json:"days_back,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Parallelism int    `json:"parallelism,omitempty"`
}

func (h *Handler) discover(w http.ResponseWriter, r *http.Request) {
	var req discoverRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	start, end, err := req.window(time.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.service.Discover(r.Context(), start, end, req.Parallelism)
	if err != nil {
		if errors.Is(err, registry.ErrNoSnapshot) {
			writeError(w, http.StatusBadGateway, "registry feed unavailable")
			return
		}
		h.logger.ErrorContext(r.Context(), "discovery run failed", "error", err)
		writeError(w, http.StatusInternalServerError, "discovery failed")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// window resolves the registration date range: an explicit start/end pair
// wins, otherwise the last days_back days.
func (r discoverRequest) window(now time.Time) (time.Time, time.Time, error) {
	if r.StartDate != "" || r.EndDate != "" {
		start, err := time.Parse("2006-01-02", r.StartDate)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("start_date must be YYYY-MM-DD")
		}
		end, err := time.Parse("2006-01-02", r.EndDate)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("end_date must be YYYY-MM-DD")
		}
		if end.Before(start) {
			return time.Time{}, time.Time{}, errors.New("end_date before start_date")
		}
		return start, end, nil
	}

	days := r.DaysBack
	if days <= 0 {
		days = defaultDaysBack
	}
	return now.AddDate(0, 0, -days), now, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
