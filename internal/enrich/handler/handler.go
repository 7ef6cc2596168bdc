package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"surge/internal/enrich/directory"
	"surge/internal/enrich/models"
)

// Enricher is the engine surface this handler exposes over HTTP.
type Enricher interface {
	Enrich(ctx context.Context, website string) models.Contact
}

// AccountChecker reports remaining directory quota.
type AccountChecker interface {
	Enabled() bool
	Account(ctx context.Context) (directory.AccountStatus, error)
}

type Handler struct {
	enricher Enricher
	account  AccountChecker
	logger   *slog.Logger
}

func New(enricher Enricher, account AccountChecker, logger *slog.Logger) *Handler {
	return &Handler{enricher: enricher, account: account, logger: logger}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/enrich", h.enrich)
	r.Get("/directory/account", h.directoryAccount)
}

type enrichRequest struct {
	Website string `json:"website"`
}

func (h *Handler) enrich(w http.ResponseWriter, r *http.Request) {
	var req enrichRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	contact := h.enricher.Enrich(r.Context(), req.Website)
	writeJSON(w, http.StatusOK, contact)
}

func (h *Handler) directoryAccount(w http.ResponseWriter, r *http.Request) {
	if h.account == nil || !h.account.Enabled() {
		writeError(w, http.StatusServiceUnavailable, "directory service not configured")
		return
	}

	status, err := h.account.Account(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "directory account lookup failed", "error", err)
		writeError(w, http.StatusBadGateway, "directory service unavailable")
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
