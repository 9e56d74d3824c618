package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nordsym/guldkant-api/internal/domain"
	"github.com/nordsym/guldkant-api/internal/service"
	"github.com/nordsym/guldkant-api/internal/webhook"
	"go.uber.org/zap"
)

// QuoteHandler serves the quote collection and lifecycle endpoints
type QuoteHandler struct {
	quotes    *service.QuoteService
	lifecycle *service.LifecycleService
	logger    *zap.Logger
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(quotes *service.QuoteService, lifecycle *service.LifecycleService, logger *zap.Logger) *QuoteHandler {
	return &QuoteHandler{quotes: quotes, lifecycle: lifecycle, logger: logger}
}

// List handles GET /api/v1/quotes?filter=&search=
func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.Filter(r.URL.Query().Get("filter"))
	search := r.URL.Query().Get("search")

	resp, err := h.quotes.List(r.Context(), filter, search)
	if err != nil {
		h.logger.Error("Failed to list quotes", zap.Error(err))
		h.handleQuoteError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// Template handles GET /api/v1/quotes/template
func (h *QuoteHandler) Template(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.quotes.NewTemplate())
}

// Save handles POST /api/v1/quotes. It accepts the full quote, recomputes
// the total server-side and persists via the intake webhook. New quotes
// (temp id or none) answer 201, updates answer 200.
func (h *QuoteHandler) Save(w http.ResponseWriter, r *http.Request) {
	var quote domain.Quote
	if err := json.NewDecoder(r.Body).Decode(&quote); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(&quote); err != nil {
		respondValidationError(w, err)
		return
	}

	wasNew := quote.IsNew()
	saved, err := h.quotes.Save(r.Context(), &quote)
	if err != nil {
		h.logger.Error("Failed to save quote", zap.String("quote_id", quote.ID), zap.Error(err))
		h.handleQuoteError(w, err)
		return
	}

	status := http.StatusOK
	if wasNew {
		status = http.StatusCreated
	}
	respondJSON(w, status, saved)
}

// ChangeStatus handles POST /api/v1/quotes/{id}/status
func (h *QuoteHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req domain.StatusChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	quote, err := h.lifecycle.ChangeStatus(r.Context(), id, domain.Status(req.Status))
	if err != nil {
		h.logger.Error("Failed to change quote status",
			zap.String("quote_id", id),
			zap.String("status", req.Status),
			zap.Error(err),
		)
		h.handleQuoteError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, quote)
}

// Send handles POST /api/v1/quotes/{id}/send. A dispatch failure after a
// successful save still answers 200; the response carries dispatchError so
// the dashboard can warn without treating the send as failed.
func (h *QuoteHandler) Send(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	quote, dispatchErr, err := h.lifecycle.SendProposal(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to send proposal", zap.String("quote_id", id), zap.Error(err))
		h.handleQuoteError(w, err)
		return
	}

	resp := domain.SendProposalResponse{Quote: *quote}
	if dispatchErr != nil {
		resp.DispatchError = dispatchErr.Error()
	}
	respondJSON(w, http.StatusOK, resp)
}

// Approve handles POST /api/v1/quotes/{id}/approve
func (h *QuoteHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	quote, err := h.lifecycle.ApproveProposal(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to approve proposal", zap.String("quote_id", id), zap.Error(err))
		h.handleQuoteError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, quote)
}

// Statuses handles GET /api/v1/statuses
func (h *QuoteHandler) Statuses(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, domain.StatusInfos())
}

// handleQuoteError maps service errors to HTTP responses. Webhook failures
// surface as 502 so the dashboard can distinguish upstream trouble from its
// own bad requests.
func (h *QuoteHandler) handleQuoteError(w http.ResponseWriter, err error) {
	var statusErr *webhook.StatusError

	switch {
	case errors.Is(err, service.ErrQuoteNotFound):
		respondWithError(w, http.StatusNotFound, "Quote not found")
	case errors.Is(err, domain.ErrUnknownStatus):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotDraft), errors.Is(err, domain.ErrNotProposalSent):
		respondWithError(w, http.StatusConflict, err.Error())
	case errors.As(err, &statusErr):
		respondWithError(w, http.StatusBadGateway, statusErr.Error())
	default:
		respondWithError(w, http.StatusBadGateway, "Upstream quote store unavailable")
	}
}
