package handler

import (
	"net/http"

	"github.com/nordsym/guldkant-api/internal/service"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	metricsService *service.MetricsService
	logger         *zap.Logger
}

func NewDashboardHandler(metricsService *service.MetricsService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		metricsService: metricsService,
		logger:         logger,
	}
}

// Metrics handles GET /api/v1/dashboard/metrics
func (h *DashboardHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.metricsService.ActivePipeline(r.Context())
	if err != nil {
		h.logger.Error("Failed to compute dashboard metrics", zap.Error(err))
		respondWithError(w, http.StatusBadGateway, "Upstream quote store unavailable")
		return
	}

	respondJSON(w, http.StatusOK, metrics)
}
