package analytics

import (
	"encoding/json"
	"net/http"
	"strconv"

	myErr "adboard/internal/types/errors"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const (
	defaultTop = 3
	maxTop     = 100
)

type Handler struct {
	service AnalyticsService
	logger  *zap.SugaredLogger
}

func NewHandler(service AnalyticsService, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Errorf("Failed to encode response: %v", err)
	}
}

// GetCategoryStats handles GET /categories/{id}/stats
func (h *Handler) GetCategoryStats(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		myErr.SendErrorTo(w, myErr.ErrBadID, http.StatusBadRequest, h.logger)
		return
	}

	stats, err := h.service.GetStats(r.Context(), id)
	if err != nil {
		myErr.SendError(w, err, h.logger)
		return
	}

	h.writeJSON(w, stats)
}

// TopCategories handles GET /categories/top?limit=N
func (h *Handler) TopCategories(w http.ResponseWriter, r *http.Request) {
	limit := defaultTop // По умолчанию
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = min(n, maxTop)
		}
	}

	stats, err := h.service.TopCategories(r.Context(), limit)
	if err != nil {
		myErr.SendError(w, err, h.logger)
		return
	}

	h.writeJSON(w, stats)
}
