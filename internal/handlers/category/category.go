package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"adboard/internal/category"
	myErr "adboard/internal/types/errors"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	Logger       *zap.SugaredLogger
	CategoryRepo category.CategoryRepo
}

func NewCategoryHandler(l *zap.SugaredLogger, cr category.CategoryRepo) *CategoryHandler {
	return &CategoryHandler{
		Logger:       l,
		CategoryRepo: cr,
	}
}

// List handles GET /api/categories
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.CategoryRepo.List(r.Context())
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(categories); err != nil {
		h.Logger.Errorf("failed to encode categories: %v", err)
	}
}

// GetByID handles GET /api/categories/{id}
func (h *CategoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		myErr.SendErrorTo(w, myErr.ErrBadID, http.StatusBadRequest, h.Logger)
		return
	}

	c, err := h.CategoryRepo.GetByID(r.Context(), id)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(c); err != nil {
		h.Logger.Errorf("failed to encode category: %v", err)
		return
	}

	h.Logger.Infof("fetched category by id: %d", id)
}
