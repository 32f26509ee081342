package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"adboard/internal/category"
	"adboard/internal/mocks"
	myErr "adboard/internal/types/errors"

	"github.com/go-playground/assert"
	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func TestCategoryHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockCategoryRepo(ctrl)
	handler := NewCategoryHandler(zap.NewNop().Sugar(), repo)

	r := mux.NewRouter()
	r.HandleFunc("/api/categories", handler.List)
	r.HandleFunc("/api/categories/{id}", handler.GetByID)

	tests := []struct {
		name           string
		path           string
		mockBehavior   func()
		expectedStatus int
	}{
		{
			name: "list",
			path: "/api/categories",
			mockBehavior: func() {
				repo.EXPECT().List(gomock.Any()).Return([]category.Category{
					{ID: 1, Name: "Sport", Slug: "sport"},
					{ID: 2, Name: "Home", Slug: "home"},
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "list db error",
			path: "/api/categories",
			mockBehavior: func() {
				repo.EXPECT().List(gomock.Any()).Return(nil, myErr.ErrDBInternal)
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name: "get",
			path: "/api/categories/1",
			mockBehavior: func() {
				repo.EXPECT().GetByID(gomock.Any(), int64(1)).Return(&category.Category{ID: 1, Name: "Sport", Slug: "sport"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "not found",
			path: "/api/categories/9",
			mockBehavior: func() {
				repo.EXPECT().GetByID(gomock.Any(), int64(9)).Return(nil, myErr.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "bad id",
			path:           "/api/categories/x",
			mockBehavior:   func() {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()

			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}

	t.Run("list body", func(t *testing.T) {
		repo.EXPECT().List(gomock.Any()).Return([]category.Category{{ID: 3, Name: "Cars", Slug: "cars"}}, nil)

		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/categories", nil))

		var got []category.Category
		assert.Equal(t, nil, json.NewDecoder(rr.Body).Decode(&got))
		assert.Equal(t, []category.Category{{ID: 3, Name: "Cars", Slug: "cars"}}, got)
	})
}
