package handlers

import (
	"errors"
	"net/http"

	categoriessvc "github.com/ysfmrbt/skillwise/internal/services/categories"
	"github.com/ysfmrbt/skillwise/internal/transport/http/dto"
	httperrors "github.com/ysfmrbt/skillwise/internal/transport/http/errors"
)

type CategoriesHandler struct {
	service *categoriessvc.Service
}

func NewCategoriesHandler(service *categoriessvc.Service) *CategoriesHandler {
	return &CategoriesHandler{service: service}
}

func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CATEGORIES_SERVICE_UNAVAILABLE", "categories service is unavailable")
		return
	}

	categories, err := h.service.List(r.Context())
	if err != nil {
		handleCategoriesError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, categoryResponses(categories))
}

func (h *CategoriesHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CATEGORIES_SERVICE_UNAVAILABLE", "categories service is unavailable")
		return
	}

	category, err := h.service.Get(r.Context(), urlID(r))
	if err != nil {
		handleCategoriesError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, categoryResponse(category))
}

func (h *CategoriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CATEGORIES_SERVICE_UNAVAILABLE", "categories service is unavailable")
		return
	}

	var req dto.CategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	category, err := h.service.Create(r.Context(), req.Name)
	if err != nil {
		handleCategoriesError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, categoryResponse(category))
}

func (h *CategoriesHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CATEGORIES_SERVICE_UNAVAILABLE", "categories service is unavailable")
		return
	}

	var req dto.CategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	category, err := h.service.Update(r.Context(), urlID(r), req.Name)
	if err != nil {
		handleCategoriesError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, categoryResponse(category))
}

func (h *CategoriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CATEGORIES_SERVICE_UNAVAILABLE", "categories service is unavailable")
		return
	}

	if err := h.service.Delete(r.Context(), urlID(r)); err != nil {
		handleCategoriesError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.MessageResponse{Message: "Category deleted"})
}

func handleCategoriesError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, categoriessvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
	case errors.Is(err, categoriessvc.ErrNotFound):
		writeNotFound(w, "CATEGORY_NOT_FOUND", "category not found")
	case errors.Is(err, categoriessvc.ErrNameTaken):
		writeConflict(w, "NAME_TAKEN", "category name is already taken")
	case errors.Is(err, categoriessvc.ErrInUse):
		writeConflict(w, "CATEGORY_IN_USE", "category is referenced by courses")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}

func categoryResponse(category categoriessvc.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}

func categoryResponses(categories []categoriessvc.Category) []dto.CategoryResponse {
	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		out = append(out, categoryResponse(category))
	}
	return out
}
