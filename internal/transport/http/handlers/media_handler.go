package handlers

import (
	"errors"
	"net/http"

	mediasvc "github.com/ysfmrbt/skillwise/internal/services/media"
	"github.com/ysfmrbt/skillwise/internal/transport/http/dto"
	httperrors "github.com/ysfmrbt/skillwise/internal/transport/http/errors"
)

type MediaHandler struct {
	service *mediasvc.Service
}

func NewMediaHandler(service *mediasvc.Service) *MediaHandler {
	return &MediaHandler{service: service}
}

// AddMaterial registers a material and returns a presigned upload URL; the
// client PUTs the file straight to object storage.
func (h *MediaHandler) AddMaterial(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "MEDIA_SERVICE_UNAVAILABLE", "media service is unavailable")
		return
	}

	var req dto.AddMaterialRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	material, err := h.service.AddMaterial(r.Context(), urlID(r), req.FileName)
	if err != nil {
		handleMediaError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, materialResponse(material))
}

func (h *MediaHandler) ListMaterials(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "MEDIA_SERVICE_UNAVAILABLE", "media service is unavailable")
		return
	}

	materials, err := h.service.ListMaterials(r.Context(), urlID(r))
	if err != nil {
		handleMediaError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, materialResponses(materials))
}

func (h *MediaHandler) DeleteMaterial(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "MEDIA_SERVICE_UNAVAILABLE", "media service is unavailable")
		return
	}

	if err := h.service.DeleteMaterial(r.Context(), urlID(r)); err != nil {
		handleMediaError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.MessageResponse{Message: "Material deleted"})
}

func handleMediaError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, mediasvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
	case errors.Is(err, mediasvc.ErrNotFound):
		writeNotFound(w, "MATERIAL_NOT_FOUND", "material not found")
	case errors.Is(err, mediasvc.ErrCourseNotFound):
		writeNotFound(w, "COURSE_NOT_FOUND", "course not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}

func materialResponse(material mediasvc.Material) dto.MaterialResponse {
	return dto.MaterialResponse{
		ID:        material.ID,
		CourseID:  material.CourseID,
		FileName:  material.FileName,
		URL:       material.URL,
		CreatedAt: material.CreatedAt,
	}
}

func materialResponses(materials []mediasvc.Material) []dto.MaterialResponse {
	out := make([]dto.MaterialResponse, 0, len(materials))
	for _, material := range materials {
		out = append(out, materialResponse(material))
	}
	return out
}
