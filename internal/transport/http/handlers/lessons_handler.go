package handlers

import (
	"errors"
	"net/http"

	lessonssvc "github.com/ysfmrbt/skillwise/internal/services/lessons"
	"github.com/ysfmrbt/skillwise/internal/transport/http/dto"
	httperrors "github.com/ysfmrbt/skillwise/internal/transport/http/errors"
)

type LessonsHandler struct {
	service *lessonssvc.Service
}

func NewLessonsHandler(service *lessonssvc.Service) *LessonsHandler {
	return &LessonsHandler{service: service}
}

func (h *LessonsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "LESSONS_SERVICE_UNAVAILABLE", "lessons service is unavailable")
		return
	}

	courseID := r.URL.Query().Get("courseId")

	var (
		lessons []lessonssvc.Lesson
		err     error
	)
	if courseID != "" {
		lessons, err = h.service.ListByCourse(r.Context(), courseID)
	} else {
		lessons, err = h.service.List(r.Context())
	}
	if err != nil {
		handleLessonsError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, lessonResponses(lessons))
}

func (h *LessonsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "LESSONS_SERVICE_UNAVAILABLE", "lessons service is unavailable")
		return
	}

	lesson, err := h.service.Get(r.Context(), urlID(r))
	if err != nil {
		handleLessonsError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, lessonResponse(lesson))
}

func (h *LessonsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "LESSONS_SERVICE_UNAVAILABLE", "lessons service is unavailable")
		return
	}

	var req dto.CreateLessonRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	lesson, err := h.service.Create(r.Context(), lessonssvc.CreateInput{
		Title:    req.Title,
		Content:  req.Content,
		Type:     req.Type,
		CourseID: req.CourseID,
	})
	if err != nil {
		handleLessonsError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, lessonResponse(lesson))
}

func (h *LessonsHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "LESSONS_SERVICE_UNAVAILABLE", "lessons service is unavailable")
		return
	}

	var req dto.UpdateLessonRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	lesson, err := h.service.Update(r.Context(), urlID(r), lessonssvc.UpdateInput{
		Title:   req.Title,
		Content: req.Content,
		Type:    req.Type,
	})
	if err != nil {
		handleLessonsError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, lessonResponse(lesson))
}

func (h *LessonsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "LESSONS_SERVICE_UNAVAILABLE", "lessons service is unavailable")
		return
	}

	if err := h.service.Delete(r.Context(), urlID(r)); err != nil {
		handleLessonsError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.MessageResponse{Message: "Lesson deleted"})
}

func handleLessonsError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, lessonssvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
	case errors.Is(err, lessonssvc.ErrNotFound):
		writeNotFound(w, "LESSON_NOT_FOUND", "lesson not found")
	case errors.Is(err, lessonssvc.ErrCourseNotFound):
		writeNotFound(w, "COURSE_NOT_FOUND", "course not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}

func lessonResponse(lesson lessonssvc.Lesson) dto.LessonResponse {
	return dto.LessonResponse{
		ID:      lesson.ID,
		Title:   lesson.Title,
		Content: lesson.Content,
		Type:    string(lesson.Type),
		Course: dto.LessonCourseResponse{
			ID:    lesson.Course.ID,
			Title: lesson.Course.Title,
		},
		CreatedAt: lesson.CreatedAt,
		UpdatedAt: lesson.UpdatedAt,
	}
}

func lessonResponses(lessons []lessonssvc.Lesson) []dto.LessonResponse {
	out := make([]dto.LessonResponse, 0, len(lessons))
	for _, lesson := range lessons {
		out = append(out, lessonResponse(lesson))
	}
	return out
}
