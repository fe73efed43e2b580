package handlers

import (
	"errors"
	"net/http"

	feedbacksvc "github.com/ysfmrbt/skillwise/internal/services/feedback"
	"github.com/ysfmrbt/skillwise/internal/transport/http/dto"
	httperrors "github.com/ysfmrbt/skillwise/internal/transport/http/errors"
)

type FeedbackHandler struct {
	service *feedbacksvc.Service
}

func NewFeedbackHandler(service *feedbacksvc.Service) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "FEEDBACK_SERVICE_UNAVAILABLE", "feedback service is unavailable")
		return
	}

	var (
		items []feedbacksvc.Feedback
		err   error
	)
	switch {
	case r.URL.Query().Get("studentId") != "":
		items, err = h.service.ListByStudent(r.Context(), r.URL.Query().Get("studentId"))
	case r.URL.Query().Get("courseId") != "":
		items, err = h.service.ListByCourse(r.Context(), r.URL.Query().Get("courseId"))
	default:
		items, err = h.service.List(r.Context())
	}
	if err != nil {
		handleFeedbackError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, feedbackResponses(items))
}

func (h *FeedbackHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "FEEDBACK_SERVICE_UNAVAILABLE", "feedback service is unavailable")
		return
	}

	feedback, err := h.service.Get(r.Context(), urlID(r))
	if err != nil {
		handleFeedbackError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, feedbackResponse(feedback))
}

func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "FEEDBACK_SERVICE_UNAVAILABLE", "feedback service is unavailable")
		return
	}

	var req dto.CreateFeedbackRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	feedback, err := h.service.Create(r.Context(), feedbacksvc.CreateInput{
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		handleFeedbackError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, feedbackResponse(feedback))
}

func (h *FeedbackHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "FEEDBACK_SERVICE_UNAVAILABLE", "feedback service is unavailable")
		return
	}

	var req dto.UpdateFeedbackRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	feedback, err := h.service.Update(r.Context(), urlID(r), feedbacksvc.UpdateInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		handleFeedbackError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, feedbackResponse(feedback))
}

func (h *FeedbackHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "FEEDBACK_SERVICE_UNAVAILABLE", "feedback service is unavailable")
		return
	}

	if err := h.service.Delete(r.Context(), urlID(r)); err != nil {
		handleFeedbackError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.MessageResponse{Message: "Feedback deleted"})
}

func (h *FeedbackHandler) CourseStats(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "FEEDBACK_SERVICE_UNAVAILABLE", "feedback service is unavailable")
		return
	}

	stats, err := h.service.CourseStats(r.Context(), urlID(r))
	if err != nil {
		handleFeedbackError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.FeedbackStatsResponse{
		AverageRating:      stats.AverageRating,
		TotalFeedbacks:     stats.TotalFeedbacks,
		RatingDistribution: stats.Distribution,
	})
}

func handleFeedbackError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, feedbacksvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
	case errors.Is(err, feedbacksvc.ErrNotFound):
		writeNotFound(w, "FEEDBACK_NOT_FOUND", "feedback not found")
	case errors.Is(err, feedbacksvc.ErrStudentNotFound):
		writeNotFound(w, "STUDENT_NOT_FOUND", "student not found")
	case errors.Is(err, feedbacksvc.ErrCourseNotFound):
		writeNotFound(w, "COURSE_NOT_FOUND", "course not found")
	case errors.Is(err, feedbacksvc.ErrAlreadyLeft):
		writeConflict(w, "FEEDBACK_EXISTS", "student already left feedback for this course")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}

func feedbackResponse(feedback feedbacksvc.Feedback) dto.FeedbackResponse {
	return dto.FeedbackResponse{
		ID:      feedback.ID,
		Rating:  feedback.Rating,
		Comment: feedback.Comment,
		Student: dto.FeedbackStudentResponse{
			ID:    feedback.Student.ID,
			Name:  feedback.Student.Name,
			Email: feedback.Student.Email,
		},
		Course: dto.FeedbackCourseResponse{
			ID:    feedback.Course.ID,
			Title: feedback.Course.Title,
		},
		CreatedAt: feedback.CreatedAt,
		UpdatedAt: feedback.UpdatedAt,
	}
}

func feedbackResponses(items []feedbacksvc.Feedback) []dto.FeedbackResponse {
	out := make([]dto.FeedbackResponse, 0, len(items))
	for _, feedback := range items {
		out = append(out, feedbackResponse(feedback))
	}
	return out
}
