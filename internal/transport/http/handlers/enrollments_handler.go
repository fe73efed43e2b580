package handlers

import (
	"errors"
	"net/http"

	enrollmentssvc "github.com/ysfmrbt/skillwise/internal/services/enrollments"
	"github.com/ysfmrbt/skillwise/internal/transport/http/dto"
	httperrors "github.com/ysfmrbt/skillwise/internal/transport/http/errors"
)

type EnrollmentsHandler struct {
	service *enrollmentssvc.Service
}

func NewEnrollmentsHandler(service *enrollmentssvc.Service) *EnrollmentsHandler {
	return &EnrollmentsHandler{service: service}
}

func (h *EnrollmentsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "ENROLLMENTS_SERVICE_UNAVAILABLE", "enrollments service is unavailable")
		return
	}

	var (
		enrollments []enrollmentssvc.Enrollment
		err         error
	)
	switch {
	case r.URL.Query().Get("studentId") != "":
		enrollments, err = h.service.ListByStudent(r.Context(), r.URL.Query().Get("studentId"))
	case r.URL.Query().Get("courseId") != "":
		enrollments, err = h.service.ListByCourse(r.Context(), r.URL.Query().Get("courseId"))
	default:
		enrollments, err = h.service.List(r.Context())
	}
	if err != nil {
		handleEnrollmentsError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, enrollmentResponses(enrollments))
}

func (h *EnrollmentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "ENROLLMENTS_SERVICE_UNAVAILABLE", "enrollments service is unavailable")
		return
	}

	enrollment, err := h.service.Get(r.Context(), urlID(r))
	if err != nil {
		handleEnrollmentsError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, enrollmentResponse(enrollment))
}

func (h *EnrollmentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "ENROLLMENTS_SERVICE_UNAVAILABLE", "enrollments service is unavailable")
		return
	}

	var req dto.CreateEnrollmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	enrollment, err := h.service.Create(r.Context(), req.StudentID, req.CourseID)
	if err != nil {
		handleEnrollmentsError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, enrollmentResponse(enrollment))
}

func (h *EnrollmentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "ENROLLMENTS_SERVICE_UNAVAILABLE", "enrollments service is unavailable")
		return
	}

	if err := h.service.Delete(r.Context(), urlID(r)); err != nil {
		handleEnrollmentsError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.MessageResponse{Message: "Enrollment deleted"})
}

func handleEnrollmentsError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, enrollmentssvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
	case errors.Is(err, enrollmentssvc.ErrNotFound):
		writeNotFound(w, "ENROLLMENT_NOT_FOUND", "enrollment not found")
	case errors.Is(err, enrollmentssvc.ErrStudentNotFound):
		writeNotFound(w, "STUDENT_NOT_FOUND", "student not found")
	case errors.Is(err, enrollmentssvc.ErrNotAStudent):
		writeBadRequest(w, "NOT_A_STUDENT", "only students can be enrolled")
	case errors.Is(err, enrollmentssvc.ErrCourseNotFound):
		writeNotFound(w, "COURSE_NOT_FOUND", "course not found")
	case errors.Is(err, enrollmentssvc.ErrAlreadyEnrolled):
		writeConflict(w, "ALREADY_ENROLLED", "student is already enrolled in this course")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}

func enrollmentResponse(enrollment enrollmentssvc.Enrollment) dto.EnrollmentResponse {
	return dto.EnrollmentResponse{
		ID: enrollment.ID,
		Student: dto.EnrollmentStudentResponse{
			ID:    enrollment.Student.ID,
			Name:  enrollment.Student.Name,
			Email: enrollment.Student.Email,
			Role:  enrollment.Student.Role,
		},
		Course: dto.EnrollmentCourseResponse{
			ID:     enrollment.Course.ID,
			Title:  enrollment.Course.Title,
			Status: enrollment.Course.Status,
		},
		CreatedAt: enrollment.CreatedAt,
	}
}

func enrollmentResponses(enrollments []enrollmentssvc.Enrollment) []dto.EnrollmentResponse {
	out := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		out = append(out, enrollmentResponse(enrollment))
	}
	return out
}
