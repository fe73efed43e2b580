package handlers

import (
	"errors"
	"net/http"

	coursessvc "github.com/ysfmrbt/skillwise/internal/services/courses"
	"github.com/ysfmrbt/skillwise/internal/transport/http/dto"
	httperrors "github.com/ysfmrbt/skillwise/internal/transport/http/errors"
)

type CoursesHandler struct {
	service *coursessvc.Service
}

func NewCoursesHandler(service *coursessvc.Service) *CoursesHandler {
	return &CoursesHandler{service: service}
}

func (h *CoursesHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "COURSES_SERVICE_UNAVAILABLE", "courses service is unavailable")
		return
	}

	courses, err := h.service.List(r.Context())
	if err != nil {
		handleCoursesError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, courseResponses(courses))
}

func (h *CoursesHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "COURSES_SERVICE_UNAVAILABLE", "courses service is unavailable")
		return
	}

	course, err := h.service.Get(r.Context(), urlID(r))
	if err != nil {
		handleCoursesError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, courseResponse(course))
}

func (h *CoursesHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "COURSES_SERVICE_UNAVAILABLE", "courses service is unavailable")
		return
	}

	var req dto.CreateCourseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	course, err := h.service.Create(r.Context(), coursessvc.CreateInput{
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		InstructorID: req.InstructorID,
		CategoryID:   req.CategoryID,
	})
	if err != nil {
		handleCoursesError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, courseResponse(course))
}

func (h *CoursesHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "COURSES_SERVICE_UNAVAILABLE", "courses service is unavailable")
		return
	}

	var req dto.UpdateCourseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	course, err := h.service.Update(r.Context(), urlID(r), coursessvc.UpdateInput{
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		InstructorID: req.InstructorID,
		CategoryID:   req.CategoryID,
	})
	if err != nil {
		handleCoursesError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, courseResponse(course))
}

func (h *CoursesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "COURSES_SERVICE_UNAVAILABLE", "courses service is unavailable")
		return
	}

	if err := h.service.Delete(r.Context(), urlID(r)); err != nil {
		handleCoursesError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.MessageResponse{Message: "Course deleted"})
}

func handleCoursesError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, coursessvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
	case errors.Is(err, coursessvc.ErrNotFound):
		writeNotFound(w, "COURSE_NOT_FOUND", "course not found")
	case errors.Is(err, coursessvc.ErrInstructorNotFound):
		writeNotFound(w, "INSTRUCTOR_NOT_FOUND", "instructor not found")
	case errors.Is(err, coursessvc.ErrNotAnInstructor):
		writeBadRequest(w, "NOT_AN_INSTRUCTOR", "user cannot own a course")
	case errors.Is(err, coursessvc.ErrCategoryNotFound):
		writeNotFound(w, "CATEGORY_NOT_FOUND", "category not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}

func courseResponse(course coursessvc.Course) dto.CourseResponse {
	return dto.CourseResponse{
		ID:          course.ID,
		Title:       course.Title,
		Description: course.Description,
		Status:      string(course.Status),
		Instructor: dto.CourseInstructorResponse{
			ID:    course.Instructor.ID,
			Name:  course.Instructor.Name,
			Email: course.Instructor.Email,
			Role:  course.Instructor.Role,
		},
		Category: dto.CourseCategoryResponse{
			ID:   course.Category.ID,
			Name: course.Category.Name,
		},
		LessonCount:     course.LessonCount,
		EnrollmentCount: course.EnrollmentCount,
		CreatedAt:       course.CreatedAt,
		UpdatedAt:       course.UpdatedAt,
	}
}

func courseResponses(courses []coursessvc.Course) []dto.CourseResponse {
	out := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		out = append(out, courseResponse(course))
	}
	return out
}
