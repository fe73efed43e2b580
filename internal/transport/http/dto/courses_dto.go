package dto

import "time"

type CourseInstructorResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type CourseCategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CourseResponse struct {
	ID              string                   `json:"id"`
	Title           string                   `json:"title"`
	Description     string                   `json:"description"`
	Status          string                   `json:"status"`
	Instructor      CourseInstructorResponse `json:"instructor"`
	Category        CourseCategoryResponse   `json:"category"`
	LessonCount     int                      `json:"lessonCount"`
	EnrollmentCount int                      `json:"enrollmentCount"`
	CreatedAt       time.Time                `json:"createdAt"`
	UpdatedAt       time.Time                `json:"updatedAt"`
}

type CreateCourseRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Status       string `json:"status"`
	InstructorID string `json:"instructorId"`
	CategoryID   string `json:"categoryId"`
}

type UpdateCourseRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Status       *string `json:"status"`
	InstructorID *string `json:"instructorId"`
	CategoryID   *string `json:"categoryId"`
}
