package dto

import "time"

type EnrollmentStudentResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type EnrollmentCourseResponse struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

type EnrollmentResponse struct {
	ID        string                    `json:"id"`
	Student   EnrollmentStudentResponse `json:"student"`
	Course    EnrollmentCourseResponse  `json:"course"`
	CreatedAt time.Time                 `json:"createdAt"`
}

type CreateEnrollmentRequest struct {
	StudentID string `json:"studentId"`
	CourseID  string `json:"courseId"`
}
