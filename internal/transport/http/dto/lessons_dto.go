package dto

import "time"

type LessonCourseResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type LessonResponse struct {
	ID        string               `json:"id"`
	Title     string               `json:"title"`
	Content   string               `json:"content,omitempty"`
	Type      string               `json:"type"`
	Course    LessonCourseResponse `json:"course"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

type CreateLessonRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Type     string `json:"type"`
	CourseID string `json:"courseId"`
}

type UpdateLessonRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Type    *string `json:"type"`
}
