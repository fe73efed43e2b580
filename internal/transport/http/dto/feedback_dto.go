package dto

import "time"

type FeedbackStudentResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type FeedbackCourseResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type FeedbackResponse struct {
	ID        string                  `json:"id"`
	Rating    int                     `json:"rating"`
	Comment   string                  `json:"comment,omitempty"`
	Student   FeedbackStudentResponse `json:"student"`
	Course    FeedbackCourseResponse  `json:"course"`
	CreatedAt time.Time               `json:"createdAt"`
	UpdatedAt time.Time               `json:"updatedAt"`
}

type CreateFeedbackRequest struct {
	StudentID string `json:"studentId"`
	CourseID  string `json:"courseId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

type UpdateFeedbackRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

type FeedbackStatsResponse struct {
	AverageRating      float64     `json:"averageRating"`
	TotalFeedbacks     int         `json:"totalFeedbacks"`
	RatingDistribution map[int]int `json:"ratingDistribution"`
}
