package dto

import "time"

type MaterialResponse struct {
	ID        string    `json:"id"`
	CourseID  string    `json:"courseId"`
	FileName  string    `json:"fileName"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

type AddMaterialRequest struct {
	FileName string `json:"fileName"`
}
