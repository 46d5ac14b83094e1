package dto

import "github.com/cuongbtq/interniq-be/internal/api/model"

type ListActivityRequest struct {
	Limit  int    `form:"limit"`
	Cursor string `form:"cursor"`
}

type ListActivityResponse struct {
	Success    bool             `json:"success"`
	Count      int              `json:"count"`
	Activities []model.Activity `json:"activities"`
	NextCursor string           `json:"nextCursor,omitempty"`
}

type ErrorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}
