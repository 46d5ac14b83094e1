package dto

import (
	"time"

	"github.com/cuongbtq/interniq-be/internal/api/model"
)

type CreateJobRequest struct {
	Title        string     `json:"title" binding:"required"`
	Company      string     `json:"company" binding:"required"`
	Location     string     `json:"location" binding:"required"`
	Type         string     `json:"type"`
	Field        string     `json:"field" binding:"required"`
	Stipend      string     `json:"stipend"`
	Description  string     `json:"description"`
	Requirements []string   `json:"requirements"`
	Skills       []string   `json:"skills"`
	PostedAt     *time.Time `json:"postedAt"`
}

type ListJobsRequest struct {
	Search         string `form:"search"`
	Type           string `form:"type"`
	Location       string `form:"location"`
	Field          string `form:"field"`
	SortBy         string `form:"sortBy"`
	IncludeExpired bool   `form:"includeExpired"`
}

type ListJobsResponse struct {
	Success bool        `json:"success"`
	Count   int         `json:"count"`
	Jobs    []model.Job `json:"jobs"`
}

type JobResponse struct {
	Success bool       `json:"success"`
	Job     *model.Job `json:"job"`
}
