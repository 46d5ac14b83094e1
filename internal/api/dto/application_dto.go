package dto

import (
	"github.com/cuongbtq/interniq-be/internal/api/model"
	"github.com/cuongbtq/interniq-be/internal/api/service"
)

type ApplyRequest struct {
	JobID         string `json:"jobId" binding:"required"`
	IsGoalCompany bool   `json:"isGoalCompany"`
}

type UpdateStatusRequest struct {
	Status          string  `json:"status" binding:"required"`
	RejectionReason *string `json:"rejectionReason"`
	Notes           *string `json:"notes"`
}

type ApplicationResponse struct {
	Success     bool               `json:"success"`
	Application *model.Application `json:"application"`
}

type ListApplicationsResponse struct {
	Success      bool                       `json:"success"`
	Count        int                        `json:"count"`
	Applications []model.ApplicationWithJob `json:"applications"`
}

type SummaryResponse struct {
	Success bool             `json:"success"`
	Summary *service.Summary `json:"summary"`
}
