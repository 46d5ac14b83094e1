package dto

import "github.com/cuongbtq/interniq-be/internal/api/model"

type UploadResumeRequest struct {
	FileName string `json:"fileName" binding:"required"`
}

type ResumeResponse struct {
	Success bool          `json:"success"`
	Resume  *model.Resume `json:"resume"`
}

type ListResumesResponse struct {
	Success bool           `json:"success"`
	Count   int            `json:"count"`
	Resumes []model.Resume `json:"resumes"`
}
