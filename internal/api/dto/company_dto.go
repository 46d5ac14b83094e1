package dto

import "github.com/cuongbtq/interniq-be/internal/api/service"

type ListCompaniesResponse struct {
	Success   bool                     `json:"success"`
	Count     int                      `json:"count"`
	Companies []service.CompanyProfile `json:"companies"`
}

type CompanyResponse struct {
	Success bool                    `json:"success"`
	Company *service.CompanyProfile `json:"company"`
}
