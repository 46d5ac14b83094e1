package handler

import (
	"net/http"

	"github.com/cuongbtq/interniq-be/internal/api/dto"
	"github.com/gin-gonic/gin"
)

// ListCompanies handles GET /api/v1/companies
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	companies := h.companies.List()
	c.JSON(http.StatusOK, dto.ListCompaniesResponse{
		Success:   true,
		Count:     len(companies),
		Companies: companies,
	})
}

// GetCompany handles GET /api/v1/companies/:name
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	company, err := h.companies.Get(c.Param("name"))
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.CompanyResponse{Success: true, Company: company})
}
