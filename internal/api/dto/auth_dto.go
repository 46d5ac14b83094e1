package dto

import "github.com/cuongbtq/interniq-be/internal/api/service"

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Success bool                `json:"success"`
	Token   string              `json:"token"`
	User    service.UserSummary `json:"user"`
}

type UserResponse struct {
	Success bool                 `json:"success"`
	User    *service.UserSummary `json:"user"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
