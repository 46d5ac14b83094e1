package handler

import (
	"log/slog"

	"github.com/cuongbtq/interniq-be/internal/api/service"
	"github.com/cuongbtq/interniq-be/shared/database"
)

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger         *slog.Logger
	DBClient       *database.Client
	AllowedOrigins []string // CORS; empty allows any origin
	Catalog        *service.Catalog
	Tracker        *service.Tracker
	Scorer         *service.Scorer
	Identity       *service.Identity
	Companies      *service.Companies
	Activity       *service.ActivityFeed
}

// AuthHandler handles registration, login and the caller's profile
type AuthHandler struct {
	logger   *slog.Logger
	identity *service.Identity
}

func NewAuthHandler(deps *Dependencies) *AuthHandler {
	return &AuthHandler{logger: deps.Logger, identity: deps.Identity}
}

// JobHandler handles job listing and creation
type JobHandler struct {
	logger  *slog.Logger
	catalog *service.Catalog
}

func NewJobHandler(deps *Dependencies) *JobHandler {
	return &JobHandler{logger: deps.Logger, catalog: deps.Catalog}
}

// ApplicationHandler handles the caller's applications
type ApplicationHandler struct {
	logger  *slog.Logger
	tracker *service.Tracker
}

func NewApplicationHandler(deps *Dependencies) *ApplicationHandler {
	return &ApplicationHandler{logger: deps.Logger, tracker: deps.Tracker}
}

// ResumeHandler handles resume uploads and analysis history
type ResumeHandler struct {
	logger *slog.Logger
	scorer *service.Scorer
}

func NewResumeHandler(deps *Dependencies) *ResumeHandler {
	return &ResumeHandler{logger: deps.Logger, scorer: deps.Scorer}
}

// CompanyHandler serves the company directory
type CompanyHandler struct {
	logger    *slog.Logger
	companies *service.Companies
}

func NewCompanyHandler(deps *Dependencies) *CompanyHandler {
	return &CompanyHandler{logger: deps.Logger, companies: deps.Companies}
}

// ActivityHandler serves the caller's activity feed
type ActivityHandler struct {
	logger   *slog.Logger
	activity *service.ActivityFeed
}

func NewActivityHandler(deps *Dependencies) *ActivityHandler {
	return &ActivityHandler{logger: deps.Logger, activity: deps.Activity}
}
