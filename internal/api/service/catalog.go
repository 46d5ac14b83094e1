package service

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cuongbtq/interniq-be/internal/api/domain"
	"github.com/cuongbtq/interniq-be/internal/api/model"
	"github.com/google/uuid"
)

// CatalogStore is the persistence used by the job catalog
type CatalogStore interface {
	CreateJob(ctx context.Context, job *model.Job) error
	GetJobByID(ctx context.Context, jobID string) (*model.Job, error)
	ListJobs(ctx context.Context, includeExpired bool) ([]model.Job, error)
	IncrementApplicantCount(ctx context.Context, jobID, applicationID string) error
}

// JobFilter is a conjunction of optional listing predicates. Empty values
// and "all" disable a predicate.
type JobFilter struct {
	Search         string
	Type           string
	Location       string
	Field          string
	IncludeExpired bool
}

// JobSpec describes a posting to create
type JobSpec struct {
	Title        string
	Company      string
	Location     string
	Type         string
	Field        string
	Stipend      string
	Description  string
	Requirements []string
	Skills       []string
	PostedAt     time.Time
}

// Catalog holds job postings and their applicant counters
type Catalog struct {
	store  CatalogStore
	logger *slog.Logger
	now    func() time.Time
}

func NewCatalog(store CatalogStore, logger *slog.Logger) *Catalog {
	return &Catalog{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// ListJobs filters and orders postings. It never fails on an empty result.
func (c *Catalog) ListJobs(ctx context.Context, filter JobFilter, sortBy domain.JobSort) ([]model.Job, error) {
	jobs, err := c.store.ListJobs(ctx, filter.IncludeExpired)
	if err != nil {
		return nil, err
	}

	matched := make([]model.Job, 0, len(jobs))
	for _, job := range jobs {
		if filter.matches(&job) {
			matched = append(matched, job)
		}
	}

	sortJobs(matched, sortBy)

	c.logger.Debug("Listed jobs",
		slog.Int("total", len(jobs)),
		slog.Int("matched", len(matched)),
		slog.String("sort", string(sortBy)),
	)

	return matched, nil
}

func (c *Catalog) GetJob(ctx context.Context, jobID string) (*model.Job, error) {
	return c.store.GetJobByID(ctx, jobID)
}

// IncrementApplicantCount adds one applicant to jobID for applicationID.
// Repeating the call for the same application does not count twice.
func (c *Catalog) IncrementApplicantCount(ctx context.Context, jobID, applicationID string) error {
	return c.store.IncrementApplicantCount(ctx, jobID, applicationID)
}

// CreateJob adds a posting to the catalog. Only admins may call it.
func (c *Catalog) CreateJob(ctx context.Context, caller domain.Identity, spec JobSpec) (*model.Job, error) {
	if !caller.IsAdmin() {
		return nil, domain.NewError(domain.KindForbidden, "only admins can create jobs")
	}

	var missing []string
	for _, f := range []struct{ name, value string }{
		{"title", spec.Title},
		{"company", spec.Company},
		{"location", spec.Location},
		{"field", spec.Field},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, domain.NewError(domain.KindValidation, "missing required fields: "+strings.Join(missing, ", "))
	}

	jobType, ok := domain.ParseJobType(spec.Type)
	if !ok {
		return nil, domain.NewError(domain.KindValidation, "invalid job type: "+spec.Type)
	}

	postedAt := spec.PostedAt
	if postedAt.IsZero() {
		postedAt = c.now()
	}

	job := &model.Job{
		ID:           uuid.New().String(),
		Title:        strings.TrimSpace(spec.Title),
		Company:      strings.TrimSpace(spec.Company),
		Location:     strings.TrimSpace(spec.Location),
		Type:         jobType,
		Field:        strings.TrimSpace(spec.Field),
		Stipend:      spec.Stipend,
		Description:  spec.Description,
		Requirements: nonNil(spec.Requirements),
		Skills:       nonNil(spec.Skills),
		Status:       domain.JobStatusActive,
		PostedAt:     postedAt.UTC(),
	}

	if err := c.store.CreateJob(ctx, job); err != nil {
		return nil, err
	}

	c.logger.Info("Job created",
		slog.String("job_id", job.ID),
		slog.String("company", job.Company),
		slog.String("title", job.Title),
	)

	return job, nil
}

func (f JobFilter) matches(job *model.Job) bool {
	if q := predicate(f.Search); q != "" {
		q = strings.ToLower(q)
		hit := strings.Contains(strings.ToLower(job.Title), q) ||
			strings.Contains(strings.ToLower(job.Company), q)
		for _, skill := range job.Skills {
			if hit {
				break
			}
			hit = strings.Contains(strings.ToLower(skill), q)
		}
		if !hit {
			return false
		}
	}

	if t := predicate(f.Type); t != "" && string(job.Type) != t {
		return false
	}

	if loc := predicate(f.Location); loc != "" &&
		!strings.Contains(strings.ToLower(job.Location), strings.ToLower(loc)) {
		return false
	}

	if field := predicate(f.Field); field != "" && job.Field != field {
		return false
	}

	return true
}

// predicate normalises a filter value; "all" means no filter
func predicate(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "all") {
		return ""
	}
	return v
}

func sortJobs(jobs []model.Job, by domain.JobSort) {
	switch by {
	case domain.SortStipend:
		sort.SliceStable(jobs, func(i, j int) bool {
			return ParseStipend(jobs[i].Stipend) > ParseStipend(jobs[j].Stipend)
		})
	case domain.SortApplicants:
		sort.SliceStable(jobs, func(i, j int) bool {
			return jobs[i].ApplicantCount < jobs[j].ApplicantCount
		})
	default:
		sort.SliceStable(jobs, func(i, j int) bool {
			return jobs[i].PostedAt.After(jobs[j].PostedAt)
		})
	}
}

// ParseStipend extracts the leading number of a stipend label, ignoring
// thousands separators: "$7,000/month" is 7000 and "₹10,000 - 15,000" is
// 10000. Labels without digits are 0. This is a sort key, not a currency
// parser.
func ParseStipend(stipend string) int {
	start := strings.IndexFunc(stipend, isDigit)
	if start < 0 {
		return 0
	}

	var digits strings.Builder
	for _, r := range stipend[start:] {
		if isDigit(r) {
			digits.WriteRune(r)
			continue
		}
		if r == ',' {
			continue
		}
		break
	}

	n, err := strconv.Atoi(digits.String())
	if err != nil {
		// overflow
		return 0
	}
	return n
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
