package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/cuongbtq/interniq-be/internal/api/domain"
	"github.com/cuongbtq/interniq-be/internal/api/model"
	"github.com/google/uuid"
)

// ResumeStore is the persistence used by the resume scorer
type ResumeStore interface {
	CreateResume(ctx context.Context, r *model.Resume) error
	GetLatestResume(ctx context.Context, ownerID string) (*model.Resume, error)
	ListResumes(ctx context.Context, ownerID string) ([]model.Resume, error)
}

// Analysis is the output of a resume analysis strategy
type Analysis struct {
	ATSScore    int
	Skills      []string
	Keywords    []string
	Suggestions []string
}

// Analyzer scores a resume. Implementations replace the scoring algorithm
// without touching how records are stored.
type Analyzer interface {
	Analyze(ctx context.Context, ownerID, fileName string) (Analysis, error)
}

// AnalyzerFunc adapts a function to Analyzer
type AnalyzerFunc func(ctx context.Context, ownerID, fileName string) (Analysis, error)

func (f AnalyzerFunc) Analyze(ctx context.Context, ownerID, fileName string) (Analysis, error) {
	return f(ctx, ownerID, fileName)
}

// PlaceholderAnalyzer does not read the resume. It draws a score uniformly
// from [70, 99] and reports a fixed set of skills, keywords and suggestions.
type PlaceholderAnalyzer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewPlaceholderAnalyzer seeds the score generator. The same seed yields the
// same score sequence.
func NewPlaceholderAnalyzer(seed uint64) *PlaceholderAnalyzer {
	return &PlaceholderAnalyzer{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (a *PlaceholderAnalyzer) Analyze(_ context.Context, _, _ string) (Analysis, error) {
	a.mu.Lock()
	score := 70 + a.rng.IntN(30)
	a.mu.Unlock()

	return Analysis{
		ATSScore:    score,
		Skills:      []string{"React", "Node.js", "MongoDB", "Python"},
		Keywords:    []string{"Leadership", "Team Player", "Problem Solving"},
		Suggestions: []string{"Add more technical skills", "Include quantifiable achievements"},
	}, nil
}

// Scorer turns uploaded resumes into scored, immutable records
type Scorer struct {
	store    ResumeStore
	analyzer Analyzer
	events   EventPublisher
	logger   *slog.Logger
	now      func() time.Time
}

func NewScorer(store ResumeStore, analyzer Analyzer, events EventPublisher, logger *slog.Logger) *Scorer {
	if events == nil {
		events = NopPublisher{}
	}
	return &Scorer{
		store:    store,
		analyzer: analyzer,
		events:   events,
		logger:   logger,
		now:      time.Now,
	}
}

// Analyze scores fileName for the caller and stores a new record. Earlier
// records are kept as history.
func (s *Scorer) Analyze(ctx context.Context, caller domain.Identity, fileName string) (*model.Resume, error) {
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return nil, domain.NewError(domain.KindValidation, "fileName is required")
	}

	analysis, err := s.analyzer.Analyze(ctx, caller.UserID, fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze resume: %w", err)
	}

	if analysis.ATSScore < 0 || analysis.ATSScore > 100 {
		return nil, fmt.Errorf("analyzer returned ats score %d outside [0, 100]", analysis.ATSScore)
	}

	record := &model.Resume{
		ID:          uuid.New().String(),
		OwnerID:     caller.UserID,
		FileName:    fileName,
		ATSScore:    analysis.ATSScore,
		Skills:      nonNil(analysis.Skills),
		Keywords:    nonNil(analysis.Keywords),
		Suggestions: nonNil(analysis.Suggestions),
		UploadedAt:  s.now().UTC(),
	}

	if err := s.store.CreateResume(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("Resume analyzed",
		slog.String("resume_id", record.ID),
		slog.String("owner_id", record.OwnerID),
		slog.Int("ats_score", record.ATSScore),
	)

	publishEvent(ctx, s.events, s.logger, domain.EventResumeAnalyzed, caller.UserID, record.ID,
		fmt.Sprintf("Resume %s scored %d", record.FileName, record.ATSScore), record.UploadedAt)

	return record, nil
}

// Current returns the caller's most recent resume, or nil when none exists
func (s *Scorer) Current(ctx context.Context, caller domain.Identity) (*model.Resume, error) {
	r, err := s.store.GetLatestResume(ctx, caller.UserID)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return nil, nil
		}
		return nil, err
	}
	return r, nil
}

// History returns every resume of the caller, newest first
func (s *Scorer) History(ctx context.Context, caller domain.Identity) ([]model.Resume, error) {
	return s.store.ListResumes(ctx, caller.UserID)
}
