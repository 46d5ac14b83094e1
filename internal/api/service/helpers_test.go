package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/cuongbtq/interniq-be/internal/api/domain"
	"github.com/cuongbtq/interniq-be/internal/api/model"
	"github.com/cuongbtq/interniq-be/internal/api/storage"
	"github.com/cuongbtq/interniq-be/internal/api/storage/storagetest"
	"github.com/stretchr/testify/require"
)

var (
	admin   = domain.Identity{UserID: "admin-1", Role: domain.RoleAdmin}
	student = domain.Identity{UserID: "student-1", Role: domain.RoleStudent}
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// clock hands out strictly increasing timestamps
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) kinds() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Kind
	}
	return out
}

type fixture struct {
	store   *storage.Storage
	catalog *Catalog
	clock   *clock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := storagetest.New(t)
	c := newClock()
	catalog := NewCatalog(s, discardLogger())
	catalog.now = c.Now
	return &fixture{store: s, catalog: catalog, clock: c}
}

func (f *fixture) createJob(t *testing.T, spec JobSpec) *model.Job {
	t.Helper()
	if spec.Title == "" {
		spec.Title = "Software Engineering Intern"
	}
	if spec.Company == "" {
		spec.Company = "Google"
	}
	if spec.Location == "" {
		spec.Location = "Mountain View, CA"
	}
	if spec.Field == "" {
		spec.Field = "Software Development"
	}
	job, err := f.catalog.CreateJob(context.Background(), admin, spec)
	require.NoError(t, err)
	return job
}

func (f *fixture) applicantCount(t *testing.T, jobID string) int {
	t.Helper()
	job, err := f.store.GetJobByID(context.Background(), jobID)
	require.NoError(t, err)
	return job.ApplicantCount
}
