package storage_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cuongbtq/interniq-be/internal/api/domain"
	"github.com/cuongbtq/interniq-be/internal/api/model"
	"github.com/cuongbtq/interniq-be/internal/api/storage"
	"github.com/cuongbtq/interniq-be/internal/api/storage/storagetest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func newJob(title string, postedAt time.Time) *model.Job {
	return &model.Job{
		ID:       uuid.New().String(),
		Title:    title,
		Company:  "Acme",
		Location: "Remote",
		Type:     domain.JobTypeInternship,
		Field:    "Software Development",
		Stipend:  "$5,000/month",
		Skills:   []string{"Go", "React"},
		Status:   domain.JobStatusActive,
		PostedAt: postedAt,
	}
}

func newApplication(ownerID, jobID string, appliedAt time.Time) *model.Application {
	return &model.Application{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		JobID:       jobID,
		Status:      domain.StatusApplied,
		AppliedAt:   appliedAt,
		LastUpdated: appliedAt,
	}
}

func TestStorage_Jobs(t *testing.T) {
	ctx := context.Background()
	s := storagetest.New(t)

	older := newJob("Older", baseTime)
	newer := newJob("Newer", baseTime.Add(time.Hour))
	expired := newJob("Expired", baseTime.Add(2*time.Hour))
	expired.Status = domain.JobStatusExpired

	for _, j := range []*model.Job{older, newer, expired} {
		require.NoError(t, s.CreateJob(ctx, j))
	}

	got, err := s.GetJobByID(ctx, older.ID)
	require.NoError(t, err)
	assert.Equal(t, "Older", got.Title)
	assert.Equal(t, []string{"Go", "React"}, []string(got.Skills))
	assert.True(t, baseTime.Equal(got.PostedAt))

	_, err = s.GetJobByID(ctx, uuid.New().String())
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	active, err := s.ListJobs(ctx, false)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, newer.ID, active[0].ID)
	assert.Equal(t, older.ID, active[1].ID)

	all, err := s.ListJobs(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byID, err := s.GetJobsByIDs(ctx, []string{older.ID, expired.ID})
	require.NoError(t, err)
	assert.Len(t, byID, 2)
	assert.Equal(t, "Expired", byID[expired.ID].Title)
}

func TestStorage_IncrementApplicantCount(t *testing.T) {
	ctx := context.Background()
	s := storagetest.New(t)

	job := newJob("Intern", baseTime)
	require.NoError(t, s.CreateJob(ctx, job))

	app := newApplication("user-1", job.ID, baseTime)
	require.NoError(t, s.CreateApplication(ctx, app))

	require.NoError(t, s.IncrementApplicantCount(ctx, job.ID, app.ID))
	// A retry for the same application must not count twice.
	require.NoError(t, s.IncrementApplicantCount(ctx, job.ID, app.ID))

	got, err := s.GetJobByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ApplicantCount)

	stored, err := s.GetApplication(ctx, app.ID, "user-1")
	require.NoError(t, err)
	assert.True(t, stored.Counted)

	err = s.IncrementApplicantCount(ctx, job.ID, uuid.New().String())
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	// Counted applications cannot be removed by the compensation path.
	err = s.DeleteUncountedApplication(ctx, app.ID)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestStorage_Applications(t *testing.T) {
	ctx := context.Background()
	s := storagetest.New(t)

	jobA := newJob("A", baseTime)
	jobB := newJob("B", baseTime)
	require.NoError(t, s.CreateJob(ctx, jobA))
	require.NoError(t, s.CreateJob(ctx, jobB))

	first := newApplication("owner", jobA.ID, baseTime)
	second := newApplication("owner", jobB.ID, baseTime.Add(time.Minute))
	require.NoError(t, s.CreateApplication(ctx, first))
	require.NoError(t, s.CreateApplication(ctx, second))

	dup := newApplication("owner", jobA.ID, baseTime.Add(time.Hour))
	err := s.CreateApplication(ctx, dup)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	apps, err := s.ListApplicationsByOwner(ctx, "owner")
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, second.ID, apps[0].ID)
	assert.Equal(t, first.ID, apps[1].ID)

	found, err := s.FindApplication(ctx, "owner", jobA.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)

	_, err = s.GetApplication(ctx, first.ID, "someone-else")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	require.NoError(t, s.DeleteUncountedApplication(ctx, first.ID))
	_, err = s.FindApplication(ctx, "owner", jobA.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestStorage_UpdateApplicationStatus(t *testing.T) {
	ctx := context.Background()
	s := storagetest.New(t)

	job := newJob("Intern", baseTime)
	require.NoError(t, s.CreateJob(ctx, job))
	app := newApplication("owner", job.ID, baseTime)
	require.NoError(t, s.CreateApplication(ctx, app))

	notes := "recruiter called"
	updated, err := s.UpdateApplicationStatus(ctx, app.ID, "owner", storage.StatusUpdate{
		Status:    domain.StatusTechnical,
		Notes:     &notes,
		UpdatedAt: baseTime.Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusTechnical, updated.Status)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, notes, *updated.Notes)
	assert.True(t, baseTime.Add(time.Hour).Equal(updated.LastUpdated))
	assert.True(t, baseTime.Equal(updated.AppliedAt))

	reason := "position filled"
	updated, err = s.UpdateApplicationStatus(ctx, app.ID, "owner", storage.StatusUpdate{
		Status:          domain.StatusRejected,
		RejectionReason: &reason,
		UpdatedAt:       baseTime.Add(2 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, updated.Status)
	require.NotNil(t, updated.Notes, "notes are kept when not supplied")

	_, err = s.UpdateApplicationStatus(ctx, app.ID, "owner", storage.StatusUpdate{
		Status:    domain.StatusHR,
		UpdatedAt: baseTime.Add(3 * time.Hour),
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition))

	_, err = s.UpdateApplicationStatus(ctx, app.ID, "intruder", storage.StatusUpdate{
		Status:    domain.StatusHR,
		UpdatedAt: baseTime,
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestStorage_Resumes(t *testing.T) {
	ctx := context.Background()
	s := storagetest.New(t)

	_, err := s.GetLatestResume(ctx, "owner")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	first := &model.Resume{
		ID: uuid.New().String(), OwnerID: "owner", FileName: "v1.pdf", ATSScore: 71,
		Skills: []string{"Go"}, Keywords: []string{"Leadership"},
		Suggestions: []string{"first", "second"}, UploadedAt: baseTime,
	}
	second := &model.Resume{
		ID: uuid.New().String(), OwnerID: "owner", FileName: "v2.pdf", ATSScore: 88,
		UploadedAt: baseTime.Add(time.Minute),
	}
	require.NoError(t, s.CreateResume(ctx, first))
	require.NoError(t, s.CreateResume(ctx, second))

	latest, err := s.GetLatestResume(ctx, "owner")
	require.NoError(t, err)
	assert.Equal(t, "v2.pdf", latest.FileName)

	history, err := s.ListResumes(ctx, "owner")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, []string{"first", "second"}, []string(history[1].Suggestions))
}

func TestStorage_Users(t *testing.T) {
	ctx := context.Background()
	s := storagetest.New(t)

	u := &model.User{
		ID: uuid.New().String(), Name: "Ada", Email: "ada@example.com",
		PasswordHash: "hash", Role: domain.RoleStudent, CreatedAt: baseTime,
	}
	require.NoError(t, s.CreateUser(ctx, u))

	dup := *u
	dup.ID = uuid.New().String()
	err := s.CreateUser(ctx, &dup)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	byEmail, err := s.GetUserByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	byID, err := s.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", byID.Name)

	_, err = s.GetUserByEmail(ctx, "nobody@example.com")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	require.NoError(t, s.SetUserRole(ctx, u.ID, domain.RoleAdmin))
	byID, err = s.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, byID.Role)

	err = s.SetUserRole(ctx, "missing", domain.RoleAdmin)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestStorage_ListActivities(t *testing.T) {
	ctx := context.Background()
	client := storagetest.NewClient(t)
	s := storage.NewStorage(client)
	db := client.GetDB()

	insert := db.Rebind(`
		INSERT INTO activities (event_id, owner_id, kind, subject_id, summary, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	for i, id := range []string{"e1", "e2", "e3", "e4"} {
		_, err := db.ExecContext(ctx, insert, id, "owner", domain.EventApplicationCreated, "app", "Applied", baseTime.Add(time.Duration(i/2)*time.Minute))
		require.NoError(t, err)
	}
	_, err := db.ExecContext(ctx, insert, "x1", "other", domain.EventResumeAnalyzed, "r", "Scored", baseTime)
	require.NoError(t, err)

	page, err := s.ListActivities(ctx, storage.ActivityFilter{OwnerID: "owner", PageSize: 2})
	require.NoError(t, err)
	require.Len(t, page, 3)
	assert.Equal(t, []string{"e4", "e3", "e2"}, []string{page[0].EventID, page[1].EventID, page[2].EventID})

	last := page[1]
	rest, err := s.ListActivities(ctx, storage.ActivityFilter{
		OwnerID:  "owner",
		PageSize: 2,
		Cursor:   &storage.ActivityCursor{OccurredAt: last.OccurredAt, EventID: last.EventID},
	})
	require.NoError(t, err)
	require.Len(t, rest, 2)
	assert.Equal(t, "e2", rest[0].EventID)
	assert.Equal(t, "e1", rest[1].EventID)

	none, err := s.ListActivities(ctx, storage.ActivityFilter{OwnerID: "nobody", PageSize: 5})
	require.NoError(t, err)
	assert.Empty(t, none)
}
