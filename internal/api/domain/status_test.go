package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseApplicationStatus(t *testing.T) {
	for _, st := range Statuses {
		got, err := ParseApplicationStatus(string(st))
		require.NoError(t, err)
		assert.Equal(t, st, got)
	}

	_, err := ParseApplicationStatus("Ghosted")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = ParseApplicationStatus("applied")
	assert.Error(t, err, "labels are case-sensitive")
}

func TestApplicationStatus_CanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    ApplicationStatus
		to      ApplicationStatus
		wantErr bool
	}{
		{name: "forward", from: StatusApplied, to: StatusOACleared},
		{name: "backward is allowed", from: StatusHR, to: StatusResumeShortlisted},
		{name: "same status", from: StatusTechnical, to: StatusTechnical},
		{name: "reject from applied", from: StatusApplied, to: StatusRejected},
		{name: "select from hr", from: StatusHR, to: StatusSelected},
		{name: "selected is terminal", from: StatusSelected, to: StatusApplied, wantErr: true},
		{name: "selected to selected", from: StatusSelected, to: StatusSelected, wantErr: true},
		{name: "rejected is terminal", from: StatusRejected, to: StatusHR, wantErr: true},
		{name: "rejected to selected", from: StatusRejected, to: StatusSelected, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.from.CanTransition(tt.to)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidTransition))
				assert.Equal(t, KindInvalidTransition, KindOf(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NewError(KindNotFound, "job not found")))
	assert.Equal(t, KindConflict, KindOf(WrapError(KindConflict, "dup", errors.New("23505"))))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, 409, KindInvalidTransition.HTTPStatus())
	assert.Equal(t, 401, KindInvalidCredentials.HTTPStatus())
	assert.Equal(t, 500, KindInternal.HTTPStatus())
}

func TestParseJobSort(t *testing.T) {
	assert.Equal(t, SortStipend, ParseJobSort("Highest Stipend"))
	assert.Equal(t, SortApplicants, ParseJobSort("applicants"))
	assert.Equal(t, SortLatest, ParseJobSort(""))
	assert.Equal(t, SortLatest, ParseJobSort("bogus"))
}
