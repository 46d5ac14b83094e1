package domain

import "fmt"

// ApplicationStatus is the recruiting stage of an application
type ApplicationStatus string

const (
	StatusApplied           ApplicationStatus = "Applied"
	StatusResumeShortlisted ApplicationStatus = "Resume Shortlisted"
	StatusOACleared         ApplicationStatus = "OA Cleared"
	StatusTechnical         ApplicationStatus = "Technical"
	StatusHR                ApplicationStatus = "HR"
	StatusSelected          ApplicationStatus = "Selected"
	StatusRejected          ApplicationStatus = "Rejected"
)

// Statuses lists every stage in pipeline order
var Statuses = []ApplicationStatus{
	StatusApplied,
	StatusResumeShortlisted,
	StatusOACleared,
	StatusTechnical,
	StatusHR,
	StatusSelected,
	StatusRejected,
}

// TerminalStatuses are the stages after which no transition is accepted
var TerminalStatuses = []ApplicationStatus{StatusSelected, StatusRejected}

// ParseApplicationStatus converts a label into a known status
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", NewError(KindValidation, fmt.Sprintf("unknown application status %q", s))
}

// IsTerminal reports whether the status ends the application lifecycle
func (s ApplicationStatus) IsTerminal() bool {
	return s == StatusSelected || s == StatusRejected
}

// IsInterview reports whether the status is one of the interview rounds
func (s ApplicationStatus) IsInterview() bool {
	return s == StatusTechnical || s == StatusHR
}

// CanTransition checks whether an application in status s may move to next.
// Stages are recruiter-driven labels, so ordering is not enforced; only
// terminal stages are closed.
func (s ApplicationStatus) CanTransition(next ApplicationStatus) error {
	if s.IsTerminal() {
		return NewError(KindInvalidTransition,
			fmt.Sprintf("application is %s and cannot move to %s", s, next))
	}
	return nil
}
