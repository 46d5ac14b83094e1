package domain

import "strings"

// JobType is the employment type of a posting
type JobType string

const (
	JobTypeInternship JobType = "Internship"
	JobTypeFullTime   JobType = "Full-Time"
	JobTypePartTime   JobType = "Part-Time"
	JobTypeContract   JobType = "Contract"
)

// ParseJobType returns the JobType matching s. An empty string maps to
// Internship, the catalog default.
func ParseJobType(s string) (JobType, bool) {
	switch JobType(strings.TrimSpace(s)) {
	case "", JobTypeInternship:
		return JobTypeInternship, true
	case JobTypeFullTime:
		return JobTypeFullTime, true
	case JobTypePartTime:
		return JobTypePartTime, true
	case JobTypeContract:
		return JobTypeContract, true
	default:
		return "", false
	}
}

// Job posting status constants
const (
	JobStatusActive  = "active"
	JobStatusExpired = "expired"
)

// JobSort selects the ordering of a job listing
type JobSort string

const (
	SortLatest     JobSort = "latest"
	SortStipend    JobSort = "stipend"
	SortApplicants JobSort = "applicants"
)

// ParseJobSort accepts both the query keys and the labels shown by the web
// client. Anything unrecognised sorts by latest.
func ParseJobSort(s string) JobSort {
	switch strings.TrimSpace(s) {
	case "stipend", "Highest Stipend":
		return SortStipend
	case "applicants", "Least Applicants":
		return SortApplicants
	default:
		return SortLatest
	}
}
