package main

import (
	"context"
	"fmt"
	"io"

	"github.com/cuongbtq/interniq-be/internal/api/storage"
	"github.com/spf13/cobra"
)

// countMismatch is a job whose counter disagrees with its counted applications
type countMismatch struct {
	JobID   string
	Title   string
	Stored  int
	Counted int
}

func newVerifyCountsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "verify-counts",
		Short: "Compare each job's applicant count with its counted applications",
		Long: "Compare each job's applicant count with its counted applications. " +
			"Any difference in either direction is reported and makes the command fail.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.Close()

			mismatches, err := verifyCounts(cmd.Context(), e.store)
			if err != nil {
				return err
			}

			return reportMismatches(cmd.OutOrStdout(), mismatches)
		},
	}
}

func verifyCounts(ctx context.Context, store *storage.Storage) ([]countMismatch, error) {
	jobs, err := store.ListJobs(ctx, true)
	if err != nil {
		return nil, err
	}

	var mismatches []countMismatch
	for _, job := range jobs {
		counted, err := store.CountApplicationsForJob(ctx, job.ID)
		if err != nil {
			return nil, err
		}
		if counted != job.ApplicantCount {
			mismatches = append(mismatches, countMismatch{
				JobID:   job.ID,
				Title:   job.Title,
				Stored:  job.ApplicantCount,
				Counted: counted,
			})
		}
	}

	return mismatches, nil
}

func reportMismatches(w io.Writer, mismatches []countMismatch) error {
	if len(mismatches) == 0 {
		fmt.Fprintln(w, "all applicant counts match")
		return nil
	}

	for _, m := range mismatches {
		fmt.Fprintf(w, "%s %q: applicant_count=%d counted_applications=%d\n", m.JobID, m.Title, m.Stored, m.Counted)
	}

	return fmt.Errorf("%d jobs have applicant counts that differ from counted applications", len(mismatches))
}
