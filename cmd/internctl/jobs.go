package main

import (
	"fmt"

	"github.com/cuongbtq/interniq-be/internal/api/service"
	"github.com/spf13/cobra"
)

func newCreateJobCmd(opts *rootOptions) *cobra.Command {
	var spec service.JobSpec

	cmd := &cobra.Command{
		Use:   "create-job",
		Short: "Add a job posting to the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.Close()

			job, err := service.NewCatalog(e.store, e.logger).CreateJob(cmd.Context(), seedAdmin, spec)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created job %s (%s at %s)\n", job.ID, job.Title, job.Company)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&spec.Title, "title", "", "job title")
	f.StringVar(&spec.Company, "company", "", "company name")
	f.StringVar(&spec.Location, "location", "", "job location")
	f.StringVar(&spec.Type, "type", "Internship", "Internship, Full-Time, Part-Time or Contract")
	f.StringVar(&spec.Field, "field", "", "field of work, e.g. Software Development")
	f.StringVar(&spec.Stipend, "stipend", "", "stipend text, e.g. $8,000/month")
	f.StringVar(&spec.Description, "description", "", "job description")
	f.StringSliceVar(&spec.Requirements, "requirement", nil, "requirement (repeatable)")
	f.StringSliceVar(&spec.Skills, "skill", nil, "required skill (repeatable)")

	for _, name := range []string{"title", "company", "location", "field"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}
