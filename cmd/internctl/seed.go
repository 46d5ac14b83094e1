package main

import (
	"context"
	"fmt"
	"time"

	"github.com/cuongbtq/interniq-be/internal/api/domain"
	"github.com/cuongbtq/interniq-be/internal/api/service"
	"github.com/cuongbtq/interniq-be/internal/api/storage"
	"github.com/spf13/cobra"
)

// seedAdmin is the identity sample postings are created under
var seedAdmin = domain.Identity{UserID: "internctl", Role: domain.RoleAdmin}

// sampleJob is a posting with its age relative to seeding time
type sampleJob struct {
	spec service.JobSpec
	age  time.Duration
}

var sampleJobs = []sampleJob{
	{
		spec: service.JobSpec{
			Title: "Software Engineering Intern", Company: "Google", Location: "Mountain View, CA",
			Type: "Internship", Field: "Software Development", Stipend: "$8,000/month",
			Skills:       []string{"React", "Node.js", "Python"},
			Description:  "Work on cutting-edge projects with Google engineers",
			Requirements: []string{"CS student", "Strong coding skills", "Team player"},
		},
		age: 2 * 24 * time.Hour,
	},
	{
		spec: service.JobSpec{
			Title: "Data Science Intern", Company: "Microsoft", Location: "Redmond, WA",
			Type: "Internship", Field: "Data Science", Stipend: "$7,500/month",
			Skills:       []string{"Python", "ML", "SQL"},
			Description:  "Analyze large datasets and build ML models",
			Requirements: []string{"Statistics background", "Python experience"},
		},
		age: 7 * 24 * time.Hour,
	},
	{
		spec: service.JobSpec{
			Title: "Product Management Intern", Company: "Amazon", Location: "Seattle, WA",
			Type: "Internship", Field: "Product Management", Stipend: "$7,000/month",
			Skills:       []string{"Product Strategy", "Analytics", "User Research"},
			Description:  "Define product roadmaps and work with engineering teams",
			Requirements: []string{"Strong analytical skills", "Communication skills"},
		},
		age: 3 * 24 * time.Hour,
	},
	{
		spec: service.JobSpec{
			Title: "Frontend Developer Intern", Company: "Meta", Location: "Menlo Park, CA",
			Type: "Internship", Field: "Software Development", Stipend: "$8,500/month",
			Skills:       []string{"React", "JavaScript", "CSS"},
			Description:  "Build user interfaces for Facebook products",
			Requirements: []string{"React experience", "Portfolio of projects"},
		},
		age: 5 * 24 * time.Hour,
	},
	{
		spec: service.JobSpec{
			Title: "UI/UX Design Intern", Company: "Apple", Location: "Cupertino, CA",
			Type: "Internship", Field: "Design", Stipend: "$9,000/month",
			Skills:       []string{"Figma", "User Research", "Prototyping"},
			Description:  "Design beautiful and intuitive user experiences",
			Requirements: []string{"Design portfolio", "Figma experience"},
		},
		age: 4 * time.Hour,
	},
	{
		spec: service.JobSpec{
			Title: "Backend Engineering Intern", Company: "Netflix", Location: "Los Gatos, CA",
			Type: "Internship", Field: "Software Development", Stipend: "$8,200/month",
			Skills:       []string{"Java", "Spring Boot", "AWS"},
			Description:  "Build scalable backend systems",
			Requirements: []string{"Java experience", "Database knowledge"},
		},
		age: 24 * time.Hour,
	},
}

func newSeedCmd(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert sample job postings",
		Long:  "Insert sample job postings. Nothing is inserted when the catalog already has postings unless --force is given.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.client.Migrate(cmd.Context(), storage.Migrations); err != nil {
				return err
			}

			catalog := service.NewCatalog(e.store, e.logger)
			n, err := seedJobs(cmd.Context(), e.store, catalog, time.Now(), force)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "added %d jobs\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "insert sample postings even if the catalog is not empty")
	return cmd
}

// seedJobs creates the sample postings and returns how many were added
func seedJobs(ctx context.Context, store *storage.Storage, catalog *service.Catalog, now time.Time, force bool) (int, error) {
	if !force {
		existing, err := store.ListJobs(ctx, true)
		if err != nil {
			return 0, err
		}
		if len(existing) > 0 {
			return 0, nil
		}
	}

	for i, sample := range sampleJobs {
		spec := sample.spec
		spec.PostedAt = now.Add(-sample.age)
		if _, err := catalog.CreateJob(ctx, seedAdmin, spec); err != nil {
			return i, fmt.Errorf("failed to seed %s at %s: %w", spec.Title, spec.Company, err)
		}
	}

	return len(sampleJobs), nil
}
