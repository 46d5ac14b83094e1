package storage

import "github.com/cuongbtq/interniq-be/shared/database"

// Migrations is the ordered schema history of the tracker database
var Migrations = []database.Migration{
	{
		Name: "0001_create_users",
		Postgres: `
			CREATE TABLE IF NOT EXISTS users (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				email TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				role TEXT NOT NULL DEFAULT 'student',
				created_at TIMESTAMPTZ NOT NULL
			)`,
		SQLite: `
			CREATE TABLE IF NOT EXISTS users (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				email TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				role TEXT NOT NULL DEFAULT 'student',
				created_at TIMESTAMP NOT NULL
			)`,
	},
	{
		Name: "0002_create_jobs",
		Postgres: `
			CREATE TABLE IF NOT EXISTS jobs (
				id TEXT PRIMARY KEY,
				title TEXT NOT NULL,
				company TEXT NOT NULL,
				location TEXT NOT NULL,
				type TEXT NOT NULL DEFAULT 'Internship',
				field TEXT NOT NULL,
				stipend TEXT NOT NULL DEFAULT '',
				description TEXT NOT NULL DEFAULT '',
				requirements TEXT[],
				skills TEXT[],
				applicant_count INTEGER NOT NULL DEFAULT 0 CHECK (applicant_count >= 0),
				status TEXT NOT NULL DEFAULT 'active',
				posted_at TIMESTAMPTZ NOT NULL
			)`,
		SQLite: `
			CREATE TABLE IF NOT EXISTS jobs (
				id TEXT PRIMARY KEY,
				title TEXT NOT NULL,
				company TEXT NOT NULL,
				location TEXT NOT NULL,
				type TEXT NOT NULL DEFAULT 'Internship',
				field TEXT NOT NULL,
				stipend TEXT NOT NULL DEFAULT '',
				description TEXT NOT NULL DEFAULT '',
				requirements TEXT,
				skills TEXT,
				applicant_count INTEGER NOT NULL DEFAULT 0 CHECK (applicant_count >= 0),
				status TEXT NOT NULL DEFAULT 'active',
				posted_at TIMESTAMP NOT NULL
			)`,
	},
	{
		Name: "0003_create_applications",
		Postgres: `
			CREATE TABLE IF NOT EXISTS applications (
				id TEXT PRIMARY KEY,
				owner_id TEXT NOT NULL,
				job_id TEXT NOT NULL REFERENCES jobs(id),
				status TEXT NOT NULL DEFAULT 'Applied',
				is_goal_company BOOLEAN NOT NULL DEFAULT FALSE,
				applied_at TIMESTAMPTZ NOT NULL,
				last_updated TIMESTAMPTZ NOT NULL,
				rejection_reason TEXT,
				notes TEXT,
				counted BOOLEAN NOT NULL DEFAULT FALSE,
				UNIQUE (owner_id, job_id)
			)`,
		SQLite: `
			CREATE TABLE IF NOT EXISTS applications (
				id TEXT PRIMARY KEY,
				owner_id TEXT NOT NULL,
				job_id TEXT NOT NULL REFERENCES jobs(id),
				status TEXT NOT NULL DEFAULT 'Applied',
				is_goal_company BOOLEAN NOT NULL DEFAULT FALSE,
				applied_at TIMESTAMP NOT NULL,
				last_updated TIMESTAMP NOT NULL,
				rejection_reason TEXT,
				notes TEXT,
				counted BOOLEAN NOT NULL DEFAULT FALSE,
				UNIQUE (owner_id, job_id)
			)`,
	},
	{
		Name:     "0004_index_applications_owner",
		Postgres: `CREATE INDEX IF NOT EXISTS idx_applications_owner ON applications (owner_id, applied_at DESC)`,
		SQLite:   `CREATE INDEX IF NOT EXISTS idx_applications_owner ON applications (owner_id, applied_at DESC)`,
	},
	{
		Name: "0005_create_resumes",
		Postgres: `
			CREATE TABLE IF NOT EXISTS resumes (
				id TEXT PRIMARY KEY,
				owner_id TEXT NOT NULL,
				file_name TEXT NOT NULL,
				ats_score INTEGER NOT NULL CHECK (ats_score BETWEEN 0 AND 100),
				skills TEXT[],
				keywords TEXT[],
				suggestions TEXT[],
				uploaded_at TIMESTAMPTZ NOT NULL
			)`,
		SQLite: `
			CREATE TABLE IF NOT EXISTS resumes (
				id TEXT PRIMARY KEY,
				owner_id TEXT NOT NULL,
				file_name TEXT NOT NULL,
				ats_score INTEGER NOT NULL CHECK (ats_score BETWEEN 0 AND 100),
				skills TEXT,
				keywords TEXT,
				suggestions TEXT,
				uploaded_at TIMESTAMP NOT NULL
			)`,
	},
	{
		Name:     "0006_index_resumes_owner",
		Postgres: `CREATE INDEX IF NOT EXISTS idx_resumes_owner ON resumes (owner_id, uploaded_at DESC)`,
		SQLite:   `CREATE INDEX IF NOT EXISTS idx_resumes_owner ON resumes (owner_id, uploaded_at DESC)`,
	},
	{
		Name: "0007_create_activities",
		Postgres: `
			CREATE TABLE IF NOT EXISTS activities (
				event_id TEXT PRIMARY KEY,
				owner_id TEXT NOT NULL,
				kind TEXT NOT NULL,
				subject_id TEXT NOT NULL,
				summary TEXT NOT NULL DEFAULT '',
				occurred_at TIMESTAMPTZ NOT NULL
			)`,
		SQLite: `
			CREATE TABLE IF NOT EXISTS activities (
				event_id TEXT PRIMARY KEY,
				owner_id TEXT NOT NULL,
				kind TEXT NOT NULL,
				subject_id TEXT NOT NULL,
				summary TEXT NOT NULL DEFAULT '',
				occurred_at TIMESTAMP NOT NULL
			)`,
	},
}
