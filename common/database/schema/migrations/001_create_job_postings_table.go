package migrations

import "github.com/sanlamamba/redbot/common/database/schema"

var CreateJobPostingsTable = schema.Migration{
	Version:     1,
	Description: "Create job_postings table",
	Up: `
		CREATE TABLE IF NOT EXISTS job_postings (
			id UUID,
			url String,
			title String,
			description String,
			subreddit String,
			author String,
			source String,
			source_id String,
			created_utc Int64,
			discovered_at DateTime,
			salary_min Nullable(Int64),
			salary_max Nullable(Int64),
			salary_currency String,
			salary_period String,
			experience_levels Array(String),
			company_name String,
			location String,
			is_remote UInt8,
			work_type String,
			sentiment_score Float64,
			red_flags Array(String),
			skills Array(String),
			priority_score Int32,
			duplicate_of String,
			archived UInt8,
			archived_at Nullable(DateTime),
			updated_at DateTime,
			PRIMARY KEY (id)
		) ENGINE = ReplacingMergeTree(updated_at)
		PARTITION BY toYYYYMM(discovered_at)
		ORDER BY (id, discovered_at)
		SETTINGS index_granularity = 8192
	`,
	Down: `DROP TABLE IF EXISTS job_postings`,
}

// All lists every migration in apply order.
var All = []schema.Migration{
	CreateJobPostingsTable,
}
