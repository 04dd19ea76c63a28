package enrich

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sanlamamba/redbot/internal/models"
)

func TestProcessor_Process(t *testing.T) {
	processor := NewProcessor(zap.NewNop())

	job := models.JobPosting{
		URL:   "https://example.com/jobs/1",
		Title: "Senior Go Developer at Acme Corp - Remote",
		Description: `Acme Corp is hiring a senior backend engineer.

Salary: $120k-$150k per year
Stack: Go, PostgreSQL, Kubernetes
Location: Berlin, Germany`,
	}

	enriched := processor.Process(job)

	require.NotNil(t, enriched.SalaryMin)
	require.NotNil(t, enriched.SalaryMax)
	assert.Equal(t, 120000, *enriched.SalaryMin)
	assert.Equal(t, 150000, *enriched.SalaryMax)
	assert.Equal(t, "USD", enriched.SalaryCurrency)
	assert.Equal(t, "yearly", enriched.SalaryPeriod)

	assert.Equal(t, []string{LevelSenior}, enriched.ExperienceLevels)

	assert.True(t, enriched.IsRemote)
	assert.Equal(t, "Berlin, Germany", enriched.Location)

	assert.Contains(t, enriched.Skills, "go")
	assert.Contains(t, enriched.Skills, "postgresql")
	assert.Contains(t, enriched.Skills, "kubernetes")
}

func TestProcessor_ProcessLeavesInputUntouched(t *testing.T) {
	processor := NewProcessor(zap.NewNop())

	job := models.JobPosting{
		URL:         "https://example.com/jobs/2",
		Title:       "Senior engineer, $100k",
		Description: "Remote role using Python",
	}

	_ = processor.Process(job)
	assert.Nil(t, job.SalaryMin)
	assert.Empty(t, job.Skills)
}

func TestProcessor_ProcessIsDeterministic(t *testing.T) {
	processor := NewProcessor(zap.NewNop())

	job := models.JobPosting{
		URL:   "https://example.com/jobs/7",
		Title: "Senior Go Developer at Acme Corp - Remote",
		Description: `Salary: $120k-$150k per year
Stack: Go, PostgreSQL, Kubernetes
Location: Berlin, Germany`,
	}

	first := processor.Process(job)
	second := processor.Process(job)

	assert.Equal(t, first.SalaryMin, second.SalaryMin)
	assert.Equal(t, first.SalaryMax, second.SalaryMax)
	assert.Equal(t, first.SalaryCurrency, second.SalaryCurrency)
	assert.Equal(t, first.ExperienceLevels, second.ExperienceLevels)
	assert.Equal(t, first.SentimentScore, second.SentimentScore)
	assert.Equal(t, first.RedFlags, second.RedFlags)
	assert.Equal(t, first.Skills, second.Skills)
	assert.Equal(t, first.Location, second.Location)
	assert.Equal(t, first.IsRemote, second.IsRemote)
	assert.Equal(t, first.CompanyName, second.CompanyName)
}

func TestProcessor_KeepsExistingCompanyName(t *testing.T) {
	processor := NewProcessor(zap.NewNop())

	job := models.JobPosting{
		URL:         "https://example.com/jobs/3",
		Title:       "Engineer",
		CompanyName: "Hooli",
		Description: "Initech is hiring engineers for its platform team.",
	}

	enriched := processor.Process(job)
	assert.Equal(t, "Hooli", enriched.CompanyName)
}

func TestProcessor_SkillsCapped(t *testing.T) {
	processor := NewProcessor(zap.NewNop())

	job := models.JobPosting{
		URL:   "https://example.com/jobs/4",
		Title: "Polyglot engineer",
		Description: "python javascript java c++ rust ruby php swift kotlin scala " +
			"react angular django flask spring rails nodejs express " +
			"postgresql mysql mongodb redis elasticsearch kafka rabbitmq",
	}

	enriched := processor.Process(job)
	assert.Len(t, enriched.Skills, 20)
}

func TestProcessor_ProcessBatchNeverDrops(t *testing.T) {
	processor := NewProcessor(zap.NewNop())

	jobs := []models.JobPosting{
		{URL: "https://example.com/a", Title: "Senior Go engineer, $120k, remote"},
		{URL: "https://example.com/b", Title: "", Description: ""},
		{URL: "https://example.com/c", Title: "Junior ninja wanted, unpaid"},
	}

	processed := processor.ProcessBatch(jobs)
	require.Len(t, processed, len(jobs))
	for i, job := range processed {
		assert.Equal(t, jobs[i].URL, job.URL)
	}
}

func TestProcessor_Stats(t *testing.T) {
	processor := NewProcessor(zap.NewNop())

	jobs := processor.ProcessBatch([]models.JobPosting{
		{URL: "https://example.com/a", Title: "Senior Go engineer", Description: "Remote, $120k-$150k, Go and Python"},
		{URL: "https://example.com/b", Title: "Junior dev", Description: "On-site role in the office"},
	})

	stats := processor.Stats(jobs)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.WithSalary)
	assert.Equal(t, 2, stats.WithExperience)
	assert.Equal(t, 1, stats.Remote)
	assert.InDelta(t, 1.0, stats.AvgSkillsPerJob, 0.001)
}

func TestProcessor_StatsEmpty(t *testing.T) {
	processor := NewProcessor(zap.NewNop())

	stats := processor.Stats(nil)
	assert.Equal(t, BatchStats{}, stats)
}

func TestProcessor_FullTextCombinesTitleAndDescription(t *testing.T) {
	processor := NewProcessor(zap.NewNop())

	// Salary only in the title, skills only in the description.
	job := models.JobPosting{
		URL:         "https://example.com/jobs/5",
		Title:       "Backend engineer, $90k",
		Description: strings.Repeat("Daily work with terraform.\n", 2),
	}

	enriched := processor.Process(job)
	require.NotNil(t, enriched.SalaryMin)
	assert.Equal(t, 90000, *enriched.SalaryMin)
	assert.Contains(t, enriched.Skills, "terraform")
}
