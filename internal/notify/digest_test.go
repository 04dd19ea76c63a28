package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sanlamamba/redbot/internal/query"
)

func TestRenderStatsEmpty(t *testing.T) {
	assert.Equal(t, "📊 No jobs found in the last 24 hours.", RenderStats(&query.Stats{}))
}

func TestRenderStats(t *testing.T) {
	stats := &query.Stats{
		TotalJobs:   10,
		AvgSalary:   95000,
		RemoteCount: 4,
		RemotePct:   40.0,
		TopSource:   query.Count{Label: "r/forhire", Count: 6},
		TopSkills: []query.Count{
			{Label: "python", Count: 5},
			{Label: "go", Count: 3},
		},
	}

	body := RenderStats(stats)
	assert.Contains(t, body, "Total Jobs: 10")
	assert.Contains(t, body, "Avg Salary: $95,000/year")
	assert.Contains(t, body, "Remote Jobs: 4 (40.0%)")
	assert.Contains(t, body, "Top Source: r/forhire (6 jobs)")
	assert.Contains(t, body, "1. python (5 jobs)")
	assert.Contains(t, body, "2. go (3 jobs)")
}

func TestRenderStatsNoSalaryData(t *testing.T) {
	body := RenderStats(&query.Stats{TotalJobs: 3})
	assert.Contains(t, body, "Avg Salary: N/A")
}
