package notify

import (
	"fmt"
	"strings"

	"github.com/sanlamamba/redbot/internal/query"
)

// RenderStats builds the daily digest body from 24-hour statistics.
func RenderStats(stats *query.Stats) string {
	if stats.TotalJobs == 0 {
		return "📊 No jobs found in the last 24 hours."
	}

	var b strings.Builder
	b.WriteString("📊 Today's Job Statistics (Last 24 Hours)\n")
	fmt.Fprintf(&b, "Total Jobs: %d\n", stats.TotalJobs)

	if stats.AvgSalary > 0 {
		fmt.Fprintf(&b, "Avg Salary: $%s/year\n", groupDigits(stats.AvgSalary))
	} else {
		b.WriteString("Avg Salary: N/A\n")
	}

	fmt.Fprintf(&b, "Remote Jobs: %d (%.1f%%)\n", stats.RemoteCount, stats.RemotePct)

	if stats.TopSource.Label != "" {
		fmt.Fprintf(&b, "Top Source: %s (%d jobs)\n", stats.TopSource.Label, stats.TopSource.Count)
	}

	for i, skill := range stats.TopSkills {
		fmt.Fprintf(&b, "%d. %s (%d jobs)\n", i+1, skill.Label, skill.Count)
	}

	return strings.TrimRight(b.String(), "\n")
}
