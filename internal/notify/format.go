// Package notify renders enriched postings into display text for whatever
// dispatch surface sits downstream (chat embeds, logs, digests).
package notify

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sanlamamba/redbot/internal/enrich"
	"github.com/sanlamamba/redbot/internal/models"
)

var currencyDisplaySymbols = map[string]string{
	"GBP": "£",
	"EUR": "€",
}

// FormatSalary renders an annualized salary range for display, e.g.
// "$50,000-$70,000/year" or "Up to $100,000/year".
func FormatSalary(min, max *int, currency string) string {
	symbol, ok := currencyDisplaySymbols[currency]
	if !ok {
		symbol = "$"
	}

	switch {
	case min != nil && max != nil && *min == *max:
		return fmt.Sprintf("%s%s/year", symbol, groupDigits(*min))
	case min != nil && max != nil:
		return fmt.Sprintf("%s%s-%s%s/year", symbol, groupDigits(*min), symbol, groupDigits(*max))
	case max != nil:
		return fmt.Sprintf("Up to %s%s/year", symbol, groupDigits(*max))
	case min != nil:
		return fmt.Sprintf("From %s%s/year", symbol, groupDigits(*min))
	}
	return "Salary not specified"
}

// FormatSalaryResult renders a freshly parsed salary.
func FormatSalaryResult(r *enrich.SalaryResult) string {
	if r == nil {
		return "Salary not specified"
	}
	return FormatSalary(r.Min, r.Max, r.Currency)
}

// FormatExperienceLevels joins detected levels with their icons, e.g.
// "👑 Lead / 🌳 Senior".
func FormatExperienceLevels(levels []string) string {
	if len(levels) == 0 {
		return ""
	}

	formatted := make([]string, 0, len(levels))
	for _, level := range levels {
		name := strings.ToUpper(level[:1]) + level[1:]
		if icon := enrich.LevelIcon(level); icon != "" {
			formatted = append(formatted, icon+" "+name)
		} else {
			formatted = append(formatted, name)
		}
	}
	return strings.Join(formatted, " / ")
}

var warningLabels = map[string]string{
	enrich.CategoryCompensation: "⚠️ Compensation concerns",
	enrich.CategoryWorkLife:     "⚠️ Work-life balance issues",
	enrich.CategoryUnrealistic:  "⚠️ Unrealistic expectations",
	enrich.CategoryVague:        "⚠️ Vague requirements",
}

// FormatWarnings renders the labeled warning categories of an analysis.
// Categories without a display label are dropped.
func FormatWarnings(analysis enrich.SentimentAnalysis) string {
	if len(analysis.RedFlags) == 0 {
		return ""
	}

	var warnings []string
	for _, category := range analysis.WarningCategories {
		if label, ok := warningLabels[category]; ok {
			warnings = append(warnings, label)
		}
	}
	return strings.Join(warnings, " | ")
}

// Recommendation summarizes an analysis in one line, or "" when there is
// nothing worth saying.
func Recommendation(analysis enrich.SentimentAnalysis) string {
	switch {
	case analysis.IsSuspicious:
		return "⚠️ Review carefully - multiple concerns detected"
	case len(analysis.RedFlags) > 0:
		return "⚡ Some concerns detected - proceed with caution"
	case analysis.Score > 0.3:
		return "✅ Looks good - positive indicators found"
	}
	return ""
}

// RenderPosting builds the multi-line notification body for an enriched
// posting.
func RenderPosting(job *models.JobPosting) string {
	var b strings.Builder
	b.WriteString(job.Title)
	b.WriteString("\n")

	if job.HasSalary() {
		b.WriteString("💰 " + FormatSalary(job.SalaryMin, job.SalaryMax, job.SalaryCurrency) + "\n")
	}
	if levels := FormatExperienceLevels(job.ExperienceLevels); levels != "" {
		b.WriteString("📊 " + levels + "\n")
	}
	if job.Location != "" {
		b.WriteString("📍 " + job.Location + "\n")
	} else if job.IsRemote {
		b.WriteString("📍 Remote\n")
	}
	if len(job.Skills) > 0 {
		b.WriteString("🛠 " + strings.Join(job.Skills, ", ") + "\n")
	}
	b.WriteString(job.URL)

	return b.String()
}

// groupDigits inserts thousands separators into a non-negative amount.
func groupDigits(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
