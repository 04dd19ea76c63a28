package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sanlamamba/redbot/internal/enrich"
	"github.com/sanlamamba/redbot/internal/models"
)

func intPtr(v int) *int { return &v }

func TestFormatSalary(t *testing.T) {
	assert.Equal(t, "$50,000-$70,000/year", FormatSalary(intPtr(50000), intPtr(70000), "USD"))
	assert.Equal(t, "$90,000/year", FormatSalary(intPtr(90000), intPtr(90000), "USD"))
	assert.Equal(t, "Up to $100,000/year", FormatSalary(nil, intPtr(100000), "USD"))
	assert.Equal(t, "From $80,000/year", FormatSalary(intPtr(80000), nil, "USD"))
	assert.Equal(t, "Salary not specified", FormatSalary(nil, nil, "USD"))
}

func TestFormatSalaryCurrencySymbols(t *testing.T) {
	assert.Equal(t, "£50,000-£70,000/year", FormatSalary(intPtr(50000), intPtr(70000), "GBP"))
	assert.Equal(t, "€60,000/year", FormatSalary(intPtr(60000), intPtr(60000), "EUR"))
	// Unknown currencies fall back to the dollar sign.
	assert.Equal(t, "$50,000/year", FormatSalary(intPtr(50000), intPtr(50000), "CAD"))
}

func TestFormatSalaryResult(t *testing.T) {
	assert.Equal(t, "Salary not specified", FormatSalaryResult(nil))

	result := &enrich.SalaryResult{Min: intPtr(50000), Max: intPtr(70000), Currency: "USD"}
	assert.Equal(t, "$50,000-$70,000/year", FormatSalaryResult(result))
}

func TestFormatExperienceLevels(t *testing.T) {
	assert.Equal(t, "", FormatExperienceLevels(nil))
	assert.Equal(t, "🌳 Senior", FormatExperienceLevels([]string{"senior"}))
	assert.Equal(t, "👑 Lead / 🌳 Senior", FormatExperienceLevels([]string{"lead", "senior"}))
}

func TestFormatWarnings(t *testing.T) {
	assert.Equal(t, "", FormatWarnings(enrich.SentimentAnalysis{}))

	analysis := enrich.SentimentAnalysis{
		RedFlags:          []string{"unpaid", "rockstar"},
		WarningCategories: []string{enrich.CategoryCompensation, enrich.CategoryUnrealistic},
	}
	assert.Equal(t, "⚠️ Compensation concerns | ⚠️ Unrealistic expectations", FormatWarnings(analysis))
}

func TestFormatWarningsDropsUnlabeledCategories(t *testing.T) {
	analysis := enrich.SentimentAnalysis{
		RedFlags:          []string{"grind", "pizza parties"},
		WarningCategories: []string{enrich.CategoryWorkLife, enrich.CategoryCompanyCulture},
	}
	assert.Equal(t, "⚠️ Work-life balance issues", FormatWarnings(analysis))
}

func TestRecommendation(t *testing.T) {
	assert.Equal(t, "⚠️ Review carefully - multiple concerns detected",
		Recommendation(enrich.SentimentAnalysis{IsSuspicious: true}))
	assert.Equal(t, "⚡ Some concerns detected - proceed with caution",
		Recommendation(enrich.SentimentAnalysis{RedFlags: []string{"grind"}}))
	assert.Equal(t, "✅ Looks good - positive indicators found",
		Recommendation(enrich.SentimentAnalysis{Score: 0.4}))
	assert.Equal(t, "", Recommendation(enrich.SentimentAnalysis{Score: 0.1}))
}

func TestRenderPosting(t *testing.T) {
	job := &models.JobPosting{
		URL:              "https://example.com/jobs/1",
		Title:            "Senior Go Developer",
		SalaryMin:        intPtr(120000),
		SalaryMax:        intPtr(150000),
		SalaryCurrency:   "USD",
		ExperienceLevels: []string{"senior"},
		Location:         "Berlin, Germany",
		Skills:           []string{"go", "postgresql"},
	}

	body := RenderPosting(job)
	assert.Contains(t, body, "Senior Go Developer")
	assert.Contains(t, body, "💰 $120,000-$150,000/year")
	assert.Contains(t, body, "📊 🌳 Senior")
	assert.Contains(t, body, "📍 Berlin, Germany")
	assert.Contains(t, body, "🛠 go, postgresql")
	assert.Contains(t, body, "https://example.com/jobs/1")
}

func TestRenderPostingRemoteWithoutLocation(t *testing.T) {
	job := &models.JobPosting{
		URL:      "https://example.com/jobs/2",
		Title:    "Backend Engineer",
		IsRemote: true,
	}

	body := RenderPosting(job)
	assert.Contains(t, body, "📍 Remote")
	assert.NotContains(t, body, "💰")
}

func TestGroupDigits(t *testing.T) {
	assert.Equal(t, "0", groupDigits(0))
	assert.Equal(t, "999", groupDigits(999))
	assert.Equal(t, "1,000", groupDigits(1000))
	assert.Equal(t, "50,000", groupDigits(50000))
	assert.Equal(t, "1,234,567", groupDigits(1234567))
}
