package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalaryExtractor_RangeWithK(t *testing.T) {
	extractor := NewSalaryExtractor()

	result := extractor.Parse("Salary: $50k-$70k per year")
	require.NotNil(t, result)
	require.NotNil(t, result.Min)
	require.NotNil(t, result.Max)
	assert.Equal(t, 50000, *result.Min)
	assert.Equal(t, 70000, *result.Max)
	assert.Equal(t, "USD", result.Currency)
	assert.Equal(t, "yearly", result.Period)
}

func TestSalaryExtractor_RangeWithCommas(t *testing.T) {
	extractor := NewSalaryExtractor()

	result := extractor.Parse("Compensation: $80,000-$100,000")
	require.NotNil(t, result)
	require.NotNil(t, result.Min)
	require.NotNil(t, result.Max)
	assert.Equal(t, 80000, *result.Min)
	assert.Equal(t, 100000, *result.Max)
}

func TestSalaryExtractor_SingleValue(t *testing.T) {
	extractor := NewSalaryExtractor()

	result := extractor.Parse("Offering $90k")
	require.NotNil(t, result)
	require.NotNil(t, result.Min)
	require.NotNil(t, result.Max)
	assert.Equal(t, 90000, *result.Min)
	assert.Equal(t, 90000, *result.Max)
}

func TestSalaryExtractor_HourlyRate(t *testing.T) {
	extractor := NewSalaryExtractor()

	result := extractor.Parse("$40/hour position")
	require.NotNil(t, result)
	require.NotNil(t, result.Min)
	// $40/hr * 40 hrs/week * 52 weeks.
	assert.Equal(t, 40*40*52, *result.Min)
	assert.Equal(t, "yearly", result.Period)
}

func TestSalaryExtractor_HourlyFallsThroughPointEstimate(t *testing.T) {
	extractor := NewSalaryExtractor()

	// The bare single-value pattern matches "$65" first but annualizes to
	// garbage, so the dedicated hourly pattern has to pick it up.
	result := extractor.Parse("Contract position, $65/hr, remote work")
	require.NotNil(t, result)
	require.NotNil(t, result.Min)
	assert.Equal(t, 65*40*52, *result.Min)
	assert.Equal(t, "yearly", result.Period)
}

func TestSalaryExtractor_MonthlyRate(t *testing.T) {
	extractor := NewSalaryExtractor()

	result := extractor.Parse("€5000/month")
	require.NotNil(t, result)
	require.NotNil(t, result.Min)
	assert.Equal(t, 5000*12, *result.Min)
	assert.Equal(t, "EUR", result.Currency)
	assert.Equal(t, "yearly", result.Period)
}

func TestSalaryExtractor_EuroRange(t *testing.T) {
	extractor := NewSalaryExtractor()

	result := extractor.Parse("€60-80k annual salary")
	require.NotNil(t, result)
	require.NotNil(t, result.Min)
	require.NotNil(t, result.Max)
	assert.Equal(t, "EUR", result.Currency)
	assert.Equal(t, 60000, *result.Min)
	assert.Equal(t, 80000, *result.Max)
}

func TestSalaryExtractor_GBPCurrency(t *testing.T) {
	extractor := NewSalaryExtractor()

	result := extractor.Parse("£50k-£70k")
	require.NotNil(t, result)
	assert.Equal(t, "GBP", result.Currency)
}

func TestSalaryExtractor_CurrencyCode(t *testing.T) {
	extractor := NewSalaryExtractor()

	result := extractor.Parse("50-70k USD per year")
	require.NotNil(t, result)
	require.NotNil(t, result.Min)
	assert.Equal(t, "USD", result.Currency)
	assert.Equal(t, 50000, *result.Min)
}

func TestSalaryExtractor_UpTo(t *testing.T) {
	extractor := NewSalaryExtractor()

	result := extractor.Parse("Up to $100k")
	require.NotNil(t, result)
	require.NotNil(t, result.Max)
	assert.Equal(t, 100000, *result.Max)
	assert.Nil(t, result.Min)
}

func TestSalaryExtractor_StartingAt(t *testing.T) {
	extractor := NewSalaryExtractor()

	result := extractor.Parse("Starting at $80k")
	require.NotNil(t, result)
	require.NotNil(t, result.Min)
	assert.Equal(t, 80000, *result.Min)
	assert.Nil(t, result.Max)
}

func TestSalaryExtractor_NoSalary(t *testing.T) {
	extractor := NewSalaryExtractor()

	assert.Nil(t, extractor.Parse("Great opportunity for developers"))
	assert.Nil(t, extractor.Parse(""))
}

func TestSalaryExtractor_RejectsOutOfBounds(t *testing.T) {
	extractor := NewSalaryExtractor()

	// 10,000k annualizes to ten million.
	assert.Nil(t, extractor.Parse("$10,000k"))

	// Below the annual floor.
	assert.Nil(t, extractor.Parse("$5k"))
}

func TestSalaryExtractor_RealWorldPostings(t *testing.T) {
	extractor := NewSalaryExtractor()

	text := `
	Senior Python Developer - Remote

	We're looking for an experienced Python developer.
	Salary range: $120,000-$150,000 per year
	`
	result := extractor.Parse(text)
	require.NotNil(t, result)
	require.NotNil(t, result.Min)
	require.NotNil(t, result.Max)
	assert.Equal(t, 120000, *result.Min)
	assert.Equal(t, 150000, *result.Max)

	result = extractor.Parse("Frontend Engineer position in Berlin. €50-65k")
	require.NotNil(t, result)
	require.NotNil(t, result.Min)
	require.NotNil(t, result.Max)
	assert.Equal(t, "EUR", result.Currency)
	assert.Equal(t, 50000, *result.Min)
	assert.Equal(t, 65000, *result.Max)
}

func TestSalaryExtractor_SwappedRangeNormalizes(t *testing.T) {
	extractor := NewSalaryExtractor()

	result := extractor.Parse("$70k-$50k")
	require.NotNil(t, result)
	require.NotNil(t, result.Min)
	require.NotNil(t, result.Max)
	assert.Equal(t, 50000, *result.Min)
	assert.Equal(t, 70000, *result.Max)
}

func TestSalaryExtractor_MinMaxIndependent(t *testing.T) {
	extractor := NewSalaryExtractor()

	// A point estimate must not share one allocation between Min and Max.
	result := extractor.Parse("€5000/month")
	require.NotNil(t, result)
	require.NotNil(t, result.Min)
	require.NotNil(t, result.Max)
	assert.Equal(t, *result.Min, *result.Max)
	assert.NotSame(t, result.Min, result.Max)
}
