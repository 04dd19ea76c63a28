package enrich

import (
	"regexp"
	"strconv"
	"strings"
)

// SalaryResult is the compensation parsed out of a posting, normalized to a
// yearly period. Min or Max may be nil when the text only bounds one side
// ("up to $100k", "starting at $80k").
type SalaryResult struct {
	Min          *int
	Max          *int
	Currency     string
	Period       string
	OriginalText string
}

const (
	periodYearly  = "yearly"
	periodMonthly = "monthly"
	periodHourly  = "hourly"
)

// Sanity bounds for an annualized salary. Values outside are treated as a
// failed parse, not clamped.
const (
	minAnnualSalary = 10000
	maxAnnualSalary = 1000000
)

var currencySymbols = map[string]string{
	"$": "USD",
	"€": "EUR",
	"£": "GBP",
}

var currencyCodes = map[string]string{
	"USD": "USD",
	"EUR": "EUR",
	"GBP": "GBP",
	"CAD": "CAD",
	"AUD": "AUD",
}

// Compensation patterns ordered most specific first. Matching runs over
// lower-cased text. A match that fails salary validation falls through to
// the next pattern, which is what lets "$40/hour" get past the bare
// single-value pattern.
var salaryPatterns = []*regexp.Regexp{
	// Range with symbol: $50k-$70k, $80,000-$100,000
	regexp.MustCompile(`([$€£])(\d{1,3}[,.]?\d{0,3})k?\s*[-–—to]\s*[$€£]?(\d{1,3}[,.]?\d{0,3})k?`),

	// Range without repeated symbol: $50-70k, €60-80k
	regexp.MustCompile(`([$€£])(\d{1,3})\s*[-–—to]\s*(\d{1,3})k`),

	// Range with currency code: 50-70k usd, 60-80k eur
	regexp.MustCompile(`(\d{1,3}[,.]?\d{0,3})k?\s*[-–—to]\s*(\d{1,3}[,.]?\d{0,3})k?\s*(usd|eur|gbp|cad|aud)`),

	// Single value with symbol: $80k, €60,000
	regexp.MustCompile(`([$€£])(\d{1,3}[,.]?\d{0,3})k?`),

	// Single value with currency code: 80k usd, 60000 eur
	regexp.MustCompile(`(\d{1,3}[,.]?\d{0,3})k?\s*(usd|eur|gbp|cad|aud)`),

	// Hourly rate: $40/hr, $40 per hour
	regexp.MustCompile(`([$€£])(\d{1,3})\s*(?:/|per)\s*(?:hr|hour)`),

	// Monthly rate: $5000/month, $5k/mo
	regexp.MustCompile(`([$€£])(\d{1,3}[,.]?\d{0,3})k?\s*(?:/|per)\s*(?:mo|month)`),

	// Up to $100k
	regexp.MustCompile(`up\s+to\s+([$€£])(\d{1,3}[,.]?\d{0,3})k?`),

	// Starting at $80k
	regexp.MustCompile(`starting\s+(?:at|from)\s+([$€£])(\d{1,3}[,.]?\d{0,3})k?`),
}

// periodKeyword order matters: earlier entries win, and matching is plain
// substring search like the rest of the period detection.
var periodKeywords = []struct {
	keyword string
	period  string
}{
	{"year", periodYearly},
	{"yearly", periodYearly},
	{"annual", periodYearly},
	{"annually", periodYearly},
	{"pa", periodYearly},
	{"month", periodMonthly},
	{"monthly", periodMonthly},
	{"mo", periodMonthly},
	{"hour", periodHourly},
	{"hourly", periodHourly},
	{"hr", periodHourly},
}

// SalaryExtractor parses free text for compensation figures and normalizes
// them to an annual amount. Safe for concurrent use.
type SalaryExtractor struct {
	patterns []*regexp.Regexp
}

func NewSalaryExtractor() *SalaryExtractor {
	return &SalaryExtractor{patterns: salaryPatterns}
}

// Parse returns the first valid salary found in text, or nil when nothing
// matches. No match is the common case, not an error.
func (e *SalaryExtractor) Parse(text string) *SalaryResult {
	if text == "" {
		return nil
	}

	text = strings.ToLower(text)

	for _, pattern := range e.patterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		result := e.extractFromMatch(m, text)
		if result != nil && e.isValid(result) {
			return result
		}
	}

	return nil
}

func (e *SalaryExtractor) extractFromMatch(m []string, text string) *SalaryResult {
	matched := m[0]
	groups := m[1:]

	result := &SalaryResult{
		Currency:     "USD",
		OriginalText: matched,
	}

	if code, ok := currencySymbols[groups[0]]; ok {
		result.Currency = code
	} else {
		for _, g := range groups {
			if code, ok := currencyCodes[strings.ToUpper(g)]; ok {
				result.Currency = code
				break
			}
		}
	}

	amounts := e.collectAmounts(groups, matched)

	switch {
	case len(amounts) == 1:
		switch {
		case strings.Contains(text, "up to"):
			result.Max = intPtr(amounts[0])
		case strings.Contains(text, "starting") || strings.Contains(text, "from"):
			result.Min = intPtr(amounts[0])
		default:
			// Ambiguous single value, use as an exact point estimate.
			result.Min = intPtr(amounts[0])
			result.Max = intPtr(amounts[0])
		}
	case len(amounts) >= 2:
		lo, hi := amounts[0], amounts[0]
		for _, a := range amounts[1:] {
			if a < lo {
				lo = a
			}
			if a > hi {
				hi = a
			}
		}
		result.Min = intPtr(lo)
		result.Max = intPtr(hi)
	}

	result.Period = e.detectPeriod(matched, text)
	if result.Period != periodYearly {
		e.normalizeToAnnual(result)
	}

	return result
}

func (e *SalaryExtractor) collectAmounts(groups []string, matched string) []int {
	var amounts []int
	for _, g := range groups {
		if g == "" {
			continue
		}
		if _, ok := currencySymbols[g]; ok {
			continue
		}
		if _, ok := currencyCodes[strings.ToUpper(g)]; ok {
			continue
		}

		// Strip separators. The dot is treated purely as a grouping
		// separator, so "70.5" parses as 705. Known, documented behavior.
		cleaned := strings.ReplaceAll(g, ",", "")
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		amount, err := strconv.Atoi(cleaned)
		if err != nil {
			continue
		}
		if strings.Contains(matched, "k") {
			amount *= 1000
		}
		amounts = append(amounts, amount)
	}
	return amounts
}

func (e *SalaryExtractor) detectPeriod(matched, text string) string {
	for _, pk := range periodKeywords {
		if strings.Contains(matched, pk.keyword) {
			return pk.period
		}
	}

	// Look at the 20 characters of text immediately after the match.
	end := strings.Index(text, matched) + len(matched)
	stop := end + 20
	if stop > len(text) {
		stop = len(text)
	}
	context := text[end:stop]

	for _, pk := range periodKeywords {
		if strings.Contains(context, pk.keyword) {
			return pk.period
		}
	}

	return periodYearly
}

func (e *SalaryExtractor) normalizeToAnnual(result *SalaryResult) {
	multiplier := 1
	switch result.Period {
	case periodHourly:
		// 40 hours/week, 52 weeks/year.
		multiplier = 40 * 52
	case periodMonthly:
		multiplier = 12
	}

	if result.Min != nil {
		*result.Min *= multiplier
	}
	if result.Max != nil {
		*result.Max *= multiplier
	}
	result.Period = periodYearly
}

func (e *SalaryExtractor) isValid(result *SalaryResult) bool {
	if result.Min == nil && result.Max == nil {
		return false
	}

	minVal := result.Min
	if minVal == nil {
		minVal = result.Max
	}
	maxVal := result.Max
	if maxVal == nil {
		maxVal = result.Min
	}

	if *minVal < minAnnualSalary || *maxVal > maxAnnualSalary {
		return false
	}

	if result.Min != nil && result.Max != nil && *result.Max < *result.Min {
		return false
	}

	return true
}

func intPtr(v int) *int {
	return &v
}
