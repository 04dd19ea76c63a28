package enrich

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// SentimentAnalysis is the outcome of scanning a posting for red flags and
// positive/negative indicators. Score is bounded to [-1.0, 1.0].
type SentimentAnalysis struct {
	Score             float64
	RedFlags          []string
	WarningCategories []string
	IsSuspicious      bool
}

type redFlagPattern struct {
	phrase   string
	category string
	pattern  *regexp.Regexp
}

// SentimentAnalyzer detects categorized red-flag phrases and computes a
// bounded sentiment score. Safe for concurrent use.
type SentimentAnalyzer struct {
	flags []redFlagPattern
}

func NewSentimentAnalyzer() *SentimentAnalyzer {
	var flags []redFlagPattern
	for _, category := range redFlagCategories {
		for _, phrase := range category.phrases {
			flags = append(flags, redFlagPattern{
				phrase:   phrase,
				category: category.name,
				pattern:  regexp.MustCompile(fmt.Sprintf(`(?i)\b%s\b`, regexp.QuoteMeta(phrase))),
			})
		}
	}
	return &SentimentAnalyzer{flags: flags}
}

// Analyze scans text for red flags and indicator phrases. Every phrase
// counts at most once no matter how often it occurs.
func (a *SentimentAnalyzer) Analyze(text string) SentimentAnalysis {
	if text == "" {
		return SentimentAnalysis{}
	}

	lower := strings.ToLower(text)

	detected, categories := a.detectRedFlags(lower)
	score := a.sentimentScore(lower, len(detected))

	return SentimentAnalysis{
		Score:             score,
		RedFlags:          detected,
		WarningCategories: categories,
		IsSuspicious:      len(detected) >= 3 || score < -0.3,
	}
}

func (a *SentimentAnalyzer) detectRedFlags(text string) (flags []string, categories []string) {
	matched := make(map[string]bool)
	for _, rf := range a.flags {
		if rf.pattern.MatchString(text) {
			flags = append(flags, rf.phrase)
			matched[rf.category] = true
		}
	}
	for _, category := range redFlagCategories {
		if matched[category.name] {
			categories = append(categories, category.name)
		}
	}
	return flags, categories
}

func (a *SentimentAnalyzer) sentimentScore(text string, redFlagCount int) float64 {
	score := 0.0

	for _, ind := range positiveIndicators {
		if strings.Contains(text, ind) {
			score += 0.1
		}
	}
	for _, ind := range negativeIndicators {
		if strings.Contains(text, ind) {
			score -= 0.1
		}
	}
	score -= float64(redFlagCount) * 0.2

	return math.Max(-1.0, math.Min(1.0, math.Round(score*100)/100))
}
