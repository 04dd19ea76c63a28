package enrich

import (
	"fmt"
	"regexp"
)

// Experience level tags, highest first.
const (
	LevelLead    = "lead"
	LevelSenior  = "senior"
	LevelMid     = "mid"
	LevelJunior  = "junior"
	LevelUnknown = "unknown"
)

var juniorKeywords = []string{
	"junior", "jr", "entry level", "entry-level", "graduate",
	"intern", "internship", "0-2 years", "0 - 2 years",
	"early career", "beginner", "trainee", "apprentice",
	"new grad", "recent graduate",
}

var midKeywords = []string{
	"mid level", "mid-level", "intermediate", "2-5 years",
	"3+ years", "3-5 years", "experienced", "professional",
	"regular", "standard",
}

// "lead" and "principal" deliberately appear in both the senior and lead
// groups, so a posting can carry both tags.
var seniorKeywords = []string{
	"senior", "sr", "lead", "principal", "staff",
	"5+ years", "5-10 years", "expert", "advanced",
	"architect", "experienced professional", "veteran",
}

var leadKeywords = []string{
	"lead", "tech lead", "technical lead", "team lead",
	"principal", "staff engineer", "distinguished",
	"fellow", "chief", "head of", "director",
	"vp", "vice president", "cto", "10+ years",
}

var levelIcons = map[string]string{
	LevelJunior: "🌱",
	LevelMid:    "🌿",
	LevelSenior: "🌳",
	LevelLead:   "👑",
}

type experienceGroup struct {
	level    string
	patterns []*regexp.Regexp
}

// ExperienceClassifier detects experience-level signals in posting text.
// Detected levels are reported in fixed priority order: lead, senior, mid,
// junior. Safe for concurrent use.
type ExperienceClassifier struct {
	groups []experienceGroup
}

func NewExperienceClassifier() *ExperienceClassifier {
	return &ExperienceClassifier{
		groups: []experienceGroup{
			{level: LevelLead, patterns: compileKeywords(leadKeywords)},
			{level: LevelSenior, patterns: compileKeywords(seniorKeywords)},
			{level: LevelMid, patterns: compileKeywords(midKeywords)},
			{level: LevelJunior, patterns: compileKeywords(juniorKeywords)},
		},
	}
}

func compileKeywords(keywords []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(keywords))
	for _, keyword := range keywords {
		// Word boundaries to avoid partial matches.
		patterns = append(patterns, regexp.MustCompile(fmt.Sprintf(`(?i)\b%s\b`, regexp.QuoteMeta(keyword))))
	}
	return patterns
}

// Parse returns all detected levels in priority order. A posting can match
// several groups at once.
func (c *ExperienceClassifier) Parse(text string) []string {
	if text == "" {
		return nil
	}

	var levels []string
	for _, group := range c.groups {
		for _, pattern := range group.patterns {
			if pattern.MatchString(text) {
				levels = append(levels, group.level)
				break
			}
		}
	}
	return levels
}

// PrimaryLevel returns the highest-priority detected level, or "unknown".
func (c *ExperienceClassifier) PrimaryLevel(text string) string {
	levels := c.Parse(text)
	if len(levels) == 0 {
		return LevelUnknown
	}
	return levels[0]
}

// Icon returns the display icon for a level, or "" for unknown levels.
func (c *ExperienceClassifier) Icon(level string) string {
	return LevelIcon(level)
}

// LevelIcon returns the display icon for an experience level.
func LevelIcon(level string) string {
	return levelIcons[level]
}
