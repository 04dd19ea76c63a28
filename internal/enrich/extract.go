package enrich

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sanlamamba/redbot/internal/models"
)

// LocationInfo describes where a job expects people to work.
type LocationInfo struct {
	Location string
	IsRemote bool
	WorkType string
}

// Requirements is a best-effort scrape of bullet lists found under
// requirements-style section headers.
type Requirements struct {
	MustHave   []string
	NiceToHave []string
}

var remoteKeywords = []string{
	"remote", "work from home", "wfh", "distributed", "anywhere",
	"remote-first", "fully remote", "100% remote", "remote work",
}

var onsiteKeywords = []string{"on-site", "onsite", "office"}

// Location patterns tried in order. The bare work-mode pattern exists only
// to be rejected below, never to supply a location value.
var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:location|based in|located in|office in):\s*([A-Z][a-zA-Z\s,]+)`),
	regexp.MustCompile(`(?i)\b([A-Z][a-zA-Z]+,\s*[A-Z]{2})\b`), // City, ST
	regexp.MustCompile(`(?i)\b(Remote|Hybrid|On-site|Onsite)\b`),
}

var workModeWords = map[string]bool{
	"remote":  true,
	"hybrid":  true,
	"on-site": true,
	"onsite":  true,
}

// Company-name patterns are intentionally case-sensitive: a capitalized
// token is the only signal separating a name from prose.
var companyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:at|@|for)\s+([A-Z][A-Za-z0-9\s&]+?)(?:\s+is\s+hiring|\s+seeks|\s+-)`),
	regexp.MustCompile(`(?m)^([A-Z][A-Za-z0-9\s&]+?)\s+(?:is hiring|seeks|looking for)`),
}

var companyStopWords = []string{"we are", "looking for", "hiring", "position"}

var requirementBulletPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*[-•*]\s+(.+)$`),
	regexp.MustCompile(`^\s*\d+\.\s+(.+)$`),
}

// NLPExtractor pulls skills, work location, company name, and requirement
// lists out of free posting text. Safe for concurrent use.
type NLPExtractor struct {
	techPatterns []*regexp.Regexp
}

func NewNLPExtractor() *NLPExtractor {
	patterns := make([]*regexp.Regexp, 0, len(techStack))
	for _, tech := range techStack {
		patterns = append(patterns, regexp.MustCompile(fmt.Sprintf(`(?i)\b%s\b`, regexp.QuoteMeta(tech))))
	}
	return &NLPExtractor{techPatterns: patterns}
}

// ExtractSkills returns every vocabulary technology mentioned in text, in
// vocabulary order.
func (e *NLPExtractor) ExtractSkills(text string) []string {
	if text == "" {
		return nil
	}

	var skills []string
	for i, pattern := range e.techPatterns {
		if pattern.MatchString(text) {
			skills = append(skills, techStack[i])
		}
	}
	return skills
}

// ExtractLocation classifies remote/hybrid/onsite and pulls a free-text
// location when one is stated.
func (e *NLPExtractor) ExtractLocation(text string) LocationInfo {
	if text == "" {
		return LocationInfo{WorkType: models.WorkTypeUnknown}
	}

	lower := strings.ToLower(text)

	isRemote := false
	for _, kw := range remoteKeywords {
		if strings.Contains(lower, kw) {
			isRemote = true
			break
		}
	}

	workType := models.WorkTypeUnknown
	switch {
	case strings.Contains(lower, "hybrid"):
		workType = models.WorkTypeHybrid
	case isRemote:
		workType = models.WorkTypeRemote
	default:
		for _, kw := range onsiteKeywords {
			if strings.Contains(lower, kw) {
				workType = models.WorkTypeOnsite
				break
			}
		}
	}

	location := ""
	for _, pattern := range locationPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		loc := strings.TrimSpace(m[1])
		if !workModeWords[strings.ToLower(loc)] {
			location = loc
			break
		}
	}

	return LocationInfo{Location: location, IsRemote: isRemote, WorkType: workType}
}

// ExtractCompanyName takes the first "at X is hiring" style match under 50
// characters that doesn't read like prose. Best effort, may return "".
func (e *NLPExtractor) ExtractCompanyName(text string) string {
	for _, pattern := range companyPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		company := strings.TrimSpace(m[1])
		if len(company) >= 50 {
			continue
		}
		lower := strings.ToLower(company)
		disqualified := false
		for _, word := range companyStopWords {
			if strings.Contains(lower, word) {
				disqualified = true
				break
			}
		}
		if !disqualified {
			return company
		}
	}
	return ""
}

// ExtractRequirements scrapes bullet lists out of requirements/preferred
// sections, capped to 10 entries each.
func (e *NLPExtractor) ExtractRequirements(text string) Requirements {
	if text == "" {
		return Requirements{}
	}

	sections := splitIntoSections(text)

	mustHave := extractBulletPoints(findSection(sections, []string{"requirements", "required", "qualifications", "must have"}))
	niceToHave := extractBulletPoints(findSection(sections, []string{"preferred", "nice to have", "bonus", "plus"}))

	return Requirements{
		MustHave:   capStrings(mustHave, 10),
		NiceToHave: capStrings(niceToHave, 10),
	}
}

type textSection struct {
	name    string
	content string
}

func splitIntoSections(text string) []textSection {
	var sections []textSection
	current := "main"
	var content []string

	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, ":") || isUpperHeader(line) {
			if len(content) > 0 {
				sections = append(sections, textSection{name: current, content: strings.Join(content, "\n")})
			}
			current = strings.TrimSpace(strings.Trim(strings.ToLower(line), ":"))
			content = nil
		} else {
			content = append(content, line)
		}
	}
	if len(content) > 0 {
		sections = append(sections, textSection{name: current, content: strings.Join(content, "\n")})
	}

	return sections
}

func isUpperHeader(line string) bool {
	if len(line) <= 3 {
		return false
	}
	return line == strings.ToUpper(line) && line != strings.ToLower(line)
}

func findSection(sections []textSection, keywords []string) string {
	for _, section := range sections {
		for _, kw := range keywords {
			if strings.Contains(section.name, kw) {
				return section.content
			}
		}
	}
	return ""
}

func extractBulletPoints(text string) []string {
	if text == "" {
		return nil
	}

	var points []string
	for _, line := range strings.Split(text, "\n") {
		for _, pattern := range requirementBulletPatterns {
			m := pattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			point := strings.TrimSpace(m[1])
			if len(point) > 10 {
				points = append(points, point)
			}
			break
		}
	}
	return points
}

func capStrings(items []string, limit int) []string {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
