package models

import (
	"encoding/json"
	"time"
)

// Source identifiers for job postings.
const (
	SourceReddit     = "reddit"
	SourceHackerNews = "hackernews"
	SourceCompany    = "company"
)

// Work type classification of a posting's location policy.
const (
	WorkTypeRemote  = "remote"
	WorkTypeHybrid  = "hybrid"
	WorkTypeOnsite  = "onsite"
	WorkTypeUnknown = "unknown"
)

// JobPosting is a job advertisement from any source. The raw fields are set
// once by a source connector; the enriched fields are populated by a single
// pass through the enrichment pipeline.
type JobPosting struct {
	ID           string    `json:"id"`
	URL          string    `json:"url"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Subreddit    string    `json:"subreddit,omitempty"`
	Author       string    `json:"author,omitempty"`
	Source       string    `json:"source"`
	SourceID     string    `json:"source_id"`
	CreatedUTC   int64     `json:"created_utc"`
	DiscoveredAt time.Time `json:"discovered_at"`

	SalaryMin        *int     `json:"salary_min,omitempty"`
	SalaryMax        *int     `json:"salary_max,omitempty"`
	SalaryCurrency   string   `json:"salary_currency,omitempty"`
	SalaryPeriod     string   `json:"salary_period,omitempty"`
	ExperienceLevels []string `json:"experience_levels,omitempty"`
	CompanyName      string   `json:"company_name,omitempty"`
	Location         string   `json:"location,omitempty"`
	IsRemote         bool     `json:"is_remote"`
	WorkType         string   `json:"work_type,omitempty"`
	SentimentScore   float64  `json:"sentiment_score"`
	RedFlags         []string `json:"red_flags,omitempty"`
	Skills           []string `json:"skills,omitempty"`

	PriorityScore int        `json:"priority_score,omitempty"`
	DuplicateOf   string     `json:"duplicate_of,omitempty"`
	Archived      bool       `json:"archived,omitempty"`
	ArchivedAt    *time.Time `json:"archived_at,omitempty"`
}

// HasSalary reports whether enrichment found any compensation figure.
func (p *JobPosting) HasSalary() bool {
	return p.SalaryMin != nil || p.SalaryMax != nil
}

func (p JobPosting) MarshalBinary() ([]byte, error) {
	return json.Marshal(p)
}

func (p *JobPosting) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, p)
}
