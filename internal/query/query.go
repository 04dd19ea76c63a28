// Package query computes read-side reports over stored postings: daily
// statistics, keyword search, 30-day trends, and CSV export.
package query

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sanlamamba/redbot/internal/models"
	"github.com/sanlamamba/redbot/internal/store"
)

const (
	statsWindowHours  = 24
	searchWindowHours = 24 * 7
	trendsWindowHours = 24 * 30

	statsLimit  = 1000
	searchLimit = 1000
	trendsLimit = 10000
	exportLimit = 100

	searchResultCap = 5
	trendsTopCap    = 10
)

type Service struct {
	jobs   *store.JobStore
	logger *zap.Logger
}

func NewService(jobs *store.JobStore, logger *zap.Logger) *Service {
	return &Service{
		jobs:   jobs,
		logger: logger,
	}
}

// Count holds a label with its posting count.
type Count struct {
	Label string
	Count int
}

// Stats summarizes the last 24 hours of postings.
type Stats struct {
	TotalJobs   int
	AvgSalary   int
	RemoteCount int
	RemotePct   float64
	TopSource   Count
	TopSkills   []Count
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	jobs, err := s.jobs.GetRecent(ctx, statsWindowHours, statsLimit)
	if err != nil {
		return nil, fmt.Errorf("load recent postings: %w", err)
	}
	if len(jobs) == 0 {
		return &Stats{}, nil
	}

	stats := &Stats{TotalJobs: len(jobs)}

	var salarySum, salaryCount int
	sourceCounts := map[string]int{}
	skillCounts := map[string]int{}
	for _, job := range jobs {
		if job.SalaryMin != nil {
			salarySum += *job.SalaryMin
			salaryCount++
		}
		if job.IsRemote {
			stats.RemoteCount++
		}
		sourceCounts[sourceLabel(&job)]++
		for _, skill := range job.Skills {
			skillCounts[skill]++
		}
	}

	if salaryCount > 0 {
		stats.AvgSalary = salarySum / salaryCount
	}
	stats.RemotePct = float64(stats.RemoteCount) / float64(len(jobs)) * 100

	for _, c := range sortedCounts(sourceCounts) {
		stats.TopSource = c
		break
	}
	stats.TopSkills = topN(sortedCounts(skillCounts), 5)

	return stats, nil
}

// SearchResult pairs the matching postings shown to the caller with the
// total match count.
type SearchResult struct {
	Keyword string
	Total   int
	Jobs    []models.JobPosting
}

// Search returns postings from the last 7 days whose title, description,
// or skill list contains the keyword, capped at 5 results.
func (s *Service) Search(ctx context.Context, keyword string) (*SearchResult, error) {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return nil, fmt.Errorf("search keyword is empty")
	}

	jobs, err := s.jobs.GetRecent(ctx, searchWindowHours, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("load recent postings: %w", err)
	}

	result := &SearchResult{Keyword: keyword}
	for _, job := range jobs {
		if !matchesKeyword(&job, keyword) {
			continue
		}
		result.Total++
		if len(result.Jobs) < searchResultCap {
			result.Jobs = append(result.Jobs, job)
		}
	}
	return result, nil
}

func matchesKeyword(job *models.JobPosting, keyword string) bool {
	if strings.Contains(strings.ToLower(job.Title), keyword) {
		return true
	}
	if strings.Contains(strings.ToLower(job.Description), keyword) {
		return true
	}
	for _, skill := range job.Skills {
		if strings.ToLower(skill) == keyword {
			return true
		}
	}
	return false
}

// LevelSalary reports salary figures for one experience level.
type LevelSalary struct {
	Level  string
	Jobs   int
	Avg    int
	Median int
}

// SalaryTrends aggregates 30 days of salaries by primary experience
// level, ordered junior to lead.
func (s *Service) SalaryTrends(ctx context.Context) ([]LevelSalary, error) {
	jobs, err := s.jobs.GetRecent(ctx, trendsWindowHours, trendsLimit)
	if err != nil {
		return nil, fmt.Errorf("load recent postings: %w", err)
	}

	byLevel := map[string][]int{}
	for _, job := range jobs {
		if job.SalaryMin == nil || len(job.ExperienceLevels) == 0 {
			continue
		}
		level := strings.ToLower(job.ExperienceLevels[0])
		byLevel[level] = append(byLevel[level], *job.SalaryMin)
	}

	var trends []LevelSalary
	for _, level := range []string{"junior", "mid", "senior", "lead"} {
		salaries, ok := byLevel[level]
		if !ok {
			continue
		}
		sum := 0
		for _, v := range salaries {
			sum += v
		}
		trends = append(trends, LevelSalary{
			Level:  level,
			Jobs:   len(salaries),
			Avg:    sum / len(salaries),
			Median: median(salaries),
		})
	}
	return trends, nil
}

// KeywordTrends returns the 10 most frequent skills over 30 days along
// with the posting count the percentages are relative to.
func (s *Service) KeywordTrends(ctx context.Context) ([]Count, int, error) {
	jobs, err := s.jobs.GetRecent(ctx, trendsWindowHours, trendsLimit)
	if err != nil {
		return nil, 0, fmt.Errorf("load recent postings: %w", err)
	}

	skillCounts := map[string]int{}
	for _, job := range jobs {
		for _, skill := range job.Skills {
			skillCounts[skill]++
		}
	}
	return topN(sortedCounts(skillCounts), trendsTopCap), len(jobs), nil
}

// SourceTrends returns the 10 most active sources over 30 days.
func (s *Service) SourceTrends(ctx context.Context) ([]Count, int, error) {
	jobs, err := s.jobs.GetRecent(ctx, trendsWindowHours, trendsLimit)
	if err != nil {
		return nil, 0, fmt.Errorf("load recent postings: %w", err)
	}

	sourceCounts := map[string]int{}
	for _, job := range jobs {
		sourceCounts[sourceLabel(&job)]++
	}
	return topN(sortedCounts(sourceCounts), trendsTopCap), len(jobs), nil
}

var exportHeader = []string{
	"Title", "URL", "Source", "Author", "Posted Date",
	"Salary Min", "Salary Max", "Currency", "Experience Level",
	"Company", "Location", "Remote", "Skills",
}

// Export writes the last 30 days of postings as CSV and returns the
// number of exported rows.
func (s *Service) Export(ctx context.Context, w io.Writer) (int, error) {
	jobs, err := s.jobs.GetRecent(ctx, trendsWindowHours, exportLimit)
	if err != nil {
		return 0, fmt.Errorf("load recent postings: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return 0, fmt.Errorf("write csv header: %w", err)
	}

	for _, job := range jobs {
		if err := writer.Write(exportRow(&job)); err != nil {
			return 0, fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return 0, fmt.Errorf("flush csv: %w", err)
	}

	s.logger.Info("Exported postings to CSV", zap.Int("count", len(jobs)))
	return len(jobs), nil
}

func exportRow(job *models.JobPosting) []string {
	postedDate := time.Unix(job.CreatedUTC, 0).UTC().Format("2006-01-02 15:04")

	currency := job.SalaryCurrency
	if currency == "" {
		currency = "USD"
	}

	remote := "No"
	if job.IsRemote {
		remote = "Yes"
	}

	return []string{
		job.Title,
		job.URL,
		sourceLabel(job),
		job.Author,
		postedDate,
		formatOptionalInt(job.SalaryMin),
		formatOptionalInt(job.SalaryMax),
		currency,
		strings.Join(job.ExperienceLevels, ", "),
		job.CompanyName,
		job.Location,
		remote,
		strings.Join(job.Skills, ", "),
	}
}

func formatOptionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%d", *v)
}

func sourceLabel(job *models.JobPosting) string {
	if job.Subreddit != "" {
		return "r/" + job.Subreddit
	}
	return job.Source
}

func sortedCounts(counts map[string]int) []Count {
	out := make([]Count, 0, len(counts))
	for label, count := range counts {
		out = append(out, Count{Label: label, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

func topN(counts []Count, n int) []Count {
	if len(counts) > n {
		return counts[:n]
	}
	return counts
}

func median(values []int) int {
	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
