package sources

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sanlamamba/redbot/common/telemetry"
	"github.com/sanlamamba/redbot/internal/config"
	"github.com/sanlamamba/redbot/internal/errors"
	"github.com/sanlamamba/redbot/internal/models"
)

var (
	scriptPattern = regexp.MustCompile(`(?s)<script[^>]*>.*?</script>`)
	stylePattern  = regexp.MustCompile(`(?s)<style[^>]*>.*?</style>`)

	// Heuristic scrape of job-title headings. Noisy by nature; anything
	// beyond these documented patterns is out of reach for regex over
	// arbitrary HTML.
	jobTitlePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)<h[23][^>]*>([^<]+(?:engineer|developer|designer|manager|analyst|scientist)[^<]*)</h[23]>`),
		regexp.MustCompile(`(?i)job-title["'][^>]*>([^<]+)</[^>]+>`),
		regexp.MustCompile(`(?i)position["'][^>]*>([^<]+)</[^>]+>`),
	}
)

// CompanyMonitor polls configured career pages and emits a posting per
// newly seen job title. Page-content hashes skip unchanged pages.
type CompanyMonitor struct {
	client *http.Client
	logger *zap.Logger
	config *config.Config

	mu         sync.Mutex
	pageHashes map[string]string
}

func NewCompanyMonitor(logger *zap.Logger, cfg *config.Config) *CompanyMonitor {
	return &CompanyMonitor{
		client:     &http.Client{Timeout: cfg.CompanyTimeout},
		logger:     logger,
		config:     cfg,
		pageHashes: make(map[string]string),
	}
}

func (m *CompanyMonitor) Name() string {
	return models.SourceCompany
}

func (m *CompanyMonitor) Fetch(ctx context.Context) ([]models.JobPosting, error) {
	ctx, span := tracer.Start(ctx, "CompanyMonitor.Fetch")
	defer span.End()

	if len(m.config.CompanyPages) == 0 {
		return nil, nil
	}

	var allJobs []models.JobPosting
	for _, page := range m.config.CompanyPages {
		jobs, err := m.checkCompany(ctx, page)
		if err != nil {
			m.logger.Error("failed to check company page",
				zap.String("company", page.Name),
				zap.Error(err))
			continue
		}
		allJobs = append(allJobs, jobs...)
	}

	span.SetAttributes(telemetry.Int("postings", len(allJobs)))
	if len(allJobs) > 0 {
		m.logger.Info("company monitor found new jobs", zap.Int("count", len(allJobs)))
	}

	return allJobs, nil
}

func (m *CompanyMonitor) checkCompany(ctx context.Context, page config.CompanyPage) ([]models.JobPosting, error) {
	html, err := m.fetchPage(ctx, page.URL)
	if err != nil {
		return nil, err
	}

	pageHash := contentHash(html)
	m.mu.Lock()
	unchanged := m.pageHashes[page.URL] == pageHash
	m.pageHashes[page.URL] = pageHash
	m.mu.Unlock()
	if unchanged {
		m.logger.Debug("no changes detected", zap.String("company", page.Name))
		return nil, nil
	}

	return m.extractJobs(html, page), nil
}

func (m *CompanyMonitor) fetchPage(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.Internal("creating request", err)
	}
	req.Header.Set("User-Agent", m.config.RedditUserAgent)

	resp, err := m.client.Do(req)
	if err != nil {
		return "", errors.Unavailable("fetching career page", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			m.logger.Warn("failed to close response body", zap.Error(cerr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Internal(fmt.Sprintf("unexpected status code: %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Internal("reading response body", err)
	}
	return string(body), nil
}

func (m *CompanyMonitor) extractJobs(html string, page config.CompanyPage) []models.JobPosting {
	html = scriptPattern.ReplaceAllString(html, "")
	html = stylePattern.ReplaceAllString(html, "")

	titles := make(map[string]bool)
	for _, pattern := range jobTitlePatterns {
		for _, match := range pattern.FindAllStringSubmatch(html, -1) {
			title := strings.TrimSpace(htmlTagPattern.ReplaceAllString(match[1], ""))
			if len(title) < 5 || len(title) > 200 {
				continue
			}
			titles[title] = true
		}
	}

	var jobs []models.JobPosting
	for title := range titles {
		// No per-job URLs exist on most career pages; a fragment keyed by
		// the company+title hash keeps postings unique and stable.
		jobID := contentHash(page.Name + ":" + title)[:12]

		jobs = append(jobs, models.JobPosting{
			URL:          fmt.Sprintf("%s#%s", page.URL, jobID),
			Title:        title,
			Description:  fmt.Sprintf("Job posting from %s career page", page.Name),
			Author:       page.Name,
			Source:       models.SourceCompany,
			SourceID:     jobID,
			CreatedUTC:   time.Now().Unix(),
			DiscoveredAt: time.Now().UTC(),
			CompanyName:  page.Name,
		})
	}

	return jobs
}

func contentHash(content string) string {
	sum := md5.Sum([]byte(content))
	return hex.EncodeToString(sum[:])
}
