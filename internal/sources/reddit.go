package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sanlamamba/redbot/common/telemetry"
	"github.com/sanlamamba/redbot/internal/config"
	"github.com/sanlamamba/redbot/internal/errors"
	"github.com/sanlamamba/redbot/internal/models"
)

// RedditSource polls subreddit new-listing endpoints for postings matching
// the configured keywords.
type RedditSource struct {
	client *http.Client
	logger *zap.Logger
	config *config.Config
}

func NewRedditSource(logger *zap.Logger, cfg *config.Config) *RedditSource {
	return &RedditSource{
		client: &http.Client{Timeout: cfg.RedditTimeout},
		logger: logger,
		config: cfg,
	}
}

func (s *RedditSource) Name() string {
	return models.SourceReddit
}

func (s *RedditSource) Fetch(ctx context.Context) ([]models.JobPosting, error) {
	ctx, span := tracer.Start(ctx, "RedditSource.Fetch")
	defer span.End()

	listing, err := s.fetchListing(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	ageCutoff := time.Now().Add(-time.Duration(s.config.AgeFilterHours) * time.Hour).Unix()

	var jobs []models.JobPosting
	for _, child := range listing.Data.Children {
		submission := child.Data

		if s.config.AgeFilterHours > 0 && int64(submission.CreatedUTC) < ageCutoff {
			continue
		}
		if !s.matchesKeywords(&submission) {
			continue
		}

		jobs = append(jobs, *submission.ToJobPosting())
	}

	span.SetAttributes(telemetry.Int("postings", len(jobs)))
	s.logger.Info("fetched subreddit listings",
		zap.Int("total", len(listing.Data.Children)),
		zap.Int("matched", len(jobs)))

	return jobs, nil
}

func (s *RedditSource) fetchListing(ctx context.Context) (*models.RedditListing, error) {
	// Subreddits combine into one multireddit query.
	url := fmt.Sprintf("%s/r/%s/new.json?limit=%d",
		s.config.RedditBaseURL,
		strings.Join(s.config.Subreddits, "+"),
		s.config.PostLimit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Internal("creating request", err)
	}
	req.Header.Set("User-Agent", s.config.RedditUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Internal("executing request", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			s.logger.Warn("failed to close response body", zap.Error(cerr))
		}
	}()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, errors.RateLimit("reddit listing rate limited", nil)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Internal(fmt.Sprintf("unexpected status code: %d", resp.StatusCode), nil)
	}

	var listing models.RedditListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, errors.Internal("decoding response", err)
	}

	return &listing, nil
}

// matchesKeywords requires at least one configured keyword in the title or
// body and rejects "for hire" offers (people advertising themselves).
func (s *RedditSource) matchesKeywords(submission *models.RedditSubmission) bool {
	title := strings.ToLower(submission.Title)
	body := strings.ToLower(submission.SelfText)

	if strings.Contains(title, "for hire") {
		return false
	}

	for _, keyword := range s.config.Keywords {
		if strings.Contains(title, keyword) || strings.Contains(body, keyword) {
			return true
		}
	}
	return false
}
