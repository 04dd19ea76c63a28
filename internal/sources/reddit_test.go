package sources

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/sanlamamba/redbot/internal/config"
	"github.com/sanlamamba/redbot/internal/models"
)

func newTestRedditSource() *RedditSource {
	cfg := &config.Config{
		Keywords: []string{"hiring", "developer", "engineer", "remote"},
	}
	return NewRedditSource(zap.NewNop(), cfg)
}

func TestRedditSource_UsesOwnTimeout(t *testing.T) {
	cfg := &config.Config{RedditTimeout: 3 * time.Second}
	source := NewRedditSource(zap.NewNop(), cfg)

	assert.Equal(t, 3*time.Second, source.client.Timeout)
}

func TestRedditSource_MatchesKeywords(t *testing.T) {
	source := newTestRedditSource()

	assert.True(t, source.matchesKeywords(&models.RedditSubmission{
		Title: "[Hiring] Backend Developer",
	}))
	assert.True(t, source.matchesKeywords(&models.RedditSubmission{
		Title:    "Open position at our startup",
		SelfText: "We are hiring a platform engineer.",
	}))
}

func TestRedditSource_RejectsForHire(t *testing.T) {
	source := newTestRedditSource()

	// "[For Hire]" posts are people offering their own services.
	assert.False(t, source.matchesKeywords(&models.RedditSubmission{
		Title:    "[For Hire] Experienced developer available",
		SelfText: "I am a developer looking for remote work.",
	}))
}

func TestRedditSource_RejectsNoKeywords(t *testing.T) {
	source := newTestRedditSource()

	assert.False(t, source.matchesKeywords(&models.RedditSubmission{
		Title:    "Weekly discussion thread",
		SelfText: "Talk about anything here.",
	}))
}

func TestRedditSubmission_ToJobPosting(t *testing.T) {
	submission := &models.RedditSubmission{
		ID:         "abc123",
		Title:      "[Hiring] Go Developer",
		SelfText:   "Remote role, $100k",
		URL:        "https://example.com/apply",
		Subreddit:  "forhire",
		Author:     "someone",
		CreatedUTC: 1700000000,
	}

	job := submission.ToJobPosting()
	assert.Equal(t, "https://example.com/apply", job.URL)
	assert.Equal(t, "[Hiring] Go Developer", job.Title)
	assert.Equal(t, "forhire", job.Subreddit)
	assert.Equal(t, models.SourceReddit, job.Source)
	assert.Equal(t, "abc123", job.SourceID)
	assert.Equal(t, int64(1700000000), job.CreatedUTC)
	assert.False(t, job.DiscoveredAt.IsZero())
}

func TestRedditSubmission_ToJobPostingPermalinkFallback(t *testing.T) {
	submission := &models.RedditSubmission{
		ID:        "xyz",
		Title:     "[Hiring] Engineer",
		Permalink: "/r/forhire/comments/xyz/hiring_engineer/",
	}

	job := submission.ToJobPosting()
	assert.Equal(t, "https://www.reddit.com/r/forhire/comments/xyz/hiring_engineer/", job.URL)
}
