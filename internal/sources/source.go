// Package sources implements the connectors that discover raw job postings:
// HackerNews "Who is hiring?" threads, subreddit listings, and monitored
// company career pages. Connectors produce unenriched postings; the
// enrichment pipeline and dispatch live with the caller.
package sources

import (
	"context"

	"github.com/sanlamamba/redbot/internal/models"
)

// Source is a pollable origin of raw job postings.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]models.JobPosting, error)
}
