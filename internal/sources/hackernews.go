package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/sanlamamba/redbot/common/cache"
	"github.com/sanlamamba/redbot/common/telemetry"
	"github.com/sanlamamba/redbot/internal/config"
	"github.com/sanlamamba/redbot/internal/errors"
	"github.com/sanlamamba/redbot/internal/models"
)

var tracer = telemetry.GetTracer("redbot/sources")

// HNClient fetches items and hiring-thread candidates from the HackerNews
// APIs, with a cache in front of the item endpoint.
type HNClient interface {
	GetItem(ctx context.Context, id int) (*models.SourcePost, error)
	SearchHiringThreads(ctx context.Context) (models.IntSlice, error)
}

type hnClient struct {
	client *http.Client
	logger *zap.Logger
	config *config.Config
	cache  cache.Cache
}

func NewHNClient(logger *zap.Logger, cfg *config.Config, c cache.Cache) HNClient {
	return &hnClient{
		client: &http.Client{Timeout: cfg.HNAPITimeout},
		logger: logger,
		config: cfg,
		cache:  c,
	}
}

func (c *hnClient) SearchHiringThreads(ctx context.Context) (models.IntSlice, error) {
	ctx, span := tracer.Start(ctx, "SearchHiringThreads")
	defer span.End()

	timeThreshold := time.Now().AddDate(0, -6, 0).Unix()
	cacheKey := fmt.Sprintf("hn:search:hiring:%d", timeThreshold)

	var cachedIDs models.IntSlice
	err := c.cache.Get(ctx, cacheKey, &cachedIDs)
	if err == nil {
		span.SetAttributes(telemetry.String("cache.result", "hit"))
		return cachedIDs, nil
	} else if err != cache.ErrNotFound {
		span.RecordError(err)
		c.logger.Warn("cache error for hiring threads search", zap.Error(err))
	}

	url := fmt.Sprintf("%s/search?tags=story,author_whoishiring&query=Ask+HN:+Who+is+hiring?&numericFilters=created_at_i>%d",
		c.config.HNSearchAPIBaseURL,
		timeThreshold)
	span.SetAttributes(telemetry.String("http.url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Internal("creating request", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Internal("executing request", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("failed to close response body", zap.Error(cerr))
		}
	}()

	span.SetAttributes(telemetry.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Internal(fmt.Sprintf("unexpected status code: %d", resp.StatusCode), nil)
	}

	var searchResult struct {
		Hits []struct {
			ObjectID string `json:"objectID"`
			Title    string `json:"title"`
			Author   string `json:"author"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&searchResult); err != nil {
		return nil, errors.Internal("decoding response", err)
	}

	ids := make(models.IntSlice, 0, len(searchResult.Hits))
	for _, hit := range searchResult.Hits {
		id, err := strconv.Atoi(hit.ObjectID)
		if err != nil {
			c.logger.Warn("invalid story ID",
				zap.String("id", hit.ObjectID),
				zap.String("title", hit.Title))
			continue
		}
		ids = append(ids, id)
	}

	if err := c.cache.Set(ctx, cacheKey, ids, c.config.CacheTTL); err != nil {
		c.logger.Warn("failed to cache hiring threads search results", zap.Error(err))
	}

	return ids, nil
}

func (c *hnClient) GetItem(ctx context.Context, id int) (*models.SourcePost, error) {
	ctx, span := tracer.Start(ctx, "GetItem")
	defer span.End()
	span.SetAttributes(telemetry.Int("hn.item.id", id))

	cacheKey := fmt.Sprintf("hn:item:%d", id)
	var cachedPost models.SourcePost

	err := c.cache.Get(ctx, cacheKey, &cachedPost)
	if err == nil {
		span.SetAttributes(telemetry.String("cache.result", "hit"))
		return &cachedPost, nil
	} else if err != cache.ErrNotFound {
		span.RecordError(err)
		c.logger.Warn("cache error", zap.Error(err))
	}

	url := fmt.Sprintf("%s/item/%d.json", c.config.HNAPIBaseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Internal("creating request", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Internal("executing request", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("failed to close response body", zap.Error(cerr))
		}
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.NotFound("item not found", nil)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Internal(fmt.Sprintf("unexpected status code: %d", resp.StatusCode), nil)
	}

	var post models.SourcePost
	if err := json.NewDecoder(resp.Body).Decode(&post); err != nil {
		return nil, errors.Internal("decoding response", err)
	}

	if err := c.cache.Set(ctx, cacheKey, post, c.config.CacheTTL); err != nil {
		c.logger.Warn("failed to cache item", zap.Int("id", id), zap.Error(err))
	}

	return &post, nil
}

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// HackerNewsSource scrapes top-level comments out of "Who is hiring?"
// threads and converts each into a raw posting.
type HackerNewsSource struct {
	client HNClient
	logger *zap.Logger
	config *config.Config
}

func NewHackerNewsSource(client HNClient, logger *zap.Logger, cfg *config.Config) *HackerNewsSource {
	return &HackerNewsSource{
		client: client,
		logger: logger,
		config: cfg,
	}
}

func (s *HackerNewsSource) Name() string {
	return models.SourceHackerNews
}

func (s *HackerNewsSource) Fetch(ctx context.Context) ([]models.JobPosting, error) {
	ctx, span := tracer.Start(ctx, "HackerNewsSource.Fetch")
	defer span.End()

	stories, err := s.client.SearchHiringThreads(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Internal("failed to search hiring threads", err)
	}
	span.SetAttributes(telemetry.Int("stories.count", len(stories)))

	var commentIDs []int
	var threadsFound int32
	for _, id := range stories {
		post, err := s.client.GetItem(ctx, id)
		if err != nil {
			s.logger.Error("failed to fetch story", zap.Int("id", id), zap.Error(err))
			continue
		}
		if !isHiringThread(post) {
			continue
		}
		atomic.AddInt32(&threadsFound, 1)
		s.logger.Info("found hiring thread",
			zap.Int("id", post.ID),
			zap.String("title", post.Title),
			zap.Int("comments_count", len(post.Kids)))

		kids := post.Kids
		if len(kids) > s.config.HNCommentLimit {
			kids = kids[:s.config.HNCommentLimit]
		}
		commentIDs = append(commentIDs, kids...)
	}

	jobs := s.fetchComments(ctx, commentIDs)

	span.SetAttributes(
		telemetry.Int("hiring_threads_found", int(threadsFound)),
		telemetry.Int("postings", len(jobs)),
	)
	s.logger.Info("fetched hiring thread comments",
		zap.Int("hiring_threads_found", int(threadsFound)),
		zap.Int("postings", len(jobs)))

	return jobs, nil
}

// fetchComments fans comment fetches out over a fixed worker pool and
// collects the postings that survive conversion.
func (s *HackerNewsSource) fetchComments(ctx context.Context, commentIDs []int) []models.JobPosting {
	const numWorkers = 10

	commentChan := make(chan int)
	resultChan := make(chan models.JobPosting)

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range commentChan {
				comment, err := s.client.GetItem(ctx, id)
				if err != nil {
					s.logger.Error("failed to fetch comment", zap.Int("comment_id", id), zap.Error(err))
					continue
				}
				if job := s.commentToPosting(comment); job != nil {
					resultChan <- *job
				}
			}
		}()
	}

	go func() {
		defer close(commentChan)
		for _, id := range commentIDs {
			select {
			case <-ctx.Done():
				return
			case commentChan <- id:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	var jobs []models.JobPosting
	for job := range resultChan {
		jobs = append(jobs, job)
	}
	return jobs
}

// commentToPosting converts a thread comment into a raw posting. Short or
// deleted comments are skipped.
func (s *HackerNewsSource) commentToPosting(comment *models.SourcePost) *models.JobPosting {
	if comment == nil || comment.Deleted || comment.Dead {
		return nil
	}

	text := htmlTagPattern.ReplaceAllString(comment.Text, " ")
	text = strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
	if len(text) < 50 {
		return nil
	}

	// The first sentence is usually "Company | Location | Role".
	title := text
	if idx := strings.Index(text, "."); idx > 0 {
		title = strings.TrimSpace(text[:idx])
	}
	if len(title) > 200 {
		title = title[:200]
	}

	description := text
	if len(description) > 1000 {
		description = description[:1000]
	}

	createdUTC := comment.Time
	if createdUTC == 0 {
		createdUTC = time.Now().Unix()
	}

	author := comment.By
	if author == "" {
		author = "unknown"
	}

	return &models.JobPosting{
		URL:          fmt.Sprintf("https://news.ycombinator.com/item?id=%d", comment.ID),
		Title:        title,
		Description:  description,
		Author:       author,
		Source:       models.SourceHackerNews,
		SourceID:     strconv.Itoa(comment.ID),
		CreatedUTC:   createdUTC,
		DiscoveredAt: time.Now().UTC(),
	}
}

func isHiringThread(post *models.SourcePost) bool {
	title := strings.ToLower(post.Title)
	return strings.Contains(title, "who is hiring?") && post.By == "whoishiring"
}
