package sources

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sanlamamba/redbot/internal/config"
	"github.com/sanlamamba/redbot/internal/errors"
	"github.com/sanlamamba/redbot/internal/models"
)

type fakeHNClient struct {
	threads models.IntSlice
	items   map[int]*models.SourcePost
}

func (f *fakeHNClient) GetItem(ctx context.Context, id int) (*models.SourcePost, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, errors.NotFound("item not found", nil)
	}
	return item, nil
}

func (f *fakeHNClient) SearchHiringThreads(ctx context.Context) (models.IntSlice, error) {
	return f.threads, nil
}

func hiringComment(id int, text string) *models.SourcePost {
	return &models.SourcePost{
		ID:   id,
		Text: text,
		Time: 1700000000,
		By:   "poster",
	}
}

func TestHackerNewsSource_Fetch(t *testing.T) {
	longText := "Acme Corp | Berlin | Senior Go Engineer. We build tooling for logistics companies, remote friendly."

	client := &fakeHNClient{
		threads: models.IntSlice{100, 200},
		items: map[int]*models.SourcePost{
			100: {
				ID:    100,
				Title: "Ask HN: Who is hiring? (November 2023)",
				By:    "whoishiring",
				Kids:  []int{1, 2, 3},
			},
			200: {
				ID:    200,
				Title: "Ask HN: Freelancer? Seeking freelancer?",
				By:    "whoishiring",
				Kids:  []int{4},
			},
			1: hiringComment(1, longText),
			2: hiringComment(2, "too short"),
			3: {ID: 3, Text: longText, Deleted: true},
		},
	}

	cfg := &config.Config{HNCommentLimit: 500}
	source := NewHackerNewsSource(client, zap.NewNop(), cfg)

	jobs, err := source.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 1)

	job := jobs[0]
	assert.Equal(t, "https://news.ycombinator.com/item?id=1", job.URL)
	assert.Equal(t, "Acme Corp | Berlin | Senior Go Engineer", job.Title)
	assert.Equal(t, models.SourceHackerNews, job.Source)
	assert.Equal(t, "1", job.SourceID)
	assert.Equal(t, int64(1700000000), job.CreatedUTC)
}

func TestHackerNewsSource_CommentLimit(t *testing.T) {
	items := map[int]*models.SourcePost{
		100: {
			ID:    100,
			Title: "Ask HN: Who is hiring? (December 2023)",
			By:    "whoishiring",
			Kids:  []int{1, 2, 3, 4, 5},
		},
	}
	for i := 1; i <= 5; i++ {
		items[i] = hiringComment(i, fmt.Sprintf("Posting %d. %s", i, strings.Repeat("details ", 10)))
	}

	client := &fakeHNClient{threads: models.IntSlice{100}, items: items}
	cfg := &config.Config{HNCommentLimit: 2}
	source := NewHackerNewsSource(client, zap.NewNop(), cfg)

	jobs, err := source.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
}

func TestIsHiringThread(t *testing.T) {
	assert.True(t, isHiringThread(&models.SourcePost{
		Title: "Ask HN: Who is hiring? (November 2023)",
		By:    "whoishiring",
	}))
	assert.False(t, isHiringThread(&models.SourcePost{
		Title: "Ask HN: Who is hiring? (November 2023)",
		By:    "impostor",
	}))
	assert.False(t, isHiringThread(&models.SourcePost{
		Title: "Ask HN: Who wants to be hired? (November 2023)",
		By:    "whoishiring",
	}))
}

func TestCommentToPosting_StripsHTML(t *testing.T) {
	source := NewHackerNewsSource(&fakeHNClient{}, zap.NewNop(), &config.Config{})

	comment := &models.SourcePost{
		ID:   42,
		Text: "<p>Acme Corp is hiring a <b>Senior Engineer</b>.</p><p>Fully remote, salary $120k-$150k per year.</p>",
		By:   "acme",
		Time: 1700000000,
	}

	job := source.commentToPosting(comment)
	require.NotNil(t, job)
	assert.NotContains(t, job.Title, "<")
	assert.NotContains(t, job.Description, "<")
	assert.Equal(t, "Acme Corp is hiring a Senior Engineer", job.Title)
}

func TestCommentToPosting_SkipsDeadAndShort(t *testing.T) {
	source := NewHackerNewsSource(&fakeHNClient{}, zap.NewNop(), &config.Config{})

	long := strings.Repeat("hiring engineers ", 10)
	assert.Nil(t, source.commentToPosting(nil))
	assert.Nil(t, source.commentToPosting(&models.SourcePost{ID: 1, Text: long, Deleted: true}))
	assert.Nil(t, source.commentToPosting(&models.SourcePost{ID: 2, Text: long, Dead: true}))
	assert.Nil(t, source.commentToPosting(&models.SourcePost{ID: 3, Text: "short"}))
}

func TestCommentToPosting_Defaults(t *testing.T) {
	source := NewHackerNewsSource(&fakeHNClient{}, zap.NewNop(), &config.Config{})

	comment := &models.SourcePost{
		ID:   7,
		Text: strings.Repeat("We are hiring backend engineers ", 5),
	}

	job := source.commentToPosting(comment)
	require.NotNil(t, job)
	assert.Equal(t, "unknown", job.Author)
	assert.NotZero(t, job.CreatedUTC)
}
