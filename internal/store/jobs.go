// Package store persists enriched postings in ClickHouse, keyed by a
// deterministic UUID derived from the posting URL so re-inserts collapse
// under the ReplacingMergeTree engine.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sanlamamba/redbot/common/telemetry"
	"github.com/sanlamamba/redbot/internal/models"
)

var tracer = telemetry.GetTracer("redbot/store")

var postingNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// PostingID derives the stable storage UUID for a posting URL.
func PostingID(url string) string {
	return uuid.NewSHA1(postingNamespace, []byte(url)).String()
}

// JobStore is the repository for enriched postings.
type JobStore struct {
	conn   clickhouse.Conn
	logger *zap.Logger
}

func NewJobStore(conn clickhouse.Conn, logger *zap.Logger) *JobStore {
	return &JobStore{
		conn:   conn,
		logger: logger,
	}
}

const insertColumns = `
		id, url, title, description, subreddit, author, source, source_id,
		created_utc, discovered_at, salary_min, salary_max, salary_currency,
		salary_period, experience_levels, company_name, location, is_remote,
		work_type, sentiment_score, red_flags, skills, priority_score,
		duplicate_of, archived, archived_at, updated_at`

const selectColumns = `
		url, title, description, subreddit, author, source, source_id,
		created_utc, discovered_at, salary_min, salary_max, salary_currency,
		salary_period, experience_levels, company_name, location, is_remote,
		work_type, sentiment_score, red_flags, skills, priority_score,
		duplicate_of, archived, archived_at`

// Save inserts an enriched posting. The posting ID is derived from the URL
// when unset.
func (s *JobStore) Save(ctx context.Context, posting *models.JobPosting) error {
	ctx, span := tracer.Start(ctx, "JobStore.Save")
	defer span.End()

	if posting.ID == "" {
		posting.ID = PostingID(posting.URL)
	}

	query := fmt.Sprintf(`
		INSERT INTO job_postings (%s) VALUES (
			?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
			?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
		)
	`, insertColumns)

	if err := s.conn.Exec(ctx, query,
		posting.ID,
		posting.URL,
		posting.Title,
		posting.Description,
		posting.Subreddit,
		posting.Author,
		posting.Source,
		posting.SourceID,
		posting.CreatedUTC,
		posting.DiscoveredAt,
		toNullableInt64(posting.SalaryMin),
		toNullableInt64(posting.SalaryMax),
		posting.SalaryCurrency,
		posting.SalaryPeriod,
		posting.ExperienceLevels,
		posting.CompanyName,
		posting.Location,
		boolToUInt8(posting.IsRemote),
		posting.WorkType,
		posting.SentimentScore,
		posting.RedFlags,
		posting.Skills,
		int32(posting.PriorityScore),
		posting.DuplicateOf,
		boolToUInt8(posting.Archived),
		posting.ArchivedAt,
		time.Now().UTC(),
	); err != nil {
		span.RecordError(err)
		return fmt.Errorf("insert job posting: %w", err)
	}

	return nil
}

// GetByURL returns the stored posting for url, or nil when unseen. The
// lookup backs dedup decisions.
func (s *JobStore) GetByURL(ctx context.Context, url string) (*models.JobPosting, error) {
	ctx, span := tracer.Start(ctx, "JobStore.GetByURL")
	defer span.End()

	query := fmt.Sprintf(`SELECT %s FROM job_postings WHERE url = ? LIMIT 1`, selectColumns)

	rows, err := s.conn.Query(ctx, query, url)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query job posting by url: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, nil
	}
	return scanPosting(rows)
}

// GetRecent returns non-archived postings discovered within the last
// `hours` hours, newest first.
func (s *JobStore) GetRecent(ctx context.Context, hours, limit int) ([]models.JobPosting, error) {
	ctx, span := tracer.Start(ctx, "JobStore.GetRecent")
	span.SetAttributes(telemetry.Int("hours", hours), telemetry.Int("limit", limit))
	defer span.End()

	cutoff := time.Now().UTC().Add(-time.Duration(hours) * time.Hour).Unix()

	query := fmt.Sprintf(`
		SELECT %s FROM job_postings
		WHERE created_utc >= ? AND archived = 0
		ORDER BY created_utc DESC
		LIMIT ?
	`, selectColumns)

	rows, err := s.conn.Query(ctx, query, cutoff, limit)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query recent job postings: %w", err)
	}
	defer rows.Close()

	var postings []models.JobPosting
	for rows.Next() {
		posting, err := scanPosting(rows)
		if err != nil {
			return nil, err
		}
		postings = append(postings, *posting)
	}
	return postings, nil
}

// FindSimilar returns recent postings sharing a company name or title
// prefix with the given posting, excluding the posting itself.
func (s *JobStore) FindSimilar(ctx context.Context, posting *models.JobPosting, days int) ([]models.JobPosting, error) {
	ctx, span := tracer.Start(ctx, "JobStore.FindSimilar")
	defer span.End()

	cutoff := time.Now().UTC().AddDate(0, 0, -days).Unix()

	titlePrefix := posting.Title
	if len(titlePrefix) > 30 {
		titlePrefix = titlePrefix[:30]
	}

	query := fmt.Sprintf(`
		SELECT %s FROM job_postings
		WHERE created_utc >= ?
		  AND url != ?
		  AND (company_name = ? OR title LIKE ?)
		  AND archived = 0
		ORDER BY created_utc DESC
		LIMIT 10
	`, selectColumns)

	rows, err := s.conn.Query(ctx, query, cutoff, posting.URL, posting.CompanyName, "%"+titlePrefix+"%")
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query similar job postings: %w", err)
	}
	defer rows.Close()

	var postings []models.JobPosting
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, err
		}
		postings = append(postings, *p)
	}
	return postings, nil
}

// MarkDuplicate re-saves a posting flagged as a duplicate of another
// stored posting. ReplacingMergeTree keeps the newer row.
func (s *JobStore) MarkDuplicate(ctx context.Context, posting *models.JobPosting, originalID string) error {
	posting.DuplicateOf = originalID
	return s.Save(ctx, posting)
}

// ArchiveOld re-saves postings older than `days` days with the archived
// flag set. Returns the number of postings archived.
func (s *JobStore) ArchiveOld(ctx context.Context, days int) (int, error) {
	ctx, span := tracer.Start(ctx, "JobStore.ArchiveOld")
	span.SetAttributes(telemetry.Int("days", days))
	defer span.End()

	cutoff := time.Now().UTC().AddDate(0, 0, -days).Unix()

	query := fmt.Sprintf(`
		SELECT %s FROM job_postings
		WHERE created_utc < ? AND archived = 0
		ORDER BY created_utc ASC
	`, selectColumns)

	rows, err := s.conn.Query(ctx, query, cutoff)
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("query postings to archive: %w", err)
	}
	defer rows.Close()

	var postings []models.JobPosting
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return 0, err
		}
		postings = append(postings, *p)
	}

	now := time.Now().UTC()
	archived := 0
	for i := range postings {
		posting := &postings[i]
		posting.Archived = true
		posting.ArchivedAt = &now
		if err := s.Save(ctx, posting); err != nil {
			s.logger.Error("failed to archive posting",
				zap.String("url", posting.URL),
				zap.Error(err))
			continue
		}
		archived++
	}

	if archived > 0 {
		s.logger.Info("archived old postings", zap.Int("count", archived))
	}
	return archived, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPosting(rows rowScanner) (*models.JobPosting, error) {
	var (
		posting    models.JobPosting
		salaryMin  *int64
		salaryMax  *int64
		isRemote   uint8
		senScore   float64
		priority   int32
		archived   uint8
		archivedAt *time.Time
	)

	if err := rows.Scan(
		&posting.URL,
		&posting.Title,
		&posting.Description,
		&posting.Subreddit,
		&posting.Author,
		&posting.Source,
		&posting.SourceID,
		&posting.CreatedUTC,
		&posting.DiscoveredAt,
		&salaryMin,
		&salaryMax,
		&posting.SalaryCurrency,
		&posting.SalaryPeriod,
		&posting.ExperienceLevels,
		&posting.CompanyName,
		&posting.Location,
		&isRemote,
		&posting.WorkType,
		&senScore,
		&posting.RedFlags,
		&posting.Skills,
		&priority,
		&posting.DuplicateOf,
		&archived,
		&archivedAt,
	); err != nil {
		return nil, fmt.Errorf("scan job posting row: %w", err)
	}

	posting.ID = PostingID(posting.URL)
	posting.SalaryMin = fromNullableInt64(salaryMin)
	posting.SalaryMax = fromNullableInt64(salaryMax)
	posting.IsRemote = isRemote != 0
	posting.SentimentScore = senScore
	posting.PriorityScore = int(priority)
	posting.Archived = archived != 0
	posting.ArchivedAt = archivedAt

	return &posting, nil
}

func toNullableInt64(v *int) *int64 {
	if v == nil {
		return nil
	}
	n := int64(*v)
	return &n
}

func fromNullableInt64(v *int64) *int {
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}

func boolToUInt8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
