package enrich

import (
	"strings"

	"go.uber.org/zap"

	"github.com/sanlamamba/redbot/internal/models"
)

// maxSkills caps the skills carried on a posting, in extractor order.
const maxSkills = 20

// Processor runs every extractor over a posting's combined text and writes
// the results back onto the posting. Construct once and reuse; all pattern
// tables are immutable, so a single Processor is safe across goroutines.
type Processor struct {
	salary     *SalaryExtractor
	experience *ExperienceClassifier
	sentiment  *SentimentAnalyzer
	nlp        *NLPExtractor
	logger     *zap.Logger
}

func NewProcessor(logger *zap.Logger) *Processor {
	return &Processor{
		salary:     NewSalaryExtractor(),
		experience: NewExperienceClassifier(),
		sentiment:  NewSentimentAnalyzer(),
		nlp:        NewNLPExtractor(),
		logger:     logger,
	}
}

// Process enriches a single posting and returns the enriched copy. A failed
// extractor never propagates: the posting keeps whatever fields were
// populated before the failure.
func (p *Processor) Process(job models.JobPosting) models.JobPosting {
	fullText := job.Title + "\n" + job.Description
	p.enrich(&job, fullText)
	return job
}

func (p *Processor) enrich(job *models.JobPosting, fullText string) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("job enrichment failed",
				zap.String("url", job.URL),
				zap.Any("panic", r))
		}
	}()

	if salary := p.salary.Parse(fullText); salary != nil {
		job.SalaryMin = salary.Min
		job.SalaryMax = salary.Max
		job.SalaryCurrency = salary.Currency
		job.SalaryPeriod = salary.Period
		p.logger.Debug("detected salary",
			zap.String("url", job.URL),
			zap.String("matched", salary.OriginalText))
	}

	if levels := p.experience.Parse(fullText); len(levels) > 0 {
		job.ExperienceLevels = levels
		p.logger.Debug("detected experience levels",
			zap.String("url", job.URL),
			zap.Strings("levels", levels))
	}

	sentiment := p.sentiment.Analyze(fullText)
	job.SentimentScore = sentiment.Score
	job.RedFlags = sentiment.RedFlags
	if sentiment.IsSuspicious {
		p.logger.Warn("suspicious job detected",
			zap.String("url", job.URL),
			zap.Int("red_flags", len(sentiment.RedFlags)),
			zap.Float64("score", sentiment.Score))
	}

	location := p.nlp.ExtractLocation(fullText)
	job.Location = location.Location
	job.IsRemote = location.IsRemote
	job.WorkType = location.WorkType

	skills := p.nlp.ExtractSkills(fullText)
	if len(skills) > maxSkills {
		skills = skills[:maxSkills]
	}
	job.Skills = skills

	if job.CompanyName == "" {
		if company := p.nlp.ExtractCompanyName(fullText); company != "" {
			job.CompanyName = company
		}
	}

	p.logger.Info("processed job",
		zap.String("title", job.Title),
		zap.Bool("has_salary", job.SalaryMin != nil),
		zap.String("level", strings.Join(job.ExperienceLevels, ", ")),
		zap.Int("skills", len(job.Skills)))
}

// ProcessBatch enriches every posting in order. A per-item failure keeps
// the item in the output with whatever got populated; the batch never
// aborts and never drops a posting.
func (p *Processor) ProcessBatch(jobs []models.JobPosting) []models.JobPosting {
	processed := make([]models.JobPosting, 0, len(jobs))
	for _, job := range jobs {
		processed = append(processed, p.Process(job))
	}
	return processed
}

// BatchStats aggregates enrichment outcomes over a set of postings.
type BatchStats struct {
	Total           int
	WithSalary      int
	WithExperience  int
	Remote          int
	WithRedFlags    int
	AvgSkillsPerJob float64
}

// Stats computes aggregate counts for operational reporting.
func (p *Processor) Stats(jobs []models.JobPosting) BatchStats {
	stats := BatchStats{Total: len(jobs)}
	if len(jobs) == 0 {
		return stats
	}

	totalSkills := 0
	for _, job := range jobs {
		if job.SalaryMin != nil {
			stats.WithSalary++
		}
		if len(job.ExperienceLevels) > 0 {
			stats.WithExperience++
		}
		if job.IsRemote {
			stats.Remote++
		}
		if len(job.RedFlags) > 0 {
			stats.WithRedFlags++
		}
		totalSkills += len(job.Skills)
	}
	stats.AvgSkillsPerJob = float64(totalSkills) / float64(len(jobs))

	return stats
}
