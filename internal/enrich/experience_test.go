package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExperienceClassifier_SingleLevel(t *testing.T) {
	classifier := NewExperienceClassifier()

	assert.Equal(t, []string{LevelJunior}, classifier.Parse("Junior developer wanted"))
	assert.Equal(t, []string{LevelMid}, classifier.Parse("Mid-level engineer, 3+ years"))
	assert.Equal(t, []string{LevelSenior}, classifier.Parse("Senior backend engineer"))
}

func TestExperienceClassifier_PriorityOrder(t *testing.T) {
	classifier := NewExperienceClassifier()

	levels := classifier.Parse("Senior or Junior engineers welcome")
	assert.Equal(t, []string{LevelSenior, LevelJunior}, levels)
}

func TestExperienceClassifier_LeadImpliesSenior(t *testing.T) {
	classifier := NewExperienceClassifier()

	// "lead" sits in both keyword groups.
	levels := classifier.Parse("Tech Lead position")
	assert.Equal(t, []string{LevelLead, LevelSenior}, levels)

	levels = classifier.Parse("Principal Engineer")
	assert.Equal(t, []string{LevelLead, LevelSenior}, levels)
}

func TestExperienceClassifier_WordBoundaries(t *testing.T) {
	classifier := NewExperienceClassifier()

	// "juniority" must not trigger the junior keyword.
	assert.Empty(t, classifier.Parse("juniority is not a word we use"))
}

func TestExperienceClassifier_CaseInsensitive(t *testing.T) {
	classifier := NewExperienceClassifier()

	assert.Equal(t, []string{LevelSenior}, classifier.Parse("SENIOR ENGINEER NEEDED"))
}

func TestExperienceClassifier_NoMatch(t *testing.T) {
	classifier := NewExperienceClassifier()

	assert.Empty(t, classifier.Parse("Software engineer position available"))
	assert.Empty(t, classifier.Parse(""))
}

func TestExperienceClassifier_PrimaryLevel(t *testing.T) {
	classifier := NewExperienceClassifier()

	assert.Equal(t, LevelLead, classifier.PrimaryLevel("Head of Engineering"))
	assert.Equal(t, LevelSenior, classifier.PrimaryLevel("Senior developer"))
	assert.Equal(t, LevelUnknown, classifier.PrimaryLevel("Developer wanted"))
}

func TestLevelIcon(t *testing.T) {
	assert.Equal(t, "🌱", LevelIcon(LevelJunior))
	assert.Equal(t, "🌿", LevelIcon(LevelMid))
	assert.Equal(t, "🌳", LevelIcon(LevelSenior))
	assert.Equal(t, "👑", LevelIcon(LevelLead))
	assert.Equal(t, "", LevelIcon("unknown"))
}
