package risk

import "github.com/giquina/armora-sub001/internal/domain/catalog"

// QuestionID identifies one of the fixed disclosure questions.
type QuestionID string

const (
	QuestionPublicProfile   QuestionID = "public_profile"
	QuestionKnownThreats    QuestionID = "known_threats"
	QuestionHighRiskRoute   QuestionID = "high_risk_route"
	QuestionValuables       QuestionID = "valuables"
	QuestionPriorIncidents  QuestionID = "prior_incidents"
	QuestionMediaAttention  QuestionID = "media_attention"
	QuestionUnsociableHours QuestionID = "unsociable_hours"
)

// Question is a yes/no disclosure with a fixed weight.
type Question struct {
	ID     QuestionID `json:"id"`
	Prompt string     `json:"prompt"`
	Weight int        `json:"weight"`
}

// Answer is the requester's response to a single question.
type Answer struct {
	QuestionID QuestionID `json:"questionId"`
	Answer     bool       `json:"answer"`
}

// Level buckets a disclosure score.
type Level string

const (
	LevelGreen  Level = "GREEN"
	LevelYellow Level = "YELLOW"
	LevelOrange Level = "ORANGE"
	LevelRed    Level = "RED"
)

// Assessment is derived from a set of answers and never stored on its own.
type Assessment struct {
	Score           int            `json:"score"`
	Level           Level          `json:"level"`
	RecommendedTier catalog.TierID `json:"recommendedTier"`
	Description     string         `json:"description"`
	Answered        int            `json:"answered"`
	Complete        bool           `json:"complete"`
}

var questions = []Question{
	{ID: QuestionPublicProfile, Prompt: "Are you a public figure or otherwise recognisable to the public?", Weight: 5},
	{ID: QuestionKnownThreats, Prompt: "Have you received any specific threats against you or your family?", Weight: 5},
	{ID: QuestionHighRiskRoute, Prompt: "Will the journey pass through areas you consider high risk?", Weight: 4},
	{ID: QuestionValuables, Prompt: "Will you be carrying high-value items or sensitive material?", Weight: 4},
	{ID: QuestionPriorIncidents, Prompt: "Have you experienced a security incident in the last 12 months?", Weight: 3},
	{ID: QuestionMediaAttention, Prompt: "Is the trip likely to attract media or public attention?", Weight: 3},
	{ID: QuestionUnsociableHours, Prompt: "Will travel take place late at night or in the early morning?", Weight: 2},
}

// Questions returns the disclosure questions in display order.
func Questions() []Question {
	return append([]Question(nil), questions...)
}

// MaxScore is the score of a set where every question is answered yes.
func MaxScore() int {
	total := 0
	for _, q := range questions {
		total += q.Weight
	}
	return total
}

// RecommendableTiers lists every tier Evaluate can recommend.
func RecommendableTiers() []catalog.TierID {
	return []catalog.TierID{
		tierFor(LevelGreen),
		tierFor(LevelYellow),
		tierFor(LevelOrange),
		tierFor(LevelRed),
	}
}
