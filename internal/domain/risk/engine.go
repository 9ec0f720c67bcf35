package risk

import "github.com/giquina/armora-sub001/internal/domain/catalog"

// Score thresholds. Each bound is the first score of the next level.
const (
	yellowFrom = 5
	orangeFrom = 10
	redFrom    = 17
)

// Evaluate scores a possibly partial answer set. It is a total function:
// unknown question ids carry no weight and a repeated question keeps its
// last answer, so callers can re-evaluate after every flip.
func Evaluate(answers []Answer) Assessment {
	latest := make(map[QuestionID]bool, len(answers))
	for _, a := range answers {
		if _, ok := weightOf(a.QuestionID); !ok {
			continue
		}
		latest[a.QuestionID] = a.Answer
	}

	score := 0
	for id, yes := range latest {
		if yes {
			w, _ := weightOf(id)
			score += w
		}
	}

	level := levelFor(score)
	return Assessment{
		Score:           score,
		Level:           level,
		RecommendedTier: tierFor(level),
		Description:     describe(level),
		Answered:        len(latest),
		Complete:        len(latest) == len(questions),
	}
}

func levelFor(score int) Level {
	switch {
	case score < yellowFrom:
		return LevelGreen
	case score < orangeFrom:
		return LevelYellow
	case score < redFrom:
		return LevelOrange
	default:
		return LevelRed
	}
}

func tierFor(level Level) catalog.TierID {
	switch level {
	case LevelYellow:
		return catalog.TierExecutive
	case LevelOrange:
		return catalog.TierShadow
	case LevelRed:
		return catalog.TierUltra
	default:
		return catalog.TierStandard
	}
}

func describe(level Level) string {
	switch level {
	case LevelYellow:
		return "Elevated risk. A close protection officer with executive vehicle is advised."
	case LevelOrange:
		return "High risk. Discreet shadow protection is advised."
	case LevelRed:
		return "Severe risk. A multi-vehicle secure convoy is advised."
	default:
		return "Low risk. Standard protection is sufficient."
	}
}

func weightOf(id QuestionID) (int, bool) {
	for _, q := range questions {
		if q.ID == id {
			return q.Weight, true
		}
	}
	return 0, false
}
