package risk

import (
	"fmt"
	"log/slog"
	"strings"

	apperrors "github.com/giquina/armora-sub001/pkg/errors"
)

// Assessor validates externally supplied answers before scoring them.
type Assessor interface {
	Questions() []Question
	Assess(answers []Answer) (Assessment, error)
	Finalize(answers []Answer) (Assessment, error)
}

type assessor struct {
	logger *slog.Logger
}

// NewAssessor wires up the risk domain.
func NewAssessor(logger *slog.Logger) Assessor {
	return &assessor{logger: logger.With("component", "risk.assessor")}
}

func (a *assessor) Questions() []Question {
	return Questions()
}

// Assess scores a partial answer set for the running indicator.
func (a *assessor) Assess(answers []Answer) (Assessment, error) {
	if err := validateIDs(answers); err != nil {
		return Assessment{}, err
	}
	return Evaluate(answers), nil
}

// Finalize scores a complete answer set.
func (a *assessor) Finalize(answers []Answer) (Assessment, error) {
	if err := validateIDs(answers); err != nil {
		return Assessment{}, err
	}
	if missing := missingQuestions(answers); len(missing) > 0 {
		return Assessment{}, apperrors.Wrap(apperrors.CodeInvalidInput,
			fmt.Sprintf("unanswered questions: %s", strings.Join(missing, ", ")), nil)
	}
	result := Evaluate(answers)
	a.logger.Info("risk assessment finalized", "score", result.Score, "level", result.Level)
	return result, nil
}

func validateIDs(answers []Answer) error {
	for _, ans := range answers {
		if _, ok := weightOf(ans.QuestionID); !ok {
			return apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("unknown question %q", ans.QuestionID), nil)
		}
	}
	return nil
}

func missingQuestions(answers []Answer) []string {
	seen := make(map[QuestionID]struct{}, len(answers))
	for _, ans := range answers {
		seen[ans.QuestionID] = struct{}{}
	}
	var missing []string
	for _, q := range questions {
		if _, ok := seen[q.ID]; !ok {
			missing = append(missing, string(q.ID))
		}
	}
	return missing
}
