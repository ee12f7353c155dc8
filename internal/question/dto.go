package question

import (
	"fmt"
	"strings"

	"github.com/saulo-duarte/mindpop-lambda/internal/answer"
	"github.com/saulo-duarte/mindpop-lambda/internal/apperr"
)

type CreateQuestionDTO struct {
	QuizID        string       `json:"quizId"`
	Text          string       `json:"text"`
	Type          QuestionType `json:"type"`
	Options       []string     `json:"options"`
	CorrectAnswer answer.Value `json:"correctAnswer"`
	Points        *int         `json:"points"`
	Position      *int         `json:"position"`
}

// UpdateQuestionDTO is a partial update. A nil Options slice means the
// options are left unchanged.
type UpdateQuestionDTO struct {
	Text          *string       `json:"text"`
	Type          *QuestionType `json:"type"`
	Options       []string      `json:"options"`
	CorrectAnswer *answer.Value `json:"correctAnswer"`
	Points        *int          `json:"points"`
	Position      *int          `json:"position"`
}

// Apply returns q with the update merged in.
func (d UpdateQuestionDTO) Apply(q Question) Question {
	if d.Text != nil {
		q.Text = *d.Text
	}
	if d.Type != nil {
		q.Type = *d.Type
	}
	if d.Options != nil {
		q.Options = append([]string{}, d.Options...)
	}
	if d.CorrectAnswer != nil {
		q.CorrectAnswer = *d.CorrectAnswer
	}
	if d.Points != nil {
		q.Points = *d.Points
	}
	if d.Position != nil {
		q.Position = *d.Position
	}
	return q
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, apperr.ErrValidation)...)
}

// Validate checks the type-specific shape of a question.
func Validate(q Question) error {
	if strings.TrimSpace(q.QuizID) == "" {
		return invalid("quizId is required")
	}
	if strings.TrimSpace(q.Text) == "" {
		return invalid("text is required")
	}
	if !q.Type.Valid() {
		return invalid("unknown question type %q", q.Type)
	}
	if q.Points <= 0 {
		return invalid("points must be positive")
	}
	if q.CorrectAnswer.IsZero() {
		return invalid("correctAnswer is required")
	}

	switch q.Type {
	case TypeMultipleChoice:
		if len(q.Options) == 0 {
			return invalid("multiple choice questions need options")
		}
		allowed := make(map[string]struct{}, len(q.Options))
		for _, o := range q.Options {
			allowed[o] = struct{}{}
		}
		for _, c := range q.CorrectAnswer.Items() {
			if _, ok := allowed[c]; !ok {
				return invalid("correct answer %q is not one of the options", c)
			}
		}
	case TypeTrueFalse:
		if q.CorrectAnswer.IsList() {
			return invalid("true/false answer must be a single value")
		}
		if v := q.CorrectAnswer.Text(); v != "true" && v != "false" {
			return invalid("true/false answer must be \"true\" or \"false\"")
		}
	}
	return nil
}
