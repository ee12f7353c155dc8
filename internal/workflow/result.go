package workflow

import (
	"math"
	"time"

	"github.com/saulo-duarte/mindpop-lambda/internal/answer"
	"github.com/saulo-duarte/mindpop-lambda/internal/attempt"
	"github.com/saulo-duarte/mindpop-lambda/internal/question"
	"github.com/saulo-duarte/mindpop-lambda/internal/quiz"
)

type ReviewItem struct {
	QuestionID    string        `json:"questionId"`
	Text          string        `json:"text"`
	Answer        answer.Value  `json:"answer"`
	IsCorrect     bool          `json:"isCorrect"`
	Points        int           `json:"points"`
	CorrectAnswer *answer.Value `json:"correctAnswer,omitempty"`
}

// Result is the scored view of a completed attempt.
type Result struct {
	AttemptID    string       `json:"attemptId"`
	QuizID       string       `json:"quizId"`
	Score        int          `json:"score"`
	MaxScore     int          `json:"maxScore"`
	Percentage   int          `json:"percentage"`
	PassingScore *int         `json:"passingScore,omitempty"`
	Passed       bool         `json:"passed"`
	CompletedAt  *time.Time   `json:"completedAt,omitempty"`
	Review       []ReviewItem `json:"review"`
}

func Percentage(score, maxScore int) int {
	if maxScore <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(score) / float64(maxScore)))
}

// BuildResult assembles the result view. Correct answers are revealed only
// when the quiz allows review.
func BuildResult(q quiz.Quiz, questions []question.Question, a attempt.QuizAttempt) Result {
	byID := make(map[string]question.Question, len(questions))
	for _, qs := range questions {
		byID[qs.ID] = qs
	}

	res := Result{
		AttemptID:    a.ID,
		QuizID:       a.QuizID,
		Score:        a.Score,
		MaxScore:     a.MaxScore,
		Percentage:   Percentage(a.Score, a.MaxScore),
		PassingScore: q.PassingScore,
		CompletedAt:  a.CompletedAt,
		Review:       make([]ReviewItem, 0, len(a.Answers)),
	}
	res.Passed = q.PassingScore == nil || res.Percentage >= *q.PassingScore

	for _, rec := range a.Answers {
		item := ReviewItem{
			QuestionID: rec.QuestionID,
			Answer:     rec.Answer,
			IsCorrect:  rec.IsCorrect,
		}
		if qs, ok := byID[rec.QuestionID]; ok {
			item.Text = qs.Text
			item.Points = qs.Points
			if q.ReviewEnabled {
				correct := qs.CorrectAnswer
				item.CorrectAnswer = &correct
			}
		}
		res.Review = append(res.Review, item)
	}
	return res
}
