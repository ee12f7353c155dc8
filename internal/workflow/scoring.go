package workflow

import (
	"github.com/saulo-duarte/mindpop-lambda/internal/answer"
	"github.com/saulo-duarte/mindpop-lambda/internal/attempt"
	"github.com/saulo-duarte/mindpop-lambda/internal/question"
)

// Score grades answers against questions in quiz order. An unanswered
// question is graded as the empty string. The returned records line up
// one-to-one with questions.
func Score(questions []question.Question, answers map[string]answer.Value) (score, maxPoints int, records []attempt.AnswerRecord) {
	records = make([]attempt.AnswerRecord, 0, len(questions))
	for _, q := range questions {
		given, ok := answers[q.ID]
		if !ok {
			given = answer.String("")
		}
		correct := given.Equal(q.CorrectAnswer)
		maxPoints += q.Points
		if correct {
			score += q.Points
		}
		records = append(records, attempt.AnswerRecord{
			QuestionID: q.ID,
			Answer:     given,
			IsCorrect:  correct,
		})
	}
	return score, maxPoints, records
}
