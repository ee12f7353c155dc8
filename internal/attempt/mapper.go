package attempt

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// ToAttempt defaults a missing score or max score to 0 and missing answers
// to an empty list.
func ToAttempt(r Row) (QuizAttempt, error) {
	a := QuizAttempt{
		ID:          r.ID,
		QuizID:      r.QuizID,
		UserID:      r.UserID,
		StartedAt:   r.StartedAt,
		CompletedAt: r.CompletedAt,
		Answers:     []AnswerRecord{},
	}
	if r.Score != nil {
		a.Score = *r.Score
	}
	if r.MaxScore != nil {
		a.MaxScore = *r.MaxScore
	}
	if len(r.Answers) > 0 {
		var wire []wireAnswer
		if err := json.Unmarshal(r.Answers, &wire); err != nil {
			return QuizAttempt{}, fmt.Errorf("attempt %s: answers: %w", r.ID, err)
		}
		for _, w := range wire {
			a.Answers = append(a.Answers, AnswerRecord{QuestionID: w.QuestionID, Answer: w.Answer, IsCorrect: w.IsCorrect})
		}
	}
	return a, nil
}

func ToRow(a QuizAttempt) (Row, error) {
	answers, err := encodeAnswers(a.Answers)
	if err != nil {
		return Row{}, err
	}
	score, maxScore := a.Score, a.MaxScore
	return Row{
		ID:          a.ID,
		QuizID:      a.QuizID,
		UserID:      a.UserID,
		StartedAt:   a.StartedAt,
		CompletedAt: a.CompletedAt,
		Score:       &score,
		MaxScore:    &maxScore,
		Answers:     answers,
	}, nil
}

// CompletionFields is the single update that finalizes an attempt.
func CompletionFields(score, maxScore int, answers []AnswerRecord, completedAt time.Time) (map[string]interface{}, error) {
	enc, err := encodeAnswers(answers)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"score":        score,
		"max_score":    maxScore,
		"answers":      enc,
		"completed_at": completedAt,
	}, nil
}

func encodeAnswers(records []AnswerRecord) (datatypes.JSON, error) {
	wire := make([]wireAnswer, 0, len(records))
	for _, r := range records {
		wire = append(wire, wireAnswer{QuestionID: r.QuestionID, Answer: r.Answer, IsCorrect: r.IsCorrect})
	}
	b, err := json.Marshal(wire)
	return datatypes.JSON(b), err
}
