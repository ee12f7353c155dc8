package question

import (
	"encoding/json"
	"fmt"

	"github.com/saulo-duarte/mindpop-lambda/internal/answer"
	"gorm.io/datatypes"
)

// ToQuestion decodes the JSON columns. Missing options become an empty list
// and a missing point weight becomes 1.
func ToQuestion(r Row) (Question, error) {
	q := Question{
		ID:        r.ID,
		QuizID:    r.QuizID,
		Text:      r.Text,
		Type:      r.Type,
		Options:   []string{},
		Points:    r.Points,
		Position:  r.Position,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if q.Points <= 0 {
		q.Points = defaultPoints
	}
	if len(r.Options) > 0 {
		if err := json.Unmarshal(r.Options, &q.Options); err != nil {
			return Question{}, fmt.Errorf("question %s: options: %w", r.ID, err)
		}
		if q.Options == nil {
			q.Options = []string{}
		}
	}
	if len(r.CorrectAnswer) > 0 {
		if err := json.Unmarshal(r.CorrectAnswer, &q.CorrectAnswer); err != nil {
			return Question{}, fmt.Errorf("question %s: correct answer: %w", r.ID, err)
		}
	}
	return q, nil
}

func ToRow(q Question) (Row, error) {
	opts, err := encodeOptions(q.Options)
	if err != nil {
		return Row{}, err
	}
	correct, err := encodeAnswer(q.CorrectAnswer)
	if err != nil {
		return Row{}, err
	}
	return Row{
		ID:            q.ID,
		QuizID:        q.QuizID,
		Text:          q.Text,
		Type:          q.Type,
		Options:       opts,
		CorrectAnswer: correct,
		Points:        q.Points,
		Position:      q.Position,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}, nil
}

// FromCreate builds the record a create request describes, before
// validation. position is used when the request does not name one.
func FromCreate(d CreateQuestionDTO, position int) Question {
	q := Question{
		QuizID:        d.QuizID,
		Text:          d.Text,
		Type:          d.Type,
		Options:       append([]string{}, d.Options...),
		CorrectAnswer: d.CorrectAnswer,
		Points:        defaultPoints,
		Position:      position,
	}
	if d.Points != nil {
		q.Points = *d.Points
	}
	if d.Position != nil {
		q.Position = *d.Position
	}
	return q
}

func UpdateFields(d UpdateQuestionDTO) (map[string]interface{}, error) {
	fields := map[string]interface{}{}
	if d.Text != nil {
		fields["text"] = *d.Text
	}
	if d.Type != nil {
		fields["type"] = string(*d.Type)
	}
	if d.Options != nil {
		opts, err := encodeOptions(d.Options)
		if err != nil {
			return nil, err
		}
		fields["options"] = opts
	}
	if d.CorrectAnswer != nil {
		correct, err := encodeAnswer(*d.CorrectAnswer)
		if err != nil {
			return nil, err
		}
		fields["correct_answer"] = correct
	}
	if d.Points != nil {
		fields["points"] = *d.Points
	}
	if d.Position != nil {
		fields["position"] = *d.Position
	}
	return fields, nil
}

func encodeOptions(opts []string) (datatypes.JSON, error) {
	if opts == nil {
		opts = []string{}
	}
	b, err := json.Marshal(opts)
	return datatypes.JSON(b), err
}

func encodeAnswer(v answer.Value) (datatypes.JSON, error) {
	b, err := json.Marshal(v)
	return datatypes.JSON(b), err
}
