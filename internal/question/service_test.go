package question_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/saulo-duarte/mindpop-lambda/internal/answer"
	"github.com/saulo-duarte/mindpop-lambda/internal/apperr"
	"github.com/saulo-duarte/mindpop-lambda/internal/database/databasetest"
	"github.com/saulo-duarte/mindpop-lambda/internal/question"
	"github.com/saulo-duarte/mindpop-lambda/internal/store"
)

type quizzes map[string]bool

func (q quizzes) Exists(_ context.Context, id string) (bool, error) { return q[id], nil }

func TestValidate(t *testing.T) {
	base := question.Question{QuizID: "q1", Text: "Capital?", Type: question.TypeShortAnswer, Points: 1, CorrectAnswer: answer.String("Paris")}
	with := func(f func(*question.Question)) question.Question {
		q := base
		f(&q)
		return q
	}

	tests := []struct {
		name  string
		q     question.Question
		valid bool
	}{
		{"ShortAnswer", base, true},
		{"NoQuiz", with(func(q *question.Question) { q.QuizID = "" }), false},
		{"NoText", with(func(q *question.Question) { q.Text = "" }), false},
		{"UnknownType", with(func(q *question.Question) { q.Type = "essay" }), false},
		{"ZeroPoints", with(func(q *question.Question) { q.Points = 0 }), false},
		{"NoAnswer", with(func(q *question.Question) { q.CorrectAnswer = answer.Value{} }), false},
		{"MultipleChoice", with(func(q *question.Question) {
			q.Type = question.TypeMultipleChoice
			q.Options = []string{"a", "b", "c"}
			q.CorrectAnswer = answer.List("a", "c")
		}), true},
		{"MultipleChoiceScalar", with(func(q *question.Question) {
			q.Type = question.TypeMultipleChoice
			q.Options = []string{"a", "b"}
			q.CorrectAnswer = answer.String("b")
		}), true},
		{"MultipleChoiceNoOptions", with(func(q *question.Question) {
			q.Type = question.TypeMultipleChoice
			q.CorrectAnswer = answer.String("a")
		}), false},
		{"MultipleChoiceAnswerOutsideOptions", with(func(q *question.Question) {
			q.Type = question.TypeMultipleChoice
			q.Options = []string{"a", "b"}
			q.CorrectAnswer = answer.List("a", "z")
		}), false},
		{"TrueFalse", with(func(q *question.Question) {
			q.Type = question.TypeTrueFalse
			q.CorrectAnswer = answer.String("false")
		}), true},
		{"TrueFalseOther", with(func(q *question.Question) {
			q.Type = question.TypeTrueFalse
			q.CorrectAnswer = answer.String("maybe")
		}), false},
		{"TrueFalseList", with(func(q *question.Question) {
			q.Type = question.TypeTrueFalse
			q.CorrectAnswer = answer.List("true")
		}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := question.Validate(tt.q)
			if tt.valid && err != nil {
				t.Errorf("esperado válido, recebido %v", err)
			}
			if !tt.valid && !errors.Is(err, apperr.ErrValidation) {
				t.Errorf("esperado erro de validação, recebido %v", err)
			}
		})
	}
}

func TestMapper(t *testing.T) {
	q := question.Question{
		ID:            "id-1",
		QuizID:        "q1",
		Text:          "Pick",
		Type:          question.TypeMultipleChoice,
		Options:       []string{"a", "b"},
		CorrectAnswer: answer.List("b"),
		Points:        3,
		Position:      2,
	}
	row, err := question.ToRow(q)
	if err != nil {
		t.Fatalf("to row: %v", err)
	}
	back, err := question.ToQuestion(row)
	if err != nil {
		t.Fatalf("to question: %v", err)
	}
	if !reflect.DeepEqual(back, q) {
		t.Errorf("round trip:\n got %+v\nwant %+v", back, q)
	}

	t.Run("Defaults", func(t *testing.T) {
		got, err := question.ToQuestion(question.Row{ID: "x", Type: question.TypeShortAnswer})
		if err != nil {
			t.Fatalf("to question: %v", err)
		}
		if got.Points != 1 || got.Options == nil || len(got.Options) != 0 {
			t.Errorf("defaults not applied: %+v", got)
		}
	})

	t.Run("BadJSON", func(t *testing.T) {
		_, err := question.ToQuestion(question.Row{ID: "x", Options: []byte(`{`)})
		if err == nil {
			t.Error("expected decode error")
		}
	})
}

func TestQuestionService(t *testing.T) {
	ctx := context.Background()
	db := databasetest.Open(t, &question.Row{})
	svc := question.NewService(question.NewRepository(db), quizzes{"q1": true}, store.NewBus())

	t.Run("UnknownQuiz", func(t *testing.T) {
		_, err := svc.Create(ctx, question.CreateQuestionDTO{QuizID: "q2", Text: "?", Type: question.TypeShortAnswer, CorrectAnswer: answer.String("x")})
		if !errors.Is(err, question.ErrQuizNotFound) {
			t.Errorf("esperado ErrQuizNotFound, recebido %v", err)
		}
	})

	first, err := svc.Create(ctx, question.CreateQuestionDTO{QuizID: "q1", Text: "1", Type: question.TypeShortAnswer, CorrectAnswer: answer.String("a")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := svc.Create(ctx, question.CreateQuestionDTO{QuizID: "q1", Text: "2", Type: question.TypeTrueFalse, CorrectAnswer: answer.String("true")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.Position != 0 || second.Position != 1 {
		t.Errorf("positions = %d, %d", first.Position, second.Position)
	}
	if first.Points != 1 {
		t.Errorf("default points = %d", first.Points)
	}

	pos := 5
	if _, err := svc.Update(ctx, first.ID, question.UpdateQuestionDTO{Position: &pos}); err != nil {
		t.Fatalf("update: %v", err)
	}
	ordered, err := svc.ForQuiz(ctx, "q1")
	if err != nil {
		t.Fatalf("for quiz: %v", err)
	}
	if len(ordered) != 2 || ordered[0].ID != second.ID || ordered[1].ID != first.ID {
		t.Errorf("order after moving first to the end: %+v", ordered)
	}

	t.Run("UpdateValidatesMergedRecord", func(t *testing.T) {
		// switching to true/false while the stored answer is "a" must fail
		tf := question.TypeTrueFalse
		_, err := svc.Update(ctx, first.ID, question.UpdateQuestionDTO{Type: &tf})
		if !errors.Is(err, apperr.ErrValidation) {
			t.Fatalf("esperado erro de validação, recebido %v", err)
		}
		got, _ := svc.Get(ctx, first.ID)
		if got.Type != question.TypeShortAnswer {
			t.Errorf("rejected update was written: %+v", got)
		}

		v := answer.String("true")
		updated, err := svc.Update(ctx, first.ID, question.UpdateQuestionDTO{Type: &tf, CorrectAnswer: &v})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.Type != tf || !updated.CorrectAnswer.Equal(v) {
			t.Errorf("updated = %+v", updated)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := svc.Delete(ctx, second.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := svc.Get(ctx, second.ID); !errors.Is(err, question.ErrQuestionNotFound) {
			t.Errorf("deleted question still served: %v", err)
		}
		if _, err := svc.Update(ctx, second.ID, question.UpdateQuestionDTO{}); !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("update of deleted question: %v", err)
		}
	})
}
