package quiz_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/saulo-duarte/mindpop-lambda/internal/apperr"
	"github.com/saulo-duarte/mindpop-lambda/internal/database/databasetest"
	"github.com/saulo-duarte/mindpop-lambda/internal/question"
	"github.com/saulo-duarte/mindpop-lambda/internal/quiz"
	"github.com/saulo-duarte/mindpop-lambda/internal/store"
)

type courses map[string]bool

func (c courses) Exists(_ context.Context, id string) (bool, error) { return c[id], nil }

type counter struct{ n int }

func (c *counter) Invalidate(store.Op, string) { c.n++ }

func intPtr(v int) *int { return &v }

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		dto   quiz.CreateQuizDTO
		valid bool
	}{
		{"Minimal", quiz.CreateQuizDTO{CourseID: "c1", Title: "Básico"}, true},
		{"Timed", quiz.CreateQuizDTO{CourseID: "c1", Title: "Prova", TimeLimit: intPtr(10), PassingScore: intPtr(70)}, true},
		{"NoCourse", quiz.CreateQuizDTO{Title: "Básico"}, false},
		{"BlankTitle", quiz.CreateQuizDTO{CourseID: "c1", Title: " "}, false},
		{"ZeroTimeLimit", quiz.CreateQuizDTO{CourseID: "c1", Title: "x", TimeLimit: intPtr(0)}, false},
		{"PassingAbove100", quiz.CreateQuizDTO{CourseID: "c1", Title: "x", PassingScore: intPtr(101)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.dto.Validate()
			if tt.valid && err != nil {
				t.Errorf("esperado válido, recebido %v", err)
			}
			if !tt.valid && !errors.Is(err, apperr.ErrValidation) {
				t.Errorf("esperado erro de validação, recebido %v", err)
			}
		})
	}
}

func TestMapperRoundTrip(t *testing.T) {
	row := quiz.Row{
		ID:            "q1",
		CourseID:      "c1",
		Title:         "Go",
		Description:   "Canais",
		TimeLimit:     intPtr(15),
		PassingScore:  intPtr(60),
		ReviewEnabled: true,
		CreatedAt:     time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt:     time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC),
	}
	if got := quiz.ToRow(quiz.ToQuiz(row)); !reflect.DeepEqual(got, row) {
		t.Errorf("round trip:\n got %+v\nwant %+v", got, row)
	}

	review := false
	fields := quiz.UpdateFields(quiz.UpdateQuizDTO{TimeLimit: intPtr(20), ReviewEnabled: &review})
	want := map[string]interface{}{"time_limit": 20, "review_enabled": false}
	if !reflect.DeepEqual(fields, want) {
		t.Errorf("update fields = %v", fields)
	}
}

func TestSeconds(t *testing.T) {
	if s := (quiz.Quiz{}).Seconds(); s != 0 {
		t.Errorf("untimed quiz = %d", s)
	}
	if s := (quiz.Quiz{TimeLimit: intPtr(2)}).Seconds(); s != 120 {
		t.Errorf("two minutes = %d seconds", s)
	}
}

func TestQuizService(t *testing.T) {
	ctx := context.Background()
	db := databasetest.Open(t, &quiz.Row{}, &question.Row{})
	deps := &counter{}
	svc := quiz.NewService(quiz.NewRepository(db), courses{"c1": true}, store.NewBus(), deps)

	t.Run("UnknownCourse", func(t *testing.T) {
		_, err := svc.Create(ctx, quiz.CreateQuizDTO{CourseID: "nope", Title: "x"})
		if !errors.Is(err, quiz.ErrCourseNotFound) {
			t.Errorf("esperado ErrCourseNotFound, recebido %v", err)
		}
	})

	q, err := svc.Create(ctx, quiz.CreateQuizDTO{CourseID: "c1", Title: "Go", TimeLimit: intPtr(5)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, quiz.CreateQuizDTO{CourseID: "c1", Title: "Go 2"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.Get(ctx, q.ID)
	if err != nil || got.Seconds() != 300 {
		t.Fatalf("get = %+v, %v", got, err)
	}
	list, _ := svc.ForCourse(ctx, "c1")
	if len(list) != 2 {
		t.Errorf("for course = %d quizzes", len(list))
	}
	if n, _ := svc.CountForCourse(ctx, "c1"); n != 2 {
		t.Errorf("count = %d", n)
	}

	review := true
	updated, err := svc.Update(ctx, q.ID, quiz.UpdateQuizDTO{ReviewEnabled: &review})
	if err != nil || !updated.ReviewEnabled {
		t.Fatalf("update = %+v, %v", updated, err)
	}
	if got, _ := svc.Get(ctx, q.ID); !got.ReviewEnabled {
		t.Error("cache served the record from before the update")
	}

	t.Run("DeleteCascadesQuestions", func(t *testing.T) {
		db.Create(&question.Row{QuizID: q.ID, Text: "?", Type: question.TypeShortAnswer, Points: 1})
		db.Create(&question.Row{QuizID: "other", Text: "?", Type: question.TypeShortAnswer, Points: 1})

		if err := svc.Delete(ctx, q.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		var n int64
		db.Model(&question.Row{}).Where("quiz_id = ?", q.ID).Count(&n)
		if n != 0 {
			t.Errorf("%d questions survived the quiz", n)
		}
		db.Model(&question.Row{}).Count(&n)
		if n != 1 {
			t.Errorf("unrelated question removed, %d left", n)
		}
		if deps.n != 1 {
			t.Errorf("question store invalidated %d times", deps.n)
		}
		if _, err := svc.Get(ctx, q.ID); !errors.Is(err, quiz.ErrQuizNotFound) {
			t.Errorf("deleted quiz still served: %v", err)
		}
		if err := svc.Delete(ctx, q.ID); !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("second delete: %v", err)
		}
	})
}
