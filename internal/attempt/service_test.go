package attempt_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/saulo-duarte/mindpop-lambda/internal/answer"
	"github.com/saulo-duarte/mindpop-lambda/internal/attempt"
	"github.com/saulo-duarte/mindpop-lambda/internal/database/databasetest"
	"github.com/saulo-duarte/mindpop-lambda/internal/store"
)

func TestToAttemptDefaults(t *testing.T) {
	a, err := attempt.ToAttempt(attempt.Row{ID: "a1", QuizID: "q1", UserID: "u1"})
	if err != nil {
		t.Fatalf("to attempt: %v", err)
	}
	if a.Score != 0 || a.MaxScore != 0 || a.Answers == nil || len(a.Answers) != 0 {
		t.Errorf("missing columns not defaulted: %+v", a)
	}
	if a.Completed() {
		t.Error("attempt without completed_at reported as completed")
	}

	if _, err := attempt.ToAttempt(attempt.Row{ID: "a2", Answers: []byte(`[{`)}); err == nil {
		t.Error("expected decode error for malformed answers")
	}
}

func TestMapperRoundTrip(t *testing.T) {
	done := time.Date(2025, 5, 1, 12, 30, 0, 0, time.UTC)
	a := attempt.QuizAttempt{
		ID:          "a1",
		QuizID:      "q1",
		UserID:      "u1",
		StartedAt:   done.Add(-10 * time.Minute),
		CompletedAt: &done,
		Score:       3,
		MaxScore:    4,
		Answers: []attempt.AnswerRecord{
			{QuestionID: "x", Answer: answer.String("4"), IsCorrect: true},
			{QuestionID: "y", Answer: answer.List("a", "c"), IsCorrect: true},
		},
	}
	row, err := attempt.ToRow(a)
	if err != nil {
		t.Fatalf("to row: %v", err)
	}
	back, err := attempt.ToAttempt(row)
	if err != nil {
		t.Fatalf("to attempt: %v", err)
	}
	if !reflect.DeepEqual(back, a) {
		t.Errorf("round trip:\n got %+v\nwant %+v", back, a)
	}
}

func TestAttemptService(t *testing.T) {
	ctx := context.Background()
	db := databasetest.Open(t, &attempt.Row{})
	svc := attempt.NewService(attempt.NewRepository(db), store.NewBus())

	a, err := svc.Create(ctx, "q1", "u1", 3)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.StartedAt.IsZero() || a.MaxScore != 3 || a.Score != 0 || a.Completed() {
		t.Fatalf("new attempt = %+v", a)
	}
	var stored attempt.Row
	if err := db.First(&stored, "id = ?", a.ID).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(stored.Answers) != "[]" || len(a.Answers) != 0 {
		t.Errorf("answers de tentativa nova = %s, %v", stored.Answers, a.Answers)
	}
	if _, err := svc.Create(ctx, "q1", "u2", 3); err != nil {
		t.Fatalf("create: %v", err)
	}

	mine, err := svc.ForStudent(ctx, "u1")
	if err != nil || len(mine) != 1 {
		t.Fatalf("for student = %v, %v", mine, err)
	}

	done, _ := svc.HasCompleted(ctx, "u1", "q1")
	if done {
		t.Error("open attempt counted as completed")
	}

	records := []attempt.AnswerRecord{
		{QuestionID: "x", Answer: answer.String("Paris"), IsCorrect: true},
		{QuestionID: "y", Answer: answer.List("a", "b"), IsCorrect: false},
	}
	fields, err := attempt.CompletionFields(2, 4, records, time.Now().UTC())
	if err != nil {
		t.Fatalf("completion fields: %v", err)
	}
	if _, err := svc.Update(ctx, a.ID, fields); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := svc.Get(ctx, a.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Completed() || got.Score != 2 || got.MaxScore != 4 || len(got.Answers) != 2 {
		t.Fatalf("completed attempt = %+v", got)
	}
	if !got.Answers[1].Answer.Equal(answer.List("b", "a")) || !got.Answers[0].IsCorrect {
		t.Errorf("answers not stored faithfully: %+v", got.Answers)
	}

	done, _ = svc.HasCompleted(ctx, "u1", "q1")
	if !done {
		t.Error("completed attempt not found")
	}
	if done, _ := svc.HasCompleted(ctx, "u2", "q1"); done {
		t.Error("other student's open attempt counted as completed")
	}

	if _, err := svc.Get(ctx, "missing"); !errors.Is(err, attempt.ErrAttemptNotFound) {
		t.Errorf("esperado ErrAttemptNotFound, recebido %v", err)
	}
}
