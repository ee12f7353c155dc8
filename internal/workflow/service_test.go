package workflow_test

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/saulo-duarte/mindpop-lambda/internal/answer"
	"github.com/saulo-duarte/mindpop-lambda/internal/attempt"
	"github.com/saulo-duarte/mindpop-lambda/internal/database/databasetest"
	"github.com/saulo-duarte/mindpop-lambda/internal/enrollment"
	"github.com/saulo-duarte/mindpop-lambda/internal/question"
	"github.com/saulo-duarte/mindpop-lambda/internal/quiz"
	"github.com/saulo-duarte/mindpop-lambda/internal/store"
	"github.com/saulo-duarte/mindpop-lambda/internal/workflow"
	"gorm.io/gorm"
)

type catalog struct {
	quiz      quiz.Quiz
	questions []question.Question
	count     int
}

func (c catalog) Get(_ context.Context, id string) (*quiz.Quiz, error) {
	if id != c.quiz.ID {
		return nil, quiz.ErrQuizNotFound
	}
	q := c.quiz
	return &q, nil
}

func (c catalog) ForQuiz(_ context.Context, quizID string) ([]question.Question, error) {
	if quizID != c.quiz.ID {
		return nil, nil
	}
	return c.questions, nil
}

func (c catalog) CountForCourse(context.Context, string) (int, error) { return c.count, nil }

func (c catalog) Exists(_ context.Context, id string) (bool, error) { return id == c.quiz.CourseID, nil }

type invalidations struct{ n int }

func (i *invalidations) Invalidate(store.Op, string) { i.n++ }

type fixture struct {
	db          *gorm.DB
	attempts    attempt.Repository
	enrollments enrollment.Repository
	completer   *workflow.Completer
	attemptInv  *invalidations
	enrollInv   *invalidations
}

func newFixture(t *testing.T, quizCount int) *fixture {
	t.Helper()
	db := databasetest.Open(t, &attempt.Row{}, &enrollment.Row{})
	f := &fixture{
		db:          db,
		attempts:    attempt.NewRepository(db),
		enrollments: enrollment.NewRepository(db),
		attemptInv:  &invalidations{},
		enrollInv:   &invalidations{},
	}
	f.completer = workflow.NewCompleter(db, f.attempts, f.enrollments, catalog{count: quizCount}, f.attemptInv, f.enrollInv)
	return f
}

func (f *fixture) enroll(t *testing.T, userID, courseID string, completed ...string) {
	t.Helper()
	row, err := enrollment.ToRow(enrollment.EnrolledCourse{UserID: userID, CourseID: courseID, CompletedQuizzes: completed})
	if err != nil {
		t.Fatalf("enrollment row: %v", err)
	}
	row.Progress = enrollment.Progress(len(completed), 3)
	if err := f.enrollments.Create(context.Background(), &row); err != nil {
		t.Fatalf("enroll: %v", err)
	}
}

func (f *fixture) open(t *testing.T, userID, quizID string) string {
	t.Helper()
	row := attempt.Row{UserID: userID, QuizID: quizID}
	if err := f.attempts.Create(context.Background(), &row); err != nil {
		t.Fatalf("attempt: %v", err)
	}
	return row.ID
}

func TestCompleter(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 3)
	f.enroll(t, "ana", "c1", "A")
	id := f.open(t, "ana", "B")

	in := workflow.Completion{
		AttemptID:   id,
		QuizID:      "B",
		CourseID:    "c1",
		UserID:      "ana",
		Score:       3,
		MaxScore:    4,
		Answers:     []attempt.AnswerRecord{{QuestionID: "q1", Answer: answer.String("4"), IsCorrect: true}},
		CompletedAt: time.Now().UTC(),
	}
	a, err := f.completer.Complete(ctx, in)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !a.Completed() || a.Score != 3 || a.MaxScore != 4 || len(a.Answers) != 1 {
		t.Errorf("attempt = %+v", a)
	}

	row, err := f.enrollments.Find(ctx, "ana", "c1")
	if err != nil {
		t.Fatalf("find enrollment: %v", err)
	}
	e, _ := enrollment.ToEnrollment(*row)
	if !reflect.DeepEqual(e.CompletedQuizzes, []string{"A", "B"}) || e.Progress != 67 {
		t.Errorf("enrollment after B = %+v", e)
	}
	if f.attemptInv.n != 1 || f.enrollInv.n != 1 {
		t.Errorf("invalidations attempt=%d enrollment=%d", f.attemptInv.n, f.enrollInv.n)
	}

	t.Run("SecondCompletionIsNoop", func(t *testing.T) {
		again := in
		again.Score = 0
		got, err := f.completer.Complete(ctx, again)
		if err != nil {
			t.Fatalf("complete: %v", err)
		}
		if got.Score != 3 {
			t.Errorf("stored score overwritten: %d", got.Score)
		}
		if f.attemptInv.n != 1 || f.enrollInv.n != 1 {
			t.Errorf("duplicate completion wrote: attempt=%d enrollment=%d", f.attemptInv.n, f.enrollInv.n)
		}
	})

	t.Run("OtherStudent", func(t *testing.T) {
		other := in
		other.AttemptID = f.open(t, "ana", "C")
		other.UserID = "bruno"
		if _, err := f.completer.Complete(ctx, other); !errors.Is(err, workflow.ErrAttemptNotFound) {
			t.Errorf("esperado ErrAttemptNotFound, recebido %v", err)
		}
	})

	t.Run("UnknownAttempt", func(t *testing.T) {
		missing := in
		missing.AttemptID = "missing"
		if _, err := f.completer.Complete(ctx, missing); !errors.Is(err, workflow.ErrAttemptNotFound) {
			t.Errorf("esperado ErrAttemptNotFound, recebido %v", err)
		}
	})

	t.Run("NotEnrolled", func(t *testing.T) {
		loose := in
		loose.AttemptID = f.open(t, "carla", "B")
		loose.UserID = "carla"
		got, err := f.completer.Complete(ctx, loose)
		if err != nil {
			t.Fatalf("complete: %v", err)
		}
		if !got.Completed() {
			t.Error("attempt not finalized without enrollment")
		}
		var n int64
		f.db.Model(&enrollment.Row{}).Where("user_id = ?", "carla").Count(&n)
		if n != 0 {
			t.Error("enrollment created by completion")
		}
	})
}

func TestServiceFlow(t *testing.T) {
	ctx := context.Background()
	passing := 70
	cat := catalog{
		quiz:      quiz.Quiz{ID: "quiz", CourseID: "c1", PassingScore: &passing, ReviewEnabled: true},
		questions: sampleQuestions(),
		count:     1,
	}
	db := databasetest.Open(t, &attempt.Row{}, &enrollment.Row{})
	attemptRepo := attempt.NewRepository(db)
	enrollmentRepo := enrollment.NewRepository(db)
	bus := store.NewBus()
	attempts := attempt.NewService(attemptRepo, bus)
	enrollments := enrollment.NewService(enrollmentRepo, cat, cat, bus)
	completer := workflow.NewCompleter(db, attemptRepo, enrollmentRepo, cat, attempts, enrollments)
	reg := workflow.NewRegistry(time.Hour)
	svc := workflow.NewService(cat, cat, attempts, completer, reg)

	if _, err := enrollments.Enroll(ctx, "ana", "c1"); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	first, err := svc.StartAttempt(ctx, "ana", "quiz")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if first.State != workflow.StateInProgress || !first.AttemptStarted || first.TimeLeft != nil || first.QuestionCount != 3 {
		t.Errorf("first snapshot = %+v", first)
	}

	snap, err := svc.StartAttempt(ctx, "ana", "quiz")
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if _, err := svc.Session("ana", first.AttemptID); !errors.Is(err, workflow.ErrAttemptNotFound) {
		t.Errorf("abandoned session still live: %v", err)
	}
	if reg.Len() != 1 {
		t.Errorf("registry holds %d sessions", reg.Len())
	}
	if _, err := svc.Session("bruno", snap.AttemptID); !errors.Is(err, workflow.ErrAttemptNotFound) {
		t.Errorf("another student reached the session: %v", err)
	}

	for qid, v := range map[string]answer.Value{"q1": answer.String("4"), "q2": answer.String("false"), "q3": answer.List("c", "a")} {
		if _, err := svc.RecordAnswer("ana", snap.AttemptID, qid, v); err != nil {
			t.Fatalf("answer %s: %v", qid, err)
		}
	}
	if s, moved, _ := svc.Navigate("ana", snap.AttemptID, workflow.Forward); !moved || s.CurrentQuestionIndex != 1 {
		t.Errorf("navigate forward = %v, %+v", moved, s)
	}
	if _, moved, _ := svc.Jump("ana", snap.AttemptID, 7); moved {
		t.Error("jumped out of range")
	}

	res, err := svc.Submit(ctx, "ana", snap.AttemptID)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Score != 3 || res.MaxScore != 4 || res.Percentage != 75 || !res.Passed {
		t.Errorf("result = %+v", res)
	}
	if len(res.Review) != 3 || res.Review[2].CorrectAnswer == nil {
		t.Errorf("review = %+v", res.Review)
	}

	st, err := enrollments.Status(ctx, "ana", "c1")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if st.Progress != 100 || !st.Completed {
		t.Errorf("status = %+v", st)
	}

	t.Run("NoSecondAttempt", func(t *testing.T) {
		var before, after int64
		db.Model(&attempt.Row{}).Count(&before)
		if _, err := svc.StartAttempt(ctx, "ana", "quiz"); !errors.Is(err, workflow.ErrAttemptAlreadyExists) {
			t.Fatalf("esperado ErrAttemptAlreadyExists, recebido %v", err)
		}
		db.Model(&attempt.Row{}).Count(&after)
		if before != after {
			t.Errorf("attempt records %d -> %d", before, after)
		}
	})

	t.Run("ResubmitReturnsStored", func(t *testing.T) {
		again, err := svc.Submit(ctx, "ana", snap.AttemptID)
		if err != nil || again.Score != res.Score || again.AttemptID != res.AttemptID {
			t.Errorf("resubmit = %+v, %v", again, err)
		}
	})

	t.Run("Result", func(t *testing.T) {
		if _, err := svc.Result(ctx, "bruno", snap.AttemptID, false); !errors.Is(err, workflow.ErrAttemptNotFound) {
			t.Errorf("stranger read result: %v", err)
		}
		if r, err := svc.Result(ctx, "admin", snap.AttemptID, true); err != nil || r.Score != 3 {
			t.Errorf("admin result = %+v, %v", r, err)
		}
		if _, err := svc.Result(ctx, "ana", first.AttemptID, false); !errors.Is(err, workflow.ErrAttemptNotCompleted) {
			t.Errorf("abandoned attempt result: %v", err)
		}
		if _, err := svc.Submit(ctx, "ana", first.AttemptID); !errors.Is(err, workflow.ErrAttemptNotCompleted) {
			t.Errorf("submit of abandoned attempt: %v", err)
		}
	})
}

func newService(t *testing.T, cat catalog) (*workflow.Service, *workflow.Registry, *gorm.DB) {
	t.Helper()
	db := databasetest.Open(t, &attempt.Row{}, &enrollment.Row{})
	attemptRepo := attempt.NewRepository(db)
	enrollmentRepo := enrollment.NewRepository(db)
	bus := store.NewBus()
	attempts := attempt.NewService(attemptRepo, bus)
	enrollments := enrollment.NewService(enrollmentRepo, cat, cat, bus)
	completer := workflow.NewCompleter(db, attemptRepo, enrollmentRepo, cat, attempts, enrollments)
	reg := workflow.NewRegistry(time.Hour)
	if _, err := enrollments.Enroll(context.Background(), "ana", cat.quiz.CourseID); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	return workflow.NewService(cat, cat, attempts, completer, reg), reg, db
}

func TestSubmitOutlivesCaller(t *testing.T) {
	cat := catalog{
		quiz:      quiz.Quiz{ID: "quiz", CourseID: "c1"},
		questions: sampleQuestions(),
		count:     1,
	}
	svc, _, db := newService(t, cat)

	snap, err := svc.StartAttempt(context.Background(), "ana", "quiz")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.RecordAnswer("ana", snap.AttemptID, "q1", answer.String("4")); err != nil {
		t.Fatalf("answer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := svc.Submit(ctx, "ana", snap.AttemptID)
	if err != nil {
		t.Fatalf("submit com contexto cancelado: %v", err)
	}
	if res.Score != 1 {
		t.Errorf("score = %d", res.Score)
	}

	s, err := svc.Session("ana", snap.AttemptID)
	if err != nil || s.State != workflow.StateCompleted {
		t.Errorf("session = %+v, %v", s, err)
	}
	var row attempt.Row
	if err := db.First(&row, "id = ?", snap.AttemptID).Error; err != nil {
		t.Fatalf("load attempt: %v", err)
	}
	if row.CompletedAt == nil {
		t.Error("attempt not persisted as completed")
	}
}

func TestConcurrentStarts(t *testing.T) {
	cat := catalog{
		quiz:      quiz.Quiz{ID: "quiz", CourseID: "c1"},
		questions: sampleQuestions(),
		count:     1,
	}
	svc, reg, _ := newService(t, cat)

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.StartAttempt(context.Background(), "ana", "quiz"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("start: %v", err)
	}

	if got := len(reg.TakeOpen("ana", "quiz")); got != 1 {
		t.Errorf("open sessions = %d, esperado 1", got)
	}
}
