// Package workflow runs a student's quiz attempt: start, answer tracking,
// navigation, countdown, scoring and the completion sequence.
package workflow

import (
	"context"
	"sync"
	"time"

	"github.com/saulo-duarte/mindpop-lambda/internal/answer"
	"github.com/saulo-duarte/mindpop-lambda/internal/attempt"
	"github.com/saulo-duarte/mindpop-lambda/internal/config"
	"github.com/saulo-duarte/mindpop-lambda/internal/question"
	"github.com/saulo-duarte/mindpop-lambda/internal/quiz"
	"github.com/saulo-duarte/mindpop-lambda/internal/timer"
)

type State string

const (
	StateNotStarted State = "not_started"
	StateInProgress State = "in_progress"
	StateSubmitting State = "submitting"
	StateCompleted  State = "completed"
	StateError      State = "error"
)

const autoSubmitTimeout = 30 * time.Second

// Attempts is the part of the attempt store a workflow writes through.
type Attempts interface {
	HasCompleted(ctx context.Context, userID, quizID string) (bool, error)
	Create(ctx context.Context, quizID, userID string, maxScore int) (*attempt.QuizAttempt, error)
}

// Finalizer runs the completion sequence.
type Finalizer interface {
	Complete(ctx context.Context, c Completion) (*attempt.QuizAttempt, error)
}

type Option func(*Workflow)

// WithTimerOptions configures the countdown of timed quizzes.
func WithTimerOptions(opts ...timer.Option) Option {
	return func(w *Workflow) { w.timerOpts = append(w.timerOpts, opts...) }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(w *Workflow) { w.now = now }
}

// Workflow is one student's attempt at one quiz. Its methods are safe for
// concurrent use; persistence calls run without the lock held.
type Workflow struct {
	mu sync.Mutex

	quiz      quiz.Quiz
	questions []question.Question
	userID    string
	attempts  Attempts
	finalizer Finalizer
	timerOpts []timer.Option
	now       func() time.Time

	state      State
	attemptID  string
	current    int
	answers    map[string]answer.Value
	countdown  *timer.Countdown
	err        error
	result     *attempt.QuizAttempt
	lastActive time.Time
}

func New(q quiz.Quiz, questions []question.Question, userID string, attempts Attempts, finalizer Finalizer, opts ...Option) *Workflow {
	w := &Workflow{
		quiz:      q,
		questions: append([]question.Question(nil), questions...),
		userID:    userID,
		attempts:  attempts,
		finalizer: finalizer,
		now:       time.Now,
		state:     StateNotStarted,
		answers:   make(map[string]answer.Value),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.lastActive = w.now()
	return w
}

func (w *Workflow) UserID() string { return w.userID }
func (w *Workflow) QuizID() string { return w.quiz.ID }

func (w *Workflow) AttemptID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.attemptID
}

func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Start verifies that the student has no completed attempt for the quiz and
// creates the attempt record. A failed check never lets the attempt start.
func (w *Workflow) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.state != StateNotStarted {
		w.mu.Unlock()
		return ErrAttemptClosed
	}
	w.mu.Unlock()

	log := config.WithContext(ctx).WithField("quiz_id", w.quiz.ID)

	done, err := w.attempts.HasCompleted(ctx, w.userID, w.quiz.ID)
	if err != nil {
		log.WithError(err).Error("Erro ao verificar tentativas anteriores")
		return w.fail(persistence(err))
	}
	if done {
		log.Warn("Aluno já concluiu este quiz")
		return ErrAttemptAlreadyExists
	}

	a, err := w.attempts.Create(ctx, w.quiz.ID, w.userID, len(w.questions))
	if err != nil {
		return w.fail(persistence(err))
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.attemptID = a.ID
	w.state = StateInProgress
	w.touchLocked()
	if secs := w.quiz.Seconds(); secs > 0 {
		w.countdown = timer.New(secs, w.autoSubmit, w.timerOpts...)
		w.countdown.Start()
	}
	log.WithField("attempt_id", a.ID).Info("Tentativa iniciada")
	return nil
}

func (w *Workflow) autoSubmit() {
	ctx, cancel := context.WithTimeout(context.Background(), autoSubmitTimeout)
	defer cancel()

	log := config.WithContext(ctx).WithField("attempt_id", w.AttemptID())
	if _, err := w.Submit(ctx); err != nil {
		log.WithError(err).Error("Falha no envio automático")
		return
	}
	log.Info("Tempo esgotado, tentativa enviada")
}

// RecordAnswer stores the student's current answer for a question. Only the
// latest value per question is kept.
func (w *Workflow) RecordAnswer(questionID string, v answer.Value) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateInProgress {
		return ErrAttemptClosed
	}
	if w.indexOf(questionID) < 0 {
		return ErrUnknownQuestion
	}
	w.answers[questionID] = v
	w.touchLocked()
	return nil
}

func (w *Workflow) Next() bool { return w.move(1) }

func (w *Workflow) Previous() bool { return w.move(-1) }

// JumpTo moves to question i. Out of range indexes leave the position
// unchanged and report false.
func (w *Workflow) JumpTo(i int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if i < 0 || i >= len(w.questions) {
		return false
	}
	w.current = i
	w.touchLocked()
	return true
}

func (w *Workflow) move(delta int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	next := w.current + delta
	if next < 0 || next >= len(w.questions) {
		return false
	}
	w.current = next
	w.touchLocked()
	return true
}

// Submit grades the recorded answers and runs the completion sequence.
// Submitting a completed workflow returns the stored attempt. After a
// failure the attempt can be submitted again. Once issued, the completion
// is not cancelled by ctx.
func (w *Workflow) Submit(ctx context.Context) (*attempt.QuizAttempt, error) {
	w.mu.Lock()
	switch {
	case w.state == StateCompleted:
		res := *w.result
		w.mu.Unlock()
		return &res, nil
	case w.state == StateSubmitting:
		w.mu.Unlock()
		return nil, ErrSubmitInProgress
	case w.attemptID == "":
		w.mu.Unlock()
		return nil, ErrAttemptNotFound
	}

	w.state = StateSubmitting
	if w.countdown != nil {
		w.countdown.Stop()
	}
	answers := make(map[string]answer.Value, len(w.answers))
	for k, v := range w.answers {
		answers[k] = v
	}
	attemptID := w.attemptID
	w.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), autoSubmitTimeout)
	defer cancel()

	score, maxPoints, records := Score(w.questions, answers)
	a, err := w.finalizer.Complete(ctx, Completion{
		AttemptID:   attemptID,
		QuizID:      w.quiz.ID,
		CourseID:    w.quiz.CourseID,
		UserID:      w.userID,
		Score:       score,
		MaxScore:    maxPoints,
		Answers:     records,
		CompletedAt: w.now().UTC(),
	})

	w.mu.Lock()
	defer w.mu.Unlock()
	w.touchLocked()
	if err != nil {
		w.state = StateError
		w.err = err
		return nil, err
	}
	w.state = StateCompleted
	w.err = nil
	w.result = a
	res := *a
	return &res, nil
}

// Abandon stops the countdown of a workflow that will not be submitted.
func (w *Workflow) Abandon() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.countdown != nil {
		w.countdown.Stop()
	}
}

// Snapshot is the presentation view of the workflow.
type Snapshot struct {
	State                State                   `json:"state"`
	AttemptID            string                  `json:"attemptId,omitempty"`
	QuizID               string                  `json:"quizId"`
	CurrentQuestionIndex int                     `json:"currentQuestionIndex"`
	CurrentQuestionID    string                  `json:"currentQuestionId,omitempty"`
	QuestionCount        int                     `json:"questionCount"`
	Answers              map[string]answer.Value `json:"answers"`
	TimeLeft             *int                    `json:"timeLeft,omitempty"`
	TimerRunning         bool                    `json:"timerRunning"`
	IsSubmitting         bool                    `json:"isSubmitting"`
	AttemptStarted       bool                    `json:"attemptStarted"`
	Complete             bool                    `json:"complete"`
	Error                string                  `json:"error,omitempty"`
	Result               *attempt.QuizAttempt    `json:"result,omitempty"`
}

func (w *Workflow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := Snapshot{
		State:                w.state,
		AttemptID:            w.attemptID,
		QuizID:               w.quiz.ID,
		CurrentQuestionIndex: w.current,
		QuestionCount:        len(w.questions),
		Answers:              make(map[string]answer.Value, len(w.answers)),
		IsSubmitting:         w.state == StateSubmitting,
		AttemptStarted:       w.attemptID != "",
		Complete:             w.completeLocked(),
	}
	if w.current < len(w.questions) {
		s.CurrentQuestionID = w.questions[w.current].ID
	}
	for k, v := range w.answers {
		s.Answers[k] = v
	}
	if w.countdown != nil {
		left := w.countdown.TimeLeft()
		s.TimeLeft = &left
		s.TimerRunning = w.countdown.Running()
	}
	if w.err != nil {
		s.Error = w.err.Error()
	}
	if w.result != nil {
		res := *w.result
		s.Result = &res
	}
	return s
}

// RequireComplete reports ErrIncompleteAnswers unless every question has an
// answer. Submit does not enforce it.
func (w *Workflow) RequireComplete() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.completeLocked() {
		return ErrIncompleteAnswers
	}
	return nil
}

func (w *Workflow) completeLocked() bool {
	for _, q := range w.questions {
		v, ok := w.answers[q.ID]
		if !ok || v.IsZero() {
			return false
		}
	}
	return true
}

func (w *Workflow) idleSince() (State, time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state, w.lastActive
}

func (w *Workflow) fail(err error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state = StateError
	w.err = err
	return err
}

func (w *Workflow) indexOf(questionID string) int {
	for i, q := range w.questions {
		if q.ID == questionID {
			return i
		}
	}
	return -1
}

func (w *Workflow) touchLocked() { w.lastActive = w.now() }
