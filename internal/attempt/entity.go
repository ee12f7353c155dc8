package attempt

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/mindpop-lambda/internal/answer"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Row is the stored attempt. Score and MaxScore may be absent on rows
// written by older clients.
type Row struct {
	ID          string         `gorm:"primaryKey" json:"id"`
	QuizID      string         `gorm:"not null;index:idx_attempt_user_quiz,priority:2" json:"quiz_id"`
	UserID      string         `gorm:"not null;index:idx_attempt_user_quiz,priority:1" json:"user_id"`
	StartedAt   time.Time      `gorm:"not null" json:"started_at"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	Score       *int           `json:"score,omitempty"`
	MaxScore    *int           `json:"max_score,omitempty"`
	Answers     datatypes.JSON `json:"answers"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (Row) TableName() string { return "quiz_attempts" }

func (r *Row) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.StartedAt.IsZero() {
		r.StartedAt = time.Now().UTC()
	}
	return nil
}

// wireAnswer is one element of the answers column.
type wireAnswer struct {
	QuestionID string       `json:"question_id"`
	Answer     answer.Value `json:"answer"`
	IsCorrect  bool         `json:"is_correct"`
}

type AnswerRecord struct {
	QuestionID string       `json:"questionId"`
	Answer     answer.Value `json:"answer"`
	IsCorrect  bool         `json:"isCorrect"`
}

type QuizAttempt struct {
	ID          string         `json:"id"`
	QuizID      string         `json:"quizId"`
	UserID      string         `json:"userId"`
	StartedAt   time.Time      `json:"startedAt"`
	CompletedAt *time.Time     `json:"completedAt,omitempty"`
	Score       int            `json:"score"`
	MaxScore    int            `json:"maxScore"`
	Answers     []AnswerRecord `json:"answers"`
}

func (a QuizAttempt) Completed() bool { return a.CompletedAt != nil }
