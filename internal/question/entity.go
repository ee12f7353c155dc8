package question

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/mindpop-lambda/internal/answer"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple_choice"
	TypeTrueFalse      QuestionType = "true_false"
	TypeShortAnswer    QuestionType = "short_answer"
)

func (t QuestionType) Valid() bool {
	switch t {
	case TypeMultipleChoice, TypeTrueFalse, TypeShortAnswer:
		return true
	}
	return false
}

const defaultPoints = 1

type Row struct {
	ID            string         `gorm:"primaryKey" json:"id"`
	QuizID        string         `gorm:"not null;index" json:"quiz_id"`
	Text          string         `gorm:"not null" json:"text"`
	Type          QuestionType   `gorm:"not null" json:"type"`
	Options       datatypes.JSON `json:"options"`
	CorrectAnswer datatypes.JSON `json:"correct_answer"`
	Points        int            `gorm:"not null;default:1" json:"points"`
	Position      int            `gorm:"not null;default:0" json:"position"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (Row) TableName() string { return "questions" }

func (r *Row) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

type Question struct {
	ID            string       `json:"id"`
	QuizID        string       `json:"quizId"`
	Text          string       `json:"text"`
	Type          QuestionType `json:"type"`
	Options       []string     `json:"options"`
	CorrectAnswer answer.Value `json:"correctAnswer"`
	Points        int          `json:"points"`
	Position      int          `json:"position"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}
