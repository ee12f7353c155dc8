package quiz

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Row struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	CourseID      string    `gorm:"not null;index" json:"course_id"`
	Title         string    `gorm:"not null" json:"title"`
	Description   string    `json:"description"`
	TimeLimit     *int      `json:"time_limit,omitempty"`
	PassingScore  *int      `json:"passing_score,omitempty"`
	ReviewEnabled bool      `gorm:"not null;default:false" json:"review_enabled"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Row) TableName() string { return "quizzes" }

func (r *Row) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// Quiz is the application record. TimeLimit is in minutes, PassingScore a
// percentage.
type Quiz struct {
	ID            string    `json:"id"`
	CourseID      string    `json:"courseId"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	TimeLimit     *int      `json:"timeLimit,omitempty"`
	PassingScore  *int      `json:"passingScore,omitempty"`
	ReviewEnabled bool      `json:"reviewEnabled"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Seconds returns the countdown length, zero when the quiz is untimed.
func (q Quiz) Seconds() int {
	if q.TimeLimit == nil {
		return 0
	}
	return *q.TimeLimit * 60
}
