package enrollment

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Row struct {
	ID               string         `gorm:"primaryKey" json:"id"`
	UserID           string         `gorm:"not null;uniqueIndex:idx_enrollment_user_course,priority:1" json:"user_id"`
	CourseID         string         `gorm:"not null;uniqueIndex:idx_enrollment_user_course,priority:2;index" json:"course_id"`
	EnrolledAt       time.Time      `gorm:"not null" json:"enrolled_at"`
	Progress         int            `gorm:"not null;default:0" json:"progress"`
	CompletedQuizzes datatypes.JSON `json:"completed_quizzes"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

func (Row) TableName() string { return "enrollments" }

func (r *Row) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.EnrolledAt.IsZero() {
		r.EnrolledAt = time.Now().UTC()
	}
	return nil
}

type EnrolledCourse struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	CourseID         string    `json:"courseId"`
	EnrolledAt       time.Time `json:"enrolledAt"`
	Progress         int       `json:"progress"`
	CompletedQuizzes []string  `json:"completedQuizzes"`
}

// Status is the completion view of one enrollment.
type Status struct {
	CourseID         string   `json:"courseId"`
	Progress         int      `json:"progress"`
	CompletedQuizzes []string `json:"completedQuizzes"`
	QuizCount        int      `json:"quizCount"`
	Completed        bool     `json:"completed"`
}
