package course

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Row is the stored shape of a course.
type Row struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	ImageURL    *string   `gorm:"column:image_url" json:"image_url,omitempty"`
	CreatedBy   string    `gorm:"not null;index" json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Row) TableName() string { return "courses" }

func (r *Row) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

type Course struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Stats holds the figures derived from other collections.
type Stats struct {
	CourseID        string `json:"courseId"`
	QuizCount       int64  `json:"quizCount"`
	EnrollmentCount int64  `json:"enrollmentCount"`
}
