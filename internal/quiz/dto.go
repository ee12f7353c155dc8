package quiz

import (
	"fmt"
	"strings"

	"github.com/saulo-duarte/mindpop-lambda/internal/apperr"
)

type CreateQuizDTO struct {
	CourseID      string `json:"courseId"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	TimeLimit     *int   `json:"timeLimit"`
	PassingScore  *int   `json:"passingScore"`
	ReviewEnabled bool   `json:"reviewEnabled"`
}

type UpdateQuizDTO struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	TimeLimit     *int    `json:"timeLimit"`
	PassingScore  *int    `json:"passingScore"`
	ReviewEnabled *bool   `json:"reviewEnabled"`
}

func (d CreateQuizDTO) Validate() error {
	if strings.TrimSpace(d.CourseID) == "" {
		return fmt.Errorf("courseId is required: %w", apperr.ErrValidation)
	}
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("title is required: %w", apperr.ErrValidation)
	}
	return validateLimits(d.TimeLimit, d.PassingScore)
}

func (d UpdateQuizDTO) Validate() error {
	if d.Title != nil && strings.TrimSpace(*d.Title) == "" {
		return fmt.Errorf("title cannot be empty: %w", apperr.ErrValidation)
	}
	return validateLimits(d.TimeLimit, d.PassingScore)
}

func validateLimits(timeLimit, passingScore *int) error {
	if timeLimit != nil && *timeLimit <= 0 {
		return fmt.Errorf("timeLimit must be positive: %w", apperr.ErrValidation)
	}
	if passingScore != nil && (*passingScore <= 0 || *passingScore > 100) {
		return fmt.Errorf("passingScore must be between 1 and 100: %w", apperr.ErrValidation)
	}
	return nil
}
