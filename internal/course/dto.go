package course

import (
	"fmt"
	"strings"

	"github.com/saulo-duarte/mindpop-lambda/internal/apperr"
)

type CreateCourseDTO struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ImageURL    *string `json:"imageUrl"`
}

type UpdateCourseDTO struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
}

func (d CreateCourseDTO) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("title is required: %w", apperr.ErrValidation)
	}
	return nil
}

func (d UpdateCourseDTO) Validate() error {
	if d.Title != nil && strings.TrimSpace(*d.Title) == "" {
		return fmt.Errorf("title cannot be empty: %w", apperr.ErrValidation)
	}
	return nil
}
