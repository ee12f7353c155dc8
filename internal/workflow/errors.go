package workflow

import (
	"fmt"

	"github.com/saulo-duarte/mindpop-lambda/internal/apperr"
)

var (
	ErrAttemptAlreadyExists = fmt.Errorf("quiz already completed by this student: %w", apperr.ErrConflict)
	ErrAttemptNotFound      = fmt.Errorf("attempt %w", apperr.ErrNotFound)
	ErrPersistence          = apperr.ErrPersistence
	ErrIncompleteAnswers    = fmt.Errorf("not every question has an answer: %w", apperr.ErrValidation)
	ErrSubmitInProgress     = fmt.Errorf("submission already in progress: %w", apperr.ErrConflict)
	ErrAttemptClosed        = fmt.Errorf("attempt is no longer in progress: %w", apperr.ErrConflict)
	ErrAttemptNotCompleted  = fmt.Errorf("attempt has not been submitted: %w", apperr.ErrConflict)
	ErrUnknownQuestion      = fmt.Errorf("question is not part of this quiz: %w", apperr.ErrValidation)
)

func persistence(err error) error {
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}
