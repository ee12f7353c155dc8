package enrollment

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

func ToEnrollment(r Row) (EnrolledCourse, error) {
	e := EnrolledCourse{
		ID:               r.ID,
		UserID:           r.UserID,
		CourseID:         r.CourseID,
		EnrolledAt:       r.EnrolledAt,
		Progress:         r.Progress,
		CompletedQuizzes: []string{},
	}
	if len(r.CompletedQuizzes) > 0 {
		if err := json.Unmarshal(r.CompletedQuizzes, &e.CompletedQuizzes); err != nil {
			return EnrolledCourse{}, fmt.Errorf("enrollment %s: completed quizzes: %w", r.ID, err)
		}
		if e.CompletedQuizzes == nil {
			e.CompletedQuizzes = []string{}
		}
	}
	return e, nil
}

func ToRow(e EnrolledCourse) (Row, error) {
	completed, err := encodeSet(e.CompletedQuizzes)
	if err != nil {
		return Row{}, err
	}
	return Row{
		ID:               e.ID,
		UserID:           e.UserID,
		CourseID:         e.CourseID,
		EnrolledAt:       e.EnrolledAt,
		Progress:         e.Progress,
		CompletedQuizzes: completed,
	}, nil
}

// ProgressFields is the update written after a quiz completes.
func ProgressFields(e EnrolledCourse) (map[string]interface{}, error) {
	completed, err := encodeSet(e.CompletedQuizzes)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"completed_quizzes": completed,
		"progress":          e.Progress,
	}, nil
}

func encodeSet(ids []string) (datatypes.JSON, error) {
	if ids == nil {
		ids = []string{}
	}
	b, err := json.Marshal(ids)
	return datatypes.JSON(b), err
}
