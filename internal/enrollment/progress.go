package enrollment

import (
	"math"
	"slices"
)

// Progress is round(100 * completed / total). A course without quizzes
// counts as fully complete.
func Progress(completed, total int) int {
	if total <= 0 {
		return 100
	}
	p := int(math.Round(100 * float64(completed) / float64(total)))
	if p > 100 {
		p = 100
	}
	return p
}

// ApplyCompletion records quizID as completed and recomputes progress
// against quizCount. It reports whether anything changed.
func ApplyCompletion(e EnrolledCourse, quizID string, quizCount int) (EnrolledCourse, bool) {
	changed := false
	if !slices.Contains(e.CompletedQuizzes, quizID) {
		e.CompletedQuizzes = append(slices.Clone(e.CompletedQuizzes), quizID)
		changed = true
	}
	if p := Progress(len(e.CompletedQuizzes), quizCount); p != e.Progress {
		e.Progress = p
		changed = true
	}
	return e, changed
}

func StatusOf(e EnrolledCourse, quizCount int) Status {
	p := Progress(len(e.CompletedQuizzes), quizCount)
	return Status{
		CourseID:         e.CourseID,
		Progress:         p,
		CompletedQuizzes: e.CompletedQuizzes,
		QuizCount:        quizCount,
		Completed:        p == 100,
	}
}
