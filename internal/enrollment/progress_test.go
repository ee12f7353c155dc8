package enrollment_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/saulo-duarte/mindpop-lambda/internal/enrollment"
)

func TestProgress(t *testing.T) {
	tests := []struct {
		completed, total, want int
	}{
		{0, 3, 0},
		{1, 3, 33},
		{2, 3, 67},
		{3, 3, 100},
		{0, 0, 100},
		{4, 3, 100},
	}
	for _, tt := range tests {
		if got := enrollment.Progress(tt.completed, tt.total); got != tt.want {
			t.Errorf("Progress(%d, %d) = %d, want %d", tt.completed, tt.total, got, tt.want)
		}
	}
}

func TestApplyCompletion(t *testing.T) {
	e := enrollment.EnrolledCourse{CourseID: "c1", CompletedQuizzes: []string{"A"}, Progress: 33}

	got, changed := enrollment.ApplyCompletion(e, "B", 3)
	if !changed {
		t.Fatal("new quiz not reported as a change")
	}
	if !reflect.DeepEqual(got.CompletedQuizzes, []string{"A", "B"}) || got.Progress != 67 {
		t.Errorf("after B: %+v", got)
	}
	if len(e.CompletedQuizzes) != 1 {
		t.Error("input enrollment was mutated")
	}

	again, changed := enrollment.ApplyCompletion(got, "B", 3)
	if changed || len(again.CompletedQuizzes) != 2 {
		t.Errorf("repeating a completion changed the enrollment: %+v", again)
	}

	// a quiz deleted since the last write lowers the denominator
	shrunk, changed := enrollment.ApplyCompletion(got, "B", 2)
	if !changed || shrunk.Progress != 100 {
		t.Errorf("recount = %+v, changed %v", shrunk, changed)
	}
}

func TestStatusOf(t *testing.T) {
	st := enrollment.StatusOf(enrollment.EnrolledCourse{CourseID: "c1", CompletedQuizzes: []string{}}, 0)
	if st.Progress != 100 || !st.Completed {
		t.Errorf("course without quizzes: %+v", st)
	}
	st = enrollment.StatusOf(enrollment.EnrolledCourse{CourseID: "c1", CompletedQuizzes: []string{"A"}}, 2)
	if st.Progress != 50 || st.Completed || st.QuizCount != 2 {
		t.Errorf("half done: %+v", st)
	}
}

func TestMapperRoundTrip(t *testing.T) {
	e := enrollment.EnrolledCourse{
		ID:               "e1",
		UserID:           "u1",
		CourseID:         "c1",
		EnrolledAt:       time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC),
		Progress:         67,
		CompletedQuizzes: []string{"A", "B"},
	}
	row, err := enrollment.ToRow(e)
	if err != nil {
		t.Fatalf("to row: %v", err)
	}
	back, err := enrollment.ToEnrollment(row)
	if err != nil {
		t.Fatalf("to enrollment: %v", err)
	}
	if !reflect.DeepEqual(back, e) {
		t.Errorf("round trip:\n got %+v\nwant %+v", back, e)
	}

	empty, err := enrollment.ToEnrollment(enrollment.Row{ID: "e2"})
	if err != nil || empty.CompletedQuizzes == nil || len(empty.CompletedQuizzes) != 0 {
		t.Errorf("missing completed set = %+v, %v", empty, err)
	}
}
