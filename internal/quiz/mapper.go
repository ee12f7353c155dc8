package quiz

func ToQuiz(r Row) Quiz {
	return Quiz{
		ID:            r.ID,
		CourseID:      r.CourseID,
		Title:         r.Title,
		Description:   r.Description,
		TimeLimit:     r.TimeLimit,
		PassingScore:  r.PassingScore,
		ReviewEnabled: r.ReviewEnabled,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func ToRow(q Quiz) Row {
	return Row{
		ID:            q.ID,
		CourseID:      q.CourseID,
		Title:         q.Title,
		Description:   q.Description,
		TimeLimit:     q.TimeLimit,
		PassingScore:  q.PassingScore,
		ReviewEnabled: q.ReviewEnabled,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
}

func NewRow(d CreateQuizDTO) Row {
	return Row{
		CourseID:      d.CourseID,
		Title:         d.Title,
		Description:   d.Description,
		TimeLimit:     d.TimeLimit,
		PassingScore:  d.PassingScore,
		ReviewEnabled: d.ReviewEnabled,
	}
}

func UpdateFields(d UpdateQuizDTO) map[string]interface{} {
	fields := map[string]interface{}{}
	if d.Title != nil {
		fields["title"] = *d.Title
	}
	if d.Description != nil {
		fields["description"] = *d.Description
	}
	if d.TimeLimit != nil {
		fields["time_limit"] = *d.TimeLimit
	}
	if d.PassingScore != nil {
		fields["passing_score"] = *d.PassingScore
	}
	if d.ReviewEnabled != nil {
		fields["review_enabled"] = *d.ReviewEnabled
	}
	return fields
}
