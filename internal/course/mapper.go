package course

func ToCourse(r Row) Course {
	return Course{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		CreatedBy:   r.CreatedBy,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func ToRow(c Course) Row {
	return Row{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		CreatedBy:   c.CreatedBy,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func NewRow(createdBy string, d CreateCourseDTO) Row {
	return Row{
		Title:       d.Title,
		Description: d.Description,
		ImageURL:    d.ImageURL,
		CreatedBy:   createdBy,
	}
}

// UpdateFields converts a partial update into the column map sent to the
// store. Absent fields are left out.
func UpdateFields(d UpdateCourseDTO) map[string]interface{} {
	fields := map[string]interface{}{}
	if d.Title != nil {
		fields["title"] = *d.Title
	}
	if d.Description != nil {
		fields["description"] = *d.Description
	}
	if d.ImageURL != nil {
		fields["image_url"] = *d.ImageURL
	}
	return fields
}
