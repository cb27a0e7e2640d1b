package models

import (
	"encoding/json"
	"strings"

	"github.com/dmitrijs2005/madhelp/internal/filter"
)

// Course is one row of the course catalogue.
type Course struct {
	Title             string `json:"title"`
	Credits           string `json:"credits"`
	Description       string `json:"description"`
	Requisites        string `json:"requisites"`
	LearningOutcomes  string `json:"learning_outcomes"`
	Repeatable        string `json:"repeatable"`
	LastTaught        string `json:"last_taught"`
	CourseDesignation string `json:"course_designation"`
}

// Faculty is a professor's contact and research listing. Departments and
// Fields keep the delimited source strings; use the accessor methods for
// the split values.
type Faculty struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Departments string `json:"faculty"`
	Summary     string `json:"summary"`
	Fields      string `json:"fields"`
	Link        string `json:"link"`
}

func (f Faculty) DepartmentList() []string {
	return filter.SplitList(f.Departments)
}

func (f Faculty) FieldList() []string {
	return filter.SplitList(f.Fields)
}

// facultyAliases maps accepted JSON keys onto fields. Besides the snake_case
// names, the spreadsheet column titles are accepted so exported sheets load
// unchanged.
var facultyAliases = map[string]func(*Faculty) *string{
	"name":                func(f *Faculty) *string { return &f.Name },
	"email":               func(f *Faculty) *string { return &f.Email },
	"faculty":             func(f *Faculty) *string { return &f.Departments },
	"departments":         func(f *Faculty) *string { return &f.Departments },
	"summary":             func(f *Faculty) *string { return &f.Summary },
	"summary of research": func(f *Faculty) *string { return &f.Summary },
	"fields":              func(f *Faculty) *string { return &f.Fields },
	"fields of research":  func(f *Faculty) *string { return &f.Fields },
	"link":                func(f *Faculty) *string { return &f.Link },
	"link to page":        func(f *Faculty) *string { return &f.Link },
}

// FacultyColumn returns the field a column title or JSON key feeds, or nil.
func (f *Faculty) FacultyColumn(name string) *string {
	if fn, ok := facultyAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return fn(f)
	}
	return nil
}

func (f *Faculty) UnmarshalJSON(b []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*f = Faculty{}
	for k, v := range raw {
		dst := f.FacultyColumn(k)
		if dst == nil {
			continue
		}
		switch val := v.(type) {
		case string:
			*dst = val
		case []any:
			parts := make([]string, 0, len(val))
			for _, p := range val {
				if s, ok := p.(string); ok {
					parts = append(parts, s)
				}
			}
			*dst = strings.Join(parts, ", ")
		}
	}
	return nil
}
