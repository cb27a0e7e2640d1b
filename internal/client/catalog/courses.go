package catalog

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/madhelp/internal/client/models"
)

type CourseSource interface {
	Courses(ctx context.Context) ([]models.Course, error)
}

// CSVCourses reads the catalogue export at Path on every call.
type CSVCourses struct {
	Path string
}

func (s CSVCourses) Courses(ctx context.Context) ([]models.Course, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open courses: %w", err)
	}
	defer f.Close()

	return ReadCourses(f)
}

// ReadCourses parses the catalogue CSV. Rows without a title are skipped.
func ReadCourses(r io.Reader) ([]models.Course, error) {
	var out []models.Course
	err := readTable(r, []string{"Course Title"}, func(get func(string) string) {
		c := models.Course{
			Title:             get("Course Title"),
			Credits:           get("Credits"),
			Description:       get("Description"),
			Requisites:        get("Requisites"),
			LearningOutcomes:  get("Learning Outcomes"),
			Repeatable:        get("Repeatable for Credit"),
			LastTaught:        get("Last Taught"),
			CourseDesignation: get("Course Designation"),
		}
		if c.Title != "" {
			out = append(out, c)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("courses: %w", err)
	}
	return out, nil
}
