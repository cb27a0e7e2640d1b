package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/madhelp/internal/client/models"
	"github.com/dmitrijs2005/madhelp/internal/filter"
)

func (a *App) Courses(ctx context.Context, query string) error {
	cs, err := a.catalog.Courses(ctx, query)
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.lastCourses = cs
	a.mu.Unlock()

	if len(cs) == 0 {
		fmt.Fprintf(a.out, "No courses match %q.\n", query)
		return nil
	}
	for i, c := range cs {
		fmt.Fprintf(a.out, "%3d. %s", i+1, c.Title)
		if c.Credits != "" {
			fmt.Fprintf(a.out, " (%s credits)", c.Credits)
		}
		fmt.Fprintln(a.out)
	}
	fmt.Fprintln(a.out, "Use 'course <n>' for details.")
	return nil
}

// Course prints one entry of the last 'courses' listing, or of the full
// catalogue when nothing was listed yet.
func (a *App) Course(ctx context.Context, arg string) error {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("%q is not a course number", arg)
	}

	a.mu.Lock()
	cs := a.lastCourses
	a.mu.Unlock()
	if cs == nil {
		if cs, err = a.catalog.Courses(ctx, ""); err != nil {
			return err
		}
	}
	if n < 1 || n > len(cs) {
		return fmt.Errorf("no course #%d", n)
	}

	a.printCourse(cs[n-1])
	return nil
}

func (a *App) printCourse(c models.Course) {
	fields := []struct{ label, value string }{
		{"Title", c.Title},
		{"Credits", c.Credits},
		{"Designation", c.CourseDesignation},
		{"Requisites", c.Requisites},
		{"Repeatable", c.Repeatable},
		{"Last taught", c.LastTaught},
		{"Description", c.Description},
		{"Outcomes", c.LearningOutcomes},
	}
	for _, f := range fields {
		if f.value != "" {
			fmt.Fprintf(a.out, "%-12s %s\n", f.label+":", f.value)
		}
	}
}

func (a *App) printFaculty(fs []models.Faculty) {
	for i, f := range fs {
		fmt.Fprintf(a.out, "%3d. %s", i+1, f.Name)
		if f.Email != "" {
			fmt.Fprintf(a.out, " <%s>", f.Email)
		}
		fmt.Fprintln(a.out)
		if d := f.DepartmentList(); len(d) > 0 {
			fmt.Fprintf(a.out, "     Departments: %s\n", strings.Join(d, ", "))
		}
		if fl := f.FieldList(); len(fl) > 0 {
			fmt.Fprintf(a.out, "     Research:    %s\n", strings.Join(fl, ", "))
		}
		if f.Link != "" {
			fmt.Fprintf(a.out, "     %s\n", f.Link)
		}
	}
}

func (a *App) Faculty(ctx context.Context, query string) error {
	fs, err := a.catalog.Faculty(ctx, query)
	if err != nil {
		return a.handleSessionError(ctx, err)
	}
	if len(fs) == 0 {
		fmt.Fprintf(a.out, "No faculty match %q.\n", query)
		return nil
	}
	a.printFaculty(fs)
	return nil
}

// Fields lists faculty working in any of the comma separated tags.
func (a *App) Fields(ctx context.Context, arg string) error {
	tags := filter.SplitList(arg)
	fs, err := a.catalog.FacultyByTags(ctx, tags...)
	if err != nil {
		return a.handleSessionError(ctx, err)
	}
	if len(fs) == 0 {
		fmt.Fprintf(a.out, "No faculty work in %s.\n", strings.Join(tags, ", "))
		return nil
	}
	a.printFaculty(fs)
	return nil
}
