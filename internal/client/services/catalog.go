package services

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/madhelp/internal/client/catalog"
	"github.com/dmitrijs2005/madhelp/internal/client/models"
	"github.com/dmitrijs2005/madhelp/internal/filter"
)

// CatalogService searches the course and faculty listings. Each listing is
// loaded on first use and kept for the rest of the session; a failed load
// is retried on the next call.
type CatalogService struct {
	courses catalog.CourseSource
	faculty catalog.FacultySource

	mu            sync.Mutex
	courseCache   []models.Course
	facultyCache  []models.Faculty
	coursesLoaded bool
	facultyLoaded bool
}

func NewCatalogService(courses catalog.CourseSource, faculty catalog.FacultySource) *CatalogService {
	return &CatalogService{courses: courses, faculty: faculty}
}

func (s *CatalogService) allCourses(ctx context.Context) ([]models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.coursesLoaded {
		cs, err := s.courses.Courses(ctx)
		if err != nil {
			return nil, err
		}
		s.courseCache, s.coursesLoaded = cs, true
	}
	return s.courseCache, nil
}

func (s *CatalogService) allFaculty(ctx context.Context) ([]models.Faculty, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.facultyLoaded {
		fs, err := s.faculty.Faculty(ctx)
		if err != nil {
			return nil, err
		}
		s.facultyCache, s.facultyLoaded = fs, true
	}
	return s.facultyCache, nil
}

// Courses returns courses whose title matches query, in catalogue order.
// An empty query returns the whole catalogue.
func (s *CatalogService) Courses(ctx context.Context, query string) ([]models.Course, error) {
	all, err := s.allCourses(ctx)
	if err != nil {
		return nil, err
	}
	return slices.Clone(filter.By(all, func(c models.Course) string { return c.Title }, filter.Text(query))), nil
}

// Faculty returns faculty whose name matches query.
func (s *CatalogService) Faculty(ctx context.Context, query string) ([]models.Faculty, error) {
	all, err := s.allFaculty(ctx)
	if err != nil {
		return nil, err
	}
	return slices.Clone(filter.By(all, func(f models.Faculty) string { return f.Name }, filter.Text(query))), nil
}

// FacultyByTags returns faculty carrying any of tags among their research
// fields or departments.
func (s *CatalogService) FacultyByTags(ctx context.Context, tags ...string) ([]models.Faculty, error) {
	all, err := s.allFaculty(ctx)
	if err != nil {
		return nil, err
	}
	m := filter.Tags(tags...)
	if m == nil {
		return slices.Clone(all), nil
	}
	return filter.Slice(all, func(f models.Faculty) bool {
		return m(f.Fields) || m(f.Departments)
	}), nil
}

// Reload drops the cached listings.
func (s *CatalogService) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.courseCache, s.facultyCache = nil, nil
	s.coursesLoaded, s.facultyLoaded = false, false
}
