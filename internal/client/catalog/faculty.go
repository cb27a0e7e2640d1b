package catalog

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/madhelp/internal/client/models"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type FacultySource interface {
	Faculty(ctx context.Context) ([]models.Faculty, error)
}

// FacultyLister is the part of the backend client the API source needs.
type FacultyLister interface {
	ListFaculty(ctx context.Context) ([]models.Faculty, error)
}

type APIFaculty struct {
	Client FacultyLister
}

func (s APIFaculty) Faculty(ctx context.Context) ([]models.Faculty, error) {
	return s.Client.ListFaculty(ctx)
}

type JSONFaculty struct {
	Path string
}

func (s JSONFaculty) Faculty(ctx context.Context) ([]models.Faculty, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open faculty: %w", err)
	}
	data = bytes.TrimSpace(data)

	var out []models.Faculty
	if len(data) > 0 && data[0] == '{' {
		var wrapped struct {
			Faculty []models.Faculty `json:"faculty"`
		}
		err = json.Unmarshal(data, &wrapped)
		out = wrapped.Faculty
	} else {
		err = json.Unmarshal(data, &out)
	}
	if err != nil {
		return nil, fmt.Errorf("decode faculty %s: %w", s.Path, err)
	}
	return out, nil
}

type CSVFaculty struct {
	Path string
}

func (s CSVFaculty) Faculty(ctx context.Context) ([]models.Faculty, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open faculty: %w", err)
	}
	defer f.Close()

	return ReadFaculty(f)
}

var facultyColumns = []string{"Name", "Email", "Faculty", "Summary of Research", "Fields of Research", "Link to Page"}

// ReadFaculty parses the research spreadsheet CSV. Only Name is required.
func ReadFaculty(r io.Reader) ([]models.Faculty, error) {
	var out []models.Faculty
	err := readTable(r, []string{"Name"}, func(get func(string) string) {
		var f models.Faculty
		for _, col := range facultyColumns {
			*f.FacultyColumn(col) = get(col)
		}
		if f.Name != "" {
			out = append(out, f)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("faculty: %w", err)
	}
	return out, nil
}

const facultyQuery = `
SELECT "Name", "Email", "Faculty", "Summary of Research", "Fields of Research", "Link to Page"
FROM faculty
ORDER BY "Name"`

// SQLFaculty reads the faculty table of a SQLite or PostgreSQL database.
type SQLFaculty struct {
	DB *sql.DB
}

func (s SQLFaculty) Faculty(ctx context.Context) ([]models.Faculty, error) {
	rows, err := s.DB.QueryContext(ctx, facultyQuery)
	if err != nil {
		return nil, fmt.Errorf("query faculty: %w", err)
	}
	defer rows.Close()

	var out []models.Faculty
	for rows.Next() {
		var name, email, dept, summary, fields, link sql.NullString
		if err := rows.Scan(&name, &email, &dept, &summary, &fields, &link); err != nil {
			return nil, fmt.Errorf("scan faculty: %w", err)
		}
		out = append(out, models.Faculty{
			Name:        name.String,
			Email:       email.String,
			Departments: dept.String,
			Summary:     summary.String,
			Fields:      fields.String,
			Link:        link.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate faculty: %w", err)
	}
	return out, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenFacultySource resolves a source string (see the package doc). The
// returned Closer releases any database handle and is never nil.
func OpenFacultySource(source string, api FacultyLister) (FacultySource, io.Closer, error) {
	source = strings.TrimSpace(source)
	lower := strings.ToLower(source)

	switch {
	case lower == "" || lower == "api":
		if api == nil {
			return nil, nil, fmt.Errorf("faculty source %q needs a backend client", source)
		}
		return APIFaculty{Client: api}, nopCloser{}, nil

	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		db, err := sql.Open("pgx", source)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres faculty source: %w", err)
		}
		return SQLFaculty{DB: db}, db, nil
	}

	switch strings.ToLower(filepath.Ext(source)) {
	case ".json":
		return JSONFaculty{Path: source}, nopCloser{}, nil
	case ".csv":
		return CSVFaculty{Path: source}, nopCloser{}, nil
	case ".db", ".sqlite", ".sqlite3":
		if _, err := os.Stat(source); err != nil {
			return nil, nil, fmt.Errorf("faculty database: %w", err)
		}
		db, err := sql.Open("sqlite", source)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite faculty source: %w", err)
		}
		return SQLFaculty{DB: db}, db, nil
	}

	return nil, nil, fmt.Errorf("unsupported faculty source %q", source)
}
