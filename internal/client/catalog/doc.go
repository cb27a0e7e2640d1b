// Package catalog loads the read-only course and faculty listings.
//
// Courses come from the catalogue CSV export. Faculty listings come from
// the backend or from a local export of the research spreadsheet, selected
// by a source string:
//
//	api                         GET /api/faculty on the backend
//	path/to/faculty.json        JSON array (or {"faculty": [...]})
//	path/to/faculty.csv         spreadsheet CSV export
//	path/to/faculty.db          SQLite database with a faculty table
//	postgres://user@host/db     PostgreSQL database with a faculty table
package catalog
