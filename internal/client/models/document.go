package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Category classifies an uploaded document. Only CV and DARS exist.
type Category string

const (
	CategoryCV   Category = "CV"
	CategoryDARS Category = "DARS"
)

var ErrUnknownCategory = errors.New("unknown document category")

// ParseCategory accepts the category names case-insensitively.
func ParseCategory(s string) (Category, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(CategoryCV):
		return CategoryCV, nil
	case string(CategoryDARS):
		return CategoryDARS, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
}

// Document is a file the student uploaded at signup.
type Document struct {
	ID       string
	Name     string
	Label    string
	Category Category
}

// DocumentRef is a document as listed by the profile endpoint.
type DocumentRef struct {
	ID    FlexibleID `json:"id"`
	Name  string     `json:"name"`
	Label string     `json:"label"`
}

// Documents groups the uploads by kind, matching the profile response.
type Documents struct {
	DARS []DocumentRef `json:"dars"`
	CV   *DocumentRef  `json:"cv"`
}

// Flatten lists the CV first, then DARS reports in server order.
func (d Documents) Flatten() []Document {
	out := make([]Document, 0, len(d.DARS)+1)
	if d.CV != nil {
		out = append(out, d.CV.document(CategoryCV))
	}
	for _, r := range d.DARS {
		out = append(out, r.document(CategoryDARS))
	}
	return out
}

func (r DocumentRef) document(c Category) Document {
	return Document{ID: string(r.ID), Name: r.Name, Label: r.Label, Category: c}
}

// FlexibleID holds identifiers sent either as JSON numbers or strings.
type FlexibleID string

func (id *FlexibleID) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*id = FlexibleID(n.String())
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("id must be a number or string: %w", err)
	}
	*id = FlexibleID(s)
	return nil
}

func (id FlexibleID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}
