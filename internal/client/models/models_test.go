package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_Layouts(t *testing.T) {
	want := time.Date(2024, 9, 3, 14, 5, 6, 0, time.UTC)

	for _, in := range []string{
		`"2024-09-03T14:05:06Z"`,
		`"2024-09-03T14:05:06"`,
		`"2024-09-03 14:05:06"`,
		`"Tue, 03 Sep 2024 14:05:06 GMT"`,
	} {
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(in), &ts), in)
		assert.True(t, want.Equal(ts.Time), "%s parsed as %v", in, ts.Time)
	}

	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`"2024-09-03T14:05:06.123456"`), &ts))
	assert.Equal(t, 123456000, ts.Nanosecond())

	require.NoError(t, json.Unmarshal([]byte(`null`), &ts))
	assert.True(t, ts.IsZero())
	assert.Equal(t, "-", ts.String())

	assert.Error(t, json.Unmarshal([]byte(`"last tuesday"`), &ts))
}

func TestTimestamp_MarshalRoundTrip(t *testing.T) {
	p := Profile{Username: "bucky", Email: "bucky@wisc.edu"}
	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"bucky","email":"bucky@wisc.edu","created_at":null}`, string(b))

	p.CreatedAt = Timestamp{Time: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}
	b, err = json.Marshal(p)
	require.NoError(t, err)

	var back Profile
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, p.CreatedAt.Equal(back.CreatedAt.Time))
	assert.Equal(t, "2024-01-02", back.CreatedAt.String())
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" cv ")
	require.NoError(t, err)
	assert.Equal(t, CategoryCV, c)

	c, err = ParseCategory("Dars")
	require.NoError(t, err)
	assert.Equal(t, CategoryDARS, c)

	_, err = ParseCategory("transcript")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestAccount_DecodeAndFlatten(t *testing.T) {
	body := `{
	  "profile": {"username": "bucky", "email": "bucky@wisc.edu", "created_at": "2024-09-03T14:05:06"},
	  "documents": {
	    "dars": [{"id": 3, "name": "bucky_dars1.pdf", "label": "DARS 1"}, {"id": "4", "name": "bucky_dars2.pdf", "label": "DARS 2"}],
	    "cv": {"id": "cv-1", "name": "bucky_cv.pdf", "label": "CV"}
	  }
	}`

	var a Account
	require.NoError(t, json.Unmarshal([]byte(body), &a))
	assert.Equal(t, "bucky", a.Profile.Username)

	docs := a.Documents.Flatten()
	require.Len(t, docs, 3)
	assert.Equal(t, Document{ID: "cv-1", Name: "bucky_cv.pdf", Label: "CV", Category: CategoryCV}, docs[0])
	assert.Equal(t, Document{ID: "3", Name: "bucky_dars1.pdf", Label: "DARS 1", Category: CategoryDARS}, docs[1])
	assert.Equal(t, "4", docs[2].ID)
}

func TestDocuments_NoCV(t *testing.T) {
	var d Documents
	require.NoError(t, json.Unmarshal([]byte(`{"dars": [], "cv": null}`), &d))
	assert.Empty(t, d.Flatten())
}

func TestFlexibleID_Marshal(t *testing.T) {
	b, err := json.Marshal(struct {
		A FlexibleID `json:"a"`
		B FlexibleID `json:"b"`
	}{A: "12", B: "x-1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":12,"b":"x-1"}`, string(b))
}

func TestAuthResult_Access(t *testing.T) {
	assert.Equal(t, "legacy", AuthResult{Token: "legacy"}.Access())
	assert.Equal(t, "new", AuthResult{Token: "legacy", AccessToken: "new"}.Access())
}

func TestFaculty_AcceptsColumnTitlesAndLists(t *testing.T) {
	body := `[
	  {"Name": "Ada Lovelace", "Email": "ada@wisc.edu", "Faculty": "Computer Sciences; Mathematics",
	   "Summary of Research": "Engines", "Fields of Research": "AI, Theory", "Link to Page": "https://example.edu/ada"},
	  {"name": "Alan Turing", "departments": ["Computer Sciences"], "fields": ["AI", "Logic"], "unknown": 1}
	]`

	var fs []Faculty
	require.NoError(t, json.Unmarshal([]byte(body), &fs))
	require.Len(t, fs, 2)

	assert.Equal(t, "Ada Lovelace", fs[0].Name)
	assert.Equal(t, []string{"Computer Sciences", "Mathematics"}, fs[0].DepartmentList())
	assert.Equal(t, []string{"AI", "Theory"}, fs[0].FieldList())
	assert.Equal(t, "https://example.edu/ada", fs[0].Link)

	assert.Equal(t, "Computer Sciences", fs[1].Departments)
	assert.Equal(t, []string{"AI", "Logic"}, fs[1].FieldList())
}

func TestFaculty_Column(t *testing.T) {
	var f Faculty
	require.NotNil(t, f.FacultyColumn(" Fields of Research "))
	assert.Nil(t, f.FacultyColumn("Office Hours"))

	*f.FacultyColumn("Link to Page") = "x"
	assert.Equal(t, "x", f.Link)
}
