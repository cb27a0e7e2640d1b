package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type course struct {
	title string
	tags  string
}

func titles(cs []course) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.title)
	}
	return out
}

var catalogue = []course{
	{title: "Intro to Biology", tags: "Life Sciences; Biology"},
	{title: "Calculus & Analytic Geometry 1", tags: "Mathematics"},
	{title: "Data Structures", tags: "Computer Science, Mathematics"},
	{title: "Introduction to Programming", tags: "Computer Science"},
}

func byTitle(c course) string { return c.title }
func byTags(c course) string  { return c.tags }

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Intro to Biology", "intro to biology"},
		{"  INTRO  to\tbio ", "intro to bio"},
		{"Calculus & Analytic Geometry 1", "calculus analytic geometry 1"},
		{"C++: Basics!", "c basics"},
		{"snake_case", "snake_case"},
		{"", ""},
		{"?!.", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "input %q", tt.in)
	}
}

func TestBy_EmptyQueryReturnsOriginalOrder(t *testing.T) {
	for _, q := range []string{"", "   ", "!!"} {
		got := By(catalogue, byTitle, Text(q))
		require.Equal(t, catalogue, got, "query %q", q)
	}
}

func TestBy_TextIsCaseAndWhitespaceInsensitive(t *testing.T) {
	got := By(catalogue, byTitle, Text("INTRO  to bio"))
	assert.Equal(t, []string{"Intro to Biology"}, titles(got))
}

func TestBy_TextIsStable(t *testing.T) {
	got := By(catalogue, byTitle, Text("intro"))
	assert.Equal(t, []string{"Intro to Biology", "Introduction to Programming"}, titles(got))
}

func TestBy_TextIgnoresPunctuation(t *testing.T) {
	got := By(catalogue, byTitle, Text("calculus analytic"))
	assert.Equal(t, []string{"Calculus & Analytic Geometry 1"}, titles(got))
}

func TestBy_NoMatch(t *testing.T) {
	got := By(catalogue, byTitle, Text("astrophysics"))
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestTags(t *testing.T) {
	got := By(catalogue, byTags, Tags("mathematics"))
	assert.Equal(t, []string{"Calculus & Analytic Geometry 1", "Data Structures"}, titles(got))

	got = By(catalogue, byTags, Tags("biology", "COMPUTER SCIENCE"))
	assert.Equal(t, []string{"Intro to Biology", "Data Structures", "Introduction to Programming"}, titles(got))

	// membership is exact per entry, not a substring search
	got = By(catalogue, byTags, Tags("science"))
	assert.Empty(t, got)

	assert.Nil(t, Tags())
	assert.Nil(t, Tags("", "  "))
	assert.Equal(t, catalogue, By(catalogue, byTags, Tags()))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"AI", "Robotics", "Vision"}, SplitList(" AI; Robotics ,Vision,, "))
	assert.Equal(t, []string{"a", "b"}, SplitList("a|b"))
	assert.Empty(t, SplitList(""))
}

func TestSlice_NilPredicate(t *testing.T) {
	in := []int{3, 1, 2}
	assert.Equal(t, in, Slice(in, nil))
	assert.Equal(t, []int{3, 2}, Slice(in, func(v int) bool { return v != 1 }))
}
