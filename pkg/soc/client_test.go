package soc

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCourses(t *testing.T) {
	records, err := ParseCourses([]byte(`[{"courseString":"01:640:151"},{"title":"t"}]`))
	require.NoError(t, err)
	require.Len(t, records, 2)
	id, ok := records[0].CourseID()
	assert.True(t, ok)
	assert.Equal(t, "01:640:151", id)

	records, err = ParseCourses([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParseCoursesNonObjectItems(t *testing.T) {
	records, err := ParseCourses([]byte(`[1, null, "x"]`))
	require.NoError(t, err)
	require.Len(t, records, 3)
	for _, rec := range records {
		_, ok := rec.CourseID()
		assert.False(t, ok)
	}
}

func TestParseCoursesFailures(t *testing.T) {
	cases := map[string]string{
		"text":   "Service Unavailable",
		"empty":  "",
		"object": `{"error":"bad campus"}`,
		"null":   "null",
		"string": `"courses"`,
		"html":   "<html><head><title>502 Bad Gateway</title></head><body></body></html>",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCourses([]byte(body))
			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr), "got %v", err)
			assert.NotEmpty(t, parseErr.Summary)
		})
	}
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, "empty body", summarize([]byte("  \n")))
	assert.Equal(t, "html: Maintenance", summarize([]byte("<html><title> Maintenance </title></html>")))
	assert.Equal(t, "not json", summarize([]byte("not\n  json")))

	long := make([]byte, 500)
	for i := range long {
		long[i] = 'a'
	}
	assert.Len(t, summarize(long), summaryLength+3)
}

func TestFetchTerm(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		got = append(got, fmt.Sprintf("%s %s %s", q.Get("campus"), q.Get("year"), q.Get("term")))
		if q.Get("term") == "7" {
			fmt.Fprint(w, "<html><title>Oops</title></html>")
			return
		}
		fmt.Fprint(w, `[{"courseString":"01:640:151"}]`)
	}))
	defer srv.Close()

	client := NewClient(NewCollector("", 0), srv.URL)

	records, err := client.FetchTerm(TermKey{NewBrunswick, 2021, Spring})
	require.NoError(t, err)
	assert.Len(t, records, 1)

	// revisiting the same URL is allowed
	_, err = client.FetchTerm(TermKey{NewBrunswick, 2021, Spring})
	require.NoError(t, err)

	_, err = client.FetchTerm(TermKey{Camden, 2023, Summer})
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, TermKey{Camden, 2023, Summer}, parseErr.Key)
	assert.Equal(t, "html: Oops", parseErr.Summary)
	assert.Contains(t, parseErr.Error(), "CM 2023 7 does not return valid JSON")

	assert.Equal(t, []string{"NB 2021 1", "NB 2021 1", "CM 2023 7"}, got)
}

func TestFetchTermHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(NewCollector("", 0), srv.URL)
	_, err := client.FetchTerm(TermKey{Newark, 2022, Fall})
	require.Error(t, err)

	var parseErr *ParseError
	assert.False(t, errors.As(err, &parseErr), "HTTP failures must not be recoverable")
}

func TestClientUrl(t *testing.T) {
	client := NewClient(NewCollector("", 0), "")
	assert.Equal(t,
		"https://classes.rutgers.edu/soc/api/courses.json?year=2025&term=9&campus=NB",
		client.Url(TermKey{NewBrunswick, 2025, Fall}))
}

func TestSummarizeKeepsRunesWhole(t *testing.T) {
	body := strings.Repeat("a", summaryLength-1) + "é" + "zzz"
	s := summarize([]byte(body))
	assert.True(t, utf8.ValidString(s))
	assert.Equal(t, strings.Repeat("a", summaryLength-1)+"...", s)
}
