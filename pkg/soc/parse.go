package soc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const summaryLength = 120

// ParseError reports a response body that is not a JSON array of courses.
// The harvester treats it as an empty term rather than a failed run.
type ParseError struct {
	Key     TermKey
	Summary string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s does not return valid JSON: %v (%s)", e.Key, e.Err, e.Summary)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var errNotArray = errors.New("response is not a JSON array")

// ParseCourses decodes a response body into course records. Any failure is
// returned as a *ParseError without a Key; callers fill it in.
func ParseCourses(body []byte) ([]CourseRecord, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			err = errNotArray
		}
		return nil, &ParseError{Summary: summarize(body), Err: err}
	}
	// A literal null decodes to a nil slice without error
	if items == nil && !bytes.HasPrefix(bytes.TrimSpace(body), []byte("[")) {
		return nil, &ParseError{Summary: summarize(body), Err: errNotArray}
	}

	records := make([]CourseRecord, 0, len(items))
	for _, item := range items {
		var rec CourseRecord
		if err := json.Unmarshal(item, &rec); err != nil || rec == nil {
			// Not an object; it has no courseString and is skipped downstream
			rec = CourseRecord{}
		}
		records = append(records, rec)
	}
	return records, nil
}

// summarize describes a body for diagnostics. The API answers outages with an
// HTML page, in which case its title is the most useful part.
func summarize(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return "empty body"
	}
	if trimmed[0] == '<' {
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(trimmed))
		if err == nil {
			if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
				return "html: " + title
			}
		}
	}
	s := strings.Join(strings.Fields(string(trimmed)), " ")
	if len(s) > summaryLength {
		n := summaryLength
		for n > 0 && !utf8.RuneStart(s[n]) {
			n--
		}
		s = s[:n] + "..."
	}
	return s
}
