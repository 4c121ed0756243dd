package soc

import (
	"bytes"
	"encoding/json"
)

// CourseRecord is one course object as returned by the API. Values are kept
// raw since the API mixes strings, numbers, arrays and nulls.
type CourseRecord map[string]json.RawMessage

// SelectedFields are copied from a CourseRecord into a Course, in output order.
var SelectedFields = []string{
	"subject", "preReqNotes", "courseString", "school", "credits",
	"subjectDescription", "coreCodes", "expandedTitle", "title",
	"mainCampus", "level", "synopsisUrl",
}

// Placeholder stands in for any selected field the API left out.
var Placeholder = json.RawMessage(`" "`)

// Course is the normalized record written to the course log.
type Course struct {
	Subject            json.RawMessage `json:"subject"`
	PreReqNotes        json.RawMessage `json:"preReqNotes"`
	CourseString       json.RawMessage `json:"courseString"`
	School             json.RawMessage `json:"school"`
	Credits            json.RawMessage `json:"credits"`
	SubjectDescription json.RawMessage `json:"subjectDescription"`
	CoreCodes          json.RawMessage `json:"coreCodes"`
	ExpandedTitle      json.RawMessage `json:"expandedTitle"`
	Title              json.RawMessage `json:"title"`
	MainCampus         json.RawMessage `json:"mainCampus"`
	Level              json.RawMessage `json:"level"`
	SynopsisURL        json.RawMessage `json:"synopsisUrl"`
	LastOffered        string          `json:"lastOffered"`
	UID                string          `json:"uid"`
}

func (c *Course) selected() []*json.RawMessage {
	return []*json.RawMessage{
		&c.Subject, &c.PreReqNotes, &c.CourseString, &c.School, &c.Credits,
		&c.SubjectDescription, &c.CoreCodes, &c.ExpandedTitle, &c.Title,
		&c.MainCampus, &c.Level, &c.SynopsisURL,
	}
}

// NewCourse copies the selected fields of rec, substituting Placeholder for
// missing ones, and stamps the derived lastOffered and uid values.
func NewCourse(rec CourseRecord, courseID string, key TermKey) Course {
	var c Course
	for i, field := range c.selected() {
		if raw, ok := rec[SelectedFields[i]]; ok {
			*field = append(json.RawMessage(nil), raw...)
		} else {
			*field = Placeholder
		}
	}
	c.LastOffered = key.Offered()
	c.UID = courseID + " " + string(key.Campus)
	return c
}

// Field looks a selected field up by its JSON name.
func (c *Course) Field(name string) (json.RawMessage, bool) {
	for i, field := range c.selected() {
		if SelectedFields[i] == name {
			return *field, true
		}
	}
	return nil, false
}

// CourseID returns the record's courseString. A missing or null value
// reports false.
func (r CourseRecord) CourseID() (string, bool) {
	raw, ok := r["courseString"]
	if !ok || isNull(raw) {
		return "", false
	}
	return Text(raw), true
}

// Text flattens a raw value to plain text: strings are unquoted, anything
// else is rendered as compact JSON.
func Text(raw json.RawMessage) string {
	if len(raw) == 0 || isNull(raw) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}
