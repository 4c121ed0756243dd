package database

import (
	"strings"

	"github.com/openswoop/socharvest/pkg/soc"
)

// CourseRow is the flattened, typed form of a course used by both the SQLite
// mirror and BigQuery.
type CourseRow struct {
	ID                 int64  `db:"id" bigquery:"-"`
	UID                string `db:"uid" bigquery:"uid"`
	CourseString       string `db:"course_string" bigquery:"course_string"`
	Campus             string `db:"campus" bigquery:"campus"`
	LastOffered        string `db:"last_offered" bigquery:"last_offered"`
	OfferedOrdinal     int64  `db:"offered_ordinal" bigquery:"offered_ordinal"`
	Subject            string `db:"subject" bigquery:"subject"`
	SubjectDescription string `db:"subject_description" bigquery:"subject_description"`
	School             string `db:"school" bigquery:"school"`
	Title              string `db:"title" bigquery:"title"`
	ExpandedTitle      string `db:"expanded_title" bigquery:"expanded_title"`
	Credits            string `db:"credits" bigquery:"credits"`
	Level              string `db:"level" bigquery:"level"`
	MainCampus         string `db:"main_campus" bigquery:"main_campus"`
	CoreCodes          string `db:"core_codes" bigquery:"core_codes"`
	PreReqNotes        string `db:"prereq_notes" bigquery:"prereq_notes"`
	SynopsisUrl        string `db:"synopsis_url" bigquery:"synopsis_url"`
}

func NewCourseRow(c soc.Course) CourseRow {
	courseID, campus := c.UID, ""
	if i := strings.LastIndex(c.UID, " "); i >= 0 {
		courseID, campus = c.UID[:i], c.UID[i+1:]
	}

	var ordinal int64 = -1
	if year, term, err := soc.ParseOffered(c.LastOffered); err == nil {
		ordinal = int64(soc.TermKey{Year: year, Term: term}.Ordinal())
	}

	return CourseRow{
		UID:                c.UID,
		CourseString:       courseID,
		Campus:             campus,
		LastOffered:        c.LastOffered,
		OfferedOrdinal:     ordinal,
		Subject:            soc.Text(c.Subject),
		SubjectDescription: soc.Text(c.SubjectDescription),
		School:             soc.Text(c.School),
		Title:              soc.Text(c.Title),
		ExpandedTitle:      soc.Text(c.ExpandedTitle),
		Credits:            soc.Text(c.Credits),
		Level:              soc.Text(c.Level),
		MainCampus:         soc.Text(c.MainCampus),
		CoreCodes:          soc.Text(c.CoreCodes),
		PreReqNotes:        soc.Text(c.PreReqNotes),
		SynopsisUrl:        soc.Text(c.SynopsisURL),
	}
}

func newCourseRows(courses []soc.Course) []CourseRow {
	rows := make([]CourseRow, len(courses))
	for i, c := range courses {
		rows[i] = NewCourseRow(c)
	}
	return rows
}

// latestRows keeps one row per uid, preferring the most recent offering. Rows
// stay in the order their uid first appeared.
func latestRows(rows []CourseRow) []CourseRow {
	index := make(map[string]int, len(rows))
	out := make([]CourseRow, 0, len(rows))
	for _, row := range rows {
		i, found := index[row.UID]
		if !found {
			index[row.UID] = len(out)
			out = append(out, row)
			continue
		}
		if row.OfferedOrdinal > out[i].OfferedOrdinal {
			out[i] = row
		}
	}
	return out
}
