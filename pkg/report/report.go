package report

import (
	"os"

	"github.com/gocarina/gocsv"
	"github.com/openswoop/socharvest/pkg/soc"
)

type CsvCourse struct {
	UID                string `csv:"uid"`
	CourseString       string `csv:"course"`
	Campus             string `csv:"campus"`
	LastOffered        string `csv:"last_offered"`
	Title              string `csv:"title"`
	ExpandedTitle      string `csv:"expanded_title"`
	Subject            string `csv:"subject"`
	SubjectDescription string `csv:"subject_description"`
	School             string `csv:"school"`
	Credits            string `csv:"credits"`
	Level              string `csv:"level"`
	MainCampus         string `csv:"main_campus"`
	CoreCodes          string `csv:"core_codes"`
	PreReqNotes        string `csv:"prereq_notes"`
	SynopsisUrl        string `csv:"synopsis_url"`
}

func toCsvCourse(c soc.Course) CsvCourse {
	return CsvCourse{
		UID:                c.UID,
		CourseString:       soc.Text(c.CourseString),
		Campus:             campusOf(c),
		LastOffered:        c.LastOffered,
		Title:              soc.Text(c.Title),
		ExpandedTitle:      soc.Text(c.ExpandedTitle),
		Subject:            soc.Text(c.Subject),
		SubjectDescription: soc.Text(c.SubjectDescription),
		School:             soc.Text(c.School),
		Credits:            soc.Text(c.Credits),
		Level:              soc.Text(c.Level),
		MainCampus:         soc.Text(c.MainCampus),
		CoreCodes:          soc.Text(c.CoreCodes),
		PreReqNotes:        soc.Text(c.PreReqNotes),
		SynopsisUrl:        soc.Text(c.SynopsisURL),
	}
}

// campusOf recovers the campus from the uid suffix.
func campusOf(c soc.Course) string {
	for i := len(c.UID) - 1; i >= 0; i-- {
		if c.UID[i] == ' ' {
			return c.UID[i+1:]
		}
	}
	return ""
}

func WriteCsv(in interface{}, fileName string) error {
	file, err := os.Create(fileName)
	if err != nil {
		return err
	}
	if err := gocsv.Marshal(in, file); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
