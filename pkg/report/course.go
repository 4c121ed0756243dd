package report

import (
	"sort"

	"github.com/openswoop/socharvest/pkg/soc"
)

// WriteCourses saves the courses as CSV, most recently offered first.
func WriteCourses(fileName string, courses []soc.Course) error {
	rows := make(courseReport, 0, len(courses))
	for _, c := range courses {
		rows = append(rows, toCsvCourse(c))
	}
	sort.Stable(sort.Reverse(rows))
	return WriteCsv(rows, fileName)
}

type courseReport []CsvCourse

func (r courseReport) Len() int {
	return len(r)
}

func (r courseReport) Swap(i, j int) {
	r[i], r[j] = r[j], r[i]
}

func (r courseReport) Less(i, j int) bool {
	return offeredOrdinal(r[i].LastOffered) < offeredOrdinal(r[j].LastOffered)
}

func offeredOrdinal(offered string) int {
	year, term, err := soc.ParseOffered(offered)
	if err != nil {
		return -1
	}
	return soc.TermKey{Year: year, Term: term}.Ordinal()
}
