package harvest

import (
	"errors"

	"github.com/openswoop/socharvest/pkg/soc"
)

var (
	ErrMissingCourseID = errors.New("course without ID")
	ErrDuplicate       = errors.New("course already recorded for campus")
)

// Normalize turns an API record into a Course, registering its course string
// in idx. Records without an ID or already seen on the same campus are
// rejected with ErrMissingCourseID or ErrDuplicate and leave idx unchanged.
func Normalize(idx *Index, rec soc.CourseRecord, key soc.TermKey) (soc.Course, error) {
	courseID, ok := rec.CourseID()
	if !ok {
		return soc.Course{}, ErrMissingCourseID
	}
	if !idx.Add(key.Campus, courseID) {
		return soc.Course{}, ErrDuplicate
	}
	return soc.NewCourse(rec, courseID, key), nil
}
