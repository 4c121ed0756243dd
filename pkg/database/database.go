package database

import (
	"io"

	"github.com/openswoop/socharvest/pkg/soc"
)

type Database interface {
	io.Closer
	SaveCourses([]soc.Course) error
}
