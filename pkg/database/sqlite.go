package database

import (
	"database/sql"
	"fmt"

	"github.com/go-gorp/gorp/v3"
	_ "github.com/mattn/go-sqlite3"
	"github.com/openswoop/socharvest/pkg/persist"
	"github.com/openswoop/socharvest/pkg/soc"
)

// Sqlite mirrors harvested courses into a local database keyed by uid.
// Unlike the course log it deduplicates across runs.
type Sqlite struct {
	db    *sql.DB
	dbmap *gorp.DbMap
}

func NewSqlite(file string) (Sqlite, error) {
	sqlite := Sqlite{}

	// Initialize the database connection
	db, err := sql.Open("sqlite3", file)
	if err != nil {
		return sqlite, fmt.Errorf("unable to connect to database: %w", err)
	}
	sqlite.db = db

	// Initialize the database mapping, creating the table if it's our first run
	dbmap := &gorp.DbMap{Db: db, Dialect: gorp.SqliteDialect{}}
	table := dbmap.AddTableWithName(CourseRow{}, "courses").SetKeys(true, "ID")
	table.ColMap("UID").SetUnique(true).SetNotNull(true)
	if err := dbmap.CreateTablesIfNotExists(); err != nil {
		_ = db.Close()
		return sqlite, fmt.Errorf("unable to create tables: %w", err)
	}
	sqlite.dbmap = dbmap

	return sqlite, nil
}

func (s Sqlite) SaveCourses(courses []soc.Course) error {
	rows := newCourseRows(courses)
	insertData := make([]interface{}, 0, len(rows))
	for i := range rows {
		insertData = append(insertData, &rows[i])
	}

	tx, err := s.dbmap.Begin()
	if err != nil {
		return err
	}
	if err := persist.InsertIgnoringDupes(tx).Insert(insertData...); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Append lets the mirror act as a harvest sink.
func (s Sqlite) Append(course soc.Course) error {
	row := NewCourseRow(course)
	return persist.InsertIgnoringDupes(s.dbmap).Insert(&row)
}

func (s Sqlite) Courses() ([]CourseRow, error) {
	var rows []CourseRow
	_, err := s.dbmap.Select(&rows, "SELECT * FROM courses ORDER BY id")
	return rows, err
}

func (s Sqlite) Close() error {
	return s.db.Close()
}
