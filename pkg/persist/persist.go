package persist

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

type Transaction interface {
	Insert(list ...interface{}) error
}

type InsertFunc func(...interface{}) error

func (f InsertFunc) Insert(list ...interface{}) error {
	return f(list...)
}

// InsertIgnoringDupes inserts rows one at a time, dropping any that collide
// with an existing unique key.
func InsertIgnoringDupes(t Transaction) Transaction {
	return InsertFunc(func(list ...interface{}) error {
		for _, row := range list {
			err := t.Insert(row)
			if IsDuplicate(err) {
				continue // silently ignore
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func IsDuplicate(err error) bool {
	var sqliteError sqlite3.Error
	if !errors.As(err, &sqliteError) {
		return false
	}
	return sqliteError.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteError.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}
