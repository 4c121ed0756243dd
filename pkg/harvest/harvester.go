package harvest

import (
	"context"
	"errors"
	"fmt"

	"github.com/openswoop/socharvest/pkg/soc"
	"go.uber.org/zap"
)

// Source returns the course records offered for one term on one campus.
type Source interface {
	FetchTerm(key soc.TermKey) ([]soc.CourseRecord, error)
}

// Sink receives every course that survives deduplication.
type Sink interface {
	Append(course soc.Course) error
}

// LedgerWriter records one campus block of seen course strings.
type LedgerWriter interface {
	WriteBlock(campus soc.Campus, courseIDs []string) error
}

type Stats struct {
	Terms         int
	InvalidTerms  int
	Records       int
	Appended      int
	MissingID     int
	Duplicates    int
	CampusCourses map[soc.Campus]int
}

type Harvester struct {
	Source Source
	Sinks  []Sink
	Ledger LedgerWriter
	Logger *zap.Logger

	// Keys overrides the default campus/year/term enumeration.
	Keys []soc.TermKey
}

// Run walks every term key in order, appending new courses to the sinks, then
// writes the ledger once. A fetch failure other than an unparseable body
// aborts the run before the ledger is written.
func (h *Harvester) Run(ctx context.Context) (Stats, error) {
	logger := h.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	keys := h.Keys
	if keys == nil {
		keys = soc.Enumerate()
	}

	idx := NewIndex()
	stats := Stats{CampusCourses: make(map[soc.Campus]int)}

	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.Terms++

		fields := keyFields(key)
		logger.Info("Adding courses", fields...)

		records, err := h.Source.FetchTerm(key)
		if err != nil {
			var parseErr *soc.ParseError
			if errors.As(err, &parseErr) {
				stats.InvalidTerms++
				logger.Warn("Term does not return valid JSON", append(fields,
					zap.String("summary", parseErr.Summary),
					zap.Error(parseErr.Err))...)
				continue
			}
			return stats, err
		}
		if len(records) == 0 {
			continue
		}

		for _, rec := range records {
			stats.Records++
			course, err := Normalize(idx, rec, key)
			switch {
			case errors.Is(err, ErrMissingCourseID):
				stats.MissingID++
				logger.Warn("Course without ID", fields...)
				continue
			case errors.Is(err, ErrDuplicate):
				stats.Duplicates++
				continue
			case err != nil:
				return stats, err
			}

			for _, sink := range h.Sinks {
				if err := sink.Append(course); err != nil {
					return stats, fmt.Errorf("failed to append %s: %w", course.UID, err)
				}
			}
			stats.Appended++
			stats.CampusCourses[key.Campus]++
		}
	}

	if h.Ledger != nil {
		if err := WriteLedger(h.Ledger, idx); err != nil {
			return stats, fmt.Errorf("failed to write ledger: %w", err)
		}
	}

	logger.Info("Harvest complete",
		zap.Int("terms", stats.Terms),
		zap.Int("invalid_terms", stats.InvalidTerms),
		zap.Int("records", stats.Records),
		zap.Int("appended", stats.Appended),
		zap.Int("missing_id", stats.MissingID),
		zap.Int("duplicates", stats.Duplicates))
	return stats, nil
}

// WriteLedger dumps the index one campus block at a time.
func WriteLedger(w LedgerWriter, idx *Index) error {
	for _, campus := range idx.Campuses() {
		if err := w.WriteBlock(campus, idx.IDs(campus)); err != nil {
			return err
		}
	}
	return nil
}

func keyFields(key soc.TermKey) []zap.Field {
	return []zap.Field{
		zap.String("campus", string(key.Campus)),
		zap.Int("year", key.Year),
		zap.Int("term", int(key.Term)),
	}
}
