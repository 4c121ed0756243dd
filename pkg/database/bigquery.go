package database

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/openswoop/socharvest/pkg/soc"
	"google.golang.org/api/googleapi"
)

const coursesTable = "courses"

type BigQuery struct {
	ctx     context.Context
	client  *bigquery.Client
	dataset *bigquery.Dataset
}

func NewBigQuery(ctx context.Context, projectID, datasetID string) (BigQuery, error) {
	var bq BigQuery

	// Set up BigQuery
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return bq, fmt.Errorf("failed to create client: %w", err)
	}

	dataset := client.Dataset(datasetID)
	if err := dataset.Create(ctx, nil); err != nil {
		if !isDuplicateError(err) {
			_ = client.Close()
			return bq, fmt.Errorf("failed to create dataset: %w", err)
		}
	}

	bq = BigQuery{ctx, client, dataset}
	return bq, nil
}

// SaveCourses merges courses into the courses table by uid. Existing rows are
// only overwritten by a more recent offering. The merge needs at most one
// source row per uid, so repeated log entries are collapsed first.
func (bq BigQuery) SaveCourses(courses []soc.Course) error {
	if len(courses) == 0 {
		return nil
	}
	return bq.insert(CourseRow{}, coursesTable, latestRows(newCourseRows(courses)), `
		WHEN MATCHED AND s.offered_ordinal > t.offered_ordinal THEN
		  UPDATE
		    SET last_offered = s.last_offered,
		        offered_ordinal = s.offered_ordinal,
		        subject = s.subject,
		        subject_description = s.subject_description,
		        school = s.school,
		        title = s.title,
		        expanded_title = s.expanded_title,
		        credits = s.credits,
		        level = s.level,
		        main_campus = s.main_campus,
		        core_codes = s.core_codes,
		        prereq_notes = s.prereq_notes,
		        synopsis_url = s.synopsis_url`)
}

func (bq BigQuery) insert(st interface{}, tableName string, data interface{}, whenClause string) error {
	// Infer the table schema
	schema, err := bigquery.InferSchema(st)
	if err != nil {
		return fmt.Errorf("failed to infer schema: %w", err)
	}

	// Get a reference to the table
	table := bq.dataset.Table(tableName)
	if err := table.Create(bq.ctx, &bigquery.TableMetadata{Schema: schema}); err != nil {
		if !isDuplicateError(err) {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	// Stage rows in a fresh table so the merge sees a consistent snapshot
	tempName := tableName + "_" + strconv.Itoa(int(time.Now().Unix()))
	newArrivals := bq.dataset.Table(tempName)
	if err := newArrivals.Create(bq.ctx, &bigquery.TableMetadata{Schema: schema}); err != nil {
		if !isDuplicateError(err) {
			return fmt.Errorf("failed to create arrivals table: %w", err)
		}
	}

	// Upload data
	u := newArrivals.Inserter()
	if err := u.Put(bq.ctx, data); err != nil {
		return fmt.Errorf("failed to insert rows: %w", err)
	}

	// Merge data
	q := bq.client.Query(mergeQuery(bq.dataset.DatasetID, tableName, tempName, whenClause))
	job, err := q.Run(bq.ctx)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	status, err := job.Wait(bq.ctx)
	if err != nil {
		return fmt.Errorf("failed to wait for merge: %w", err)
	}
	if err := status.Err(); err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}

	// Don't delete the temp table so we can manually audit insertions
	return nil
}

func mergeQuery(datasetID, tableName, tempName, whenClause string) string {
	return fmt.Sprintf(`
		MERGE %s.%s t
		USING %s.%s s
		ON t.uid = s.uid
		%s
		WHEN NOT MATCHED THEN
		  INSERT ROW`, datasetID, tableName, datasetID, tempName, whenClause)
}

func (bq BigQuery) Close() error {
	return bq.client.Close()
}

func isDuplicateError(err error) bool {
	var e *googleapi.Error
	if errors.As(err, &e) {
		return e.Code == 409
	}
	return false
}
