package database

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"cloud.google.com/go/bigquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, isDuplicateError(&googleapi.Error{Code: 409}))
	assert.True(t, isDuplicateError(fmt.Errorf("create: %w", &googleapi.Error{Code: 409})))
	assert.False(t, isDuplicateError(&googleapi.Error{Code: 403}))
	assert.False(t, isDuplicateError(errors.New("409")))
}

func TestMergeQuery(t *testing.T) {
	q := mergeQuery("soc", "courses", "courses_1700000000", "WHEN MATCHED THEN DELETE")
	assert.Contains(t, q, "MERGE soc.courses t")
	assert.Contains(t, q, "USING soc.courses_1700000000 s")
	assert.Contains(t, q, "ON t.uid = s.uid")
	assert.Less(t, strings.Index(q, "WHEN MATCHED THEN DELETE"), strings.Index(q, "WHEN NOT MATCHED THEN"))
}

func TestCourseRowSchema(t *testing.T) {
	schema, err := bigquery.InferSchema(CourseRow{})
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, field := range schema {
		names[field.Name] = true
	}
	assert.True(t, names["uid"])
	assert.True(t, names["offered_ordinal"])
	assert.False(t, names["id"])
	assert.Len(t, schema, 16)
}
