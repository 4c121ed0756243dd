package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/openswoop/socharvest/pkg/soc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func course(id string, key soc.TermKey, fields map[string]string) soc.Course {
	rec := soc.CourseRecord{"courseString": json.RawMessage(`"` + id + `"`)}
	for k, v := range fields {
		rec[k] = json.RawMessage(v)
	}
	return soc.NewCourse(rec, id, key)
}

func TestCourseLogAppendMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "masterlist.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{\"uid\":\"old NB\"}\n"), 0644))

	l, err := OpenCourseLog(path, ModeAppend)
	require.NoError(t, err)
	require.NoError(t, l.Append(course("01:640:151", soc.TermKey{Campus: soc.NewBrunswick, Year: 2021, Term: soc.Spring}, nil)))
	require.NoError(t, l.Close())

	courses, err := ReadLog(path)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "old NB", courses[0].UID)
	assert.Equal(t, "01:640:151 NB", courses[1].UID)
}

func TestCourseLogTruncateMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "masterlist.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("stale\n"), 0644))

	l, err := OpenCourseLog(path, ModeTruncate)
	require.NoError(t, err)
	require.NoError(t, l.Append(course("a", soc.TermKey{Campus: soc.Camden, Year: 2022, Term: soc.Fall}, nil)))
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		`{"subject":" ","preReqNotes":" ","courseString":"a","school":" ","credits":" ",`+
			`"subjectDescription":" ","coreCodes":" ","expandedTitle":" ","title":" ",`+
			`"mainCampus":" ","level":" ","synopsisUrl":" ","lastOffered":"Fall 2022","uid":"a CM"}`+"\n",
		string(data))
}

func TestCourseLogDoesNotEscapeHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "masterlist.jsonl")
	l, err := OpenCourseLog(path, ModeCreate)
	require.NoError(t, err)
	c := course("a", soc.TermKey{Campus: soc.Camden, Year: 2022, Term: soc.Fall}, map[string]string{
		"synopsisUrl": `"http://example.edu/?a=1&b=2"`,
	})
	require.NoError(t, l.Append(c))
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"synopsisUrl":"http://example.edu/?a=1&b=2"`)

	_, err = OpenCourseLog(path, ModeCreate)
	assert.Error(t, err, "exclusive mode refuses an existing file")
}

func TestOpenCourseLogBadMode(t *testing.T) {
	_, err := OpenCourseLog(filepath.Join(t.TempDir(), "x.jsonl"), "r+")
	assert.EqualError(t, err, `unsupported open mode "r+" (want a, w or x)`)
}

func TestReadLogErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := ReadLog(filepath.Join(dir, "missing.jsonl"))
	assert.Error(t, err)

	path := filepath.Join(dir, "bad.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{\"uid\":\"a NB\"}\n\n{oops\n"), 0644))
	_, err = ReadLog(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.jsonl:3")
}

func TestLedgerBlocks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "course_ids.txt")
	for run := 0; run < 2; run++ {
		l, err := OpenLedger(path)
		require.NoError(t, err)
		require.NoError(t, l.WriteBlock(soc.NewBrunswick, []string{"01:640:151", "01:198:111"}))
		require.NoError(t, l.WriteBlock(soc.Newark, nil))
		require.NoError(t, l.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	block := "\nNB\n01:640:151\n01:198:111\n\nNK\n"
	assert.Equal(t, block+block, string(data))
}
