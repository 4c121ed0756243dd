package report

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/openswoop/socharvest/pkg/soc"
)

// Open modes accepted for the course log.
const (
	ModeAppend   = "a"
	ModeTruncate = "w"
	ModeCreate   = "x"
)

func openFlags(mode string) (int, error) {
	switch mode {
	case "", ModeAppend:
		return os.O_WRONLY | os.O_CREATE | os.O_APPEND, nil
	case ModeTruncate:
		return os.O_WRONLY | os.O_CREATE | os.O_TRUNC, nil
	case ModeCreate:
		return os.O_WRONLY | os.O_CREATE | os.O_EXCL, nil
	}
	return 0, fmt.Errorf("unsupported open mode %q (want a, w or x)", mode)
}

// CourseLog appends one JSON document per line.
type CourseLog struct {
	file *os.File
	enc  *json.Encoder
}

func OpenCourseLog(path, mode string) (*CourseLog, error) {
	flags, err := openFlags(mode)
	if err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return nil, err
	}
	enc := json.NewEncoder(file)
	enc.SetEscapeHTML(false)
	return &CourseLog{file: file, enc: enc}, nil
}

// Append writes the course as a single newline-terminated line.
func (l *CourseLog) Append(course soc.Course) error {
	return l.enc.Encode(course)
}

func (l *CourseLog) Close() error {
	return l.file.Close()
}

// ReadLog loads every course in a log file. Blank lines are skipped.
func ReadLog(path string) ([]soc.Course, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var courses []soc.Course
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		var course soc.Course
		if err := json.Unmarshal(text, &course); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		courses = append(courses, course)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return courses, nil
}
