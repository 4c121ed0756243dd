package report

import (
	"bufio"
	"os"

	"github.com/openswoop/socharvest/pkg/soc"
)

// Ledger is a plain-text record of the course strings seen per campus. It is
// always appended to, so repeated runs accumulate blocks.
type Ledger struct {
	file *os.File
}

func OpenLedger(path string) (*Ledger, error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	return &Ledger{file: file}, nil
}

// WriteBlock writes a newline, the campus code, then one course string per
// line.
func (l *Ledger) WriteBlock(campus soc.Campus, courseIDs []string) error {
	w := bufio.NewWriter(l.file)
	w.WriteString("\n")
	w.WriteString(string(campus))
	w.WriteString("\n")
	for _, id := range courseIDs {
		w.WriteString(id)
		w.WriteString("\n")
	}
	return w.Flush()
}

func (l *Ledger) Close() error {
	return l.file.Close()
}
