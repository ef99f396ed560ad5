// Package tracker writes and reads the experiment log, a stream of
// records whose fields are joined by "||". The first line of each
// stream is a header naming the fields.
package tracker

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Separator separates fields in the log
const Separator = "||"

// TimeFormat is the layout of the timestamp prefixed to each line of
// file logs
const TimeFormat = "2006-01-02 15:04:05,000"

// LogFile is the name of the log file in a log directory
const LogFile = "progress.csv"

// Tracker keeps track of experiment data
type Tracker interface {
	Track(r Record) error
}

// Pipe is a Tracker that writes records to a stream. The header is
// written before the first record, once per Pipe.
type Pipe struct {
	w          io.Writer
	timestamps bool
	now        func() time.Time

	headerWritten bool
}

// NewPipe returns a new Pipe writing to w. If timestamps is true,
// each line is prefixed by the time it was written.
func NewPipe(w io.Writer, timestamps bool) *Pipe {
	return &Pipe{w: w, timestamps: timestamps, now: time.Now}
}

// Open opens the log file in directory dir for appending, creating
// the directory if needed. The returned Pipe timestamps each line and
// the file must be closed by the caller.
func Open(dir string) (*Pipe, *os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("open: could not create log "+
			"directory: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(dir, LogFile),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open: could not open log: %w", err)
	}
	return NewPipe(f, true), f, nil
}

// WriteHeader writes the header if it has not been written yet
func (p *Pipe) WriteHeader() error {
	if p.headerWritten {
		return nil
	}
	if err := p.writeLine(Names()); err != nil {
		return fmt.Errorf("writeHeader: %w", err)
	}
	p.headerWritten = true
	return nil
}

// Track writes the record r
func (p *Pipe) Track(r Record) error {
	values, err := r.Values()
	if err != nil {
		return fmt.Errorf("track: %w", err)
	}

	if err := p.WriteHeader(); err != nil {
		return fmt.Errorf("track: %w", err)
	}
	if err := p.writeLine(values); err != nil {
		return fmt.Errorf("track: %w", err)
	}
	return nil
}

func (p *Pipe) writeLine(values []string) error {
	line := strings.Join(values, Separator)
	if p.timestamps {
		line = p.now().Format(TimeFormat) + Separator + line
	}
	_, err := io.WriteString(p.w, line+"\n")
	return err
}

// Read reads a log written by a Pipe, returning each record as a map
// of field name to formatted value. Timestamp prefixes are dropped and
// repeated headers, as written by appending runs, are skipped.
func Read(r io.Reader) ([]map[string]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var header []string
	offset := 0
	var records []map[string]string

	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimRight(scanner.Text(), "\r")
		if text == "" {
			continue
		}
		tokens := strings.Split(text, Separator)

		if i := indexOf(tokens, Fields[0].Name); i >= 0 && i <= 1 {
			if header == nil {
				header = tokens[i:]
			}
			offset = i
			continue
		}

		if header == nil {
			return nil, fmt.Errorf("read: line %d: record before header",
				line)
		}
		if len(tokens)-offset != len(header) {
			return nil, fmt.Errorf("read: line %d: expected %d fields but "+
				"got %d", line, len(header), len(tokens)-offset)
		}

		record := make(map[string]string, len(header))
		for j, name := range header {
			record[name] = tokens[j+offset]
		}
		records = append(records, record)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return records, nil
}

func indexOf(tokens []string, s string) int {
	for i := range tokens {
		if tokens[i] == s {
			return i
		}
	}
	return -1
}
