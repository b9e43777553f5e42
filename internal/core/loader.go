package core

// loader.go reads death-record extracts from disk.
//
// Extracts come from several producers and do not agree on a delimiter,
// so the first line is sniffed before parsing. Input is decoded through a
// BOM-aware UTF-8 decoder: a leading BOM is dropped and invalid byte
// sequences become U+FFFD instead of failing the parse.

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// SourceExt is the extension of files considered in the source directory.
const SourceExt = ".csv"

// delimiterCandidates are tried by SniffDelimiter, in tie-break order.
var delimiterCandidates = []rune{',', ';', '\t', '|', ':'}

// Table is one parsed source file. A Table is never modified after
// LoadFile returns and may be shared between goroutines.
type Table struct {
	Path      string
	Delimiter rune
	Header    []string
	Index     HeaderIndex
	Rows      [][]string
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Record returns data row i bound to the header.
func (t *Table) Record(i int) RawRecord {
	return NewRawRecord(t.Index, t.Rows[i])
}

// HasColumn reports whether the header contains name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.Index[strings.ToLower(name)]
	return ok
}

// NewDecodingReader strips a UTF-8 BOM and sanitizes invalid UTF-8.
func NewDecodingReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}

// LoadFile reads one CSV file, sniffing its delimiter from the first line.
// Every failure wraps ErrFileLoad; callers skip the file and continue.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFileLoad, filepath.Base(path), err)
	}
	defer f.Close()

	data, err := io.ReadAll(NewDecodingReader(f))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFileLoad, filepath.Base(path), err)
	}

	first := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		first = data[:i]
	}
	delim, err := SniffDelimiter(string(first))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFileLoad, filepath.Base(path), err)
	}

	rows, err := parseCSV(bytes.NewReader(data), delim)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFileLoad, filepath.Base(path), err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s: empty file", ErrFileLoad, filepath.Base(path))
	}

	return &Table{
		Path:      path,
		Delimiter: delim,
		Header:    rows[0],
		Index:     MakeHeaderIndex(rows[0]),
		Rows:      rows[1:],
	}, nil
}

func parseCSV(r io.Reader, delim rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SniffDelimiter picks the delimiter of a header line: the candidate that
// occurs most often outside double quotes. Ties go to the earlier candidate.
func SniffDelimiter(line string) (rune, error) {
	line = strings.TrimRight(line, "\r\n")

	counts := make(map[rune]int, len(delimiterCandidates))
	inQuotes := false
	for _, r := range line {
		if r == '"' {
			inQuotes = !inQuotes
			continue
		}
		if !inQuotes {
			counts[r]++
		}
	}

	best, bestCount := rune(0), 0
	for _, c := range delimiterCandidates {
		if counts[c] > bestCount {
			best, bestCount = c, counts[c]
		}
	}
	if bestCount == 0 {
		return 0, ErrNoDelimiter
	}
	return best, nil
}

// ListSources returns the *.csv regular files of dir in lexical order.
// A missing directory wraps ErrSourceDirMissing.
func ListSources(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceDirMissing, dir)
		}
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.HasSuffix(entry.Name(), SourceExt) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}

// CheckSourceDir fails when dir does not exist or is not a directory.
func CheckSourceDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrSourceDirMissing, dir)
		}
		return fmt.Errorf("checking source directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrSourceDirMissing, dir)
	}
	return nil
}
