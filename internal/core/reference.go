package core

import (
	"fmt"
	"os"
	"path/filepath"
)

// Reference table columns. These names are fixed by the reference-data
// provider (INSEE code officiel géographique exports).
const (
	CantonCodeColumn    = "BURCENTRAL"
	CommuneCodeColumn   = "COM"
	ReferenceNameColumn = "NCC"
)

// References resolves place codes to canonical place names using a
// fine-grained canton table first and a commune table as fallback.
// It is immutable once built and safe for concurrent use.
type References struct {
	canton  map[string]string
	commune map[string]string
}

// NewReferences builds References from in-memory tables. The maps are copied.
func NewReferences(canton, commune map[string]string) *References {
	return &References{
		canton:  copyTable(canton),
		commune: copyTable(commune),
	}
}

func copyTable(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// LoadReferences reads both reference files. Any failure wraps ErrReference
// and must halt the run.
func LoadReferences(cantonPath, communePath string) (*References, error) {
	canton, err := loadReferenceTable(cantonPath, CantonCodeColumn)
	if err != nil {
		return nil, err
	}
	commune, err := loadReferenceTable(communePath, CommuneCodeColumn)
	if err != nil {
		return nil, err
	}
	return &References{canton: canton, commune: commune}, nil
}

// loadReferenceTable reads a comma-delimited file into code -> name.
// Rows with an empty code are ignored; a repeated code keeps the last name.
func loadReferenceTable(path, codeColumn string) (map[string]string, error) {
	name := filepath.Base(path)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReference, name, err)
	}
	defer f.Close()

	rows, err := parseCSV(NewDecodingReader(f), ',')
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReference, name, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s: empty file", ErrReference, name)
	}

	codeIdx, nameIdx := -1, -1
	for i, h := range rows[0] {
		switch CleanCell(h) {
		case codeColumn:
			if codeIdx < 0 {
				codeIdx = i
			}
		case ReferenceNameColumn:
			if nameIdx < 0 {
				nameIdx = i
			}
		}
	}
	if codeIdx < 0 {
		return nil, fmt.Errorf("%w: %s: %w %q", ErrReference, name, ErrMissingColumn, codeColumn)
	}
	if nameIdx < 0 {
		return nil, fmt.Errorf("%w: %s: %w %q", ErrReference, name, ErrMissingColumn, ReferenceNameColumn)
	}

	table := make(map[string]string, len(rows)-1)
	for _, row := range rows[1:] {
		if codeIdx >= len(row) {
			continue
		}
		code := row[codeIdx]
		if code == "" {
			continue
		}
		var place string
		if nameIdx < len(row) {
			place = row[nameIdx]
		}
		table[code] = place
	}
	return table, nil
}

// Resolve returns the place name for code: canton first, then commune,
// then "".
func (r *References) Resolve(code string) string {
	if name := r.canton[code]; name != "" {
		return name
	}
	return r.commune[code]
}

// Sizes returns the number of entries in the canton and commune tables.
func (r *References) Sizes() (canton, commune int) {
	return len(r.canton), len(r.commune)
}
