package core

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/deces/internal/logging"
)

// Source supplies the parsed source files a search scans, in directory order.
type Source interface {
	Tables(ctx context.Context) ([]*Table, error)
}

// DirSource re-reads every file of Dir on each call. Files that fail to
// load are logged and skipped.
type DirSource struct {
	Dir string
}

// Tables lists and loads the directory.
func (s DirSource) Tables(ctx context.Context) ([]*Table, error) {
	paths, err := ListSources(s.Dir)
	if err != nil {
		return nil, err
	}
	return loadTables(ctx, paths)
}

func loadTables(ctx context.Context, paths []string) ([]*Table, error) {
	logger := logging.FromContext(ctx)

	tables := make([]*Table, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("loading sources cancelled: %w", err)
		}

		table, err := LoadFile(path)
		if err != nil {
			info := Describe(err)
			logger.Warn("skipping source file",
				"path", path,
				"code", info.Code,
				"error", err,
			)
			continue
		}
		logger.Debug("source file loaded",
			"path", path,
			"rows", table.Len(),
			"delimiter", string(table.Delimiter),
		)
		tables = append(tables, table)
	}
	return tables, nil
}

// Snapshot is a source directory parsed once and shared read-only by
// every search of a run.
type Snapshot struct {
	dir    string
	tables []*Table
}

// LoadSnapshot parses every *.csv file of dir. Unreadable files are
// logged and left out; a missing directory is an error.
func LoadSnapshot(ctx context.Context, dir string) (*Snapshot, error) {
	paths, err := ListSources(dir)
	if err != nil {
		return nil, err
	}
	tables, err := loadTables(ctx, paths)
	if err != nil {
		return nil, err
	}
	return &Snapshot{dir: dir, tables: tables}, nil
}

// NewSnapshot wraps already parsed tables.
func NewSnapshot(tables ...*Table) *Snapshot {
	return &Snapshot{tables: tables}
}

// Tables returns the shared tables. Callers must not modify them.
func (s *Snapshot) Tables(ctx context.Context) ([]*Table, error) {
	return s.tables, nil
}

// Rows returns the total number of data rows held.
func (s *Snapshot) Rows() int {
	n := 0
	for _, t := range s.tables {
		n += t.Len()
	}
	return n
}

// Files returns the number of files held.
func (s *Snapshot) Files() int {
	return len(s.tables)
}
