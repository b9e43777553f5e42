package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sourceHeader = "nomprenom;sexe;datenaiss;lieunaiss;commnaiss;paysnaiss;datedeces;lieudeces;actedeces"

// writeFile creates dir/name with the given lines joined by newlines.
func writeFile(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// testReferences maps a few Paris and Lyon codes.
func testReferences() *References {
	return NewReferences(
		map[string]string{"75012": "Paris 12e Arrondissement"},
		map[string]string{"75012": "PARIS 12", "69123": "LYON"},
	)
}

func rawFrom(header string, row string, sep string) RawRecord {
	return NewRawRecord(MakeHeaderIndex(strings.Split(header, sep)), strings.Split(row, sep))
}

func intPtr(i int) *int {
	return &i
}
