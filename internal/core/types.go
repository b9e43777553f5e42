package core

import (
	"strconv"
	"strings"
)

// Source column names of the death-record extracts.
const (
	ColNomPrenom = "nomprenom"
	ColSexe      = "sexe"
	ColDateNaiss = "datenaiss"
	ColDateDeces = "datedeces"
	ColLieuNaiss = "lieunaiss"
	ColCommNaiss = "commnaiss"
	ColPaysNaiss = "paysnaiss"
	ColLieuDeces = "lieudeces"
)

// RequiredColumns lists every source column the transformer reads.
var RequiredColumns = []string{
	ColNomPrenom, ColSexe, ColDateNaiss, ColDateDeces,
	ColLieuNaiss, ColCommNaiss, ColPaysNaiss, ColLieuDeces,
}

// ReportColumns is the header of a report, in output order.
var ReportColumns = []string{
	"Nom", "Prénom", "Sexe", "Date Naiss", "Lieu Naiss", "Comm Naiss",
	"Pays Naiss", "Age", "Date Deces", "Dep", "Lieu Deces",
}

// HeaderIndex maps column names (lowercase) to their position in the CSV row.
type HeaderIndex map[string]int

// MakeHeaderIndex creates a HeaderIndex from a CSV header row.
// Keys are lowercased for case-insensitive matching.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(CleanCell(h))
		if _, dup := idx[key]; dup {
			continue
		}
		idx[key] = i
	}
	return idx
}

// CleanCell trims whitespace and surrounding quotes left by sloppy exports.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}

// RawRecord is one untyped source row viewed through its file's header.
type RawRecord struct {
	index HeaderIndex
	row   []string
}

// NewRawRecord binds a row to a header index.
func NewRawRecord(index HeaderIndex, row []string) RawRecord {
	return RawRecord{index: index, row: row}
}

// Field returns the cell for column name and whether the column exists
// for this row. Short rows report trailing columns as absent.
func (r RawRecord) Field(name string) (string, bool) {
	pos, ok := r.index[strings.ToLower(name)]
	if !ok || pos >= len(r.row) {
		return "", false
	}
	return r.row[pos], true
}

// Value returns the cell for column name, or "" when absent.
func (r RawRecord) Value(name string) string {
	v, _ := r.Field(name)
	return v
}

// Record is a normalized death record as it appears in a report.
type Record struct {
	FamilyName   string
	GivenName    string
	Sex          string
	BirthDate    string
	BirthPlace   string
	BirthCommune string
	BirthCountry string
	Age          *int // nil when either date is unknown
	DeathDate    string
	Department   string
	DeathPlace   string
}

// IsEmpty reports whether every field is empty, which is the shape of a
// record that failed under the strict row policy.
func (r Record) IsEmpty() bool {
	return r.Age == nil && r.FamilyName == "" && r.GivenName == "" && r.Sex == "" &&
		r.BirthDate == "" && r.BirthPlace == "" && r.BirthCommune == "" &&
		r.BirthCountry == "" && r.DeathDate == "" && r.Department == "" && r.DeathPlace == ""
}

// AgeString renders Age, or "" when unknown.
func (r Record) AgeString() string {
	if r.Age == nil {
		return ""
	}
	return strconv.Itoa(*r.Age)
}

// Strings returns the record's cells in ReportColumns order.
func (r Record) Strings() []string {
	return []string{
		r.FamilyName, r.GivenName, r.Sex, r.BirthDate, r.BirthPlace, r.BirthCommune,
		r.BirthCountry, r.AgeString(), r.DeathDate, r.Department, r.DeathPlace,
	}
}

// ResultSet holds the records found for one family name, in file order.
type ResultSet struct {
	FamilyName string
	Records    []Record
}

// Len returns the number of records.
func (rs ResultSet) Len() int {
	return len(rs.Records)
}

// Empty reports whether the search found nothing to report.
func (rs ResultSet) Empty() bool {
	return len(rs.Records) == 0
}
