package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/deces/internal/core"
	"github.com/JonMunkholm/deces/internal/locale"
	"github.com/JonMunkholm/deces/internal/logging"
)

// SheetName is the name of the single sheet of every report.
const SheetName = "Sheet1"

// columnPadding is added to the longest value of a column.
const columnPadding = 2

// Writer writes one workbook per family name into Dir.
type Writer struct {
	dir      string
	calendar *locale.Calendar
}

// NewWriter creates a writer. A nil calendar uses French dates.
func NewWriter(dir string, cal *locale.Calendar) *Writer {
	if cal == nil {
		cal = locale.French()
	}
	return &Writer{dir: dir, calendar: cal}
}

// Path returns the report path for a family name.
func (w *Writer) Path(familyName string) string {
	return filepath.Join(w.dir, FileName(familyName))
}

// FileName returns "noms <name>.xlsx" with path separators replaced.
func FileName(familyName string) string {
	safe := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == 0 {
			return '_'
		}
		return r
	}, familyName)
	return fmt.Sprintf("noms %s.xlsx", safe)
}

// Report prepares rs and writes it. Nothing is written, and "" is
// returned, when no record remains after preparation.
func (w *Writer) Report(ctx context.Context, rs core.ResultSet) (string, error) {
	rows := Prepare(rs.Records, w.calendar)
	if len(rows) == 0 {
		return "", nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := w.Path(rs.FamilyName)
	wb, err := Build(rows)
	if err != nil {
		return "", err
	}
	defer wb.Close()

	if err := wb.SaveAs(path); err != nil {
		return "", fmt.Errorf("saving %s: %w", filepath.Base(path), err)
	}

	logging.FromContext(ctx).Debug("workbook saved", "path", path, "rows", len(rows))
	return path, nil
}

// Build renders prepared rows into a workbook. The caller closes it.
func Build(rows []core.Record) (*excelize.File, error) {
	f := excelize.NewFile()

	st, err := newStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	if err := writeSheet(f, st, rows); err != nil {
		f.Close()
		return nil, err
	}
	if err := setLayout(f, rows); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func writeSheet(f *excelize.File, st styles, rows []core.Record) error {
	lastCol, err := excelize.ColumnNumberToName(len(core.ReportColumns))
	if err != nil {
		return err
	}

	header := make([]any, len(core.ReportColumns))
	for i, h := range core.ReportColumns {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", st.header); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i, rec := range rows {
		rowNum := i + 2
		first := fmt.Sprintf("A%d", rowNum)
		values := cells(rec)
		if err := f.SetSheetRow(SheetName, first, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", rowNum, err)
		}

		// Data rows are numbered from 1; every second one is shaded.
		style := st.cell
		if (i+1)%2 == 0 {
			style = st.shaded
		}
		if err := f.SetCellStyle(SheetName, first, fmt.Sprintf("%s%d", lastCol, rowNum), style); err != nil {
			return fmt.Errorf("styling row %d: %w", rowNum, err)
		}
	}
	return nil
}

// cells returns the row values; Age is numeric when known.
func cells(rec core.Record) []any {
	values := make([]any, 0, len(core.ReportColumns))
	for i, s := range rec.Strings() {
		if i == ageColumn && rec.Age != nil {
			values = append(values, *rec.Age)
			continue
		}
		values = append(values, s)
	}
	return values
}

var ageColumn = columnIndex("Age")

func columnIndex(name string) int {
	for i, c := range core.ReportColumns {
		if c == name {
			return i
		}
	}
	panic("report: unknown column " + name)
}

// ColumnWidths returns, per report column, the rune length of its
// longest value or header plus padding.
func ColumnWidths(rows []core.Record) []int {
	widths := make([]int, len(core.ReportColumns))
	for i, h := range core.ReportColumns {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, rec := range rows {
		for i, s := range rec.Strings() {
			if n := utf8.RuneCountInString(s); n > widths[i] {
				widths[i] = n
			}
		}
	}
	for i := range widths {
		widths[i] += columnPadding
	}
	return widths
}

func setLayout(f *excelize.File, rows []core.Record) error {
	for i, width := range ColumnWidths(rows) {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(SheetName, col, col, float64(width)); err != nil {
			return fmt.Errorf("sizing column %s: %w", col, err)
		}
	}

	orientation := "landscape"
	one := 1
	if err := f.SetPageLayout(SheetName, &excelize.PageLayoutOptions{
		Orientation: &orientation,
		FitToWidth:  &one,
		FitToHeight: &one,
	}); err != nil {
		return fmt.Errorf("setting page layout: %w", err)
	}

	fit := true
	if err := f.SetSheetProps(SheetName, &excelize.SheetPropsOptions{FitToPage: &fit}); err != nil {
		return fmt.Errorf("setting fit to page: %w", err)
	}
	return nil
}
