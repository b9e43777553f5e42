package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
		wantSev  Severity
	}{
		{"source dir", fmt.Errorf("%w: ./deces", ErrSourceDirMissing), "SRC001", SeverityFatal},
		{"reference", fmt.Errorf("%w: canton.csv: %w", ErrReference, ErrMissingColumn), "REF001", SeverityFatal},
		{"file load", fmt.Errorf("%w: a.csv: open failed", ErrFileLoad), "FILE001", SeverityFile},
		{"no delimiter wins over file load", fmt.Errorf("%w: a.csv: %w", ErrFileLoad, ErrNoDelimiter), "FILE002", SeverityFile},
		{"missing column", fmt.Errorf("%w %q", ErrMissingColumn, ColNomPrenom), "FILE003", SeverityFile},
		{"row", fmt.Errorf("%w: %w", ErrRowTransform, &FieldError{Field: "x", Err: ErrMissingField}), "ROW001", SeverityRow},
		{"no matches", ErrNoMatches, "NAME001", SeverityName},
		{"panic", fmt.Errorf("%w: boom", ErrTaskPanic), "TASK001", SeverityName},
		{"unknown", errors.New("something else"), "ERR000", SeverityName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Describe(tt.err)
			if info.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", info.Code, tt.wantCode)
			}
			if info.Severity != tt.wantSev {
				t.Errorf("Severity = %q, want %q", info.Severity, tt.wantSev)
			}
			if info.Message == "" {
				t.Error("Message should not be empty")
			}
		})
	}
}

func TestDescribe_Nil(t *testing.T) {
	if info := Describe(nil); info != (ErrorInfo{}) {
		t.Errorf("Describe(nil) = %+v, want zero", info)
	}
	if IsFatal(nil) {
		t.Error("IsFatal(nil) = true")
	}
}

func TestFieldError(t *testing.T) {
	err := &FieldError{Field: ColLieuDeces, Err: ErrMissingField}
	if !errors.Is(err, ErrMissingField) {
		t.Error("FieldError should unwrap to its cause")
	}
	if got := err.Error(); got != `field "lieudeces": field absent` {
		t.Errorf("Error() = %q", got)
	}
}
