package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/JonMunkholm/deces/internal/locale"
)

// RowPolicy decides what survives when a record field cannot be derived.
type RowPolicy int

const (
	// PolicyStrict collapses the whole record to empty fields.
	PolicyStrict RowPolicy = iota
	// PolicyLenient keeps every field that could be derived.
	PolicyLenient
)

// ParseRowPolicy accepts "strict" or "lenient".
func ParseRowPolicy(s string) (RowPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return PolicyStrict, nil
	case "lenient":
		return PolicyLenient, nil
	}
	return PolicyStrict, fmt.Errorf("unknown row policy %q", s)
}

func (p RowPolicy) String() string {
	if p == PolicyLenient {
		return "lenient"
	}
	return "strict"
}

// Transformer maps raw records to normalized records. It holds only
// read-only collaborators and is safe for concurrent use.
type Transformer struct {
	refs     *References
	calendar *locale.Calendar
	policy   RowPolicy
}

// NewTransformer creates a transformer. A nil calendar uses French dates.
func NewTransformer(refs *References, cal *locale.Calendar, policy RowPolicy) *Transformer {
	if refs == nil {
		refs = NewReferences(nil, nil)
	}
	if cal == nil {
		cal = locale.French()
	}
	return &Transformer{refs: refs, calendar: cal, policy: policy}
}

// Transform derives a Record from raw. Absent source columns are reported
// as FieldErrors wrapped in ErrRowTransform. Under PolicyStrict the record
// returned alongside such an error is empty; under PolicyLenient it keeps
// the fields that were derived.
func (t *Transformer) Transform(raw RawRecord) (Record, error) {
	var errs []error
	field := func(name string) string {
		v, ok := raw.Field(name)
		if !ok {
			errs = append(errs, &FieldError{Field: name, Err: ErrMissingField})
		}
		return v
	}

	var rec Record
	rec.FamilyName, rec.GivenName = SplitName(field(ColNomPrenom))
	rec.Sex = SexLabel(field(ColSexe))

	birth, birthOK := ParseCompactDate(field(ColDateNaiss))
	death, deathOK := ParseCompactDate(field(ColDateDeces))
	if birthOK {
		rec.BirthDate = t.calendar.Format(birth)
	}
	if deathOK {
		rec.DeathDate = t.calendar.Format(death)
	}
	if birthOK && deathOK {
		age := AgeAt(birth, death)
		rec.Age = &age
	}

	rec.BirthPlace = field(ColLieuNaiss)
	rec.BirthCommune = field(ColCommNaiss)
	rec.BirthCountry = field(ColPaysNaiss)

	code := strings.TrimSpace(field(ColLieuDeces))
	rec.Department = Department(code)
	rec.DeathPlace = t.refs.Resolve(code)

	if len(errs) == 0 {
		return rec, nil
	}

	err := fmt.Errorf("%w: %w", ErrRowTransform, errors.Join(errs...))
	if t.policy == PolicyStrict {
		return Record{}, err
	}
	return rec, err
}
