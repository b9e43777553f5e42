// Package locale renders and parses report dates in a calendar vocabulary.
//
// The display shape is fixed: abbreviated weekday, two-digit day,
// abbreviated month and four-digit year, for example "ven. 06 août. 2021".
package locale

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"
)

// ErrUnsupportedLocale is returned for a tag whose language has no vocabulary.
var ErrUnsupportedLocale = errors.New("unsupported calendar locale")

// ErrInvalidDate is returned when a display string cannot be parsed back.
var ErrInvalidDate = errors.New("invalid display date")

// Calendar holds the abbreviated weekday and month names of one language,
// taken from the monday locale tables without their trailing period.
// A Calendar is immutable and safe for concurrent use.
type Calendar struct {
	tag      language.Tag
	weekdays [7]string  // indexed by time.Weekday
	months   [12]string // January first
}

// calendars maps a base language to its calendar.
var calendars = map[string]*Calendar{
	"fr": newCalendar(language.French, monday.LocaleFrFR),
	"en": newCalendar(language.English, monday.LocaleEnUS),
}

func newCalendar(tag language.Tag, loc monday.Locale) *Calendar {
	c := &Calendar{tag: tag}
	// 2023-01-01 is a Sunday.
	for i := range c.weekdays {
		d := time.Date(2023, time.January, 1+i, 0, 0, 0, 0, time.UTC)
		c.weekdays[i] = abbreviation(monday.Format(d, "Mon", loc))
	}
	for i := range c.months {
		d := time.Date(2023, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC)
		c.months[i] = abbreviation(monday.Format(d, "Jan", loc))
	}
	return c
}

// abbreviation strips the period some locales attach to short names, so
// every name in the display shape carries exactly one.
func abbreviation(s string) string {
	return strings.TrimSuffix(strings.TrimSpace(s), ".")
}

// New returns the calendar for a POSIX ("fr_FR.UTF-8") or BCP 47 ("fr-FR") tag.
func New(tag string) (*Calendar, error) {
	raw := tag
	if i := strings.IndexAny(tag, ".@"); i >= 0 {
		tag = tag[:i]
	}
	parsed, err := language.Parse(strings.ReplaceAll(tag, "_", "-"))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrUnsupportedLocale, raw, err)
	}

	base, _ := parsed.Base()
	if c, ok := calendars[base.String()]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnsupportedLocale, raw)
}

// French returns the default report calendar.
func French() *Calendar {
	return calendars["fr"]
}

// Tag reports the language of the calendar.
func (c *Calendar) Tag() language.Tag {
	return c.tag
}

// Format renders t as "<weekday>. <dd> <month>. <yyyy>".
func (c *Calendar) Format(t time.Time) string {
	return fmt.Sprintf("%s. %02d %s. %04d",
		c.weekdays[t.Weekday()], t.Day(), c.months[t.Month()-1], t.Year())
}

// Parse is the inverse of Format. The weekday must be a known abbreviation
// but is not checked against the date.
func (c *Calendar) Parse(s string) (time.Time, error) {
	fields := strings.Fields(s)
	if len(fields) != 4 {
		return time.Time{}, fmt.Errorf("%w %q", ErrInvalidDate, s)
	}

	if c.weekdayIndex(strings.TrimSuffix(fields[0], ".")) < 0 {
		return time.Time{}, fmt.Errorf("%w %q: unknown weekday", ErrInvalidDate, s)
	}

	day, err := strconv.Atoi(fields[1])
	if err != nil || len(fields[1]) != 2 {
		return time.Time{}, fmt.Errorf("%w %q: bad day", ErrInvalidDate, s)
	}

	month := c.monthIndex(strings.TrimSuffix(fields[2], "."))
	if month < 0 {
		return time.Time{}, fmt.Errorf("%w %q: unknown month", ErrInvalidDate, s)
	}

	year, err := strconv.Atoi(fields[3])
	if err != nil || len(fields[3]) != 4 {
		return time.Time{}, fmt.Errorf("%w %q: bad year", ErrInvalidDate, s)
	}

	t := time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day {
		return time.Time{}, fmt.Errorf("%w %q: day out of range", ErrInvalidDate, s)
	}
	return t, nil
}

func (c *Calendar) weekdayIndex(s string) int {
	for i, w := range c.weekdays {
		if strings.EqualFold(w, s) {
			return i
		}
	}
	return -1
}

func (c *Calendar) monthIndex(s string) int {
	for i, m := range c.months {
		if strings.EqualFold(m, s) {
			return i
		}
	}
	return -1
}
