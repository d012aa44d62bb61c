// Package resources maps models to their wire representations.
//
// Relation fields are emitted only when the repository actually loaded
// the relation: builders receive a Loaded set naming what was eagerly
// fetched, and omit everything else. Count fields are emitted only when
// the caller computed the aggregate. This keeps the wire contract an
// explicit function of the loading strategy instead of probing structs
// for populated associations.
package resources

import "time"

// TimeFormat is the wire format for all timestamps.
const TimeFormat = "2006-01-02 15:04:05"

// DateFormat is the wire format for date-only fields.
const DateFormat = "2006-01-02"

// Loaded is the set of relation names the repository eagerly loaded.
type Loaded map[string]bool

// With builds a Loaded set from relation names.
func With(names ...string) Loaded {
	set := make(Loaded, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}

// Has reports whether a relation was loaded. A nil set loads nothing.
func (l Loaded) Has(name string) bool {
	return l != nil && l[name]
}

// Counts holds aggregate counts computed by the repository, keyed by
// the *_count field name they populate.
type Counts map[string]int64

func (c Counts) get(name string) *int64 {
	if c == nil {
		return nil
	}
	value, ok := c[name]
	if !ok {
		return nil
	}
	return &value
}

// FormatTime renders a timestamp in the wire format; nil stays null.
func FormatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(TimeFormat)
	return &formatted
}

// FormatDate renders a date-only value; nil stays null.
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(DateFormat)
	return &formatted
}

func formatTimeValue(t time.Time) string {
	return t.Format(TimeFormat)
}
