package models

import "time"

const (
	// displayDateFormat is the read-view shape, e.g. "Dec 16, 1775".
	displayDateFormat = "Jan 02, 2006"
	// formDateFormat is the edit-form pre-population shape, e.g. "1775-12-16".
	formDateFormat = "2006-01-02"
)

// ParseDate converts a sanitized ISO-8601 form value into a nullable date.
// Empty input normalizes to nil so it persists as NULL, never as empty text.
func ParseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(formDateFormat, value)
	if err != nil {
		return nil
	}
	return &t
}

// DisplayDate renders a nullable date for read views.
func DisplayDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(displayDateFormat)
}

// FormDate renders a nullable date for edit-form pre-population.
func FormDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(formDateFormat)
}
