package shared

import "time"

// ParseDate accepts RFC3339, YYYY-MM-DD or the local DD/MM/YYYY form.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	if parsed, err := time.Parse("2006-01-02", value); err == nil {
		return parsed, nil
	}
	return time.Parse("02/01/2006", value)
}
