package model

import "time"

// Now returns the current instant normalized to UTC.
func Now() time.Time {
	return time.Now().UTC()
}

// AsUTC normalizes a timestamp before comparison or storage.
func AsUTC(t time.Time) time.Time {
	return t.UTC()
}

// AsUTCPtr normalizes an optional timestamp, preserving nil.
func AsUTCPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func iso(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func isoPtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return iso(*t)
}
