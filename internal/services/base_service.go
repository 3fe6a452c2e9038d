package services

import "time"

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
)

func formatTimestamp(t time.Time) string {
	return t.Local().Format(timestampLayout)
}

func formatTimestampPtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTimestamp(*t)
}

func formatTimestampToPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTimestamp(*t)
	return &s
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
