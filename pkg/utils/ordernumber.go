package utils

import "fmt"

// FormatOrderNumber builds the customer-visible order number from a company
// short code and its per-company sequence, e.g. "CC/ON/KHJ/07". The sequence
// is zero-padded to two digits but never truncated.
func FormatOrderNumber(shortCode string, seq uint64) string {
	return fmt.Sprintf("CC/ON/%s/%02d", shortCode, seq)
}

func Ptr[T any](v T) *T { return &v }
