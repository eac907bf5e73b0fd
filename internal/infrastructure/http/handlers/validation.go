package handlers

import "strings"

// SanitizeEmail normalizes an email for matching and storage: trimmed and
// lowercased. Matching against users and pending invitations is always
// case-insensitive.
func SanitizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
