package email

import "strings"

// Normalize trims surrounding whitespace from a student email. The registry
// stores addresses exactly as submitted otherwise, so rosters echo what the
// student typed.
func Normalize(email string) string {
	return strings.TrimSpace(email)
}

// Valid reports whether the address has a non-empty local part and domain.
// This is deliberately loose; the school directory is the source of truth for
// real addresses.
func Valid(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}
	if strings.ContainsAny(email, " \t") {
		return false
	}
	return !strings.Contains(email[at+1:], "@")
}
