package keys

import "strings"

// CharacterKey produces the canonical key for a character name: trimmed,
// lower-cased, spaces replaced with underscores. Reservations, profiles and
// match records all use this form so lookups are case-insensitive.
func CharacterKey(name string) string {
	s := strings.TrimSpace(name)
	return strings.ToLower(strings.ReplaceAll(s, " ", "_"))
}
