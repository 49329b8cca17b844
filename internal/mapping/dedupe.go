package mapping

import (
	"strings"

	"github.com/faces-agency/talent-sync/internal/hubspot"
)

// Deduplicate filters contacts down to one per phone key, preserving
// order; the first occurrence of a key wins. The key is the mobile
// number, falling back to WhatsApp, with all whitespace stripped so
// display formatting never splits a key. Contacts with no phone at all
// are never treated as duplicates of each other.
func Deduplicate(contacts []hubspot.Contact) (unique []hubspot.Contact, duplicateCount int) {
	seen := make(map[string]bool)

	for _, contact := range contacts {
		phone := contact.Properties["faces_mobile"]
		if phone == "" {
			phone = contact.Properties["faces_whatsapp"]
		}
		key := strings.Join(strings.Fields(phone), "")

		if key != "" && seen[key] {
			duplicateCount++
			continue
		}
		if key != "" {
			seen[key] = true
		}
		unique = append(unique, contact)
	}

	return unique, duplicateCount
}
