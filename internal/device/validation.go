package device

import (
	"strings"

	"github.com/google/uuid"
)

const maxSlugLength = 50

// GenerateSlug derives a URL and MQTT-topic safe identifier from a name.
//
// Lowercases, maps spaces and underscores to hyphens, drops anything that
// is not [a-z0-9-] and collapses repeated hyphens.
//
//	GenerateSlug("Living Room_Lamp") // "living-room-lamp"
func GenerateSlug(name string) string {
	slug := strings.ToLower(name)
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.ReplaceAll(slug, "_", "-")

	var result strings.Builder
	for _, r := range slug {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			result.WriteRune(r)
		}
	}
	slug = result.String()

	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	slug = strings.Trim(slug, "-")

	if len(slug) > maxSlugLength {
		slug = strings.TrimRight(slug[:maxSlugLength], "-")
	}

	return slug
}

// GenerateID returns a new random UUID string.
func GenerateID() string {
	return uuid.New().String()
}
