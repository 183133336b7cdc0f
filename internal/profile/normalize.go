package profile

import (
	"strings"
	"unicode"

	"github.com/dpolishuk/repoprofile/backend/internal/models"
)

var bulletMarkers = []string{"-", "•"}

// Normalize turns free-form model output into exactly models.ProfileSize
// bullets, padding with models.FillerObservation.
func Normalize(text string) models.CodingProfile {
	return NormalizeN(text, models.ProfileSize, models.FillerObservation)
}

// NormalizeN keeps lines that start with a bullet marker, strips the marker,
// and pads or truncates to n entries. Model order is preserved.
func NormalizeN(text string, n int, filler string) models.CodingProfile {
	bullets := ParseBullets(text)
	if len(bullets) > n {
		bullets = bullets[:n]
	}
	for len(bullets) < n {
		bullets = append(bullets, filler)
	}
	return models.CodingProfile(bullets)
}

// ParseBullets returns the non-empty bullet texts of text in order.
func ParseBullets(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	bullets := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		item, ok := stripMarker(line)
		if !ok {
			continue
		}
		if item = strings.TrimSpace(item); item != "" {
			bullets = append(bullets, item)
		}
	}
	return bullets
}

// stripMarker removes the leading marker. Stacked markers ("- - x", "--x")
// are removed together so no bullet text starts with a marker.
func stripMarker(line string) (string, bool) {
	stripped := false
	for {
		rest, ok := cutMarker(line)
		if !ok {
			return line, stripped
		}
		line = strings.TrimLeftFunc(rest, unicode.IsSpace)
		stripped = true
	}
}

func cutMarker(line string) (string, bool) {
	for _, marker := range bulletMarkers {
		if rest, ok := strings.CutPrefix(line, marker); ok {
			return rest, true
		}
	}
	return line, false
}
