package profile

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dpolishuk/repoprofile/backend/internal/models"
)

func dashLines(n int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "- Observation %d\n", i)
	}
	return b.String()
}

func TestNormalizeTruncatesToFirstTwenty(t *testing.T) {
	got := Normalize(dashLines(25))

	assert.Len(t, got, models.ProfileSize)
	assert.Equal(t, "Observation 1", got[0])
	assert.Equal(t, "Observation 20", got[19])
}

func TestNormalizePadsWithFiller(t *testing.T) {
	got := Normalize(dashLines(5))

	assert.Len(t, got, models.ProfileSize)
	assert.Equal(t, "Observation 5", got[4])
	for _, item := range got[5:] {
		assert.Equal(t, models.FillerObservation, item)
	}
}

func TestNormalizeNoBullets(t *testing.T) {
	for _, text := range []string{"", "Here is your profile.", "1. numbered\n2. list", "   \n\n"} {
		got := Normalize(text)
		assert.Len(t, got, models.ProfileSize)
		for _, item := range got {
			assert.Equal(t, models.FillerObservation, item)
		}
	}
}

func TestParseBulletsMarkersAndWhitespace(t *testing.T) {
	text := "Here are the points:\r\n" +
		"  - Prefers small functions  \r\n" +
		"•Uses early returns\n" +
		"-\tWrites table-driven tests\r" +
		"-   \n" +
		"• \n" +
		"* asterisks are ignored\n" +
		"--stacked markers\n" +
		"- • nested bullet\n" +
		"text - with inner dash\n"

	assert.Equal(t, []string{
		"Prefers small functions",
		"Uses early returns",
		"Writes table-driven tests",
		"stacked markers",
		"nested bullet",
	}, ParseBullets(text))
}

func TestNormalizeInvariants(t *testing.T) {
	inputs := []string{
		dashLines(0), dashLines(1), dashLines(19), dashLines(20), dashLines(21), dashLines(40),
		"• a\n- b\n-\n•\nnot a bullet\n  -  c  \n-- d\n- - e",
		strings.Repeat("-\n", 50),
	}
	for _, in := range inputs {
		got := Normalize(in)
		assert.Len(t, got, models.ProfileSize)
		for _, item := range got {
			assert.NotEmpty(t, item)
			assert.False(t, strings.HasPrefix(item, "-"), item)
			assert.False(t, strings.HasPrefix(item, "•"), item)
		}
	}
}

func TestNormalizeN(t *testing.T) {
	got := NormalizeN("- a\n- b\n- c", 2, "pad")
	assert.Equal(t, models.CodingProfile{"a", "b"}, got)

	got = NormalizeN("- a", 3, "pad")
	assert.Equal(t, models.CodingProfile{"a", "pad", "pad"}, got)
}
