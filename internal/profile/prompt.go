package profile

import (
	"fmt"
	"strings"

	"github.com/dpolishuk/repoprofile/backend/internal/models"
)

var profileThemes = []string{
	"Naming conventions for variables, functions, files and types",
	"How code is structured into modules, components and layers",
	"Error handling and validation style",
	"Testing habits and tooling",
	"Preferred languages, frameworks and libraries",
	"Typing discipline and use of language features",
	"Documentation, comments and README practices",
	"Configuration, build and CI setup",
	"Formatting and code organization preferences",
	"Recurring patterns or idioms across repositories",
}

// BuildPrompt returns the instruction sent with every profile request.
func BuildPrompt(focus string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this developer's code and generate exactly %d specific, insightful bullet points about their coding style and preferences. ", models.ProfileSize)
	b.WriteString("Each point should be a concise phrase starting with a dash. Base every point strictly on the indexed files.\n\n")

	b.WriteString("Focus on:\n")
	for _, theme := range profileThemes {
		fmt.Fprintf(&b, "- %s\n", theme)
	}

	if focus = strings.TrimSpace(focus); focus != "" {
		fmt.Fprintf(&b, "\nIMPORTANT: Pay special attention to aspects related to %q. ", focus)
		fmt.Fprintf(&b, "While still generating %d diverse bullet points, prioritize insights about %s when analyzing the code.\n", models.ProfileSize, focus)
	}

	fmt.Fprintf(&b, "\nReturn ONLY the %d bullet points, one per line, each starting with \"- \". Be specific and data-driven based on the actual code.", models.ProfileSize)
	return b.String()
}
