package profile

import (
	"strings"

	"google.golang.org/genai"
)

// textExtractor pulls answer text out of one response shape.
type textExtractor func(resp *genai.GenerateContentResponse) string

// extractors are tried in order; the first non-blank result wins.
var extractors = []textExtractor{
	directText,
	candidateParts,
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, extract := range extractors {
		if text := extract(resp); strings.TrimSpace(text) != "" {
			return text
		}
	}
	return ""
}

func directText(resp *genai.GenerateContentResponse) string {
	return resp.Text()
}

// candidateParts joins every text part of the first candidate, thought
// parts included, one per line.
func candidateParts(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil {
		return ""
	}

	var texts []string
	for _, part := range candidate.Content.Parts {
		if part != nil && part.Text != "" {
			texts = append(texts, part.Text)
		}
	}
	return strings.Join(texts, "\n")
}
