package models

import "strings"

type EntryType string

const (
	EntryFile EntryType = "file"
	EntryDir  EntryType = "dir"
)

// DirectoryEntry is one item of a repository directory listing.
type DirectoryEntry struct {
	Path string    `json:"path"`
	Name string    `json:"name"`
	Type EntryType `json:"type"`
}

// CandidateDocument is a selected, fetched file ready for upload.
// LogicalName is owner/repo/path.
type CandidateDocument struct {
	LogicalName string
	Content     string
	Repo        RepositoryRef
	Path        string
}

func NewCandidateDocument(repo RepositoryRef, path, content string) CandidateDocument {
	return CandidateDocument{
		LogicalName: repo.String() + "/" + path,
		Content:     content,
		Repo:        repo,
		Path:        path,
	}
}

// Language detection by extension
var LanguageByExtension = map[string]string{
	".py":   "python",
	".ts":   "typescript",
	".tsx":  "tsx",
	".js":   "javascript",
	".jsx":  "javascript",
	".json": "json",
	".md":   "markdown",
	".yaml": "yaml",
	".yml":  "yaml",
}

func DetectLanguage(path string) string {
	dot := strings.LastIndex(path, ".")
	if dot < 0 {
		return ""
	}
	return LanguageByExtension[strings.ToLower(path[dot:])]
}
