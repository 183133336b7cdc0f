// Package selector picks which files of a repository listing are worth indexing.
package selector

import (
	"log"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/dpolishuk/repoprofile/backend/internal/models"
)

const DefaultMaxFiles = 10

// DefaultExtensions are the file suffixes eligible for indexing.
var DefaultExtensions = []string{".ts", ".tsx", ".js", ".jsx", ".py", ".json", ".md", ".yaml", ".yml"}

type Options struct {
	MaxFiles   int
	Extensions []string
	// Exclude holds doublestar patterns matched against entry paths.
	Exclude []string
}

func DefaultOptions() Options {
	return Options{
		MaxFiles:   DefaultMaxFiles,
		Extensions: DefaultExtensions,
	}
}

// Select returns the file entries whose name ends with an allowed extension,
// in listing order, truncated to opts.MaxFiles.
func Select(entries []models.DirectoryEntry, opts Options) []models.DirectoryEntry {
	if opts.MaxFiles <= 0 {
		opts.MaxFiles = DefaultMaxFiles
	}
	if opts.Extensions == nil {
		opts.Extensions = DefaultExtensions
	}

	selected := make([]models.DirectoryEntry, 0, min(len(entries), opts.MaxFiles))
	for _, entry := range entries {
		if len(selected) == opts.MaxFiles {
			break
		}
		if entry.Type != models.EntryFile {
			continue
		}
		if !hasExtension(entry.Name, opts.Extensions) {
			continue
		}
		if excluded(entry.Path, opts.Exclude) {
			continue
		}
		selected = append(selected, entry)
	}
	return selected
}

func hasExtension(name string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

func excluded(path string, patterns []string) bool {
	for _, pattern := range patterns {
		match, err := doublestar.Match(pattern, path)
		if err != nil {
			log.Printf("selector: bad exclude pattern %q: %v", pattern, err)
			continue
		}
		if match {
			return true
		}
	}
	return false
}
