package treesitter

import (
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Grammars for the source languages the indexer uploads. Keys match
// models.DetectLanguage.
var languages = map[string]*sitter.Language{
	"python":     python.GetLanguage(),
	"typescript": typescript.GetLanguage(),
	"tsx":        tsx.GetLanguage(),
	"javascript": javascript.GetLanguage(),
}

func GetLanguage(name string) *sitter.Language {
	return languages[name]
}

func Supports(name string) bool {
	_, ok := languages[name]
	return ok
}

func SupportedLanguages() []string {
	keys := make([]string, 0, len(languages))
	for k := range languages {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
