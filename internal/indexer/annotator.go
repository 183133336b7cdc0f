package indexer

import (
	"context"
	"encoding/hex"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"lukechampine.com/blake3"

	"github.com/dpolishuk/repoprofile/backend/internal/models"
	"github.com/dpolishuk/repoprofile/backend/pkg/treesitter"
)

// Annotation is metadata attached to an uploaded document. Declarations is
// -1 when the language has no grammar or parsing failed.
type Annotation struct {
	Owner        string
	Repo         string
	Path         string
	Language     string
	Declarations int
	Digest       string
	Bytes        int
}

// Node types counted as top-level declarations, per grammar.
var declarationTypes = map[string]map[string]bool{
	"python": {
		"function_definition":  true,
		"class_definition":     true,
		"decorated_definition": true,
	},
	"javascript": {
		"function_declaration":           true,
		"generator_function_declaration": true,
		"class_declaration":              true,
		"lexical_declaration":            true,
		"variable_declaration":           true,
	},
	"typescript": {
		"function_declaration":           true,
		"generator_function_declaration": true,
		"class_declaration":              true,
		"abstract_class_declaration":     true,
		"interface_declaration":          true,
		"type_alias_declaration":         true,
		"enum_declaration":               true,
		"lexical_declaration":            true,
		"variable_declaration":           true,
	},
}

func init() {
	declarationTypes["tsx"] = declarationTypes["typescript"]
}

type Annotator struct {
	parser *treesitter.Parser
}

func NewAnnotator() *Annotator {
	return &Annotator{parser: treesitter.NewParser()}
}

func (a *Annotator) Close() {
	a.parser.Close()
}

// Annotate never fails; a document that cannot be parsed is still uploaded.
func (a *Annotator) Annotate(ctx context.Context, doc models.CandidateDocument) Annotation {
	sum := blake3.Sum256([]byte(doc.Content))
	ann := Annotation{
		Owner:        doc.Repo.Owner,
		Repo:         doc.Repo.Name,
		Path:         doc.Path,
		Language:     models.DetectLanguage(doc.Path),
		Declarations: -1,
		Digest:       hex.EncodeToString(sum[:]),
		Bytes:        len(doc.Content),
	}

	if !treesitter.Supports(ann.Language) {
		return ann
	}
	n, err := a.countDeclarations(ctx, []byte(doc.Content), ann.Language)
	if err != nil {
		return ann
	}
	ann.Declarations = n
	return ann
}

func (a *Annotator) countDeclarations(ctx context.Context, content []byte, language string) (int, error) {
	tree, err := a.parser.Parse(ctx, content, language)
	if err != nil {
		return 0, fmt.Errorf("failed to parse code: %w", err)
	}
	defer tree.Close()

	kinds := declarationTypes[language]
	root := tree.RootNode()
	count := 0
	for i := 0; i < int(root.NamedChildCount()); i++ {
		if isDeclaration(root.NamedChild(i), kinds) {
			count++
		}
	}
	return count, nil
}

// isDeclaration unwraps `export ...` statements to the declaration they carry.
func isDeclaration(node *sitter.Node, kinds map[string]bool) bool {
	if node == nil {
		return false
	}
	if node.Type() == "export_statement" {
		if decl := node.ChildByFieldName("declaration"); decl != nil {
			return kinds[decl.Type()]
		}
		return false
	}
	return kinds[node.Type()]
}
