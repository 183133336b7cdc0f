package treesitter

import (
	"context"
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
)

// Parser wraps a tree-sitter parser. A sitter.Parser is not safe for
// concurrent use, so Parse serializes callers.
type Parser struct {
	mu     sync.Mutex
	parser *sitter.Parser
}

func NewParser() *Parser {
	return &Parser{
		parser: sitter.NewParser(),
	}
}

// Parse returns a tree the caller must Close.
func (p *Parser) Parse(ctx context.Context, content []byte, language string) (*sitter.Tree, error) {
	lang := GetLanguage(language)
	if lang == nil {
		return nil, fmt.Errorf("unsupported language: %s", language)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.parser.SetLanguage(lang)
	tree, err := p.parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return tree, nil
}

func (p *Parser) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.parser.Close()
}
