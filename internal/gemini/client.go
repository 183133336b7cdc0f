// Package gemini implements the store and generation collaborators on the
// Gemini File Search API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/genai"

	"github.com/dpolishuk/repoprofile/backend/internal/indexer"
	"github.com/dpolishuk/repoprofile/backend/internal/models"
	"github.com/dpolishuk/repoprofile/backend/internal/profile"
)

const DefaultModel = "gemini-2.5-flash"

var ErrMissingAPIKey = errors.New("gemini: API key is required")

var (
	_ indexer.Store     = (*Client)(nil)
	_ profile.Generator = (*Client)(nil)
)

// Client is bound to one caller-supplied API key; it is never cached
// across requests.
type Client struct {
	cli   *genai.Client
	model string
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if model == "" {
		model = DefaultModel
	}

	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Client{cli: cli, model: model}, nil
}

// StoreFactory opens a Client per indexing run.
func StoreFactory(model string) indexer.StoreFactory {
	return func(ctx context.Context, apiKey string) (indexer.Store, error) {
		return NewClient(ctx, apiKey, model)
	}
}

// GeneratorFactory opens a Client per profile request.
func GeneratorFactory(model string) profile.GeneratorFactory {
	return func(ctx context.Context, apiKey string) (profile.Generator, error) {
		return NewClient(ctx, apiKey, model)
	}
}

func (c *Client) CreateStore(ctx context.Context, displayName string) (string, error) {
	store, err := c.cli.FileSearchStores.Create(ctx, &genai.CreateFileSearchStoreConfig{
		DisplayName: displayName,
	})
	if err != nil {
		return "", err
	}
	return store.Name, nil
}

func (c *Client) Upload(ctx context.Context, storeName string, doc models.CandidateDocument, ann indexer.Annotation) (*indexer.Operation, error) {
	op, err := c.cli.FileSearchStores.UploadToFileSearchStore(ctx,
		strings.NewReader(doc.Content),
		storeName,
		&genai.UploadToFileSearchStoreConfig{
			DisplayName:    doc.LogicalName,
			MIMEType:       "text/plain",
			CustomMetadata: customMetadata(ann),
		},
	)
	if err != nil {
		return nil, err
	}
	return toOperation(op), nil
}

func (c *Client) GetOperation(ctx context.Context, op *indexer.Operation) (*indexer.Operation, error) {
	latest, err := c.cli.Operations.GetUploadToFileSearchStoreOperation(ctx,
		&genai.UploadToFileSearchStoreOperation{Name: op.Name}, nil)
	if err != nil {
		return nil, err
	}
	return toOperation(latest), nil
}

func (c *Client) GenerateGrounded(ctx context.Context, prompt, storeName string) (*genai.GenerateContentResponse, error) {
	return c.cli.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{
			FileSearch: &genai.FileSearch{
				FileSearchStoreNames: []string{storeName},
			},
		}},
	})
}

func toOperation(op *genai.UploadToFileSearchStoreOperation) *indexer.Operation {
	if op == nil {
		return &indexer.Operation{}
	}
	out := &indexer.Operation{Name: op.Name, Done: op.Done}
	if len(op.Error) > 0 {
		out.Error = fmt.Sprint(op.Error)
	}
	return out
}

func customMetadata(ann indexer.Annotation) []*genai.CustomMetadata {
	meta := []*genai.CustomMetadata{
		{Key: "owner", StringValue: ann.Owner},
		{Key: "repo", StringValue: ann.Repo},
		{Key: "path", StringValue: ann.Path},
		{Key: "blake3", StringValue: ann.Digest},
		{Key: "bytes", StringValue: strconv.Itoa(ann.Bytes)},
	}
	if ann.Language != "" {
		meta = append(meta, &genai.CustomMetadata{Key: "language", StringValue: ann.Language})
	}
	if ann.Declarations >= 0 {
		meta = append(meta, &genai.CustomMetadata{Key: "declarations", StringValue: strconv.Itoa(ann.Declarations)})
	}
	return meta
}
