package indexer

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/dpolishuk/repoprofile/backend/internal/apperr"
	"github.com/dpolishuk/repoprofile/backend/internal/models"
	"github.com/dpolishuk/repoprofile/backend/internal/selector"
)

// Source is the repository side of an indexing run.
type Source interface {
	ListDirectory(ctx context.Context, repo models.RepositoryRef, path string) ([]models.DirectoryEntry, error)
	FetchFileContent(ctx context.Context, repo models.RepositoryRef, path string) (string, error)
}

// Operation is a long-running upload on the store provider.
type Operation struct {
	Name  string
	Done  bool
	Error string
}

// Store is the remote document index.
type Store interface {
	CreateStore(ctx context.Context, displayName string) (string, error)
	Upload(ctx context.Context, storeName string, doc models.CandidateDocument, ann Annotation) (*Operation, error)
	GetOperation(ctx context.Context, op *Operation) (*Operation, error)
}

// StoreFactory opens a Store authenticated with a caller-supplied API key.
type StoreFactory func(ctx context.Context, apiKey string) (Store, error)

// RunRecorder persists an audit record of finished runs.
type RunRecorder interface {
	RecordRun(ctx context.Context, run *models.IndexRun) error
}

type Options struct {
	Selector        selector.Options
	PollInterval    time.Duration
	MaxPollAttempts int
}

func DefaultOptions() Options {
	return Options{
		Selector:        selector.DefaultOptions(),
		PollInterval:    DefaultPollInterval,
		MaxPollAttempts: DefaultMaxPollAttempts,
	}
}

type Request struct {
	Username     string
	Repositories []string
	APIKey       string
}

type Pipeline struct {
	source    Source
	stores    StoreFactory
	annotator *Annotator
	recorder  RunRecorder
	opts      Options

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

func NewPipeline(source Source, stores StoreFactory, opts Options) *Pipeline {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.MaxPollAttempts <= 0 {
		opts.MaxPollAttempts = DefaultMaxPollAttempts
	}
	return &Pipeline{
		source:    source,
		stores:    stores,
		annotator: NewAnnotator(),
		opts:      opts,
		now:       time.Now,
		sleep:     sleepContext,
	}
}

// WithRecorder attaches an audit ledger. A nil recorder disables auditing.
func (p *Pipeline) WithRecorder(r RunRecorder) *Pipeline {
	p.recorder = r
	return p
}

func (p *Pipeline) Close() {
	p.annotator.Close()
}

// Index selects, fetches and uploads files from every repository into a new
// store, waiting for each upload in turn.
//
// FilesIndexed counts submitted uploads. Uploads that time out or whose
// status checks fail are still counted.
func (p *Pipeline) Index(ctx context.Context, req Request) (*models.IndexResult, error) {
	started := p.now()
	stamp := started.UnixMilli()
	run := &models.IndexRun{
		ID:        uuid.New().String(),
		Username:  req.Username,
		StoreName: fmt.Sprintf("fileSearchStores/%s-%d", req.Username, stamp),
		StartedAt: started,
	}

	docs := p.collect(ctx, req, run)
	if len(docs) == 0 {
		return nil, apperr.New(apperr.NoFilesFound, "No files found to index")
	}

	log.Printf("Uploading %d files to file search store (run %s)...", len(docs), run.ID)

	store, err := p.stores(ctx, req.APIKey)
	if err != nil {
		return nil, indexingFailed(err)
	}

	created, err := store.CreateStore(ctx, fmt.Sprintf("%s-repos-%d", req.Username, stamp))
	if err != nil {
		log.Printf("Error creating file search store: %v", err)
		return nil, indexingFailed(err)
	}
	if created != "" {
		run.StoreName = created
	}

	poll := &poller{
		store:       store,
		interval:    p.opts.PollInterval,
		maxAttempts: p.opts.MaxPollAttempts,
		sleep:       p.sleep,
	}
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, indexingFailed(err)
		}

		op, err := store.Upload(ctx, run.StoreName, doc, p.annotator.Annotate(ctx, doc))
		if err != nil {
			log.Printf("Error uploading %s: %v", doc.LogicalName, err)
			return nil, indexingFailed(err)
		}
		run.Outcomes = append(run.Outcomes, poll.await(ctx, doc, op))
	}

	run.FinishedAt = p.now()
	result := &models.IndexResult{
		StoreName:    run.StoreName,
		FilesIndexed: len(docs),
		Outcomes:     run.Outcomes,
	}
	log.Printf("Indexed %d files into %s (%d confirmed)", result.FilesIndexed, result.StoreName, result.Confirmed())

	p.record(ctx, run)
	return result, nil
}

// collect builds the candidate documents. Bad references, listing failures
// and fetch failures are logged and skipped.
func (p *Pipeline) collect(ctx context.Context, req Request, run *models.IndexRun) []models.CandidateDocument {
	var docs []models.CandidateDocument
	for _, raw := range req.Repositories {
		ref, err := models.ParseRepositoryRef(raw, req.Username)
		if err != nil {
			log.Printf("Skipping repository %q: %v", raw, err)
			continue
		}
		run.Repositories = append(run.Repositories, ref)

		log.Printf("Fetching files from %s...", ref)
		entries, err := p.source.ListDirectory(ctx, ref, "")
		if err != nil {
			log.Printf("Error fetching files for %s: %v", ref, err)
			continue
		}

		for _, entry := range selector.Select(entries, p.opts.Selector) {
			content, err := p.source.FetchFileContent(ctx, ref, entry.Path)
			if err != nil {
				log.Printf("Error fetching file %s/%s: %v", ref, entry.Path, err)
				continue
			}
			docs = append(docs, models.NewCandidateDocument(ref, entry.Path, content))
		}
	}
	return docs
}

func (p *Pipeline) record(ctx context.Context, run *models.IndexRun) {
	if p.recorder == nil {
		return
	}
	if err := p.recorder.RecordRun(ctx, run); err != nil {
		log.Printf("Failed to record index run %s: %v", run.ID, err)
	}
}

func indexingFailed(err error) error {
	return apperr.Wrap(apperr.IndexingFailed, "Failed to index repositories: "+err.Error(), err)
}
