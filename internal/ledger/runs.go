package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/dpolishuk/repoprofile/backend/internal/models"
)

const recordRunQuery = `
	MERGE (u:User {login: $username})
	CREATE (run:IndexRun {
		id: $id,
		startedAt: $startedAt,
		finishedAt: $finishedAt,
		repositories: $repositories,
		filesSubmitted: $filesSubmitted,
		filesConfirmed: $filesConfirmed
	})
	MERGE (s:Store {name: $storeName})
	MERGE (u)-[:RAN]->(run)
	MERGE (run)-[:CREATED]->(s)
	WITH run, s
	UNWIND $documents AS doc
	MERGE (d:Document {storeName: $storeName, name: doc.name})
	SET d.owner = doc.owner,
	    d.repo = doc.repo,
	    d.path = doc.path,
	    d.operation = doc.operation,
	    d.state = doc.state,
	    d.attempts = doc.attempts
	MERGE (s)-[:HOLDS]->(d)
	MERGE (run)-[:UPLOADED]->(d)
`

// Recorder writes IndexRun records. Nothing in the service reads them back.
type Recorder struct {
	client *Client
}

func NewRecorder(client *Client) *Recorder {
	return &Recorder{client: client}
}

func (r *Recorder) RecordRun(ctx context.Context, run *models.IndexRun) error {
	_, err := r.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx, recordRunQuery, runParams(run))
		return nil, err
	})
	if err != nil {
		return fmt.Errorf("failed to record index run %s: %w", run.ID, err)
	}
	return nil
}

func runParams(run *models.IndexRun) map[string]any {
	repos := make([]string, 0, len(run.Repositories))
	for _, ref := range run.Repositories {
		repos = append(repos, ref.String())
	}

	docs := make([]map[string]any, 0, len(run.Outcomes))
	confirmed := 0
	for _, o := range run.Outcomes {
		if o.Terminal() {
			confirmed++
		}
		docs = append(docs, map[string]any{
			"name":      o.Document.LogicalName,
			"owner":     o.Document.Repo.Owner,
			"repo":      o.Document.Repo.Name,
			"path":      o.Document.Path,
			"operation": o.Operation,
			"state":     string(o.State),
			"attempts":  o.Attempts,
		})
	}

	return map[string]any{
		"id":             run.ID,
		"username":       run.Username,
		"storeName":      run.StoreName,
		"startedAt":      run.StartedAt.UTC().Format(time.RFC3339Nano),
		"finishedAt":     run.FinishedAt.UTC().Format(time.RFC3339Nano),
		"repositories":   repos,
		"filesSubmitted": len(run.Outcomes),
		"filesConfirmed": confirmed,
		"documents":      docs,
	}
}
