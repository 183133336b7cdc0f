// Package ledger keeps a write-only audit trail of indexing runs in Neo4j.
package ledger

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

type Config struct {
	URI      string
	Username string
	Password string
	Database string
}

type Client struct {
	driver   neo4j.DriverWithContext
	database string
}

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	driver, err := neo4j.NewDriverWithContext(
		cfg.URI,
		neo4j.BasicAuth(cfg.Username, cfg.Password, ""),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("failed to connect to neo4j: %w", err)
	}

	database := cfg.Database
	if database == "" {
		database = "neo4j"
	}
	return &Client{driver: driver, database: database}, nil
}

func (c *Client) Close() error {
	return c.driver.Close(context.Background())
}

func (c *Client) Ping(ctx context.Context) error {
	return c.driver.VerifyConnectivity(ctx)
}

// ExecuteWrite runs work in a managed write transaction.
func (c *Client) ExecuteWrite(ctx context.Context, work func(tx neo4j.ManagedTransaction) (any, error)) (any, error) {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: c.database})
	defer session.Close(ctx)

	return session.ExecuteWrite(ctx, work)
}
