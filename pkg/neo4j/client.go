// Package neo4j connects the interpreter to a live Neo4j (or Bolt
// compatible) engine through the official Go driver.
//
// Client implements both collaborator roles the core needs:
//
//   - interp.Executor — runs a statement and streams its records, lazily,
//     through a callback
//   - schema.Enumerator — enumerates labels and relationship types via the
//     db.labels()/db.relationshipTypes() procedures
//
// Driver values are canonicalized into the value package's tagged union by
// the converter in convert.go.
package neo4j

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/orneryd/cypherview/pkg/value"
)

// Config holds connection settings for a Client.
type Config struct {
	// URI is the bolt/neo4j connection URI, e.g. "bolt://localhost:7687".
	// Encryption is governed by the URI scheme (bolt:// vs bolt+s://).
	URI string
	// Username and Password for basic auth. Both empty disables auth.
	Username string
	Password string
	// Database selects the database for sessions. Empty uses the default.
	Database string
	// MaxConnectionPoolSize caps pooled connections. Zero uses 25.
	MaxConnectionPoolSize int
	// ConnectionTimeout bounds connection acquisition. Zero uses 30s.
	ConnectionTimeout time.Duration
}

// Client is a connected query executor. Create with NewClient, call
// Connect before use and Close when done. Safe for concurrent use once
// connected; the driver pools connections internally.
type Client struct {
	config Config
	driver neo4j.DriverWithContext
}

// NewClient creates an unconnected client.
func NewClient(config Config) *Client {
	if config.MaxConnectionPoolSize <= 0 {
		config.MaxConnectionPoolSize = 25
	}
	if config.ConnectionTimeout <= 0 {
		config.ConnectionTimeout = 30 * time.Second
	}
	return &Client{config: config}
}

// Connect creates the driver and verifies connectivity.
func (c *Client) Connect(ctx context.Context) error {
	var auth neo4j.AuthToken
	if c.config.Username != "" || c.config.Password != "" {
		auth = neo4j.BasicAuth(c.config.Username, c.config.Password, "")
	} else {
		auth = neo4j.NoAuth()
	}

	driver, err := neo4j.NewDriverWithContext(c.config.URI, auth, func(cfg *neo4j.Config) {
		cfg.MaxConnectionPoolSize = c.config.MaxConnectionPoolSize
		cfg.ConnectionAcquisitionTimeout = c.config.ConnectionTimeout
	})
	if err != nil {
		return fmt.Errorf("creating driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return fmt.Errorf("verifying connectivity to %s: %w", c.config.URI, err)
	}

	c.driver = driver
	return nil
}

// Close releases the driver and its connection pool.
func (c *Client) Close(ctx context.Context) error {
	if c.driver == nil {
		return nil
	}
	err := c.driver.Close(ctx)
	c.driver = nil
	return err
}

// Execute runs one statement in an auto-commit transaction, converting
// and streaming each record through fn in result order. The stream is
// fully drained even when the caller only wants side effects; an engine
// failure, or an error returned by fn, aborts and propagates.
func (c *Client) Execute(ctx context.Context, stmt string, fn func(value.Record) error) error {
	if c.driver == nil {
		return errors.New("client not connected")
	}

	session := c.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: c.config.Database,
	})
	defer session.Close(ctx)

	res, err := session.Run(ctx, stmt, nil)
	if err != nil {
		return fmt.Errorf("running statement: %w", err)
	}
	for res.Next(ctx) {
		rec := res.Record()
		converted := make(value.Record, len(rec.Keys))
		for i, key := range rec.Keys {
			converted[i] = value.Field{Key: key, Value: Convert(rec.Values[i])}
		}
		if err := fn(converted); err != nil {
			return err
		}
	}
	return res.Err()
}

// Labels enumerates the current node labels via CALL db.labels().
func (c *Client) Labels(ctx context.Context) ([]string, error) {
	return c.enumerate(ctx, "CALL db.labels()", "label")
}

// RelationshipTypes enumerates the current relationship types via
// CALL db.relationshipTypes().
func (c *Client) RelationshipTypes(ctx context.Context) ([]string, error) {
	return c.enumerate(ctx, "CALL db.relationshipTypes()", "relationshipType")
}

// enumerate runs a single-column schema procedure and collects the string
// values of the named field.
func (c *Client) enumerate(ctx context.Context, procedure, field string) ([]string, error) {
	var names []string
	err := c.Execute(ctx, procedure, func(rec value.Record) error {
		for _, f := range rec {
			if f.Key == field && f.Value.Kind() == value.KindString {
				names = append(names, f.Value.AsString())
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}
