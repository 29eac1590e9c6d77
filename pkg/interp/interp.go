// Package interp orchestrates statement interpretation: split the raw
// input, execute each statement against the engine, classify the record
// stream, and render the last statement's outcome.
//
// Statements before the last run for their side effects only; their
// results are fully drained and then discarded. Only the final statement
// is rendered. Blank input, and blank statements between separators,
// yield empty successes without touching the engine.
//
// Example:
//
//	in := interp.New(exec, cache)
//	res := in.Interpret(ctx, "CREATE (:Person {name: 'Al'}); MATCH (n) RETURN n")
//	// res renders only the MATCH output; the CREATE ran first.
package interp

import (
	"context"
	"log"
	"strings"

	"github.com/orneryd/cypherview/pkg/result"
	"github.com/orneryd/cypherview/pkg/schema"
	"github.com/orneryd/cypherview/pkg/statement"
	"github.com/orneryd/cypherview/pkg/value"
)

// Executor runs one statement against the query engine, streaming each
// record through fn in order. Execute returns after the stream is fully
// consumed, or with the engine's failure. The callback streaming contract
// keeps the record sequence lazy: nothing is buffered engine-side.
type Executor interface {
	Execute(ctx context.Context, stmt string, fn func(value.Record) error) error
}

// Interpreter renders query results. Safe for concurrent use; concurrent
// Interpret calls share the schema cache, whose own locking keeps color
// allocation passes from interleaving.
type Interpreter struct {
	exec           Executor
	cache          *schema.Cache
	multiStatement bool
	sem            chan struct{}
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithMultiStatement governs whether input is split on statement
// separators. Enabled by default.
func WithMultiStatement(enabled bool) Option {
	return func(in *Interpreter) { in.multiStatement = enabled }
}

// WithMaxConcurrency bounds the number of Interpret calls running at
// once. Zero or negative leaves concurrency unbounded.
func WithMaxConcurrency(n int) Option {
	return func(in *Interpreter) {
		if n > 0 {
			in.sem = make(chan struct{}, n)
		}
	}
}

// New creates an Interpreter over the given executor and schema cache.
func New(exec Executor, cache *schema.Cache, opts ...Option) *Interpreter {
	in := &Interpreter{
		exec:           exec,
		cache:          cache,
		multiStatement: true,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Interpret executes raw query text and returns the rendered result of
// its last statement. Whitespace-only input is an empty success.
func (in *Interpreter) Interpret(ctx context.Context, raw string) result.Result {
	if in.sem != nil {
		select {
		case in.sem <- struct{}{}:
			defer func() { <-in.sem }()
		case <-ctx.Done():
			return result.Errorf("%v", ctx.Err())
		}
	}

	if strings.TrimSpace(raw) == "" {
		return result.Empty()
	}

	stmts := statement.Split(raw, in.multiStatement)
	for _, stmt := range stmts[:len(stmts)-1] {
		in.run(ctx, stmt)
	}
	return in.run(ctx, stmts[len(stmts)-1])
}

// run executes one statement and renders its outcome. The record stream
// is consumed exactly once; a graph result wins whenever any node was
// returned, discarding tabular rows from the same statement.
func (in *Interpreter) run(ctx context.Context, stmt string) result.Result {
	if strings.TrimSpace(stmt) == "" {
		return result.Empty()
	}

	collector := result.NewCollector()
	err := in.exec.Execute(ctx, stmt, func(rec value.Record) error {
		collector.Collect(rec)
		return nil
	})
	if err != nil {
		log.Printf("interp: statement execution failed: %v", err)
		return result.Errorf("%v", err)
	}

	if collector.HasNodes() {
		return in.renderGraph(ctx, collector)
	}
	return result.RenderTable(collector.Table())
}

// renderGraph forces a label and type refresh so colors and the type set
// reflect the current engine schema, then assembles the graph body.
func (in *Interpreter) renderGraph(ctx context.Context, c *result.Collector) result.Result {
	labels, err := in.cache.Labels(ctx, true)
	if err != nil {
		log.Printf("interp: label refresh failed: %v", err)
		return result.Errorf("%v", err)
	}
	types, err := in.cache.Types(ctx, true)
	if err != nil {
		log.Printf("interp: relationship type refresh failed: %v", err)
		return result.Errorf("%v", err)
	}
	return result.RenderGraph(result.AssembleGraph(c.Nodes(), c.Relationships(), labels, types))
}
