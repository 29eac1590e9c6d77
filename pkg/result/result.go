// Package result turns the raw record stream of one executed statement
// into a rendered result: either a fixed-width table or a deduplicated
// node/relationship graph.
//
// The pipeline is single-pass: a Collector consumes each record exactly
// once, bucketing graph values into node/relationship sets (paths are
// unpacked into their members) and forwarding everything else to the
// tabular flattener. Graph rendering wins whenever the node set is
// non-empty; tabular rows collected from the same statement are discarded
// in that case.
package result

import "fmt"

// Code is the terminal outcome of a render.
type Code int

const (
	Success Code = iota
	Error
)

// Type tags what the body contains.
type Type int

const (
	TypeEmpty Type = iota
	TypeTable
	TypeNetwork
)

// Markers distinguishing rendered content from plain text. The table body
// starts with TableMarker on its own line; the graph body starts with
// NetworkMarker followed by the JSON document.
const (
	TableMarker   = "%table"
	NetworkMarker = "%network"
)

// Result is a rendered statement outcome.
//
// Success with TypeEmpty carries no body (blank statement, or a result
// with no columns at all). Error carries the failure message as the body.
type Result struct {
	Code Code
	Type Type
	Body string
}

// Empty returns the empty success result.
func Empty() Result { return Result{Code: Success, Type: TypeEmpty} }

// Errorf returns an error result with a formatted message.
func Errorf(format string, args ...any) Result {
	return Result{Code: Error, Type: TypeEmpty, Body: fmt.Sprintf(format, args...)}
}
