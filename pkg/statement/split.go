// Package statement splits multi-statement Cypher input into individually
// executable statements.
//
// The separator is ';'. A separator inside a single-quoted string, a
// double-quoted string, or a backtick-quoted identifier is part of the
// literal, not a statement boundary. Splitting is done with a small
// quote-aware scanner that tracks the active quote character across the
// whole input rather than pattern-matching adjacent characters.
package statement

import "strings"

// Separator terminates one statement inside a multi-statement input.
const Separator = ';'

// Split breaks raw query text into an ordered list of trimmed statements.
//
// When multiStatement is false, or the input contains no separator outside
// string/identifier literals, the input is returned whole (trimmed) as a
// single statement. Whitespace-only statements between separators are kept
// in the sequence; the caller treats them as no-ops. Empty trailing pieces
// produced by a terminating separator are dropped.
//
//	Split("MATCH (n) RETURN n; CREATE (:X)", true)
//	// → ["MATCH (n) RETURN n", "CREATE (:X)"]
//
//	Split("RETURN 'a;b'", true)
//	// → ["RETURN 'a;b'"]
func Split(input string, multiStatement bool) []string {
	if !multiStatement {
		return []string{strings.TrimSpace(input)}
	}

	pieces := scan(input)
	if len(pieces) == 1 {
		return []string{strings.TrimSpace(input)}
	}

	statements := make([]string, len(pieces))
	for i, piece := range pieces {
		statements[i] = strings.TrimSpace(piece)
	}

	// A terminating separator yields empty trailing pieces, not statements.
	for len(statements) > 1 && statements[len(statements)-1] == "" {
		statements = statements[:len(statements)-1]
	}
	return statements
}

// scan cuts input at separators that occur outside any literal span.
func scan(input string) []string {
	var (
		pieces  []string
		start   int
		quote   rune // active quote character, 0 when outside literals
		escaped bool
	)

	for i, r := range input {
		if escaped {
			escaped = false
			continue
		}

		switch {
		case quote != 0:
			// Backslash escapes only apply inside string literals,
			// not backtick-quoted identifiers.
			if r == '\\' && quote != '`' {
				escaped = true
			} else if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"' || r == '`':
			quote = r
		case r == Separator:
			pieces = append(pieces, input[start:i])
			start = i + 1
		}
	}

	return append(pieces, input[start:])
}
