package result

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/orneryd/cypherview/pkg/value"
)

// Table is a rectangular column/row matrix. A nil cell is a null, rendered
// as the empty token. Rows finalized before a later column appeared may be
// short; RenderTable pads them.
type Table struct {
	Columns []string
	Rows    [][]*string
}

// TableBuilder flattens record fields into a Table.
//
// Nested maps expand depth-first into synthetic dotted column names
// ("parent.entry"), preserving entry order. Column order is first-seen
// order across all records of the statement. When a value lands in a
// column introduced after the current row started, the row is null-padded
// up to the column count first, so earlier columns keep their positions.
type TableBuilder struct {
	columns []string
	index   map[string]int
	rows    [][]*string
	current []*string
}

// NewTableBuilder returns an empty builder.
func NewTableBuilder() *TableBuilder {
	return &TableBuilder{index: make(map[string]int)}
}

// StartRow begins collecting cells for the next record.
func (b *TableBuilder) StartRow() {
	b.current = nil
}

// EndRow finalizes the in-progress row. Rows that produced no tabular
// cells (records consisting solely of graph values) are not appended.
func (b *TableBuilder) EndRow() {
	if len(b.current) > 0 {
		b.rows = append(b.rows, b.current)
	}
	b.current = nil
}

// Flatten adds one field to the current row, recursing through maps under
// dotted keys. Maps here are data values, not object graphs, so no cycle
// protection is needed.
func (b *TableBuilder) Flatten(key string, v value.Value) {
	if v.Kind() == value.KindMap {
		m := v.AsMap()
		for _, entry := range m.Keys() {
			sub, _ := m.Get(entry)
			b.Flatten(key+"."+entry, sub)
		}
		return
	}
	b.setCell(key, v)
}

// Table returns the finished matrix. Rows stay short if they ended before
// the last column appeared; trailing padding happens at render time.
func (b *TableBuilder) Table() Table {
	return Table{Columns: b.columns, Rows: b.rows}
}

// setCell stringifies v into the column for key, creating the column on
// first sight and padding the row before placement.
func (b *TableBuilder) setCell(key string, v value.Value) {
	pos, ok := b.index[key]
	if !ok {
		pos = len(b.columns)
		b.columns = append(b.columns, key)
		b.index[key] = pos
	}

	for len(b.current) < len(b.columns) {
		b.current = append(b.current, nil)
	}
	b.current[pos] = stringify(key, v)
}

// stringify converts a leaf value to its cell text. Lists and maps become
// compact JSON; a serialization failure is logged and degrades to a
// best-effort text form rather than failing the render. Null stays nil.
func stringify(key string, v value.Value) *string {
	switch v.Kind() {
	case value.KindNull:
		return nil
	case value.KindList, value.KindMap:
		data, err := json.Marshal(v)
		if err != nil {
			log.Printf("result: ignored serialization failure for column %q: %v", key, err)
			s := degradedText(v)
			return &s
		}
		s := string(data)
		return &s
	default:
		s := v.Text()
		return &s
	}
}

// degradedText renders a list or map that failed JSON serialization using
// each element's natural string form, so the cell is degraded but present.
func degradedText(v value.Value) string {
	var sb strings.Builder
	switch v.Kind() {
	case value.KindList:
		sb.WriteByte('[')
		for i, item := range v.AsList() {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(leafText(item))
		}
		sb.WriteByte(']')
	case value.KindMap:
		sb.WriteByte('{')
		m := v.AsMap()
		for i, key := range m.Keys() {
			if i > 0 {
				sb.WriteString(", ")
			}
			entry, _ := m.Get(key)
			sb.WriteString(key)
			sb.WriteString(": ")
			sb.WriteString(leafText(entry))
		}
		sb.WriteByte('}')
	default:
		sb.WriteString(v.Text())
	}
	return sb.String()
}

func leafText(v value.Value) string {
	if v.Kind() == value.KindList || v.Kind() == value.KindMap {
		return degradedText(v)
	}
	return v.Text()
}

// RenderTable serializes a table to the tabular wire format: the marker
// line, a tab-joined header line, then one tab-joined line per row. Null
// cells render as the empty token. A table with no columns at all renders
// as an empty success.
func RenderTable(t Table) Result {
	if len(t.Columns) == 0 {
		return Empty()
	}

	var sb strings.Builder
	sb.WriteString(TableMarker)
	sb.WriteByte('\n')
	sb.WriteString(strings.Join(t.Columns, "\t"))
	sb.WriteByte('\n')
	for _, row := range t.Rows {
		for i := range t.Columns {
			if i > 0 {
				sb.WriteByte('\t')
			}
			if i < len(row) && row[i] != nil {
				sb.WriteString(*row[i])
			}
		}
		sb.WriteByte('\n')
	}
	return Result{Code: Success, Type: TypeTable, Body: sb.String()}
}
