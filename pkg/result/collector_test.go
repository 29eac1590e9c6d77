package result

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orneryd/cypherview/pkg/value"
)

func personNode(id, name string) *value.Node {
	return &value.Node{
		ID:         id,
		Labels:     []string{"Person"},
		Properties: map[string]value.Value{"name": value.String(name)},
	}
}

func knowsRel(id, from, to string) *value.Relationship {
	return &value.Relationship{ID: id, Type: "KNOWS", StartID: from, EndID: to}
}

func TestCollectDeduplicatesNodesByIdentity(t *testing.T) {
	c := NewCollector()
	c.Collect(value.Record{{Key: "n", Value: value.FromNode(personNode("1", "Al"))}})
	c.Collect(value.Record{{Key: "n", Value: value.FromNode(personNode("1", "Al"))}})
	c.Collect(value.Record{{Key: "n", Value: value.FromNode(personNode("2", "Bo"))}})

	nodes := c.Nodes()
	require.Len(t, nodes, 2)
	assert.Equal(t, "1", nodes[0].ID)
	assert.Equal(t, "2", nodes[1].ID)
}

func TestCollectUnpacksPaths(t *testing.T) {
	p := &value.Path{
		Nodes:         []*value.Node{personNode("1", "Al"), personNode("2", "Bo")},
		Relationships: []*value.Relationship{knowsRel("r1", "1", "2")},
	}

	c := NewCollector()
	c.Collect(value.Record{{Key: "p", Value: value.FromPath(p)}})

	assert.Len(t, c.Nodes(), 2)
	assert.Len(t, c.Relationships(), 1)

	// The path itself contributes no tabular row.
	table := c.Table()
	assert.Empty(t, table.Columns)
	assert.Empty(t, table.Rows)
}

func TestCollectPathSharedNodesDeduplicated(t *testing.T) {
	shared := personNode("2", "Bo")
	p1 := &value.Path{
		Nodes:         []*value.Node{personNode("1", "Al"), shared},
		Relationships: []*value.Relationship{knowsRel("r1", "1", "2")},
	}
	p2 := &value.Path{
		Nodes:         []*value.Node{shared, personNode("3", "Cy")},
		Relationships: []*value.Relationship{knowsRel("r2", "2", "3")},
	}

	c := NewCollector()
	c.Collect(value.Record{{Key: "p", Value: value.FromPath(p1)}})
	c.Collect(value.Record{{Key: "p", Value: value.FromPath(p2)}})

	assert.Len(t, c.Nodes(), 3)
	assert.Len(t, c.Relationships(), 2)
}

func TestCollectMixedRecordKeepsTabularSide(t *testing.T) {
	c := NewCollector()
	c.Collect(value.Record{
		{Key: "n", Value: value.FromNode(personNode("1", "Al"))},
		{Key: "score", Value: value.Int(10)},
	})

	assert.True(t, c.HasNodes())

	// Tabular cells were still collected; the caller decides to discard
	// them because graph rendering wins.
	table := c.Table()
	assert.Equal(t, []string{"score"}, table.Columns)
	require.Len(t, table.Rows, 1)
}

func TestCollectGraphOnlyRecordProducesNoRow(t *testing.T) {
	c := NewCollector()
	c.Collect(value.Record{
		{Key: "n", Value: value.FromNode(personNode("1", "Al"))},
		{Key: "r", Value: value.FromRelationship(knowsRel("r1", "1", "1"))},
	})

	table := c.Table()
	assert.Empty(t, table.Rows)
}

func TestCollectScalarOnly(t *testing.T) {
	c := NewCollector()
	c.Collect(value.Record{{Key: "count", Value: value.Int(3)}})

	assert.False(t, c.HasNodes())
	table := c.Table()
	assert.Equal(t, []string{"count"}, table.Columns)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "3", *table.Rows[0][0])
}
