package neo4j

import (
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orneryd/cypherview/pkg/value"
)

func TestConvertScalars(t *testing.T) {
	assert.True(t, Convert(nil).IsNull())
	assert.Equal(t, true, Convert(true).AsBool())
	assert.Equal(t, int64(42), Convert(int64(42)).AsInt())
	assert.Equal(t, 1.5, Convert(1.5).AsFloat())
	assert.Equal(t, "x", Convert("x").AsString())
	assert.Equal(t, "bytes", Convert([]byte("bytes")).AsString())
}

func TestConvertList(t *testing.T) {
	v := Convert([]any{int64(1), "a", nil})
	require.Equal(t, value.KindList, v.Kind())
	items := v.AsList()
	require.Len(t, items, 3)
	assert.Equal(t, int64(1), items[0].AsInt())
	assert.Equal(t, "a", items[1].AsString())
	assert.True(t, items[2].IsNull())
}

func TestConvertMapSortsKeys(t *testing.T) {
	v := Convert(map[string]any{"zebra": int64(1), "alpha": int64(2)})
	require.Equal(t, value.KindMap, v.Kind())
	assert.Equal(t, []string{"alpha", "zebra"}, v.AsMap().Keys(),
		"driver maps are unordered; sorted keys keep column order deterministic")
}

func TestConvertNode(t *testing.T) {
	v := Convert(dbtype.Node{
		Id:        7,
		ElementId: "4:abc:7",
		Labels:    []string{"Person"},
		Props:     map[string]any{"name": "Al"},
	})
	require.Equal(t, value.KindNode, v.Kind())

	n := v.AsNode()
	assert.Equal(t, "4:abc:7", n.ID)
	assert.Equal(t, []string{"Person"}, n.Labels)
	assert.Equal(t, "Al", n.Properties["name"].AsString())
}

func TestConvertNodeLegacyIDFallback(t *testing.T) {
	v := Convert(dbtype.Node{Id: 7})
	assert.Equal(t, "7", v.AsNode().ID)
}

func TestConvertRelationship(t *testing.T) {
	v := Convert(dbtype.Relationship{
		Id:             3,
		ElementId:      "5:abc:3",
		StartElementId: "4:abc:1",
		EndElementId:   "4:abc:2",
		Type:           "KNOWS",
		Props:          map[string]any{"since": int64(2020)},
	})
	require.Equal(t, value.KindRelationship, v.Kind())

	r := v.AsRelationship()
	assert.Equal(t, "5:abc:3", r.ID)
	assert.Equal(t, "KNOWS", r.Type)
	assert.Equal(t, "4:abc:1", r.StartID)
	assert.Equal(t, "4:abc:2", r.EndID)
	assert.Equal(t, int64(2020), r.Properties["since"].AsInt())
}

func TestConvertPath(t *testing.T) {
	v := Convert(dbtype.Path{
		Nodes: []dbtype.Node{
			{ElementId: "4:abc:1", Labels: []string{"Person"}},
			{ElementId: "4:abc:2", Labels: []string{"Person"}},
		},
		Relationships: []dbtype.Relationship{
			{ElementId: "5:abc:1", StartElementId: "4:abc:1", EndElementId: "4:abc:2", Type: "KNOWS"},
		},
	})
	require.Equal(t, value.KindPath, v.Kind())

	p := v.AsPath()
	require.Len(t, p.Nodes, 2)
	require.Len(t, p.Relationships, 1)
	assert.Equal(t, "4:abc:1", p.Nodes[0].ID)
	assert.Equal(t, "KNOWS", p.Relationships[0].Type)
}

func TestConvertTemporalValues(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-05-01T12:00:00Z", Convert(now).AsString())

	for _, v := range []any{
		dbtype.Date(now),
		dbtype.LocalTime(now),
		dbtype.Time(now),
		dbtype.LocalDateTime(now),
		dbtype.Duration{Days: 1},
	} {
		converted := Convert(v)
		assert.Equal(t, value.KindString, converted.Kind())
		assert.NotEmpty(t, converted.AsString())
	}
}

func TestConvertUnknownDegradesToString(t *testing.T) {
	type odd struct{ X int }
	v := Convert(odd{X: 1})
	require.Equal(t, value.KindString, v.Kind())
	assert.NotEmpty(t, v.AsString())
}
