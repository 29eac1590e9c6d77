package neo4j

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"

	"github.com/orneryd/cypherview/pkg/value"
)

// Convert canonicalizes one driver-typed value into the core value union.
//
// Node, relationship and path values map to their graph variants keyed by
// the driver's element id. Driver maps arrive as unordered Go maps, so
// their entries are inserted in sorted key order to keep flattened column
// ordering deterministic. Temporal and spatial values convert to their
// natural string forms; anything unrecognized degrades to its fmt
// rendering rather than failing.
func Convert(v any) value.Value {
	switch t := v.(type) {
	case nil:
		return value.Null()
	case bool:
		return value.Bool(t)
	case int64:
		return value.Int(t)
	case float64:
		return value.Float(t)
	case string:
		return value.String(t)
	case []byte:
		return value.String(string(t))
	case []any:
		items := make([]value.Value, len(t))
		for i, item := range t {
			items[i] = Convert(item)
		}
		return value.List(items)
	case map[string]any:
		return value.FromMap(convertMap(t))
	case dbtype.Node:
		return value.FromNode(convertNode(t))
	case dbtype.Relationship:
		return value.FromRelationship(convertRelationship(t))
	case dbtype.Path:
		p := &value.Path{
			Nodes:         make([]*value.Node, len(t.Nodes)),
			Relationships: make([]*value.Relationship, len(t.Relationships)),
		}
		for i, n := range t.Nodes {
			p.Nodes[i] = convertNode(n)
		}
		for i, r := range t.Relationships {
			p.Relationships[i] = convertRelationship(r)
		}
		return value.FromPath(p)
	case time.Time:
		return value.String(t.Format(time.RFC3339Nano))
	case dbtype.Date:
		return value.String(t.String())
	case dbtype.LocalTime:
		return value.String(t.String())
	case dbtype.Time:
		return value.String(t.String())
	case dbtype.LocalDateTime:
		return value.String(t.String())
	case dbtype.Duration:
		return value.String(t.String())
	case dbtype.Point2D:
		return value.String(t.String())
	case dbtype.Point3D:
		return value.String(t.String())
	default:
		return value.String(fmt.Sprintf("%v", t))
	}
}

func convertMap(m map[string]any) *value.Map {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := value.NewMap()
	for _, key := range keys {
		out.Set(key, Convert(m[key]))
	}
	return out
}

func convertNode(n dbtype.Node) *value.Node {
	return &value.Node{
		ID:         elementID(n.ElementId, n.Id),
		Labels:     n.Labels,
		Properties: convertProps(n.Props),
	}
}

func convertRelationship(r dbtype.Relationship) *value.Relationship {
	return &value.Relationship{
		ID:         elementID(r.ElementId, r.Id),
		Type:       r.Type,
		StartID:    elementID(r.StartElementId, r.StartId),
		EndID:      elementID(r.EndElementId, r.EndId),
		Properties: convertProps(r.Props),
	}
}

func convertProps(props map[string]any) map[string]value.Value {
	out := make(map[string]value.Value, len(props))
	for key, v := range props {
		out[key] = Convert(v)
	}
	return out
}

// elementID prefers the driver's element id, falling back to the legacy
// numeric id for engines that predate element ids.
func elementID(elementID string, legacy int64) string {
	if elementID != "" {
		return elementID
	}
	return strconv.FormatInt(legacy, 10)
}
