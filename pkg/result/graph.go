package result

import (
	"encoding/json"

	"github.com/orneryd/cypherview/pkg/value"
)

// Graph is the structured graph body: converted nodes and relationships,
// the label→color mapping and type set in effect at render time, and the
// directed flag, which is always true for a property graph.
type Graph struct {
	Nodes         []GraphNode         `json:"nodes"`
	Relationships []GraphRelationship `json:"relationships"`
	Labels        map[string]string   `json:"labels"`
	Types         []string            `json:"types"`
	Directed      bool                `json:"directed"`
}

// GraphNode is one rendered node. Label is the primary (first) label and
// Color its assigned display color; the full label set rides along.
type GraphNode struct {
	ID         string                 `json:"id"`
	Label      string                 `json:"label"`
	Labels     []string               `json:"labels"`
	Color      string                 `json:"color"`
	Properties map[string]value.Value `json:"data"`
}

// GraphRelationship is one rendered edge between two node identities.
type GraphRelationship struct {
	ID         string                 `json:"id"`
	Source     string                 `json:"source"`
	Target     string                 `json:"target"`
	Type       string                 `json:"type"`
	Properties map[string]value.Value `json:"data"`
}

// AssembleGraph converts collected nodes and relationships into a Graph,
// annotating each node with the color of its primary label from the given
// mapping. Input order is preserved, so identical input assembles an
// identical graph.
func AssembleGraph(nodes []*value.Node, rels []*value.Relationship, labelColors map[string]string, types []string) Graph {
	g := Graph{
		Nodes:         make([]GraphNode, 0, len(nodes)),
		Relationships: make([]GraphRelationship, 0, len(rels)),
		Labels:        labelColors,
		Types:         types,
		Directed:      true,
	}

	for _, n := range nodes {
		gn := GraphNode{
			ID:         n.ID,
			Labels:     n.Labels,
			Properties: n.Properties,
		}
		if len(n.Labels) > 0 {
			gn.Label = n.Labels[0]
			gn.Color = labelColors[n.Labels[0]]
		}
		g.Nodes = append(g.Nodes, gn)
	}

	for _, r := range rels {
		g.Relationships = append(g.Relationships, GraphRelationship{
			ID:         r.ID,
			Source:     r.StartID,
			Target:     r.EndID,
			Type:       r.Type,
			Properties: r.Properties,
		})
	}

	return g
}

// RenderGraph serializes a graph to the network wire format: the marker
// line followed by the JSON document.
func RenderGraph(g Graph) Result {
	data, err := json.Marshal(g)
	if err != nil {
		return Errorf("serializing graph result: %v", err)
	}
	return Result{Code: Success, Type: TypeNetwork, Body: NetworkMarker + "\n" + string(data)}
}
