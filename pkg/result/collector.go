package result

import "github.com/orneryd/cypherview/pkg/value"

// Collector classifies the record stream of one executed statement.
// Create one per statement; it is not safe for concurrent use, and the
// stream must be consumed exactly once.
type Collector struct {
	nodes     map[string]*value.Node
	nodeOrder []string
	rels      map[string]*value.Relationship
	relOrder  []string
	table     *TableBuilder
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{
		nodes: make(map[string]*value.Node),
		rels:  make(map[string]*value.Relationship),
		table: NewTableBuilder(),
	}
}

// Collect consumes one record. Node and relationship fields go to the
// deduplicated graph sets (paths are unpacked into their members and not
// themselves retained, producing no tabular cell); every other field is
// forwarded to the flattener. A record whose fields were all graph values
// contributes no tabular row.
func (c *Collector) Collect(rec value.Record) {
	c.table.StartRow()
	for _, field := range rec {
		switch field.Value.Kind() {
		case value.KindNode:
			c.addNode(field.Value.AsNode())
		case value.KindRelationship:
			c.addRelationship(field.Value.AsRelationship())
		case value.KindPath:
			p := field.Value.AsPath()
			for _, n := range p.Nodes {
				c.addNode(n)
			}
			for _, r := range p.Relationships {
				c.addRelationship(r)
			}
		default:
			c.table.Flatten(field.Key, field.Value)
		}
	}
	c.table.EndRow()
}

// HasNodes reports whether any node was collected. When true, the
// statement renders as a graph regardless of tabular content.
func (c *Collector) HasNodes() bool { return len(c.nodeOrder) > 0 }

// Nodes returns the deduplicated nodes in first-seen order.
func (c *Collector) Nodes() []*value.Node {
	nodes := make([]*value.Node, len(c.nodeOrder))
	for i, id := range c.nodeOrder {
		nodes[i] = c.nodes[id]
	}
	return nodes
}

// Relationships returns the deduplicated relationships in first-seen order.
func (c *Collector) Relationships() []*value.Relationship {
	rels := make([]*value.Relationship, len(c.relOrder))
	for i, id := range c.relOrder {
		rels[i] = c.rels[id]
	}
	return rels
}

// Table returns the tabular side of the classification.
func (c *Collector) Table() Table { return c.table.Table() }

func (c *Collector) addNode(n *value.Node) {
	if n == nil {
		return
	}
	if _, seen := c.nodes[n.ID]; !seen {
		c.nodes[n.ID] = n
		c.nodeOrder = append(c.nodeOrder, n.ID)
	}
}

func (c *Collector) addRelationship(r *value.Relationship) {
	if r == nil {
		return
	}
	if _, seen := c.rels[r.ID]; !seen {
		c.rels[r.ID] = r
		c.relOrder = append(c.relOrder, r.ID)
	}
}
