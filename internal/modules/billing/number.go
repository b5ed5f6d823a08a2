package billing

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

const numberPrefix = "INV-"

// Numberer issues unique, time-ordered invoice numbers.
type Numberer struct {
	node *snowflake.Node
}

// NewNumberer creates a numberer for the given node id (0..1023). Every
// running instance needs a distinct node id.
func NewNumberer(nodeID int64) (*Numberer, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("invoice numberer: %w", err)
	}
	return &Numberer{node: node}, nil
}

func (n *Numberer) Next() string {
	return numberPrefix + n.node.Generate().String()
}
