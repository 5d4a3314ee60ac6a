package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Node is a named element of the tree. Roots have a nil ParentID.
type Node struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null;uniqueIndex:idx_nodes_parent_name,priority:2" json:"name"`
	ParentID  *string   `gorm:"type:char(36);uniqueIndex:idx_nodes_parent_name,priority:1" json:"parent_id"`
	Parent    *Node     `gorm:"foreignKey:ParentID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name for Node
func (Node) TableName() string {
	return "nodes"
}

// BeforeCreate assigns a new identifier when none is set
func (n *Node) BeforeCreate(_ *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

// IsRoot reports whether the node has no parent
func (n *Node) IsRoot() bool {
	return n.ParentID == nil
}

// NodeWithProperties is a node with its properties and, recursively, its children.
// Children is omitted from JSON when the node is a leaf.
type NodeWithProperties struct {
	Node
	Properties []Property             `json:"properties"`
	Children   []*NodeWithProperties `json:"children,omitempty"`
}

// PropertyCount returns the number of properties in the whole subtree
func (n *NodeWithProperties) PropertyCount() int {
	count := len(n.Properties)
	for _, child := range n.Children {
		count += child.PropertyCount()
	}
	return count
}

// Find returns the descendant reached by following names, or nil
func (n *NodeWithProperties) Find(names ...string) *NodeWithProperties {
	current := n
	for _, name := range names {
		var next *NodeWithProperties
		for _, child := range current.Children {
			if child.Name == name {
				next = child
				break
			}
		}
		if next == nil {
			return nil
		}
		current = next
	}
	return current
}
