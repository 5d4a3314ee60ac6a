package services

import (
	"context"

	"github.com/localnerve/pcnodetree/internal/models"
	"github.com/shopspring/decimal"
)

// TreeSource is the read access the tree builder needs
type TreeSource interface {
	PropertiesOf(ctx context.Context, nodeID string) ([]models.Property, error)
	ChildrenOf(ctx context.Context, nodeID string) ([]models.Node, error)
}

// PathSource is the read access the path resolver needs
type PathSource interface {
	FindRootByName(ctx context.Context, name string) (*models.Node, error)
	FindChildByName(ctx context.Context, parentID, name string) (*models.Node, error)
	FindPropertyByKey(ctx context.Context, nodeID, key string) (*models.Property, error)
}

// NodeStore is the full storage surface used by NodeService.
// *repository.NodeRepository implements it.
type NodeStore interface {
	TreeSource
	PathSource
	CreateNode(ctx context.Context, name string, parentID *string) (*models.Node, error)
	UpsertProperty(ctx context.Context, nodeID, key string, value decimal.Decimal) (*models.Property, error)
	NodeExists(ctx context.Context, nodeID string) (bool, error)
	FindNodeByID(ctx context.Context, nodeID string) (*models.Node, error)
}
