package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/localnerve/pcnodetree/internal/models"
	"github.com/localnerve/pcnodetree/internal/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SeedProperty is a property to seed. Value is a decimal literal.
type SeedProperty struct {
	Key   string
	Value string
}

// SeedNode describes a node, its properties and its children to seed
type SeedNode struct {
	Name       string
	Properties []SeedProperty
	Children   []SeedNode
}

// AlphaPC is the sample PC component hierarchy
var AlphaPC = SeedNode{
	Name: "AlphaPC",
	Properties: []SeedProperty{
		{Key: "Height", Value: "450.00"},
		{Key: "Width", Value: "180.00"},
	},
	Children: []SeedNode{
		{
			Name:       "Processing",
			Properties: []SeedProperty{{Key: "RAM", Value: "32000.00"}},
			Children: []SeedNode{
				{
					Name: "CPU",
					Properties: []SeedProperty{
						{Key: "Cores", Value: "4"},
						{Key: "Power", Value: "2.41"},
					},
				},
				{
					Name: "Graphics",
					Properties: []SeedProperty{
						{Key: "RAM", Value: "4000.00"},
						{Key: "Ports", Value: "8.00"},
					},
				},
			},
		},
		{
			Name: "Storage",
			Children: []SeedNode{
				{
					Name: "SSD",
					Properties: []SeedProperty{
						{Key: "Capacity", Value: "1024.00"},
						{Key: "WriteSpeed", Value: "250.00"},
					},
				},
				{
					Name: "HDD",
					Properties: []SeedProperty{
						{Key: "Capacity", Value: "5120.00"},
						{Key: "WriteSpeed", Value: "1.724752"},
					},
				},
			},
		},
	},
}

// SeedStats counts what a Seed call wrote
type SeedStats struct {
	NodesCreated  int
	PropertiesSet int
}

// Seed writes the tree in one transaction. Existing nodes are reused by name
// and property values are overwritten, so seeding twice is harmless.
func Seed(ctx context.Context, repo *repository.NodeRepository, root SeedNode, logger *zap.Logger) (SeedStats, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var stats SeedStats
	err := repo.Transaction(ctx, func(tx *repository.NodeRepository) error {
		stats = SeedStats{}
		return seedNode(ctx, tx, root, nil, &stats)
	})
	if err != nil {
		return SeedStats{}, fmt.Errorf("failed to seed %q: %w", root.Name, err)
	}

	logger.Info("seed complete",
		zap.String("root", root.Name),
		zap.Int("nodes_created", stats.NodesCreated),
		zap.Int("properties_set", stats.PropertiesSet))
	return stats, nil
}

func seedNode(ctx context.Context, tx *repository.NodeRepository, want SeedNode, parentID *string, stats *SeedStats) error {
	var id string
	existing, err := findSeedNode(ctx, tx, want.Name, parentID)
	switch {
	case err == nil:
		id = existing.ID
	case errors.Is(err, repository.ErrNotFound):
		node, err := tx.CreateNode(ctx, want.Name, parentID)
		if err != nil {
			return err
		}
		id = node.ID
		stats.NodesCreated++
	default:
		return err
	}

	for _, p := range want.Properties {
		value, err := decimal.NewFromString(p.Value)
		if err != nil {
			return fmt.Errorf("invalid value %q for %s.%s: %w", p.Value, want.Name, p.Key, err)
		}
		if _, err := tx.UpsertProperty(ctx, id, p.Key, value); err != nil {
			return err
		}
		stats.PropertiesSet++
	}

	for _, child := range want.Children {
		if err := seedNode(ctx, tx, child, &id, stats); err != nil {
			return err
		}
	}
	return nil
}

func findSeedNode(ctx context.Context, tx *repository.NodeRepository, name string, parentID *string) (*models.Node, error) {
	if parentID == nil {
		return tx.FindRootByName(ctx, name)
	}
	return tx.FindChildByName(ctx, *parentID, name)
}
