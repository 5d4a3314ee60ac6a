// node_repository.go
//
// A hierarchical PC component node tree data service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of pcnodetree.
// pcnodetree is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// pcnodetree is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with pcnodetree.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/localnerve/pcnodetree/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
	"gorm.io/hints"
)

// Index names declared on the models
const (
	nodeParentNameIndex = "idx_nodes_parent_name"
	propertyKeyIndex    = "idx_properties_node_key"
)

// NodeRepository provides the node and property primitives over gorm
type NodeRepository struct {
	db *gorm.DB
}

// New creates a NodeRepository
func New(db *gorm.DB) *NodeRepository {
	return &NodeRepository{db: db}
}

// Transaction runs fn with a repository bound to a single transaction
func (r *NodeRepository) Transaction(ctx context.Context, fn func(tx *NodeRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&NodeRepository{db: tx})
	})
}

// read returns a silent session for lookups, where "record not found" is routine
func (r *NodeRepository) read(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Session(&gorm.Session{Logger: r.db.Logger.LogMode(logger.Silent)})
}

// useIndex adds an index hint on MySQL, the only dialect that understands USE INDEX
func useIndex(db *gorm.DB, name string) *gorm.DB {
	if db.Dialector.Name() == "mysql" {
		return db.Clauses(hints.UseIndex(name))
	}
	return db
}

// CreateNode inserts a node. A nil parentID creates a root.
func (r *NodeRepository) CreateNode(ctx context.Context, name string, parentID *string) (*models.Node, error) {
	node := &models.Node{Name: name, ParentID: parentID}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if parentID == nil {
			taken, err := rootNameTaken(tx, name)
			if err != nil {
				return err
			}
			if taken {
				return ErrDuplicateName
			}
		} else {
			var count int64
			if err := tx.Model(&models.Node{}).Where("id = ?", *parentID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrParentNotFound
			}
		}
		return tx.Create(node).Error
	})

	switch {
	case err == nil:
		return node, nil
	case errors.Is(err, ErrDuplicateName), errors.Is(err, ErrParentNotFound):
		return nil, err
	case isDuplicateKey(err):
		return nil, ErrDuplicateName
	case isForeignKeyViolation(err):
		return nil, ErrParentNotFound
	default:
		return nil, fmt.Errorf("failed to create node: %w", err)
	}
}

// rootNameTaken checks for an existing root with the name. On MySQL the read
// locks the range so concurrent root creates with the same name serialize.
func rootNameTaken(tx *gorm.DB, name string) (bool, error) {
	q := tx.Model(&models.Node{}).
		Where("parent_id IS NULL").
		Where(map[string]interface{}{"name": name}).
		Limit(1)
	if tx.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var ids []string
	if err := q.Pluck("id", &ids).Error; err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}

// UpsertProperty inserts a property, or replaces the value of the existing
// (nodeID, key) property in the same statement. The returned row is read back
// in the same transaction, so it reflects this write.
func (r *NodeRepository) UpsertProperty(ctx context.Context, nodeID, key string, value decimal.Decimal) (*models.Property, error) {
	var stored *models.Property

	err := r.Transaction(ctx, func(tx *NodeRepository) error {
		prop := &models.Property{NodeID: nodeID, Key: key, Value: models.NewDecimal(value)}
		err := tx.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "node_id"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(prop).Error
		if err != nil {
			return err
		}

		// On conflict the stored row keeps its original id and created_at
		stored, err = tx.FindPropertyByKey(ctx, nodeID, key)
		return err
	})

	switch {
	case err == nil:
		return stored, nil
	case isForeignKeyViolation(err):
		return nil, ErrNodeNotFound
	case isNumericOverflow(err):
		return nil, ErrValueOutOfRange
	default:
		return nil, fmt.Errorf("failed to upsert property: %w", err)
	}
}

// NodeExists reports whether a node with the id exists
func (r *NodeRepository) NodeExists(ctx context.Context, nodeID string) (bool, error) {
	var count int64
	if err := r.read(ctx).Model(&models.Node{}).Where("id = ?", nodeID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check node %s: %w", nodeID, err)
	}
	return count > 0, nil
}

// FindNodeByID returns the node with the id, or ErrNotFound
func (r *NodeRepository) FindNodeByID(ctx context.Context, nodeID string) (*models.Node, error) {
	var node models.Node
	if err := r.read(ctx).Where("id = ?", nodeID).Take(&node).Error; err != nil {
		return nil, notFound(err)
	}
	return &node, nil
}

// Name lookups compare the stored value again in Go. MSSQL and PAD SPACE
// collations ignore trailing spaces in "=".

// FindRootByName returns the root node with the name, or ErrNotFound
func (r *NodeRepository) FindRootByName(ctx context.Context, name string) (*models.Node, error) {
	var node models.Node
	err := r.read(ctx).
		Where("parent_id IS NULL").
		Where(map[string]interface{}{"name": name}).
		Order("created_at").
		Take(&node).Error
	if err != nil {
		return nil, notFound(err)
	}
	if node.Name != name {
		return nil, ErrNotFound
	}
	return &node, nil
}

// FindChildByName returns the child of parentID with the name, or ErrNotFound
func (r *NodeRepository) FindChildByName(ctx context.Context, parentID, name string) (*models.Node, error) {
	var node models.Node
	q := useIndex(r.read(ctx), nodeParentNameIndex)
	err := q.Where(map[string]interface{}{"parent_id": parentID, "name": name}).Take(&node).Error
	if err != nil {
		return nil, notFound(err)
	}
	if node.Name != name {
		return nil, ErrNotFound
	}
	return &node, nil
}

// FindPropertyByKey returns the property of nodeID with the key, or ErrNotFound
func (r *NodeRepository) FindPropertyByKey(ctx context.Context, nodeID, key string) (*models.Property, error) {
	var prop models.Property
	q := useIndex(r.read(ctx), propertyKeyIndex)
	err := q.Where(map[string]interface{}{"node_id": nodeID, "key": key}).Take(&prop).Error
	if err != nil {
		return nil, notFound(err)
	}
	if prop.Key != key {
		return nil, ErrNotFound
	}
	return &prop, nil
}

// PropertiesOf returns the properties of a node ordered by key. Never nil.
func (r *NodeRepository) PropertiesOf(ctx context.Context, nodeID string) ([]models.Property, error) {
	props := []models.Property{}
	err := r.read(ctx).
		Where(map[string]interface{}{"node_id": nodeID}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "key"}}).
		Find(&props).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch properties of %s: %w", nodeID, err)
	}
	if props == nil {
		props = []models.Property{}
	}
	return props, nil
}

// ChildrenOf returns the direct children of a node ordered by name
func (r *NodeRepository) ChildrenOf(ctx context.Context, nodeID string) ([]models.Node, error) {
	var children []models.Node
	err := r.read(ctx).
		Where(map[string]interface{}{"parent_id": nodeID}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "name"}}).
		Find(&children).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch children of %s: %w", nodeID, err)
	}
	return children, nil
}
