// node_service.go
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

package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/localnerve/pcnodetree/internal/models"
	"github.com/localnerve/pcnodetree/internal/repository"
	"github.com/localnerve/pcnodetree/internal/types"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// NodeService implements the node tree operations over a NodeStore
type NodeService struct {
	store    NodeStore
	builder  *TreeBuilder
	resolver *PathResolver
	logger   *zap.Logger
}

// NewNodeService creates a NodeService. fanout bounds concurrent subtree builds.
func NewNodeService(store NodeStore, fanout int, logger *zap.Logger) *NodeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	builder := NewTreeBuilder(store, fanout)
	return &NodeService{
		store:    store,
		builder:  builder,
		resolver: NewPathResolver(store, builder),
		logger:   logger.Named("nodes"),
	}
}

// CreateNode creates a node under parentID, or a root when parentID is nil or empty
func (s *NodeService) CreateNode(ctx context.Context, name string, parentID *string) (*models.Node, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, types.NewValidationError("Node name is required",
			types.FieldError{Field: "name", Message: "Node name is required"})
	}
	if parentID != nil && *parentID == "" {
		parentID = nil
	}

	node, err := s.store.CreateNode(ctx, name, parentID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateName):
			return nil, types.NewError(types.ErrDuplicateName,
				"A node with this name already exists under the specified parent", err)
		case errors.Is(err, repository.ErrParentNotFound):
			return nil, types.NewError(types.ErrParentNotFound, "Parent node not found", err)
		}
		s.logger.Error("failed to create node", zap.String("name", name), zap.Error(err))
		return nil, err
	}

	s.logger.Info("node created",
		zap.String("id", node.ID),
		zap.String("name", node.Name),
		zap.Stringp("parent_id", node.ParentID))
	return node, nil
}

// AddProperty sets key to value on the node, replacing any existing value
func (s *NodeService) AddProperty(ctx context.Context, nodeID, key string, value float64) (*models.Property, error) {
	key = strings.TrimSpace(key)
	var fields []types.FieldError
	if key == "" {
		fields = append(fields, types.FieldError{Field: "key", Message: "Property key is required"})
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		fields = append(fields, types.FieldError{Field: "value", Message: "Property value must be a finite number"})
	}
	if len(fields) > 0 {
		return nil, types.NewValidationError(fields[0].Message, fields...)
	}

	exists, err := s.store.NodeExists(ctx, nodeID)
	if err != nil {
		s.logger.Error("failed to check node", zap.String("node_id", nodeID), zap.Error(err))
		return nil, err
	}
	if !exists {
		return nil, types.NewError(types.ErrNodeNotFound, "Node not found", nil)
	}

	prop, err := s.store.UpsertProperty(ctx, nodeID, key, decimal.NewFromFloat(value))
	if err != nil {
		// the node can disappear between the check and the write
		switch {
		case errors.Is(err, repository.ErrNodeNotFound):
			return nil, types.NewError(types.ErrNodeNotFound, "Node not found", err)
		case errors.Is(err, repository.ErrValueOutOfRange):
			return nil, types.NewValidationError("Property value is out of range",
				types.FieldError{Field: "value", Message: "Property value is out of range"})
		}
		s.logger.Error("failed to upsert property",
			zap.String("node_id", nodeID), zap.String("key", key), zap.Error(err))
		return nil, err
	}

	s.logger.Info("property set",
		zap.String("node_id", nodeID),
		zap.String("key", prop.Key),
		zap.Stringer("value", prop.Value))
	return prop, nil
}

// GetSubtree returns the full subtree rooted at nodeID
func (s *NodeService) GetSubtree(ctx context.Context, nodeID string) (*models.NodeWithProperties, error) {
	node, err := s.store.FindNodeByID(ctx, nodeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, types.NewError(types.ErrNodeNotFound, "Node not found", nil)
		}
		return nil, fmt.Errorf("failed to find node %s: %w", nodeID, err)
	}

	tree, err := s.builder.Build(ctx, node)
	if err != nil {
		s.logger.Error("failed to build subtree", zap.String("node_id", nodeID), zap.Error(err))
		return nil, err
	}
	return tree, nil
}

// ResolvePath resolves a slash delimited path to a subtree or a property
func (s *NodeService) ResolvePath(ctx context.Context, path string) (*Resolution, error) {
	if err := ValidatePath(path); err != nil {
		return nil, err
	}

	res, err := s.resolver.Resolve(ctx, path)
	if err != nil {
		var customErr *types.CustomError
		if errors.As(err, &customErr) {
			s.logger.Debug("path not resolved", zap.String("path", path), zap.String("reason", customErr.Type))
		} else {
			s.logger.Error("failed to resolve path", zap.String("path", path), zap.Error(err))
		}
		return nil, err
	}

	s.logger.Debug("path resolved", zap.String("path", path), zap.String("kind", string(res.Kind)))
	return res, nil
}
