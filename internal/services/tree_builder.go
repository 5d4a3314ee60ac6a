// tree_builder.go
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

	"github.com/localnerve/pcnodetree/internal/models"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// TreeBuilder materializes a node and all of its descendants.
//
// Sibling subtrees are built concurrently while slots are available; the
// number of concurrent builds within one Build call never exceeds fanout.
// When no slot is free a child is built inline by the calling goroutine, so
// nested builds cannot starve waiting on each other.
type TreeBuilder struct {
	source TreeSource
	fanout int
}

// NewTreeBuilder creates a TreeBuilder. A fanout of 1 or less builds sequentially.
func NewTreeBuilder(source TreeSource, fanout int) *TreeBuilder {
	return &TreeBuilder{source: source, fanout: fanout}
}

// Build returns the subtree rooted at node. Any fetch failure aborts the
// whole build; partial trees are never returned.
func (b *TreeBuilder) Build(ctx context.Context, node *models.Node) (*models.NodeWithProperties, error) {
	var slots *semaphore.Weighted
	if b.fanout > 1 {
		// the calling goroutine is one of the fanout
		slots = semaphore.NewWeighted(int64(b.fanout - 1))
	}
	return b.build(ctx, slots, *node)
}

func (b *TreeBuilder) build(ctx context.Context, slots *semaphore.Weighted, node models.Node) (*models.NodeWithProperties, error) {
	props, err := b.source.PropertiesOf(ctx, node.ID)
	if err != nil {
		return nil, err
	}
	if props == nil {
		props = []models.Property{}
	}

	children, err := b.source.ChildrenOf(ctx, node.ID)
	if err != nil {
		return nil, err
	}

	tree := &models.NodeWithProperties{Node: node, Properties: props}
	if len(children) == 0 {
		return tree, nil
	}

	subtrees := make([]*models.NodeWithProperties, len(children))
	g, gctx := errgroup.WithContext(ctx)

	for i, child := range children {
		if slots != nil && slots.TryAcquire(1) {
			g.Go(func() error {
				defer slots.Release(1)
				subtree, err := b.build(gctx, slots, child)
				if err != nil {
					return err
				}
				subtrees[i] = subtree
				return nil
			})
			continue
		}

		subtree, err := b.build(gctx, slots, child)
		if err != nil {
			// prefer the first failure of a concurrent sibling, it canceled gctx
			if werr := g.Wait(); werr != nil {
				return nil, werr
			}
			return nil, err
		}
		subtrees[i] = subtree
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	tree.Children = subtrees
	return tree, nil
}
