// path_resolver.go
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
	"strings"

	"github.com/localnerve/pcnodetree/internal/models"
	"github.com/localnerve/pcnodetree/internal/repository"
	"github.com/localnerve/pcnodetree/internal/types"
)

// PathSeparator separates the segments of a node path
const PathSeparator = "/"

// ResolutionKind discriminates the two shapes a path can resolve to
type ResolutionKind string

// Resolution kinds
const (
	ResolvedNode     ResolutionKind = "node"
	ResolvedProperty ResolutionKind = "property"
)

// Resolution is the target of a path: a node subtree or a single property
type Resolution struct {
	Kind     ResolutionKind
	Node     *models.NodeWithProperties
	Property *models.Property
}

// Data returns the resolved value for serialization
func (r *Resolution) Data() interface{} {
	if r.Kind == ResolvedProperty {
		return r.Property
	}
	return r.Node
}

// segmentKind is the outcome of looking up one path segment under a node
type segmentKind int

const (
	segmentNeither segmentKind = iota
	segmentChild
	segmentProperty
)

type segmentMatch struct {
	kind     segmentKind
	child    *models.Node
	property *models.Property
}

// PathResolver resolves slash delimited paths to nodes or properties
type PathResolver struct {
	source  PathSource
	builder *TreeBuilder
}

// NewPathResolver creates a PathResolver
func NewPathResolver(source PathSource, builder *TreeBuilder) *PathResolver {
	return &PathResolver{source: source, builder: builder}
}

// SplitPath splits a path into its non-empty segments
func SplitPath(path string) []string {
	parts := strings.Split(path, PathSeparator)
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

// ValidatePath checks the path grammar: non-blank, no leading or trailing
// separator, and no empty segment.
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return types.NewError(types.ErrInvalidPath, `Path query parameter "q" is required`, nil)
	}
	if strings.HasPrefix(path, PathSeparator) ||
		strings.HasSuffix(path, PathSeparator) ||
		strings.Contains(path, PathSeparator+PathSeparator) {
		return types.NewError(types.ErrInvalidPath, `Path must not start/end with "/" or contain "//"`, nil)
	}
	return nil
}

// Resolve walks the path from its root. At each segment after the first a
// child node takes precedence over a property of the same name, and a
// property is only accepted as the final segment. A path that ends on a node
// resolves to that node's full subtree.
func (r *PathResolver) Resolve(ctx context.Context, path string) (*Resolution, error) {
	segments := SplitPath(path)
	if len(segments) == 0 {
		return nil, types.NewError(types.ErrInvalidPath, "Invalid path format", nil)
	}

	current, err := r.source.FindRootByName(ctx, segments[0])
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, types.NewError(types.ErrRootNodeNotFound,
				fmt.Sprintf("Root node not found: %s", segments[0]), nil)
		}
		return nil, fmt.Errorf("failed to find root %q: %w", segments[0], err)
	}

	last := len(segments) - 1
	for i := 1; i <= last; i++ {
		match, err := r.lookupSegment(ctx, current.ID, segments[i])
		if err != nil {
			return nil, err
		}

		switch match.kind {
		case segmentChild:
			current = match.child
		case segmentProperty:
			if i == last {
				return &Resolution{Kind: ResolvedProperty, Property: match.property}, nil
			}
			return nil, types.NewPropertyHasChildren(segments[i], strings.Join(segments[:i+2], PathSeparator))
		default:
			return nil, types.NewPathSegmentNotFound(segments[i], strings.Join(segments[:i], PathSeparator))
		}
	}

	tree, err := r.builder.Build(ctx, current)
	if err != nil {
		return nil, fmt.Errorf("failed to build subtree for %q: %w", path, err)
	}
	return &Resolution{Kind: ResolvedNode, Node: tree}, nil
}

// lookupSegment resolves name under parentID as a child node, then as a property
func (r *PathResolver) lookupSegment(ctx context.Context, parentID, name string) (segmentMatch, error) {
	child, err := r.source.FindChildByName(ctx, parentID, name)
	if err == nil {
		return segmentMatch{kind: segmentChild, child: child}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return segmentMatch{}, fmt.Errorf("failed to find child %q: %w", name, err)
	}

	prop, err := r.source.FindPropertyByKey(ctx, parentID, name)
	if err == nil {
		return segmentMatch{kind: segmentProperty, property: prop}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return segmentMatch{}, fmt.Errorf("failed to find property %q: %w", name, err)
	}

	return segmentMatch{kind: segmentNeither}, nil
}
