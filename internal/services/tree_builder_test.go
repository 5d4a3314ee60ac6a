package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/localnerve/pcnodetree/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

// fakeTree is an in-memory TreeSource that records fetch concurrency
type fakeTree struct {
	children map[string][]models.Node
	props    map[string][]models.Property
	failOn   string
	delay    time.Duration

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	calls       atomic.Int32
}

func newFakeTree() *fakeTree {
	return &fakeTree{
		children: make(map[string][]models.Node),
		props:    make(map[string][]models.Property),
	}
}

func (f *fakeTree) add(parentID, id string, props ...string) models.Node {
	node := models.Node{ID: id, Name: id}
	if parentID != "" {
		node.ParentID = &parentID
		f.children[parentID] = append(f.children[parentID], node)
	}
	for _, key := range props {
		f.props[id] = append(f.props[id], models.Property{ID: id + "." + key, NodeID: id, Key: key})
	}
	return node
}

func (f *fakeTree) enter() func() {
	f.calls.Add(1)
	n := f.inFlight.Add(1)
	for {
		peak := f.maxInFlight.Load()
		if n <= peak || f.maxInFlight.CompareAndSwap(peak, n) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return func() { f.inFlight.Add(-1) }
}

func (f *fakeTree) PropertiesOf(_ context.Context, nodeID string) ([]models.Property, error) {
	defer f.enter()()
	if nodeID == f.failOn {
		return nil, errBoom
	}
	return f.props[nodeID], nil
}

func (f *fakeTree) ChildrenOf(ctx context.Context, nodeID string) ([]models.Node, error) {
	defer f.enter()()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.children[nodeID], nil
}

// wideTree builds a root with width children, each with width children
func wideTree(width int) (*fakeTree, models.Node) {
	f := newFakeTree()
	root := f.add("", "root", "a")
	for i := 0; i < width; i++ {
		child := fmt.Sprintf("c%02d", i)
		f.add("root", child, "x", "y")
		for j := 0; j < width; j++ {
			f.add(child, fmt.Sprintf("%s-g%02d", child, j), "z")
		}
	}
	return f, root
}

func TestTreeBuilderBuildsCompleteOrderedTree(t *testing.T) {
	for _, fanout := range []int{0, 1, 2, 8} {
		t.Run(fmt.Sprintf("fanout %d", fanout), func(t *testing.T) {
			f, root := wideTree(5)

			tree, err := NewTreeBuilder(f, fanout).Build(context.Background(), &root)
			require.NoError(t, err)

			assert.Equal(t, 1+5*2+25, tree.PropertyCount())
			require.Len(t, tree.Children, 5)
			for i, child := range tree.Children {
				assert.Equal(t, fmt.Sprintf("c%02d", i), child.Name, "children keep source order")
				require.Len(t, child.Children, 5)
				for _, grandchild := range child.Children {
					assert.Nil(t, grandchild.Children, "leaves have no children")
					assert.Len(t, grandchild.Properties, 1)
				}
			}
		})
	}
}

func TestTreeBuilderLeafHasEmptyProperties(t *testing.T) {
	f := newFakeTree()
	leaf := f.add("", "leaf")

	tree, err := NewTreeBuilder(f, 4).Build(context.Background(), &leaf)
	require.NoError(t, err)
	assert.NotNil(t, tree.Properties)
	assert.Empty(t, tree.Properties)
	assert.Nil(t, tree.Children)
}

func TestTreeBuilderBoundsConcurrency(t *testing.T) {
	f, root := wideTree(6)
	f.delay = 2 * time.Millisecond

	const fanout = 3
	_, err := NewTreeBuilder(f, fanout).Build(context.Background(), &root)
	require.NoError(t, err)

	assert.LessOrEqual(t, int(f.maxInFlight.Load()), fanout)
	assert.Greater(t, int(f.maxInFlight.Load()), 1, "siblings were built concurrently")
}

func TestTreeBuilderSequential(t *testing.T) {
	f, root := wideTree(4)
	f.delay = time.Millisecond

	_, err := NewTreeBuilder(f, 1).Build(context.Background(), &root)
	require.NoError(t, err)
	assert.Equal(t, int32(1), f.maxInFlight.Load())
}

func TestTreeBuilderAbortsOnError(t *testing.T) {
	for _, fanout := range []int{1, 4} {
		t.Run(fmt.Sprintf("fanout %d", fanout), func(t *testing.T) {
			f, root := wideTree(4)
			f.failOn = "c02-g01"

			tree, err := NewTreeBuilder(f, fanout).Build(context.Background(), &root)
			assert.ErrorIs(t, err, errBoom)
			assert.Nil(t, tree, "no partial tree")
		})
	}
}
