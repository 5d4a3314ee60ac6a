package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() *NodeWithProperties {
	return &NodeWithProperties{
		Node:       Node{ID: "1", Name: "AlphaPC"},
		Properties: []Property{{Key: "Height", Value: NewDecimal(decimal.RequireFromString("450.00"))}},
		Children: []*NodeWithProperties{
			{
				Node:       Node{ID: "2", Name: "Processing"},
				Properties: []Property{{Key: "RAM", Value: NewDecimal(decimal.NewFromInt(32000))}},
				Children: []*NodeWithProperties{
					{
						Node: Node{ID: "3", Name: "CPU"},
						Properties: []Property{
							{Key: "Cores", Value: NewDecimal(decimal.NewFromInt(4))},
							{Key: "Power", Value: NewDecimal(decimal.RequireFromString("2.41"))},
						},
					},
				},
			},
		},
	}
}

func TestNodeWithProperties(t *testing.T) {
	tree := sampleTree()

	assert.Equal(t, 4, tree.PropertyCount())
	assert.Same(t, tree, tree.Find())
	require.NotNil(t, tree.Find("Processing", "CPU"))
	assert.Equal(t, "3", tree.Find("Processing", "CPU").ID)
	assert.Nil(t, tree.Find("Processing", "GPU"))

	cores, ok := PropertyValue(tree.Find("Processing", "CPU").Properties, "Cores")
	require.True(t, ok)
	assert.True(t, cores.Equal(decimal.NewFromInt(4)))

	_, ok = PropertyValue(tree.Properties, "Cores")
	assert.False(t, ok)
}

func TestNodeWithPropertiesJSON(t *testing.T) {
	payload, err := json.Marshal(sampleTree())
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &decoded))

	assert.Equal(t, "AlphaPC", decoded["name"])
	assert.Contains(t, decoded, "parent_id")
	assert.Nil(t, decoded["parent_id"], "roots serialize a null parent")

	props := decoded["properties"].([]interface{})
	assert.Equal(t, 450.0, props[0].(map[string]interface{})["value"], "values are JSON numbers")

	processing := decoded["children"].([]interface{})[0].(map[string]interface{})
	cpu := processing["children"].([]interface{})[0].(map[string]interface{})
	assert.NotContains(t, cpu, "children", "leaves omit children")
	assert.Len(t, cpu["properties"], 2)
}

func TestBeforeCreateAssignsID(t *testing.T) {
	node := &Node{Name: "AlphaPC"}
	require.NoError(t, node.BeforeCreate(nil))
	assert.Len(t, node.ID, 36)

	prop := &Property{ID: "fixed"}
	require.NoError(t, prop.BeforeCreate(nil))
	assert.Equal(t, "fixed", prop.ID)
}
