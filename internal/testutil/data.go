// data.go
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

package testutil

import (
	"testing"

	"github.com/localnerve/pcnodetree/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// CreateNode inserts a node directly. A nil parent creates a root.
func CreateNode(t *testing.T, db *gorm.DB, name string, parent *models.Node) *models.Node {
	t.Helper()

	node := &models.Node{Name: name}
	if parent != nil {
		node.ParentID = &parent.ID
	}
	require.NoError(t, db.Create(node).Error, "create node %s", name)
	return node
}

// SetProperty inserts a property directly. value is a decimal literal.
func SetProperty(t *testing.T, db *gorm.DB, node *models.Node, key, value string) *models.Property {
	t.Helper()

	prop := &models.Property{
		NodeID: node.ID,
		Key:    key,
		Value:  models.NewDecimal(decimal.RequireFromString(value)),
	}
	require.NoError(t, db.Create(prop).Error, "create property %s.%s", node.Name, key)
	return prop
}

// CountRows returns the row count of the model's table
func CountRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}
