package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// Property values are numbers on the wire, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Property is a decimal key/value pair owned by a node
type Property struct {
	ID        string          `gorm:"type:char(36);primaryKey" json:"id"`
	NodeID    string          `gorm:"type:char(36);not null;uniqueIndex:idx_properties_node_key,priority:1" json:"node_id"`
	Node      *Node           `gorm:"foreignKey:NodeID" json:"-"`
	Key       string          `gorm:"size:255;not null;uniqueIndex:idx_properties_node_key,priority:2" json:"key"`
	Value     Decimal         `gorm:"not null" json:"value"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TableName overrides the table name for Property
func (Property) TableName() string {
	return "properties"
}

// BeforeCreate assigns a new identifier when none is set
func (p *Property) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// PropertyValue returns the value stored under key, if present
func PropertyValue(props []Property, key string) (decimal.Decimal, bool) {
	for _, p := range props {
		if p.Key == key {
			return p.Value.Decimal, true
		}
	}
	return decimal.Decimal{}, false
}
