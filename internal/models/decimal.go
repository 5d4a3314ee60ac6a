package models

import (
	"database/sql/driver"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Decimal is a wrapper around shopspring/decimal to allow for custom data type mapping
type Decimal struct {
	decimal.Decimal
}

// NewDecimal wraps d
func NewDecimal(d decimal.Decimal) Decimal {
	return Decimal{Decimal: d}
}

// Value promotes the embedded Decimal's Value method
func (d Decimal) Value() (driver.Value, error) {
	return d.Decimal.Value()
}

// Scan promotes the embedded Decimal's Scan method
func (d *Decimal) Scan(value interface{}) error {
	return d.Decimal.Scan(value)
}

// MarshalJSON promotes the embedded Decimal's MarshalJSON method
func (d Decimal) MarshalJSON() ([]byte, error) {
	return d.Decimal.MarshalJSON()
}

// UnmarshalJSON promotes the embedded Decimal's UnmarshalJSON method
func (d *Decimal) UnmarshalJSON(data []byte) error {
	return d.Decimal.UnmarshalJSON(data)
}

// GormDataType is the generic data type
func (Decimal) GormDataType() string {
	return "decimal"
}

// GormDBDataType uses the widest exact numeric type of each database driver.
// Postgres and sqlite numerics are unconstrained; MySQL and MSSQL have fixed maximums.
func (Decimal) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "postgres":
		return "NUMERIC"
	case "mysql":
		return "DECIMAL(65,30)"
	case "sqlserver", "mssql":
		return "DECIMAL(38,12)"
	}
	return "NUMERIC"
}
