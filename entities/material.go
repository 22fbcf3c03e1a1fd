package entities

import (
	"time"

	"gorm.io/datatypes"
)

type Material struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Code        string         `gorm:"size:32;not null;uniqueIndex" json:"code"`
	Name        string         `gorm:"size:128;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Unit        string         `gorm:"size:16;not null" json:"unit"` // m3|t|kg|...
	UnitCost    float64        `gorm:"not null;default:0" json:"unit_cost"`
	Suppliers   datatypes.JSON `json:"suppliers"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Material) TableName() string { return "materials" }

// Supplier is the shape the material import writes into Material.Suppliers.
type Supplier struct {
	Name    string `json:"name"`
	Contact string `json:"contact,omitempty"`
}
