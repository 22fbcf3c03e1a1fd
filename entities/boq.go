package entities

import "time"

// BOQ is the bill of quantities for a design. TotalCost is declared by the
// author; it is not recomputed from the items.
type BOQ struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	DesignID  uint    `gorm:"not null;index" json:"design_id"`
	TotalCost float64 `gorm:"not null;default:0" json:"total_cost"`
	Currency  string  `gorm:"size:3;not null;default:USD" json:"currency"`
	Notes     string  `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Design      *Design      `gorm:"foreignKey:DesignID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Items       []BOQItem    `gorm:"foreignKey:BOQID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"items,omitempty"`
	CostRecords []CostRecord `gorm:"foreignKey:BOQID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"cost_records,omitempty"`
}

func (BOQ) TableName() string { return "boqs" }

type BOQItem struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	BOQID         uint    `gorm:"column:boq_id;not null;index" json:"boq_id"`
	DesignLayerID uint    `gorm:"not null;index" json:"design_layer_id"`
	MaterialID    *uint   `gorm:"index" json:"material_id,omitempty"`
	TechniqueID   *uint   `gorm:"index" json:"technique_id,omitempty"`
	Description   string  `gorm:"type:text" json:"description"`
	Quantity      float64 `gorm:"not null;default:0" json:"quantity"`
	UnitCost      float64 `gorm:"not null;default:0" json:"unit_cost"`
	TotalCost     float64 `gorm:"not null;default:0" json:"total_cost"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	BOQ         *BOQ         `gorm:"foreignKey:BOQID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	DesignLayer *DesignLayer `gorm:"foreignKey:DesignLayerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Material    *Material    `gorm:"foreignKey:MaterialID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"material,omitempty"`
	Technique   *Technique   `gorm:"foreignKey:TechniqueID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (BOQItem) TableName() string { return "boq_items" }

// CostRecord is an actual expenditure booked against a BOQ.
type CostRecord struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	BOQID       uint         `gorm:"column:boq_id;not null;index" json:"boq_id"`
	Amount      float64      `gorm:"not null" json:"amount"`
	Description string       `gorm:"type:text" json:"description"`
	Date        time.Time    `gorm:"not null;index" json:"date"`
	Category    CostCategory `gorm:"size:16;not null;default:other" json:"category"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	BOQ *BOQ `gorm:"foreignKey:BOQID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (CostRecord) TableName() string { return "cost_records" }
