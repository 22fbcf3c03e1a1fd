package entities

import (
	"time"

	"gorm.io/datatypes"
)

type Design struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	SiteID         uint              `gorm:"not null;index" json:"site_id"`
	Code           string            `gorm:"size:32;not null;uniqueIndex" json:"code"`
	Name           string            `gorm:"size:128;not null" json:"name"`
	Description    string            `gorm:"type:text" json:"description"`
	Status         DesignStatus      `gorm:"size:16;not null;default:DRAFT" json:"status"`
	TechnicalSpecs datatypes.JSONMap `json:"technical_specs"`
	SafetyNotes    datatypes.JSONMap `json:"safety_notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Site   *Site         `gorm:"foreignKey:SiteID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Layers []DesignLayer `gorm:"foreignKey:DesignID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"layers,omitempty"`
}

func (Design) TableName() string { return "designs" }

// DesignLayer is one parameterized application of a technique within a design.
// Parameters follow the template's parameter schema; TechnicalSpecs holds the
// computed values (volumes, areas, lengths) entered alongside them.
type DesignLayer struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	DesignID       uint              `gorm:"not null;uniqueIndex:idx_design_layer_number" json:"design_id"`
	TemplateID     uint              `gorm:"not null;index" json:"template_id"`
	TechniqueID    uint              `gorm:"not null;index" json:"technique_id"`
	LayerNumber    int               `gorm:"not null;uniqueIndex:idx_design_layer_number" json:"layer_number"`
	Name           string            `gorm:"size:128;not null" json:"name"`
	Description    string            `gorm:"type:text" json:"description"`
	Parameters     datatypes.JSONMap `json:"parameters"`
	TechnicalSpecs datatypes.JSONMap `json:"technical_specs"`
	WorkflowSteps  datatypes.JSON    `json:"workflow_steps"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Design    *Design         `gorm:"foreignKey:DesignID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Template  *DesignTemplate `gorm:"foreignKey:TemplateID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Technique *Technique      `gorm:"foreignKey:TechniqueID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (DesignLayer) TableName() string { return "design_layers" }
