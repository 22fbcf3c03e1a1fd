package entities

import (
	"time"

	"gorm.io/datatypes"
)

// Technique is a conservation or land-management method, e.g. half-moon water harvesting.
type Technique struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	Code           string            `gorm:"size:32;not null;uniqueIndex" json:"code"`
	Name           string            `gorm:"size:128;not null" json:"name"`
	Description    string            `gorm:"type:text" json:"description"`
	Category       string            `gorm:"size:64;index" json:"category"`
	TechnicalSpecs datatypes.JSONMap `json:"technical_specs"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Technique) TableName() string { return "techniques" }

// DesignTemplate describes the parameters a design layer must provide for a technique
// (JSON Schema in ParameterSchema) and the outputs the design is expected to report.
type DesignTemplate struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	Code            string            `gorm:"size:32;not null;uniqueIndex" json:"code"`
	Name            string            `gorm:"size:128;not null" json:"name"`
	Description     string            `gorm:"type:text" json:"description"`
	TechniqueID     *uint             `gorm:"index" json:"technique_id,omitempty"`
	ParameterSchema datatypes.JSONMap `json:"parameter_schema"`
	Outputs         datatypes.JSONMap `json:"outputs"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Technique *Technique `gorm:"foreignKey:TechniqueID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
}

func (DesignTemplate) TableName() string { return "design_templates" }

// MaintenanceTemplate is an ordered maintenance workflow (steps with frequency and description).
type MaintenanceTemplate struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	Code           string            `gorm:"size:32;not null;uniqueIndex" json:"code"`
	Name           string            `gorm:"size:128;not null" json:"name"`
	Description    string            `gorm:"type:text" json:"description"`
	TechniqueID    *uint             `gorm:"index" json:"technique_id,omitempty"`
	WorkflowSteps  datatypes.JSON    `json:"workflow_steps"`
	TechnicalSpecs datatypes.JSONMap `json:"technical_specs"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Technique *Technique `gorm:"foreignKey:TechniqueID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
}

func (MaintenanceTemplate) TableName() string { return "maintenance_templates" }
