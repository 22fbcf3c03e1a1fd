package entities

import (
	"time"

	"gorm.io/datatypes"
)

type Site struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	Name         string       `gorm:"size:128;not null" json:"name"`
	Description  string       `gorm:"type:text" json:"description"`
	Location     string       `gorm:"size:256" json:"location"`
	Latitude     *float64     `json:"latitude"`
	Longitude    *float64     `json:"longitude"`
	SlopeClass   SlopeClass   `gorm:"size:16;index" json:"slope_class"`
	SoilTexture  SoilTexture  `gorm:"size:16" json:"soil_texture"`
	LandUse      LandUse      `gorm:"size:16;index" json:"land_use"`
	Drainage     Drainage     `gorm:"size:16" json:"drainage"`
	RainfallBand RainfallBand `gorm:"size:16;index" json:"rainfall_band"`
	GullyState   GullyState   `gorm:"size:16" json:"gully_state"`

	TechnicalSpecs datatypes.JSONMap `json:"technical_specs"`
	SafetyNotes    datatypes.JSONMap `json:"safety_notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Techniques []SiteTechnique `gorm:"foreignKey:SiteID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"techniques,omitempty"`
}

func (Site) TableName() string { return "sites" }

// SiteTechnique joins a Site to a Technique and tracks its implementation.
type SiteTechnique struct {
	ID                  uint                `gorm:"primaryKey" json:"id"`
	SiteID              uint                `gorm:"not null;uniqueIndex:idx_site_technique" json:"site_id"`
	TechniqueID         uint                `gorm:"not null;uniqueIndex:idx_site_technique" json:"technique_id"`
	Status              SiteTechniqueStatus `gorm:"size:16;not null;default:PLANNED" json:"status"`
	PlannedDate         *time.Time          `json:"planned_date"`
	ImplementationDate  *time.Time          `json:"implementation_date"`
	CompletionDate      *time.Time          `json:"completion_date"`
	MaintenanceSchedule datatypes.JSONMap   `json:"maintenance_schedule"`
	WorkflowSteps       datatypes.JSON      `json:"workflow_steps"`
	Notes               string              `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Site      *Site      `gorm:"foreignKey:SiteID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Technique *Technique `gorm:"foreignKey:TechniqueID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"technique,omitempty"`
}

func (SiteTechnique) TableName() string { return "site_techniques" }

// Metric is a single site measurement, e.g. soil moisture at 30cm.
type Metric struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	SiteID         uint              `gorm:"not null;index" json:"site_id"`
	Name           string            `gorm:"size:128;not null;index" json:"name"`
	Description    string            `gorm:"type:text" json:"description"`
	Unit           string            `gorm:"size:16" json:"unit"`
	Value          float64           `json:"value"`
	MeasuredDate   time.Time         `gorm:"not null;index" json:"measured_date"`
	TechnicalSpecs datatypes.JSONMap `json:"technical_specs"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Site *Site `gorm:"foreignKey:SiteID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (Metric) TableName() string { return "metrics" }
