package service

import (
	"context"

	"gorm.io/datatypes"

	"swc/entities"
	"swc/pkg/site/repository"
)

type SiteService interface {
	CreateSite(ctx context.Context, s *entities.Site) (*entities.Site, error)
	GetSite(ctx context.Context, id uint) (*entities.Site, error)
	ListSites(ctx context.Context, f repository.SiteFilter) ([]entities.Site, error)
	UpdateSite(ctx context.Context, id uint, p SitePatch) (*entities.Site, error)
	DeleteSite(ctx context.Context, id uint) error

	AddTechnique(ctx context.Context, st *entities.SiteTechnique) (*entities.SiteTechnique, error)
	ListTechniques(ctx context.Context, siteID uint) ([]entities.SiteTechnique, error)
	UpdateTechnique(ctx context.Context, id uint, p SiteTechniquePatch) (*entities.SiteTechnique, error)
	RemoveTechnique(ctx context.Context, id uint) error
}

type SitePatch struct {
	Name           *string            `json:"name"`
	Description    *string            `json:"description"`
	Location       *string            `json:"location"`
	Latitude       *float64           `json:"latitude"`
	Longitude      *float64           `json:"longitude"`
	SlopeClass     *string            `json:"slope_class"`
	SoilTexture    *string            `json:"soil_texture"`
	LandUse        *string            `json:"land_use"`
	Drainage       *string            `json:"drainage"`
	RainfallBand   *string            `json:"rainfall_band"`
	GullyState     *string            `json:"gully_state"`
	TechnicalSpecs *datatypes.JSONMap `json:"technical_specs"`
	SafetyNotes    *datatypes.JSONMap `json:"safety_notes"`
}

// SiteTechniquePatch dates are YYYY-MM-DD; an empty string clears the date.
type SiteTechniquePatch struct {
	Status              *string            `json:"status"`
	PlannedDate         *string            `json:"planned_date"`
	ImplementationDate  *string            `json:"implementation_date"`
	CompletionDate      *string            `json:"completion_date"`
	MaintenanceSchedule *datatypes.JSONMap `json:"maintenance_schedule"`
	WorkflowSteps       *datatypes.JSON    `json:"workflow_steps"`
	Notes               *string            `json:"notes"`
}
