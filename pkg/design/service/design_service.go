package service

import (
	"context"

	"gorm.io/datatypes"

	"swc/entities"
)

type DesignService interface {
	CreateDesign(ctx context.Context, d *entities.Design) (*entities.Design, error)
	GetDesign(ctx context.Context, id uint) (*entities.Design, error)
	GetDesignByCode(ctx context.Context, code string) (*entities.Design, error)
	ListDesigns(ctx context.Context, siteID uint, status string) ([]entities.Design, error)
	UpdateDesign(ctx context.Context, id uint, p DesignPatch) (*entities.Design, error)
	DeleteDesign(ctx context.Context, id uint) error

	// AddLayer validates the layer parameters against its template's parameter schema.
	// A zero LayerNumber takes the next free number in the design; a zero TechniqueID
	// takes the template's technique.
	AddLayer(ctx context.Context, l *entities.DesignLayer) (*entities.DesignLayer, error)
	ListLayers(ctx context.Context, designID uint) ([]entities.DesignLayer, error)
	UpdateLayer(ctx context.Context, id uint, p LayerPatch) (*entities.DesignLayer, error)
	DeleteLayer(ctx context.Context, id uint) error
}

type DesignPatch struct {
	Code           *string            `json:"code"`
	Name           *string            `json:"name"`
	Description    *string            `json:"description"`
	Status         *string            `json:"status"`
	TechnicalSpecs *datatypes.JSONMap `json:"technical_specs"`
	SafetyNotes    *datatypes.JSONMap `json:"safety_notes"`
}

type LayerPatch struct {
	LayerNumber    *int               `json:"layer_number"`
	Name           *string            `json:"name"`
	Description    *string            `json:"description"`
	Parameters     *datatypes.JSONMap `json:"parameters"`
	TechnicalSpecs *datatypes.JSONMap `json:"technical_specs"`
	WorkflowSteps  *datatypes.JSON    `json:"workflow_steps"`
}
