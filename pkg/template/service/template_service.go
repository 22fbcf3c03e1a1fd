package service

import (
	"context"

	"gorm.io/datatypes"

	"swc/entities"
	"swc/pkg/apperr"
)

type TemplateService interface {
	CreateDesignTemplate(ctx context.Context, t *entities.DesignTemplate) (*entities.DesignTemplate, error)
	GetDesignTemplate(ctx context.Context, id uint) (*entities.DesignTemplate, error)
	GetDesignTemplateByCode(ctx context.Context, code string) (*entities.DesignTemplate, error)
	ListDesignTemplates(ctx context.Context, techniqueID uint) ([]entities.DesignTemplate, error)
	UpdateDesignTemplate(ctx context.Context, id uint, p DesignTemplatePatch) (*entities.DesignTemplate, error)
	DeleteDesignTemplate(ctx context.Context, id uint) error

	// ValidateParameters checks params against the template's parameter schema
	// and returns every violation; an empty result means the parameters are valid.
	ValidateParameters(ctx context.Context, templateID uint, params map[string]any) ([]apperr.Detail, error)

	CreateMaintenanceTemplate(ctx context.Context, t *entities.MaintenanceTemplate) (*entities.MaintenanceTemplate, error)
	GetMaintenanceTemplate(ctx context.Context, id uint) (*entities.MaintenanceTemplate, error)
	ListMaintenanceTemplates(ctx context.Context, techniqueID uint) ([]entities.MaintenanceTemplate, error)
	UpdateMaintenanceTemplate(ctx context.Context, id uint, p MaintenanceTemplatePatch) (*entities.MaintenanceTemplate, error)
	DeleteMaintenanceTemplate(ctx context.Context, id uint) error
}

type DesignTemplatePatch struct {
	Code            *string            `json:"code"`
	Name            *string            `json:"name"`
	Description     *string            `json:"description"`
	TechniqueID     *uint              `json:"technique_id"`
	ParameterSchema *datatypes.JSONMap `json:"parameter_schema"`
	Outputs         *datatypes.JSONMap `json:"outputs"`
}

type MaintenanceTemplatePatch struct {
	Code           *string            `json:"code"`
	Name           *string            `json:"name"`
	Description    *string            `json:"description"`
	TechniqueID    *uint              `json:"technique_id"`
	WorkflowSteps  *datatypes.JSON    `json:"workflow_steps"`
	TechnicalSpecs *datatypes.JSONMap `json:"technical_specs"`
}
