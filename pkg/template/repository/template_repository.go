package repository

import (
	"context"

	"swc/entities"
)

type DesignTemplateRepository interface {
	Create(ctx context.Context, t *entities.DesignTemplate) error
	Update(ctx context.Context, t *entities.DesignTemplate) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*entities.DesignTemplate, error)
	FindByCode(ctx context.Context, code string) (*entities.DesignTemplate, error)
	List(ctx context.Context, techniqueID uint) ([]entities.DesignTemplate, error)
	Exists(ctx context.Context, id uint) (bool, error)
}

type MaintenanceTemplateRepository interface {
	Create(ctx context.Context, t *entities.MaintenanceTemplate) error
	Update(ctx context.Context, t *entities.MaintenanceTemplate) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*entities.MaintenanceTemplate, error)
	List(ctx context.Context, techniqueID uint) ([]entities.MaintenanceTemplate, error)
}
