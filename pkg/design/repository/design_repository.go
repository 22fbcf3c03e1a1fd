package repository

import (
	"context"

	"swc/entities"
)

type DesignRepository interface {
	Create(ctx context.Context, d *entities.Design) error
	Update(ctx context.Context, d *entities.Design) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*entities.Design, error)
	// FindDetail loads the design with its layers ordered by layer number.
	FindDetail(ctx context.Context, id uint) (*entities.Design, error)
	FindByCode(ctx context.Context, code string) (*entities.Design, error)
	ListBySite(ctx context.Context, siteID uint, status string) ([]entities.Design, error)
	Exists(ctx context.Context, id uint) (bool, error)
}

type DesignLayerRepository interface {
	Create(ctx context.Context, l *entities.DesignLayer) error
	Update(ctx context.Context, l *entities.DesignLayer) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*entities.DesignLayer, error)
	ListByDesign(ctx context.Context, designID uint) ([]entities.DesignLayer, error)
	NextLayerNumber(ctx context.Context, designID uint) (int, error)
}
