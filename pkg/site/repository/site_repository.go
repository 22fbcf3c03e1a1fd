package repository

import (
	"context"

	"swc/entities"
)

type SiteFilter struct {
	LandUse      string
	SlopeClass   string
	RainfallBand string
}

type SiteRepository interface {
	Create(ctx context.Context, s *entities.Site) error
	Update(ctx context.Context, s *entities.Site) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*entities.Site, error)
	// FindDetail loads the site with its site-techniques and their techniques.
	FindDetail(ctx context.Context, id uint) (*entities.Site, error)
	List(ctx context.Context, f SiteFilter) ([]entities.Site, error)
	Exists(ctx context.Context, id uint) (bool, error)
}

type SiteTechniqueRepository interface {
	Create(ctx context.Context, st *entities.SiteTechnique) error
	Update(ctx context.Context, st *entities.SiteTechnique) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*entities.SiteTechnique, error)
	ListBySite(ctx context.Context, siteID uint) ([]entities.SiteTechnique, error)
}
