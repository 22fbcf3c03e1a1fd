package service

import (
	"context"

	"gorm.io/datatypes"

	"swc/entities"
)

type TechniqueService interface {
	Create(ctx context.Context, t *entities.Technique) (*entities.Technique, error)
	Get(ctx context.Context, id uint) (*entities.Technique, error)
	GetByCode(ctx context.Context, code string) (*entities.Technique, error)
	List(ctx context.Context, category string) ([]entities.Technique, error)
	Update(ctx context.Context, id uint, p TechniquePatch) (*entities.Technique, error)
	Delete(ctx context.Context, id uint) error
}

// TechniquePatch carries the fields a PATCH may change; nil means unchanged.
type TechniquePatch struct {
	Code           *string            `json:"code"`
	Name           *string            `json:"name"`
	Description    *string            `json:"description"`
	Category       *string            `json:"category"`
	TechnicalSpecs *datatypes.JSONMap `json:"technical_specs"`
}
