package repository

import (
	"context"

	"swc/entities"
)

type TechniqueRepository interface {
	Create(ctx context.Context, t *entities.Technique) error
	Update(ctx context.Context, t *entities.Technique) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*entities.Technique, error)
	FindByCode(ctx context.Context, code string) (*entities.Technique, error)
	List(ctx context.Context, category string) ([]entities.Technique, error)
	Exists(ctx context.Context, id uint) (bool, error)
}
