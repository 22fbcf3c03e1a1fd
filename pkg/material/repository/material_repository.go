package repository

import (
	"context"

	"swc/entities"
)

type MaterialRepository interface {
	Create(ctx context.Context, m *entities.Material) error
	Update(ctx context.Context, m *entities.Material) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*entities.Material, error)
	FindByCode(ctx context.Context, code string) (*entities.Material, error)
	// List matches q against name and code, case-insensitively; empty q lists everything.
	List(ctx context.Context, q string) ([]entities.Material, error)
	Exists(ctx context.Context, id uint) (bool, error)
}
