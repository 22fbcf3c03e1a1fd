package repository

import (
	"context"

	"swc/entities"
)

type BOQRepository interface {
	Create(ctx context.Context, b *entities.BOQ) error
	Update(ctx context.Context, b *entities.BOQ) error
	// Delete removes the BOQ together with its items and cost records.
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*entities.BOQ, error)
	// FindDetail preloads items (with their material) and cost records.
	FindDetail(ctx context.Context, id uint) (*entities.BOQ, error)
	ListByDesign(ctx context.Context, designID uint) ([]entities.BOQ, error)
	Exists(ctx context.Context, id uint) (bool, error)
}

type BOQItemRepository interface {
	Create(ctx context.Context, it *entities.BOQItem) error
	Update(ctx context.Context, it *entities.BOQItem) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*entities.BOQItem, error)
	ListByBOQ(ctx context.Context, boqID uint) ([]entities.BOQItem, error)
}

type CostRecordRepository interface {
	Create(ctx context.Context, c *entities.CostRecord) error
	Delete(ctx context.Context, id uint) error
	ListByBOQ(ctx context.Context, boqID uint) ([]entities.CostRecord, error)
}
