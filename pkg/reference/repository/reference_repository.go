package repository

import (
	"context"

	"swc/entities"
)

type ReferenceRepository interface {
	// CreateDocument stores the document and its chunks in one transaction.
	CreateDocument(ctx context.Context, d *entities.ReferenceDocument, chunks []entities.ReferenceChunk) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*entities.ReferenceDocument, error)
	ListByTechnique(ctx context.Context, techniqueID uint) ([]entities.ReferenceDocument, error)
	ChunksOf(ctx context.Context, documentID uint) ([]entities.ReferenceChunk, error)
	// Chunks returns every chunk, or only those of one technique when techniqueID is non-zero.
	Chunks(ctx context.Context, techniqueID uint) ([]entities.ReferenceChunk, error)
	DocsByIDs(ctx context.Context, ids []uint) (map[uint]entities.ReferenceDocument, error)
}
