package repositoryImp

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"swc/entities"
	"swc/pkg/apperr"
	"swc/pkg/reference/repository"
)

type repo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ReferenceRepository { return &repo{db} }

func (r *repo) CreateDocument(ctx context.Context, d *entities.ReferenceDocument, chunks []entities.ReferenceChunk) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		d.Chunks = len(chunks)
		if err := tx.Omit(clause.Associations).Create(d).Error; err != nil {
			return err
		}
		if len(chunks) == 0 {
			return nil
		}
		for i := range chunks {
			chunks[i].DocumentID = d.ID
			chunks[i].TechniqueID = d.TechniqueID
		}
		return tx.CreateInBatches(chunks, 200).Error
	})
	return apperr.FromDB(err, "reference document", false)
}

func (r *repo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entities.ReferenceDocument{}, id)
	if res.Error != nil {
		return apperr.FromDB(res.Error, "reference document", true)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("reference document", id)
	}
	return nil
}

func (r *repo) FindByID(ctx context.Context, id uint) (*entities.ReferenceDocument, error) {
	var d entities.ReferenceDocument
	if err := r.db.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, apperr.FromDB(err, "reference document", false)
	}
	return &d, nil
}

func (r *repo) ListByTechnique(ctx context.Context, techniqueID uint) ([]entities.ReferenceDocument, error) {
	var ds []entities.ReferenceDocument
	err := r.db.WithContext(ctx).Where("technique_id = ?", techniqueID).Order("id DESC").Find(&ds).Error
	return ds, err
}

func (r *repo) ChunksOf(ctx context.Context, documentID uint) ([]entities.ReferenceChunk, error) {
	var cs []entities.ReferenceChunk
	err := r.db.WithContext(ctx).Where("document_id = ?", documentID).Order("ord ASC").Find(&cs).Error
	return cs, err
}

func (r *repo) Chunks(ctx context.Context, techniqueID uint) ([]entities.ReferenceChunk, error) {
	var cs []entities.ReferenceChunk
	q := r.db.WithContext(ctx)
	if techniqueID != 0 {
		q = q.Where("technique_id = ?", techniqueID)
	}
	return cs, q.Order("id ASC").Find(&cs).Error
}

func (r *repo) DocsByIDs(ctx context.Context, ids []uint) (map[uint]entities.ReferenceDocument, error) {
	if len(ids) == 0 {
		return map[uint]entities.ReferenceDocument{}, nil
	}
	var ds []entities.ReferenceDocument
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ds).Error; err != nil {
		return nil, err
	}
	m := make(map[uint]entities.ReferenceDocument, len(ds))
	for i := range ds {
		m[ds[i].ID] = ds[i]
	}
	return m, nil
}
