package repositoryImp

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"swc/entities"
	"swc/pkg/apperr"
	"swc/pkg/technique/repository"
)

type techniqueRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.TechniqueRepository { return &techniqueRepo{db} }

func (r *techniqueRepo) Create(ctx context.Context, t *entities.Technique) error {
	return apperr.FromDB(r.db.WithContext(ctx).Create(t).Error, "technique", false)
}

func (r *techniqueRepo) Update(ctx context.Context, t *entities.Technique) error {
	return apperr.FromDB(r.db.WithContext(ctx).Omit(clause.Associations).Save(t).Error, "technique", false)
}

func (r *techniqueRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entities.Technique{}, id)
	if res.Error != nil {
		return apperr.FromDB(res.Error, "technique", true)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("technique", id)
	}
	return nil
}

func (r *techniqueRepo) FindByID(ctx context.Context, id uint) (*entities.Technique, error) {
	var t entities.Technique
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, apperr.FromDB(err, "technique", false)
	}
	return &t, nil
}

func (r *techniqueRepo) FindByCode(ctx context.Context, code string) (*entities.Technique, error) {
	var t entities.Technique
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&t).Error; err != nil {
		return nil, apperr.FromDB(err, "technique "+code, false)
	}
	return &t, nil
}

func (r *techniqueRepo) List(ctx context.Context, category string) ([]entities.Technique, error) {
	var out []entities.Technique
	q := r.db.WithContext(ctx).Order("code ASC")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	return out, q.Find(&out).Error
}

func (r *techniqueRepo) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entities.Technique{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}
