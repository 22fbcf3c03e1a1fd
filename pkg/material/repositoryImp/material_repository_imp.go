package repositoryImp

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"swc/entities"
	"swc/pkg/apperr"
	"swc/pkg/material/repository"
)

type materialRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.MaterialRepository { return &materialRepo{db} }

func (r *materialRepo) Create(ctx context.Context, m *entities.Material) error {
	return apperr.FromDB(r.db.WithContext(ctx).Create(m).Error, "material", false)
}

func (r *materialRepo) Update(ctx context.Context, m *entities.Material) error {
	return apperr.FromDB(r.db.WithContext(ctx).Omit(clause.Associations).Save(m).Error, "material", false)
}

func (r *materialRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entities.Material{}, id)
	if res.Error != nil {
		return apperr.FromDB(res.Error, "material", true)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("material", id)
	}
	return nil
}

func (r *materialRepo) FindByID(ctx context.Context, id uint) (*entities.Material, error) {
	var m entities.Material
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, apperr.FromDB(err, "material", false)
	}
	return &m, nil
}

func (r *materialRepo) FindByCode(ctx context.Context, code string) (*entities.Material, error) {
	var m entities.Material
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&m).Error; err != nil {
		return nil, apperr.FromDB(err, "material "+code, false)
	}
	return &m, nil
}

func (r *materialRepo) List(ctx context.Context, q string) ([]entities.Material, error) {
	var out []entities.Material
	tx := r.db.WithContext(ctx).Order("code ASC")
	if q = strings.TrimSpace(q); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", like, like)
	}
	return out, tx.Find(&out).Error
}

func (r *materialRepo) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entities.Material{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}
