package repositoryImp

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"swc/entities"
	"swc/pkg/apperr"
	"swc/pkg/design/repository"
)

type designRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.DesignRepository { return &designRepo{db} }

func (r *designRepo) Create(ctx context.Context, d *entities.Design) error {
	return apperr.FromDB(r.db.WithContext(ctx).Omit(clause.Associations).Create(d).Error, "design", false)
}

func (r *designRepo) Update(ctx context.Context, d *entities.Design) error {
	return apperr.FromDB(r.db.WithContext(ctx).Omit(clause.Associations).Save(d).Error, "design", false)
}

func (r *designRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entities.Design{}, id)
	if res.Error != nil {
		return apperr.FromDB(res.Error, "design", true)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("design", id)
	}
	return nil
}

func (r *designRepo) FindByID(ctx context.Context, id uint) (*entities.Design, error) {
	var d entities.Design
	if err := r.db.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, apperr.FromDB(err, "design", false)
	}
	return &d, nil
}

func (r *designRepo) FindDetail(ctx context.Context, id uint) (*entities.Design, error) {
	var d entities.Design
	err := r.db.WithContext(ctx).
		Preload("Layers", func(db *gorm.DB) *gorm.DB { return db.Order("layer_number ASC") }).
		First(&d, id).Error
	if err != nil {
		return nil, apperr.FromDB(err, "design", false)
	}
	return &d, nil
}

func (r *designRepo) FindByCode(ctx context.Context, code string) (*entities.Design, error) {
	var d entities.Design
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&d).Error; err != nil {
		return nil, apperr.FromDB(err, "design "+code, false)
	}
	return &d, nil
}

func (r *designRepo) ListBySite(ctx context.Context, siteID uint, status string) ([]entities.Design, error) {
	var out []entities.Design
	q := r.db.WithContext(ctx).Where("site_id = ?", siteID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	return out, q.Order("code ASC").Find(&out).Error
}

func (r *designRepo) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entities.Design{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

type layerRepo struct{ db *gorm.DB }

func NewDesignLayerRepository(db *gorm.DB) repository.DesignLayerRepository { return &layerRepo{db} }

func (r *layerRepo) Create(ctx context.Context, l *entities.DesignLayer) error {
	return apperr.FromDB(r.db.WithContext(ctx).Omit(clause.Associations).Create(l).Error, "design layer", false)
}

func (r *layerRepo) Update(ctx context.Context, l *entities.DesignLayer) error {
	return apperr.FromDB(r.db.WithContext(ctx).Omit(clause.Associations).Save(l).Error, "design layer", false)
}

func (r *layerRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entities.DesignLayer{}, id)
	if res.Error != nil {
		return apperr.FromDB(res.Error, "design layer", true)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("design layer", id)
	}
	return nil
}

func (r *layerRepo) FindByID(ctx context.Context, id uint) (*entities.DesignLayer, error) {
	var l entities.DesignLayer
	if err := r.db.WithContext(ctx).First(&l, id).Error; err != nil {
		return nil, apperr.FromDB(err, "design layer", false)
	}
	return &l, nil
}

func (r *layerRepo) ListByDesign(ctx context.Context, designID uint) ([]entities.DesignLayer, error) {
	var out []entities.DesignLayer
	err := r.db.WithContext(ctx).Where("design_id = ?", designID).Order("layer_number ASC").Find(&out).Error
	return out, err
}

func (r *layerRepo) NextLayerNumber(ctx context.Context, designID uint) (int, error) {
	var top sql.NullInt64
	err := r.db.WithContext(ctx).Model(&entities.DesignLayer{}).
		Where("design_id = ?", designID).
		Select("MAX(layer_number)").Row().Scan(&top)
	if err != nil {
		return 0, err
	}
	return int(top.Int64) + 1, nil
}
