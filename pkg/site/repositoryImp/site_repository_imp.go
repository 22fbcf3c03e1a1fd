package repositoryImp

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"swc/entities"
	"swc/pkg/apperr"
	"swc/pkg/site/repository"
)

type siteRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.SiteRepository { return &siteRepo{db} }

func (r *siteRepo) Create(ctx context.Context, s *entities.Site) error {
	return apperr.FromDB(r.db.WithContext(ctx).Omit(clause.Associations).Create(s).Error, "site", false)
}

func (r *siteRepo) Update(ctx context.Context, s *entities.Site) error {
	return apperr.FromDB(r.db.WithContext(ctx).Omit(clause.Associations).Save(s).Error, "site", false)
}

func (r *siteRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entities.Site{}, id)
	if res.Error != nil {
		return apperr.FromDB(res.Error, "site", true)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("site", id)
	}
	return nil
}

func (r *siteRepo) FindByID(ctx context.Context, id uint) (*entities.Site, error) {
	var s entities.Site
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, apperr.FromDB(err, "site", false)
	}
	return &s, nil
}

func (r *siteRepo) FindDetail(ctx context.Context, id uint) (*entities.Site, error) {
	var s entities.Site
	err := r.db.WithContext(ctx).
		Preload("Techniques", func(db *gorm.DB) *gorm.DB { return db.Order("site_techniques.id ASC") }).
		Preload("Techniques.Technique").
		First(&s, id).Error
	if err != nil {
		return nil, apperr.FromDB(err, "site", false)
	}
	return &s, nil
}

func (r *siteRepo) List(ctx context.Context, f repository.SiteFilter) ([]entities.Site, error) {
	var out []entities.Site
	q := r.db.WithContext(ctx).Order("id ASC")
	if f.LandUse != "" {
		q = q.Where("land_use = ?", f.LandUse)
	}
	if f.SlopeClass != "" {
		q = q.Where("slope_class = ?", f.SlopeClass)
	}
	if f.RainfallBand != "" {
		q = q.Where("rainfall_band = ?", f.RainfallBand)
	}
	return out, q.Find(&out).Error
}

func (r *siteRepo) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entities.Site{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

type siteTechniqueRepo struct{ db *gorm.DB }

func NewSiteTechniqueRepository(db *gorm.DB) repository.SiteTechniqueRepository {
	return &siteTechniqueRepo{db}
}

func (r *siteTechniqueRepo) Create(ctx context.Context, st *entities.SiteTechnique) error {
	return apperr.FromDB(r.db.WithContext(ctx).Omit(clause.Associations).Create(st).Error, "site technique", false)
}

func (r *siteTechniqueRepo) Update(ctx context.Context, st *entities.SiteTechnique) error {
	return apperr.FromDB(r.db.WithContext(ctx).Omit(clause.Associations).Save(st).Error, "site technique", false)
}

func (r *siteTechniqueRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entities.SiteTechnique{}, id)
	if res.Error != nil {
		return apperr.FromDB(res.Error, "site technique", true)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("site technique", id)
	}
	return nil
}

func (r *siteTechniqueRepo) FindByID(ctx context.Context, id uint) (*entities.SiteTechnique, error) {
	var st entities.SiteTechnique
	if err := r.db.WithContext(ctx).Preload("Technique").First(&st, id).Error; err != nil {
		return nil, apperr.FromDB(err, "site technique", false)
	}
	return &st, nil
}

func (r *siteTechniqueRepo) ListBySite(ctx context.Context, siteID uint) ([]entities.SiteTechnique, error) {
	var out []entities.SiteTechnique
	err := r.db.WithContext(ctx).Preload("Technique").
		Where("site_id = ?", siteID).Order("id ASC").Find(&out).Error
	return out, err
}
