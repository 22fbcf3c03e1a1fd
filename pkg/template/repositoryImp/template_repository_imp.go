package repositoryImp

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"swc/entities"
	"swc/pkg/apperr"
	"swc/pkg/template/repository"
)

type designTemplateRepo struct{ db *gorm.DB }

func NewDesignTemplateRepository(db *gorm.DB) repository.DesignTemplateRepository {
	return &designTemplateRepo{db}
}

func (r *designTemplateRepo) Create(ctx context.Context, t *entities.DesignTemplate) error {
	return apperr.FromDB(r.db.WithContext(ctx).Create(t).Error, "design template", false)
}

func (r *designTemplateRepo) Update(ctx context.Context, t *entities.DesignTemplate) error {
	return apperr.FromDB(r.db.WithContext(ctx).Omit(clause.Associations).Save(t).Error, "design template", false)
}

func (r *designTemplateRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entities.DesignTemplate{}, id)
	if res.Error != nil {
		return apperr.FromDB(res.Error, "design template", true)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("design template", id)
	}
	return nil
}

func (r *designTemplateRepo) FindByID(ctx context.Context, id uint) (*entities.DesignTemplate, error) {
	var t entities.DesignTemplate
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, apperr.FromDB(err, "design template", false)
	}
	return &t, nil
}

func (r *designTemplateRepo) FindByCode(ctx context.Context, code string) (*entities.DesignTemplate, error) {
	var t entities.DesignTemplate
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&t).Error; err != nil {
		return nil, apperr.FromDB(err, "design template "+code, false)
	}
	return &t, nil
}

func (r *designTemplateRepo) List(ctx context.Context, techniqueID uint) ([]entities.DesignTemplate, error) {
	var out []entities.DesignTemplate
	q := r.db.WithContext(ctx).Order("code ASC")
	if techniqueID != 0 {
		q = q.Where("technique_id = ?", techniqueID)
	}
	return out, q.Find(&out).Error
}

func (r *designTemplateRepo) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entities.DesignTemplate{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

type maintenanceTemplateRepo struct{ db *gorm.DB }

func NewMaintenanceTemplateRepository(db *gorm.DB) repository.MaintenanceTemplateRepository {
	return &maintenanceTemplateRepo{db}
}

func (r *maintenanceTemplateRepo) Create(ctx context.Context, t *entities.MaintenanceTemplate) error {
	return apperr.FromDB(r.db.WithContext(ctx).Create(t).Error, "maintenance template", false)
}

func (r *maintenanceTemplateRepo) Update(ctx context.Context, t *entities.MaintenanceTemplate) error {
	return apperr.FromDB(r.db.WithContext(ctx).Omit(clause.Associations).Save(t).Error, "maintenance template", false)
}

func (r *maintenanceTemplateRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entities.MaintenanceTemplate{}, id)
	if res.Error != nil {
		return apperr.FromDB(res.Error, "maintenance template", true)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("maintenance template", id)
	}
	return nil
}

func (r *maintenanceTemplateRepo) FindByID(ctx context.Context, id uint) (*entities.MaintenanceTemplate, error) {
	var t entities.MaintenanceTemplate
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, apperr.FromDB(err, "maintenance template", false)
	}
	return &t, nil
}

func (r *maintenanceTemplateRepo) List(ctx context.Context, techniqueID uint) ([]entities.MaintenanceTemplate, error) {
	var out []entities.MaintenanceTemplate
	q := r.db.WithContext(ctx).Order("code ASC")
	if techniqueID != 0 {
		q = q.Where("technique_id = ?", techniqueID)
	}
	return out, q.Find(&out).Error
}
