package repositoryImp

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"swc/entities"
	"swc/pkg/apperr"
	"swc/pkg/boq/repository"
)

type boqRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.BOQRepository { return &boqRepo{db} }

func (r *boqRepo) Create(ctx context.Context, b *entities.BOQ) error {
	return apperr.FromDB(r.db.WithContext(ctx).Omit(clause.Associations).Create(b).Error, "boq", false)
}

func (r *boqRepo) Update(ctx context.Context, b *entities.BOQ) error {
	return apperr.FromDB(r.db.WithContext(ctx).Omit(clause.Associations).Save(b).Error, "boq", false)
}

func (r *boqRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entities.BOQ{}, id)
	if res.Error != nil {
		return apperr.FromDB(res.Error, "boq", true)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("boq", id)
	}
	return nil
}

func (r *boqRepo) FindByID(ctx context.Context, id uint) (*entities.BOQ, error) {
	var b entities.BOQ
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, apperr.FromDB(err, "boq", false)
	}
	return &b, nil
}

func (r *boqRepo) FindDetail(ctx context.Context, id uint) (*entities.BOQ, error) {
	var b entities.BOQ
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Material").
		Preload("CostRecords", func(db *gorm.DB) *gorm.DB { return db.Order("date ASC, id ASC") }).
		First(&b, id).Error
	if err != nil {
		return nil, apperr.FromDB(err, "boq", false)
	}
	return &b, nil
}

func (r *boqRepo) ListByDesign(ctx context.Context, designID uint) ([]entities.BOQ, error) {
	var out []entities.BOQ
	err := r.db.WithContext(ctx).Where("design_id = ?", designID).Order("id ASC").Find(&out).Error
	return out, err
}

func (r *boqRepo) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entities.BOQ{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

type itemRepo struct{ db *gorm.DB }

func NewBOQItemRepository(db *gorm.DB) repository.BOQItemRepository { return &itemRepo{db} }

func (r *itemRepo) Create(ctx context.Context, it *entities.BOQItem) error {
	return apperr.FromDB(r.db.WithContext(ctx).Omit(clause.Associations).Create(it).Error, "boq item", false)
}

func (r *itemRepo) Update(ctx context.Context, it *entities.BOQItem) error {
	return apperr.FromDB(r.db.WithContext(ctx).Omit(clause.Associations).Save(it).Error, "boq item", false)
}

func (r *itemRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entities.BOQItem{}, id)
	if res.Error != nil {
		return apperr.FromDB(res.Error, "boq item", true)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("boq item", id)
	}
	return nil
}

func (r *itemRepo) FindByID(ctx context.Context, id uint) (*entities.BOQItem, error) {
	var it entities.BOQItem
	if err := r.db.WithContext(ctx).First(&it, id).Error; err != nil {
		return nil, apperr.FromDB(err, "boq item", false)
	}
	return &it, nil
}

func (r *itemRepo) ListByBOQ(ctx context.Context, boqID uint) ([]entities.BOQItem, error) {
	var out []entities.BOQItem
	err := r.db.WithContext(ctx).Preload("Material").
		Where("boq_id = ?", boqID).Order("id ASC").Find(&out).Error
	return out, err
}

type costRepo struct{ db *gorm.DB }

func NewCostRecordRepository(db *gorm.DB) repository.CostRecordRepository { return &costRepo{db} }

func (r *costRepo) Create(ctx context.Context, c *entities.CostRecord) error {
	return apperr.FromDB(r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error, "cost record", false)
}

func (r *costRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entities.CostRecord{}, id)
	if res.Error != nil {
		return apperr.FromDB(res.Error, "cost record", true)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("cost record", id)
	}
	return nil
}

func (r *costRepo) ListByBOQ(ctx context.Context, boqID uint) ([]entities.CostRecord, error) {
	var out []entities.CostRecord
	err := r.db.WithContext(ctx).Where("boq_id = ?", boqID).Order("date ASC, id ASC").Find(&out).Error
	return out, err
}
