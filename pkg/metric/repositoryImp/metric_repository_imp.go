package repositoryImp

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"swc/entities"
	"swc/pkg/apperr"
	"swc/pkg/metric/repository"
)

type metricRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.MetricRepository { return &metricRepo{db} }

func (r *metricRepo) Create(ctx context.Context, m *entities.Metric) error {
	return apperr.FromDB(r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error, "metric", false)
}

func (r *metricRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entities.Metric{}, id)
	if res.Error != nil {
		return apperr.FromDB(res.Error, "metric", true)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("metric", id)
	}
	return nil
}

func (r *metricRepo) ListBySite(ctx context.Context, siteID uint, f repository.MetricFilter) ([]entities.Metric, error) {
	var out []entities.Metric
	q := r.db.WithContext(ctx).Where("site_id = ?", siteID)
	if f.Name != "" {
		q = q.Where("name = ?", f.Name)
	}
	if f.From != nil {
		q = q.Where("measured_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("measured_date < ?", f.To.AddDate(0, 0, 1))
	}
	if err := q.Order("measured_date ASC, id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
