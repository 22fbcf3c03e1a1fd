package repository

import (
	"context"
	"time"

	"swc/entities"
)

type MetricFilter struct {
	Name string
	From *time.Time
	To   *time.Time
}

type MetricRepository interface {
	Create(ctx context.Context, m *entities.Metric) error
	Delete(ctx context.Context, id uint) error
	// ListBySite returns the site's metrics ordered by measured date, oldest first.
	ListBySite(ctx context.Context, siteID uint, f MetricFilter) ([]entities.Metric, error)
}
