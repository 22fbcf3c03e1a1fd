package service

import (
	"context"

	"swc/entities"
	"swc/pkg/metric/repository"
)

type MetricService interface {
	// Create records a measurement; a zero MeasuredDate means today.
	Create(ctx context.Context, m *entities.Metric) (*entities.Metric, error)
	List(ctx context.Context, siteID uint, f repository.MetricFilter) ([]entities.Metric, error)
	Delete(ctx context.Context, id uint) error
}
