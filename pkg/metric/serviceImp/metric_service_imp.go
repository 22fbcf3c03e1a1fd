package serviceImp

import (
	"context"
	"strings"
	"time"

	"swc/entities"
	"swc/pkg/apperr"
	repo "swc/pkg/metric/repository"
	"swc/pkg/metric/service"
	siterepo "swc/pkg/site/repository"
)

type metricSvc struct {
	r     repo.MetricRepository
	sites siterepo.SiteRepository
	now   func() time.Time
}

func NewMetricService(r repo.MetricRepository, sites siterepo.SiteRepository) service.MetricService {
	return &metricSvc{r: r, sites: sites, now: time.Now}
}

func (s *metricSvc) Create(ctx context.Context, m *entities.Metric) (*entities.Metric, error) {
	m.ID = 0
	m.Name = strings.TrimSpace(m.Name)
	var chk apperr.Checker
	chk.Check(m.SiteID != 0, "site_id", "is required")
	chk.Require("name", m.Name)
	if err := chk.Err(); err != nil {
		return nil, err
	}
	if m.MeasuredDate.IsZero() {
		y, mo, d := s.now().Date()
		m.MeasuredDate = time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
	}
	ok, err := s.sites.Exists(ctx, m.SiteID)
	if err := apperr.MustExist(ok, err, "site_id", m.SiteID); err != nil {
		return nil, err
	}
	if err := s.r.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *metricSvc) List(ctx context.Context, siteID uint, f repo.MetricFilter) ([]entities.Metric, error) {
	ok, err := s.sites.Exists(ctx, siteID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("site", siteID)
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return nil, apperr.Invalid("to", "must not be before from")
	}
	return s.r.ListBySite(ctx, siteID, f)
}

func (s *metricSvc) Delete(ctx context.Context, id uint) error {
	return s.r.Delete(ctx, id)
}
