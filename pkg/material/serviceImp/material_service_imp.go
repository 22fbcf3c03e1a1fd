package serviceImp

import (
	"context"
	"strings"

	"swc/entities"
	"swc/pkg/apperr"
	"swc/pkg/cache"
	repo "swc/pkg/material/repository"
	"swc/pkg/material/service"
)

type materialSvc struct {
	r     repo.MaterialRepository
	cache *cache.Catalog
}

func NewMaterialService(r repo.MaterialRepository, c *cache.Catalog) service.MaterialService {
	return &materialSvc{r: r, cache: c}
}

func validate(m *entities.Material) error {
	m.Code = strings.TrimSpace(m.Code)
	m.Name = strings.TrimSpace(m.Name)
	m.Unit = strings.TrimSpace(m.Unit)
	var chk apperr.Checker
	chk.Require("code", m.Code)
	chk.Require("name", m.Name)
	chk.Require("unit", m.Unit)
	chk.NonNegative("unit_cost", m.UnitCost)
	chk.Check(entities.IsArray(m.Suppliers), "suppliers", "must be an array")
	return chk.Err()
}

func (s *materialSvc) Create(ctx context.Context, m *entities.Material) (*entities.Material, error) {
	m.ID = 0
	if err := validate(m); err != nil {
		return nil, err
	}
	if err := s.r.Create(ctx, m); err != nil {
		return nil, err
	}
	s.invalidate()
	return m, nil
}

func (s *materialSvc) Get(ctx context.Context, id uint) (*entities.Material, error) {
	return s.r.FindByID(ctx, id)
}

func (s *materialSvc) GetByCode(ctx context.Context, code string) (*entities.Material, error) {
	return s.r.FindByCode(ctx, code)
}

func (s *materialSvc) List(ctx context.Context, q string) ([]entities.Material, error) {
	return cache.Load(s.cache, "q="+strings.ToLower(strings.TrimSpace(q)), func() ([]entities.Material, error) {
		return s.r.List(ctx, q)
	})
}

func (s *materialSvc) Update(ctx context.Context, id uint, p service.MaterialPatch) (*entities.Material, error) {
	m, err := s.r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Code != nil {
		m.Code = *p.Code
	}
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.Unit != nil {
		m.Unit = *p.Unit
	}
	if p.UnitCost != nil {
		m.UnitCost = *p.UnitCost
	}
	if p.Suppliers != nil {
		m.Suppliers = *p.Suppliers
	}
	if err := validate(m); err != nil {
		return nil, err
	}
	if err := s.r.Update(ctx, m); err != nil {
		return nil, err
	}
	s.invalidate()
	return m, nil
}

func (s *materialSvc) Delete(ctx context.Context, id uint) error {
	if err := s.r.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *materialSvc) invalidate() {
	if s.cache != nil {
		s.cache.Invalidate()
	}
}
