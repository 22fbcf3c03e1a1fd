package serviceImp

import (
	"context"
	"strings"

	"swc/entities"
	"swc/pkg/apperr"
	"swc/pkg/cache"
	repo "swc/pkg/technique/repository"
	"swc/pkg/technique/service"
)

type techniqueSvc struct {
	r     repo.TechniqueRepository
	cache *cache.Catalog
	// catalogs whose rows carry a technique_id; a technique delete nulls it
	dependents []*cache.Catalog
}

// NewTechniqueService builds the service. Writes flush c and every dependent catalog.
func NewTechniqueService(r repo.TechniqueRepository, c *cache.Catalog, dependents ...*cache.Catalog) service.TechniqueService {
	return &techniqueSvc{r: r, cache: c, dependents: dependents}
}

func validate(t *entities.Technique) error {
	t.Code = strings.TrimSpace(t.Code)
	t.Name = strings.TrimSpace(t.Name)
	var chk apperr.Checker
	chk.Require("code", t.Code)
	chk.Require("name", t.Name)
	return chk.Err()
}

func (s *techniqueSvc) Create(ctx context.Context, t *entities.Technique) (*entities.Technique, error) {
	t.ID = 0
	if err := validate(t); err != nil {
		return nil, err
	}
	if err := s.r.Create(ctx, t); err != nil {
		return nil, err
	}
	s.invalidate()
	return t, nil
}

func (s *techniqueSvc) Get(ctx context.Context, id uint) (*entities.Technique, error) {
	return s.r.FindByID(ctx, id)
}

func (s *techniqueSvc) GetByCode(ctx context.Context, code string) (*entities.Technique, error) {
	return s.r.FindByCode(ctx, code)
}

func (s *techniqueSvc) List(ctx context.Context, category string) ([]entities.Technique, error) {
	return cache.Load(s.cache, "category="+category, func() ([]entities.Technique, error) {
		return s.r.List(ctx, category)
	})
}

func (s *techniqueSvc) Update(ctx context.Context, id uint, p service.TechniquePatch) (*entities.Technique, error) {
	t, err := s.r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Code != nil {
		t.Code = *p.Code
	}
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.TechnicalSpecs != nil {
		t.TechnicalSpecs = *p.TechnicalSpecs
	}
	if err := validate(t); err != nil {
		return nil, err
	}
	if err := s.r.Update(ctx, t); err != nil {
		return nil, err
	}
	s.invalidate()
	return t, nil
}

func (s *techniqueSvc) Delete(ctx context.Context, id uint) error {
	if err := s.r.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *techniqueSvc) invalidate() {
	for _, c := range append([]*cache.Catalog{s.cache}, s.dependents...) {
		if c != nil {
			c.Invalidate()
		}
	}
}
