package serviceImp

import (
	"context"
	"fmt"
	"strings"

	"swc/entities"
	"swc/pkg/apperr"
	"swc/pkg/cache"
	"swc/pkg/schema"
	techrepo "swc/pkg/technique/repository"
	repo "swc/pkg/template/repository"
	"swc/pkg/template/service"
)

type templateSvc struct {
	designs     repo.DesignTemplateRepository
	maintenance repo.MaintenanceTemplateRepository
	techniques  techrepo.TechniqueRepository
	cache       *cache.Catalog
}

func NewTemplateService(
	d repo.DesignTemplateRepository,
	m repo.MaintenanceTemplateRepository,
	t techrepo.TechniqueRepository,
	c *cache.Catalog,
) service.TemplateService {
	return &templateSvc{designs: d, maintenance: m, techniques: t, cache: c}
}

func (s *templateSvc) checkTechnique(ctx context.Context, id *uint) error {
	if id == nil {
		return nil
	}
	ok, err := s.techniques.Exists(ctx, *id)
	return apperr.MustExist(ok, err, "technique_id", *id)
}

// ---------- design templates ----------

func (s *templateSvc) validateDesign(ctx context.Context, t *entities.DesignTemplate) error {
	t.Code = strings.TrimSpace(t.Code)
	t.Name = strings.TrimSpace(t.Name)
	var chk apperr.Checker
	chk.Require("code", t.Code)
	chk.Require("name", t.Name)
	if err := chk.Err(); err != nil {
		return err
	}
	if _, err := schema.Compile(t.ParameterSchema); err != nil {
		return err
	}
	return s.checkTechnique(ctx, t.TechniqueID)
}

func (s *templateSvc) CreateDesignTemplate(ctx context.Context, t *entities.DesignTemplate) (*entities.DesignTemplate, error) {
	t.ID = 0
	if err := s.validateDesign(ctx, t); err != nil {
		return nil, err
	}
	if err := s.designs.Create(ctx, t); err != nil {
		return nil, err
	}
	s.invalidate()
	return t, nil
}

func (s *templateSvc) GetDesignTemplate(ctx context.Context, id uint) (*entities.DesignTemplate, error) {
	return s.designs.FindByID(ctx, id)
}

func (s *templateSvc) GetDesignTemplateByCode(ctx context.Context, code string) (*entities.DesignTemplate, error) {
	return s.designs.FindByCode(ctx, code)
}

func (s *templateSvc) ListDesignTemplates(ctx context.Context, techniqueID uint) ([]entities.DesignTemplate, error) {
	return cache.Load(s.cache, fmt.Sprintf("design:technique=%d", techniqueID), func() ([]entities.DesignTemplate, error) {
		return s.designs.List(ctx, techniqueID)
	})
}

func (s *templateSvc) UpdateDesignTemplate(ctx context.Context, id uint, p service.DesignTemplatePatch) (*entities.DesignTemplate, error) {
	t, err := s.designs.FindByID(ctx, id)
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
	if p.TechniqueID != nil {
		t.TechniqueID = p.TechniqueID
		if *p.TechniqueID == 0 {
			t.TechniqueID = nil
		}
	}
	if p.ParameterSchema != nil {
		t.ParameterSchema = *p.ParameterSchema
	}
	if p.Outputs != nil {
		t.Outputs = *p.Outputs
	}
	if err := s.validateDesign(ctx, t); err != nil {
		return nil, err
	}
	if err := s.designs.Update(ctx, t); err != nil {
		return nil, err
	}
	s.invalidate()
	return t, nil
}

func (s *templateSvc) DeleteDesignTemplate(ctx context.Context, id uint) error {
	if err := s.designs.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *templateSvc) ValidateParameters(ctx context.Context, templateID uint, params map[string]any) ([]apperr.Detail, error) {
	t, err := s.designs.FindByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	sch, err := schema.Compile(t.ParameterSchema)
	if err != nil {
		return nil, err
	}
	details, err := schema.Validate(sch, params)
	if err != nil {
		return nil, err
	}
	if details == nil {
		details = []apperr.Detail{}
	}
	return details, nil
}

// ---------- maintenance templates ----------

func (s *templateSvc) validateMaintenance(ctx context.Context, t *entities.MaintenanceTemplate) error {
	t.Code = strings.TrimSpace(t.Code)
	t.Name = strings.TrimSpace(t.Name)
	var chk apperr.Checker
	chk.Require("code", t.Code)
	chk.Require("name", t.Name)
	chk.Check(entities.IsArray(t.WorkflowSteps), "workflow_steps", "must be an array")
	if err := chk.Err(); err != nil {
		return err
	}
	return s.checkTechnique(ctx, t.TechniqueID)
}

func (s *templateSvc) CreateMaintenanceTemplate(ctx context.Context, t *entities.MaintenanceTemplate) (*entities.MaintenanceTemplate, error) {
	t.ID = 0
	if err := s.validateMaintenance(ctx, t); err != nil {
		return nil, err
	}
	if err := s.maintenance.Create(ctx, t); err != nil {
		return nil, err
	}
	s.invalidate()
	return t, nil
}

func (s *templateSvc) GetMaintenanceTemplate(ctx context.Context, id uint) (*entities.MaintenanceTemplate, error) {
	return s.maintenance.FindByID(ctx, id)
}

func (s *templateSvc) ListMaintenanceTemplates(ctx context.Context, techniqueID uint) ([]entities.MaintenanceTemplate, error) {
	return cache.Load(s.cache, fmt.Sprintf("maintenance:technique=%d", techniqueID), func() ([]entities.MaintenanceTemplate, error) {
		return s.maintenance.List(ctx, techniqueID)
	})
}

func (s *templateSvc) UpdateMaintenanceTemplate(ctx context.Context, id uint, p service.MaintenanceTemplatePatch) (*entities.MaintenanceTemplate, error) {
	t, err := s.maintenance.FindByID(ctx, id)
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
	if p.TechniqueID != nil {
		t.TechniqueID = p.TechniqueID
		if *p.TechniqueID == 0 {
			t.TechniqueID = nil
		}
	}
	if p.WorkflowSteps != nil {
		t.WorkflowSteps = *p.WorkflowSteps
	}
	if p.TechnicalSpecs != nil {
		t.TechnicalSpecs = *p.TechnicalSpecs
	}
	if err := s.validateMaintenance(ctx, t); err != nil {
		return nil, err
	}
	if err := s.maintenance.Update(ctx, t); err != nil {
		return nil, err
	}
	s.invalidate()
	return t, nil
}

func (s *templateSvc) DeleteMaintenanceTemplate(ctx context.Context, id uint) error {
	if err := s.maintenance.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *templateSvc) invalidate() {
	if s.cache != nil {
		s.cache.Invalidate()
	}
}
