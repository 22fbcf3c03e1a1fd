package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"swc/entities"
	"swc/pkg/apperr"
	repo "swc/pkg/design/repository"
	"swc/pkg/design/service"
	"swc/pkg/schema"
	siterepo "swc/pkg/site/repository"
	techrepo "swc/pkg/technique/repository"
	tplrepo "swc/pkg/template/repository"
)

type designSvc struct {
	designs    repo.DesignRepository
	layers     repo.DesignLayerRepository
	sites      siterepo.SiteRepository
	templates  tplrepo.DesignTemplateRepository
	techniques techrepo.TechniqueRepository
}

func NewDesignService(
	d repo.DesignRepository,
	l repo.DesignLayerRepository,
	s siterepo.SiteRepository,
	t tplrepo.DesignTemplateRepository,
	tq techrepo.TechniqueRepository,
) service.DesignService {
	return &designSvc{designs: d, layers: l, sites: s, templates: t, techniques: tq}
}

func validateDesign(d *entities.Design) error {
	d.Code = strings.TrimSpace(d.Code)
	d.Name = strings.TrimSpace(d.Name)
	d.Status = entities.DesignStatus(strings.ToUpper(strings.TrimSpace(string(d.Status))))
	if d.Status == "" {
		d.Status = entities.DesignDraft
	}
	var chk apperr.Checker
	chk.Check(d.SiteID != 0, "site_id", "is required")
	chk.Require("code", d.Code)
	chk.Require("name", d.Name)
	chk.Check(d.Status.Valid(), "status", "unknown value "+string(d.Status))
	return chk.Err()
}

func (s *designSvc) CreateDesign(ctx context.Context, d *entities.Design) (*entities.Design, error) {
	d.ID = 0
	if err := validateDesign(d); err != nil {
		return nil, err
	}
	ok, err := s.sites.Exists(ctx, d.SiteID)
	if err := apperr.MustExist(ok, err, "site_id", d.SiteID); err != nil {
		return nil, err
	}
	if err := s.designs.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *designSvc) GetDesign(ctx context.Context, id uint) (*entities.Design, error) {
	return s.designs.FindDetail(ctx, id)
}

func (s *designSvc) GetDesignByCode(ctx context.Context, code string) (*entities.Design, error) {
	return s.designs.FindByCode(ctx, code)
}

func (s *designSvc) ListDesigns(ctx context.Context, siteID uint, status string) ([]entities.Design, error) {
	ok, err := s.sites.Exists(ctx, siteID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("site", siteID)
	}
	return s.designs.ListBySite(ctx, siteID, strings.ToUpper(status))
}

func (s *designSvc) UpdateDesign(ctx context.Context, id uint, p service.DesignPatch) (*entities.Design, error) {
	d, err := s.designs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Code != nil {
		d.Code = *p.Code
	}
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.Status != nil {
		d.Status = entities.DesignStatus(*p.Status)
	}
	if p.TechnicalSpecs != nil {
		d.TechnicalSpecs = *p.TechnicalSpecs
	}
	if p.SafetyNotes != nil {
		d.SafetyNotes = *p.SafetyNotes
	}
	if err := validateDesign(d); err != nil {
		return nil, err
	}
	if err := s.designs.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *designSvc) DeleteDesign(ctx context.Context, id uint) error {
	return s.designs.Delete(ctx, id)
}

// ---------- layers ----------

func (s *designSvc) template(ctx context.Context, id uint) (*entities.DesignTemplate, error) {
	t, err := s.templates.FindByID(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, fmt.Errorf("template_id %d does not exist: %w", id, apperr.ErrInvalidReference)
	}
	return t, err
}

func checkLayer(l *entities.DesignLayer, tpl *entities.DesignTemplate) error {
	l.Name = strings.TrimSpace(l.Name)
	var chk apperr.Checker
	chk.Require("name", l.Name)
	chk.Check(l.LayerNumber >= 1, "layer_number", "must be >= 1")
	chk.Check(entities.IsArray(l.WorkflowSteps), "workflow_steps", "must be an array")
	if tpl.TechniqueID != nil {
		chk.Check(*tpl.TechniqueID == l.TechniqueID, "technique_id",
			fmt.Sprintf("template %s is for technique %d", tpl.Code, *tpl.TechniqueID))
	}
	if err := chk.Err(); err != nil {
		return err
	}
	return schema.Check(tpl.ParameterSchema, l.Parameters)
}

func (s *designSvc) AddLayer(ctx context.Context, l *entities.DesignLayer) (*entities.DesignLayer, error) {
	l.ID = 0
	var chk apperr.Checker
	chk.Check(l.DesignID != 0, "design_id", "is required")
	chk.Check(l.TemplateID != 0, "template_id", "is required")
	if err := chk.Err(); err != nil {
		return nil, err
	}

	ok, err := s.designs.Exists(ctx, l.DesignID)
	if err := apperr.MustExist(ok, err, "design_id", l.DesignID); err != nil {
		return nil, err
	}
	tpl, err := s.template(ctx, l.TemplateID)
	if err != nil {
		return nil, err
	}
	if l.TechniqueID == 0 && tpl.TechniqueID != nil {
		l.TechniqueID = *tpl.TechniqueID
	}
	if l.TechniqueID == 0 {
		return nil, apperr.Invalid("technique_id", "is required")
	}
	ok, err = s.techniques.Exists(ctx, l.TechniqueID)
	if err := apperr.MustExist(ok, err, "technique_id", l.TechniqueID); err != nil {
		return nil, err
	}
	auto := l.LayerNumber == 0
	if auto {
		if l.LayerNumber, err = s.layers.NextLayerNumber(ctx, l.DesignID); err != nil {
			return nil, err
		}
	}
	if err := checkLayer(l, tpl); err != nil {
		return nil, err
	}
	err = s.layers.Create(ctx, l)
	// a concurrent add may take the computed number; renumber once
	if auto && errors.Is(err, apperr.ErrConflict) {
		if l.LayerNumber, err = s.layers.NextLayerNumber(ctx, l.DesignID); err != nil {
			return nil, err
		}
		l.ID = 0
		err = s.layers.Create(ctx, l)
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (s *designSvc) ListLayers(ctx context.Context, designID uint) ([]entities.DesignLayer, error) {
	ok, err := s.designs.Exists(ctx, designID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("design", designID)
	}
	return s.layers.ListByDesign(ctx, designID)
}

func (s *designSvc) UpdateLayer(ctx context.Context, id uint, p service.LayerPatch) (*entities.DesignLayer, error) {
	l, err := s.layers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.LayerNumber != nil {
		l.LayerNumber = *p.LayerNumber
	}
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
	if p.Parameters != nil {
		l.Parameters = *p.Parameters
	}
	if p.TechnicalSpecs != nil {
		l.TechnicalSpecs = *p.TechnicalSpecs
	}
	if p.WorkflowSteps != nil {
		l.WorkflowSteps = *p.WorkflowSteps
	}
	tpl, err := s.template(ctx, l.TemplateID)
	if err != nil {
		return nil, err
	}
	if err := checkLayer(l, tpl); err != nil {
		return nil, err
	}
	if err := s.layers.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *designSvc) DeleteLayer(ctx context.Context, id uint) error {
	return s.layers.Delete(ctx, id)
}
