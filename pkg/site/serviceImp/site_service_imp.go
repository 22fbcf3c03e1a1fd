package serviceImp

import (
	"context"
	"strings"
	"time"

	"swc/entities"
	"swc/pkg/apperr"
	repo "swc/pkg/site/repository"
	"swc/pkg/site/service"
	techrepo "swc/pkg/technique/repository"
)

type siteSvc struct {
	sites      repo.SiteRepository
	links      repo.SiteTechniqueRepository
	techniques techrepo.TechniqueRepository
}

func NewSiteService(s repo.SiteRepository, st repo.SiteTechniqueRepository, t techrepo.TechniqueRepository) service.SiteService {
	return &siteSvc{sites: s, links: st, techniques: t}
}

func normalizeSite(s *entities.Site) {
	s.Name = strings.TrimSpace(s.Name)
	s.SlopeClass = entities.SlopeClass(strings.ToUpper(strings.TrimSpace(string(s.SlopeClass))))
	s.SoilTexture = entities.SoilTexture(strings.ToUpper(strings.TrimSpace(string(s.SoilTexture))))
	s.LandUse = entities.LandUse(strings.ToUpper(strings.TrimSpace(string(s.LandUse))))
	s.Drainage = entities.Drainage(strings.ToUpper(strings.TrimSpace(string(s.Drainage))))
	s.RainfallBand = entities.RainfallBand(strings.ToUpper(strings.TrimSpace(string(s.RainfallBand))))
	s.GullyState = entities.GullyState(strings.ToUpper(strings.TrimSpace(string(s.GullyState))))
}

func validateSite(s *entities.Site) error {
	normalizeSite(s)
	var chk apperr.Checker
	chk.Require("name", s.Name)
	chk.Check(s.SlopeClass.Valid(), "slope_class", "unknown value "+string(s.SlopeClass))
	chk.Check(s.SoilTexture.Valid(), "soil_texture", "unknown value "+string(s.SoilTexture))
	chk.Check(s.LandUse.Valid(), "land_use", "unknown value "+string(s.LandUse))
	chk.Check(s.Drainage.Valid(), "drainage", "unknown value "+string(s.Drainage))
	chk.Check(s.RainfallBand.Valid(), "rainfall_band", "unknown value "+string(s.RainfallBand))
	chk.Check(s.GullyState.Valid(), "gully_state", "unknown value "+string(s.GullyState))
	if s.Latitude != nil {
		chk.Check(*s.Latitude >= -90 && *s.Latitude <= 90, "latitude", "must be between -90 and 90")
	}
	if s.Longitude != nil {
		chk.Check(*s.Longitude >= -180 && *s.Longitude <= 180, "longitude", "must be between -180 and 180")
	}
	return chk.Err()
}

func (s *siteSvc) CreateSite(ctx context.Context, in *entities.Site) (*entities.Site, error) {
	in.ID = 0
	if err := validateSite(in); err != nil {
		return nil, err
	}
	if err := s.sites.Create(ctx, in); err != nil {
		return nil, err
	}
	return in, nil
}

func (s *siteSvc) GetSite(ctx context.Context, id uint) (*entities.Site, error) {
	return s.sites.FindDetail(ctx, id)
}

func (s *siteSvc) ListSites(ctx context.Context, f repo.SiteFilter) ([]entities.Site, error) {
	f.LandUse = strings.ToUpper(f.LandUse)
	f.SlopeClass = strings.ToUpper(f.SlopeClass)
	f.RainfallBand = strings.ToUpper(f.RainfallBand)
	return s.sites.List(ctx, f)
}

func (s *siteSvc) UpdateSite(ctx context.Context, id uint, p service.SitePatch) (*entities.Site, error) {
	site, err := s.sites.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Name != nil {
		site.Name = *p.Name
	}
	if p.Description != nil {
		site.Description = *p.Description
	}
	if p.Location != nil {
		site.Location = *p.Location
	}
	if p.Latitude != nil {
		site.Latitude = p.Latitude
	}
	if p.Longitude != nil {
		site.Longitude = p.Longitude
	}
	if p.SlopeClass != nil {
		site.SlopeClass = entities.SlopeClass(*p.SlopeClass)
	}
	if p.SoilTexture != nil {
		site.SoilTexture = entities.SoilTexture(*p.SoilTexture)
	}
	if p.LandUse != nil {
		site.LandUse = entities.LandUse(*p.LandUse)
	}
	if p.Drainage != nil {
		site.Drainage = entities.Drainage(*p.Drainage)
	}
	if p.RainfallBand != nil {
		site.RainfallBand = entities.RainfallBand(*p.RainfallBand)
	}
	if p.GullyState != nil {
		site.GullyState = entities.GullyState(*p.GullyState)
	}
	if p.TechnicalSpecs != nil {
		site.TechnicalSpecs = *p.TechnicalSpecs
	}
	if p.SafetyNotes != nil {
		site.SafetyNotes = *p.SafetyNotes
	}
	if err := validateSite(site); err != nil {
		return nil, err
	}
	if err := s.sites.Update(ctx, site); err != nil {
		return nil, err
	}
	return site, nil
}

func (s *siteSvc) DeleteSite(ctx context.Context, id uint) error {
	return s.sites.Delete(ctx, id)
}

// ---------- site techniques ----------

func validateLink(st *entities.SiteTechnique) error {
	st.Status = entities.SiteTechniqueStatus(strings.ToUpper(strings.TrimSpace(string(st.Status))))
	if st.Status == "" {
		st.Status = entities.SiteTechniquePlanned
	}
	var chk apperr.Checker
	chk.Check(st.SiteID != 0, "site_id", "is required")
	chk.Check(st.TechniqueID != 0, "technique_id", "is required")
	chk.Check(st.Status.Valid(), "status", "unknown value "+string(st.Status))
	chk.Check(entities.IsArray(st.WorkflowSteps), "workflow_steps", "must be an array")
	if st.PlannedDate != nil && st.CompletionDate != nil {
		chk.Check(!st.CompletionDate.Before(*st.PlannedDate), "completion_date", "must not be before planned_date")
	}
	return chk.Err()
}

func (s *siteSvc) AddTechnique(ctx context.Context, st *entities.SiteTechnique) (*entities.SiteTechnique, error) {
	st.ID = 0
	if err := validateLink(st); err != nil {
		return nil, err
	}
	ok, err := s.sites.Exists(ctx, st.SiteID)
	if err := apperr.MustExist(ok, err, "site_id", st.SiteID); err != nil {
		return nil, err
	}
	ok, err = s.techniques.Exists(ctx, st.TechniqueID)
	if err := apperr.MustExist(ok, err, "technique_id", st.TechniqueID); err != nil {
		return nil, err
	}
	if err := s.links.Create(ctx, st); err != nil {
		return nil, err
	}
	return s.links.FindByID(ctx, st.ID)
}

func (s *siteSvc) ListTechniques(ctx context.Context, siteID uint) ([]entities.SiteTechnique, error) {
	ok, err := s.sites.Exists(ctx, siteID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("site", siteID)
	}
	return s.links.ListBySite(ctx, siteID)
}

func (s *siteSvc) UpdateTechnique(ctx context.Context, id uint, p service.SiteTechniquePatch) (*entities.SiteTechnique, error) {
	st, err := s.links.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var chk apperr.Checker
	setDate := func(field string, v *string, dst **time.Time) {
		if v == nil {
			return
		}
		t, err := entities.ParseDate(*v)
		if err != nil {
			chk.Add(field, err.Error())
			return
		}
		*dst = t
	}
	if p.Status != nil {
		st.Status = entities.SiteTechniqueStatus(*p.Status)
	}
	setDate("planned_date", p.PlannedDate, &st.PlannedDate)
	setDate("implementation_date", p.ImplementationDate, &st.ImplementationDate)
	setDate("completion_date", p.CompletionDate, &st.CompletionDate)
	if err := chk.Err(); err != nil {
		return nil, err
	}
	if p.MaintenanceSchedule != nil {
		st.MaintenanceSchedule = *p.MaintenanceSchedule
	}
	if p.WorkflowSteps != nil {
		st.WorkflowSteps = *p.WorkflowSteps
	}
	if p.Notes != nil {
		st.Notes = *p.Notes
	}
	if err := validateLink(st); err != nil {
		return nil, err
	}
	if err := s.links.Update(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *siteSvc) RemoveTechnique(ctx context.Context, id uint) error {
	return s.links.Delete(ctx, id)
}
