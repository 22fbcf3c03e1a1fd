package controllerImp

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"

	"swc/entities"
	"swc/pkg/apperr"
	"swc/pkg/site/repository"
	"swc/pkg/site/service"
)

type SiteCtrl struct{ s service.SiteService }

func New(s service.SiteService) *SiteCtrl { return &SiteCtrl{s} }

type siteReq struct {
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Location       string            `json:"location"`
	Latitude       *float64          `json:"latitude"`
	Longitude      *float64          `json:"longitude"`
	SlopeClass     string            `json:"slope_class"`
	SoilTexture    string            `json:"soil_texture"`
	LandUse        string            `json:"land_use"`
	Drainage       string            `json:"drainage"`
	RainfallBand   string            `json:"rainfall_band"`
	GullyState     string            `json:"gully_state"`
	TechnicalSpecs datatypes.JSONMap `json:"technical_specs"`
	SafetyNotes    datatypes.JSONMap `json:"safety_notes"`
}

type techniqueReq struct {
	TechniqueID         uint              `json:"technique_id"`
	Status              string            `json:"status"`
	PlannedDate         string            `json:"planned_date"`
	ImplementationDate  string            `json:"implementation_date"`
	CompletionDate      string            `json:"completion_date"`
	MaintenanceSchedule datatypes.JSONMap `json:"maintenance_schedule"`
	WorkflowSteps       datatypes.JSON    `json:"workflow_steps"`
	Notes               string            `json:"notes"`
}

func (h *SiteCtrl) List(c echo.Context) error {
	out, err := h.s.ListSites(c.Request().Context(), repository.SiteFilter{
		LandUse:      c.QueryParam("land_use"),
		SlopeClass:   c.QueryParam("slope_class"),
		RainfallBand: c.QueryParam("rainfall_band"),
	})
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SiteCtrl) Create(c echo.Context) error {
	var req siteReq
	if err := c.Bind(&req); err != nil {
		return apperr.BadRequest(c, "invalid json")
	}
	out, err := h.s.CreateSite(c.Request().Context(), &entities.Site{
		Name:           req.Name,
		Description:    req.Description,
		Location:       req.Location,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		SlopeClass:     entities.SlopeClass(req.SlopeClass),
		SoilTexture:    entities.SoilTexture(req.SoilTexture),
		LandUse:        entities.LandUse(req.LandUse),
		Drainage:       entities.Drainage(req.Drainage),
		RainfallBand:   entities.RainfallBand(req.RainfallBand),
		GullyState:     entities.GullyState(req.GullyState),
		TechnicalSpecs: req.TechnicalSpecs,
		SafetyNotes:    req.SafetyNotes,
	})
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *SiteCtrl) Get(c echo.Context) error {
	id, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	out, err := h.s.GetSite(c.Request().Context(), id)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SiteCtrl) Patch(c echo.Context) error {
	id, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	var p service.SitePatch
	if err := c.Bind(&p); err != nil {
		return apperr.BadRequest(c, "invalid json")
	}
	out, err := h.s.UpdateSite(c.Request().Context(), id, p)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SiteCtrl) Delete(c echo.Context) error {
	id, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	if err := h.s.DeleteSite(c.Request().Context(), id); err != nil {
		return apperr.JSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *SiteCtrl) ListTechniques(c echo.Context) error {
	id, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	out, err := h.s.ListTechniques(c.Request().Context(), id)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SiteCtrl) AddTechnique(c echo.Context) error {
	siteID, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	var req techniqueReq
	if err := c.Bind(&req); err != nil {
		return apperr.BadRequest(c, "invalid json")
	}
	st := &entities.SiteTechnique{
		SiteID:              siteID,
		TechniqueID:         req.TechniqueID,
		Status:              entities.SiteTechniqueStatus(req.Status),
		MaintenanceSchedule: req.MaintenanceSchedule,
		WorkflowSteps:       req.WorkflowSteps,
		Notes:               req.Notes,
	}
	var chk apperr.Checker
	for _, d := range []struct {
		field string
		v     string
		dst   **time.Time
	}{
		{"planned_date", req.PlannedDate, &st.PlannedDate},
		{"implementation_date", req.ImplementationDate, &st.ImplementationDate},
		{"completion_date", req.CompletionDate, &st.CompletionDate},
	} {
		t, err := entities.ParseDate(d.v)
		if err != nil {
			chk.Add(d.field, err.Error())
			continue
		}
		*d.dst = t
	}
	if err := chk.Err(); err != nil {
		return apperr.JSON(c, err)
	}
	out, err := h.s.AddTechnique(c.Request().Context(), st)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *SiteCtrl) PatchTechnique(c echo.Context) error {
	id, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	var p service.SiteTechniquePatch
	if err := c.Bind(&p); err != nil {
		return apperr.BadRequest(c, "invalid json")
	}
	out, err := h.s.UpdateTechnique(c.Request().Context(), id, p)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SiteCtrl) RemoveTechnique(c echo.Context) error {
	id, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	if err := h.s.RemoveTechnique(c.Request().Context(), id); err != nil {
		return apperr.JSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
