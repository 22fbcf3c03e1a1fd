package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"

	"swc/entities"
	"swc/pkg/apperr"
	"swc/pkg/design/service"
)

type DesignCtrl struct{ s service.DesignService }

func New(s service.DesignService) *DesignCtrl { return &DesignCtrl{s} }

type designReq struct {
	Code           string            `json:"code"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Status         string            `json:"status"`
	TechnicalSpecs datatypes.JSONMap `json:"technical_specs"`
	SafetyNotes    datatypes.JSONMap `json:"safety_notes"`
}

type layerReq struct {
	TemplateID     uint              `json:"template_id"`
	TechniqueID    uint              `json:"technique_id"`
	LayerNumber    int               `json:"layer_number"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Parameters     datatypes.JSONMap `json:"parameters"`
	TechnicalSpecs datatypes.JSONMap `json:"technical_specs"`
	WorkflowSteps  datatypes.JSON    `json:"workflow_steps"`
}

func (h *DesignCtrl) ListBySite(c echo.Context) error {
	siteID, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	out, err := h.s.ListDesigns(c.Request().Context(), siteID, c.QueryParam("status"))
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *DesignCtrl) Create(c echo.Context) error {
	siteID, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	var req designReq
	if err := c.Bind(&req); err != nil {
		return apperr.BadRequest(c, "invalid json")
	}
	out, err := h.s.CreateDesign(c.Request().Context(), &entities.Design{
		SiteID:         siteID,
		Code:           req.Code,
		Name:           req.Name,
		Description:    req.Description,
		Status:         entities.DesignStatus(req.Status),
		TechnicalSpecs: req.TechnicalSpecs,
		SafetyNotes:    req.SafetyNotes,
	})
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *DesignCtrl) Get(c echo.Context) error {
	id, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	out, err := h.s.GetDesign(c.Request().Context(), id)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *DesignCtrl) Patch(c echo.Context) error {
	id, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	var p service.DesignPatch
	if err := c.Bind(&p); err != nil {
		return apperr.BadRequest(c, "invalid json")
	}
	out, err := h.s.UpdateDesign(c.Request().Context(), id, p)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *DesignCtrl) Delete(c echo.Context) error {
	id, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	if err := h.s.DeleteDesign(c.Request().Context(), id); err != nil {
		return apperr.JSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *DesignCtrl) ListLayers(c echo.Context) error {
	id, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	out, err := h.s.ListLayers(c.Request().Context(), id)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *DesignCtrl) AddLayer(c echo.Context) error {
	designID, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	var req layerReq
	if err := c.Bind(&req); err != nil {
		return apperr.BadRequest(c, "invalid json")
	}
	out, err := h.s.AddLayer(c.Request().Context(), &entities.DesignLayer{
		DesignID:       designID,
		TemplateID:     req.TemplateID,
		TechniqueID:    req.TechniqueID,
		LayerNumber:    req.LayerNumber,
		Name:           req.Name,
		Description:    req.Description,
		Parameters:     req.Parameters,
		TechnicalSpecs: req.TechnicalSpecs,
		WorkflowSteps:  req.WorkflowSteps,
	})
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *DesignCtrl) PatchLayer(c echo.Context) error {
	id, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	var p service.LayerPatch
	if err := c.Bind(&p); err != nil {
		return apperr.BadRequest(c, "invalid json")
	}
	out, err := h.s.UpdateLayer(c.Request().Context(), id, p)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *DesignCtrl) DeleteLayer(c echo.Context) error {
	id, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	if err := h.s.DeleteLayer(c.Request().Context(), id); err != nil {
		return apperr.JSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
