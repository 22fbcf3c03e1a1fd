package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"

	"swc/entities"
	"swc/pkg/apperr"
	"swc/pkg/template/service"
)

type TemplateCtrl struct{ s service.TemplateService }

func New(s service.TemplateService) *TemplateCtrl { return &TemplateCtrl{s} }

type designReq struct {
	Code            string            `json:"code"`
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	TechniqueID     *uint             `json:"technique_id"`
	ParameterSchema datatypes.JSONMap `json:"parameter_schema"`
	Outputs         datatypes.JSONMap `json:"outputs"`
}

type maintenanceReq struct {
	Code           string            `json:"code"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	TechniqueID    *uint             `json:"technique_id"`
	WorkflowSteps  datatypes.JSON    `json:"workflow_steps"`
	TechnicalSpecs datatypes.JSONMap `json:"technical_specs"`
}

func (h *TemplateCtrl) ListDesign(c echo.Context) error {
	tid, err := apperr.QueryID(c, "technique_id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	out, err := h.s.ListDesignTemplates(c.Request().Context(), tid)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TemplateCtrl) CreateDesign(c echo.Context) error {
	var req designReq
	if err := c.Bind(&req); err != nil {
		return apperr.BadRequest(c, "invalid json")
	}
	out, err := h.s.CreateDesignTemplate(c.Request().Context(), &entities.DesignTemplate{
		Code:            req.Code,
		Name:            req.Name,
		Description:     req.Description,
		TechniqueID:     req.TechniqueID,
		ParameterSchema: req.ParameterSchema,
		Outputs:         req.Outputs,
	})
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *TemplateCtrl) GetDesign(c echo.Context) error {
	id, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	out, err := h.s.GetDesignTemplate(c.Request().Context(), id)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TemplateCtrl) PatchDesign(c echo.Context) error {
	id, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	var p service.DesignTemplatePatch
	if err := c.Bind(&p); err != nil {
		return apperr.BadRequest(c, "invalid json")
	}
	out, err := h.s.UpdateDesignTemplate(c.Request().Context(), id, p)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TemplateCtrl) DeleteDesign(c echo.Context) error {
	id, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	if err := h.s.DeleteDesignTemplate(c.Request().Context(), id); err != nil {
		return apperr.JSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Validate checks a parameter set against the template without storing anything.
func (h *TemplateCtrl) Validate(c echo.Context) error {
	id, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	var body struct {
		Parameters map[string]any `json:"parameters"`
	}
	if err := c.Bind(&body); err != nil {
		return apperr.BadRequest(c, "invalid json")
	}
	details, err := h.s.ValidateParameters(c.Request().Context(), id, body.Parameters)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"valid": len(details) == 0, "details": details})
}

func (h *TemplateCtrl) ListMaintenance(c echo.Context) error {
	tid, err := apperr.QueryID(c, "technique_id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	out, err := h.s.ListMaintenanceTemplates(c.Request().Context(), tid)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TemplateCtrl) CreateMaintenance(c echo.Context) error {
	var req maintenanceReq
	if err := c.Bind(&req); err != nil {
		return apperr.BadRequest(c, "invalid json")
	}
	out, err := h.s.CreateMaintenanceTemplate(c.Request().Context(), &entities.MaintenanceTemplate{
		Code:           req.Code,
		Name:           req.Name,
		Description:    req.Description,
		TechniqueID:    req.TechniqueID,
		WorkflowSteps:  req.WorkflowSteps,
		TechnicalSpecs: req.TechnicalSpecs,
	})
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *TemplateCtrl) GetMaintenance(c echo.Context) error {
	id, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	out, err := h.s.GetMaintenanceTemplate(c.Request().Context(), id)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TemplateCtrl) PatchMaintenance(c echo.Context) error {
	id, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	var p service.MaintenanceTemplatePatch
	if err := c.Bind(&p); err != nil {
		return apperr.BadRequest(c, "invalid json")
	}
	out, err := h.s.UpdateMaintenanceTemplate(c.Request().Context(), id, p)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TemplateCtrl) DeleteMaintenance(c echo.Context) error {
	id, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	if err := h.s.DeleteMaintenanceTemplate(c.Request().Context(), id); err != nil {
		return apperr.JSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
