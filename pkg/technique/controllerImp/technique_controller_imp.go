package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"

	"swc/entities"
	"swc/pkg/apperr"
	"swc/pkg/technique/service"
)

type TechniqueCtrl struct{ s service.TechniqueService }

func New(s service.TechniqueService) *TechniqueCtrl { return &TechniqueCtrl{s} }

type createReq struct {
	Code           string            `json:"code"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Category       string            `json:"category"`
	TechnicalSpecs datatypes.JSONMap `json:"technical_specs"`
}

func (h *TechniqueCtrl) List(c echo.Context) error {
	out, err := h.s.List(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TechniqueCtrl) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return apperr.BadRequest(c, "invalid json")
	}
	t := &entities.Technique{
		Code:           req.Code,
		Name:           req.Name,
		Description:    req.Description,
		Category:       req.Category,
		TechnicalSpecs: req.TechnicalSpecs,
	}
	out, err := h.s.Create(c.Request().Context(), t)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *TechniqueCtrl) Get(c echo.Context) error {
	id, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	out, err := h.s.Get(c.Request().Context(), id)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TechniqueCtrl) Patch(c echo.Context) error {
	id, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	var p service.TechniquePatch
	if err := c.Bind(&p); err != nil {
		return apperr.BadRequest(c, "invalid json")
	}
	out, err := h.s.Update(c.Request().Context(), id, p)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TechniqueCtrl) Delete(c echo.Context) error {
	id, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	if err := h.s.Delete(c.Request().Context(), id); err != nil {
		return apperr.JSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
