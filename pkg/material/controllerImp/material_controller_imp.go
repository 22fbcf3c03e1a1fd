package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"

	"swc/entities"
	"swc/pkg/apperr"
	"swc/pkg/material/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type MaterialCtrl struct{ s service.MaterialService }

func New(s service.MaterialService) *MaterialCtrl { return &MaterialCtrl{s} }

type createReq struct {
	Code        string         `json:"code"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Unit        string         `json:"unit"`
	UnitCost    float64        `json:"unit_cost"`
	Suppliers   datatypes.JSON `json:"suppliers"`
}

func (h *MaterialCtrl) List(c echo.Context) error {
	out, err := h.s.List(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MaterialCtrl) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return apperr.BadRequest(c, "invalid json")
	}
	out, err := h.s.Create(c.Request().Context(), &entities.Material{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Unit:        req.Unit,
		UnitCost:    req.UnitCost,
		Suppliers:   req.Suppliers,
	})
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *MaterialCtrl) Get(c echo.Context) error {
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

func (h *MaterialCtrl) Patch(c echo.Context) error {
	id, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	var p service.MaterialPatch
	if err := c.Bind(&p); err != nil {
		return apperr.BadRequest(c, "invalid json")
	}
	out, err := h.s.Update(c.Request().Context(), id, p)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MaterialCtrl) Delete(c echo.Context) error {
	id, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	if err := h.s.Delete(c.Request().Context(), id); err != nil {
		return apperr.JSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *MaterialCtrl) Import(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return apperr.BadRequest(c, "multipart field \"file\" is required")
	}
	file, err := fh.Open()
	if err != nil {
		return apperr.BadRequest(c, "cannot open upload: "+err.Error())
	}
	defer file.Close()

	res, err := h.s.Import(c.Request().Context(), file)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *MaterialCtrl) ImportTemplate(c echo.Context) error {
	f, err := h.s.ImportTemplate()
	if err != nil {
		return apperr.JSON(c, err)
	}
	defer f.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="material_import_template.xlsx"`)
	c.Response().Header().Set(echo.HeaderContentType, xlsxContentType)
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response())
}
