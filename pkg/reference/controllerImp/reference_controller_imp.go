package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"swc/pkg/apperr"
	"swc/pkg/reference/service"
)

type ReferenceCtrl struct{ s service.ReferenceService }

func New(s service.ReferenceService) *ReferenceCtrl { return &ReferenceCtrl{s} }

func (h *ReferenceCtrl) List(c echo.Context) error {
	id, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	out, err := h.s.List(c.Request().Context(), id)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReferenceCtrl) IngestText(c echo.Context) error {
	id, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	var in service.TextInput
	if err := c.Bind(&in); err != nil {
		return apperr.BadRequest(c, "invalid json")
	}
	doc, err := h.s.IngestText(c.Request().Context(), id, in)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, doc)
}

func (h *ReferenceCtrl) IngestURL(c echo.Context) error {
	id, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	var in service.URLInput
	if err := c.Bind(&in); err != nil {
		return apperr.BadRequest(c, "invalid json")
	}
	doc, err := h.s.IngestURL(c.Request().Context(), id, in)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, doc)
}

func (h *ReferenceCtrl) Search(c echo.Context) error {
	techID, err := apperr.QueryID(c, "technique_id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	k := 0
	if v := c.QueryParam("k"); v != "" {
		if k, err = strconv.Atoi(v); err != nil || k < 0 {
			return apperr.JSON(c, apperr.Invalid("k", "must be a non-negative integer"))
		}
	}
	out, err := h.s.Search(c.Request().Context(), c.QueryParam("q"), techID, k)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReferenceCtrl) Get(c echo.Context) error {
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

func (h *ReferenceCtrl) Delete(c echo.Context) error {
	id, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	if err := h.s.Delete(c.Request().Context(), id); err != nil {
		return apperr.JSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
