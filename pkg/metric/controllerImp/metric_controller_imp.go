package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"

	"swc/entities"
	"swc/pkg/apperr"
	"swc/pkg/metric/repository"
	"swc/pkg/metric/service"
)

type MetricCtrl struct{ s service.MetricService }

func New(s service.MetricService) *MetricCtrl { return &MetricCtrl{s} }

type metricReq struct {
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Unit           string            `json:"unit"`
	Value          float64           `json:"value"`
	MeasuredDate   string            `json:"measured_date"` // YYYY-MM-DD, default today
	TechnicalSpecs datatypes.JSONMap `json:"technical_specs"`
}

func (h *MetricCtrl) Create(c echo.Context) error {
	siteID, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	var req metricReq
	if err := c.Bind(&req); err != nil {
		return apperr.BadRequest(c, "invalid json")
	}
	m := &entities.Metric{
		SiteID:         siteID,
		Name:           req.Name,
		Description:    req.Description,
		Unit:           req.Unit,
		Value:          req.Value,
		TechnicalSpecs: req.TechnicalSpecs,
	}
	d, err := entities.ParseDate(req.MeasuredDate)
	if err != nil {
		return apperr.JSON(c, apperr.Invalid("measured_date", err.Error()))
	}
	if d != nil {
		m.MeasuredDate = *d
	}
	out, err := h.s.Create(c.Request().Context(), m)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *MetricCtrl) List(c echo.Context) error {
	siteID, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	f := repository.MetricFilter{Name: c.QueryParam("name")}
	if f.From, err = entities.ParseDate(c.QueryParam("from")); err != nil {
		return apperr.JSON(c, apperr.Invalid("from", err.Error()))
	}
	if f.To, err = entities.ParseDate(c.QueryParam("to")); err != nil {
		return apperr.JSON(c, apperr.Invalid("to", err.Error()))
	}
	out, err := h.s.List(c.Request().Context(), siteID, f)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MetricCtrl) Delete(c echo.Context) error {
	id, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	if err := h.s.Delete(c.Request().Context(), id); err != nil {
		return apperr.JSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
