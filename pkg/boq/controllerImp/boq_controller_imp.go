package controllerImp

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"swc/entities"
	"swc/pkg/apperr"
	"swc/pkg/boq/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type BOQCtrl struct{ s service.BOQService }

func New(s service.BOQService) *BOQCtrl { return &BOQCtrl{s} }

type boqReq struct {
	TotalCost float64 `json:"total_cost"`
	Currency  string  `json:"currency"`
	Notes     string  `json:"notes"`
}

func (h *BOQCtrl) ListByDesign(c echo.Context) error {
	designID, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	out, err := h.s.ListBOQs(c.Request().Context(), designID)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *BOQCtrl) Create(c echo.Context) error {
	designID, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	var req boqReq
	if err := c.Bind(&req); err != nil {
		return apperr.BadRequest(c, "invalid json")
	}
	out, err := h.s.CreateBOQ(c.Request().Context(), &entities.BOQ{
		DesignID:  designID,
		TotalCost: req.TotalCost,
		Currency:  req.Currency,
		Notes:     req.Notes,
	})
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *BOQCtrl) Get(c echo.Context) error {
	id, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	out, err := h.s.GetBOQ(c.Request().Context(), id)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *BOQCtrl) Patch(c echo.Context) error {
	id, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	var p service.BOQPatch
	if err := c.Bind(&p); err != nil {
		return apperr.BadRequest(c, "invalid json")
	}
	out, err := h.s.UpdateBOQ(c.Request().Context(), id, p)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *BOQCtrl) Delete(c echo.Context) error {
	id, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	if err := h.s.DeleteBOQ(c.Request().Context(), id); err != nil {
		return apperr.JSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *BOQCtrl) Summary(c echo.Context) error {
	id, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	out, err := h.s.Summary(c.Request().Context(), id)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *BOQCtrl) Export(c echo.Context) error {
	id, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	f, name, err := h.s.Export(c.Request().Context(), id)
	if err != nil {
		return apperr.JSON(c, err)
	}
	defer f.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Response().Header().Set(echo.HeaderContentType, xlsxContentType)
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response())
}

// ---------- items ----------

func (h *BOQCtrl) ListItems(c echo.Context) error {
	id, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	out, err := h.s.ListItems(c.Request().Context(), id)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *BOQCtrl) AddItem(c echo.Context) error {
	id, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	var in service.ItemInput
	if err := c.Bind(&in); err != nil {
		return apperr.BadRequest(c, "invalid json")
	}
	out, err := h.s.AddItem(c.Request().Context(), id, in)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *BOQCtrl) PatchItem(c echo.Context) error {
	id, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	var p service.ItemPatch
	if err := c.Bind(&p); err != nil {
		return apperr.BadRequest(c, "invalid json")
	}
	out, err := h.s.UpdateItem(c.Request().Context(), id, p)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *BOQCtrl) DeleteItem(c echo.Context) error {
	id, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	if err := h.s.DeleteItem(c.Request().Context(), id); err != nil {
		return apperr.JSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ---------- cost records ----------

func (h *BOQCtrl) ListCostRecords(c echo.Context) error {
	id, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	out, err := h.s.ListCostRecords(c.Request().Context(), id)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *BOQCtrl) AddCostRecord(c echo.Context) error {
	id, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	var in service.CostRecordInput
	if err := c.Bind(&in); err != nil {
		return apperr.BadRequest(c, "invalid json")
	}
	out, err := h.s.AddCostRecord(c.Request().Context(), id, in)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *BOQCtrl) DeleteCostRecord(c echo.Context) error {
	id, err := apperr.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	if err := h.s.DeleteCostRecord(c.Request().Context(), id); err != nil {
		return apperr.JSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
