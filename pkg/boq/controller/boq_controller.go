package controller

import "github.com/labstack/echo/v4"

type BOQController interface {
	ListByDesign(c echo.Context) error
	Create(c echo.Context) error
	Get(c echo.Context) error
	Patch(c echo.Context) error
	Delete(c echo.Context) error
	Summary(c echo.Context) error
	Export(c echo.Context) error

	ListItems(c echo.Context) error
	AddItem(c echo.Context) error
	PatchItem(c echo.Context) error
	DeleteItem(c echo.Context) error

	ListCostRecords(c echo.Context) error
	AddCostRecord(c echo.Context) error
	DeleteCostRecord(c echo.Context) error
}
