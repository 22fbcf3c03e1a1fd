package controller

import "github.com/labstack/echo/v4"

type DesignController interface {
	ListBySite(c echo.Context) error
	Create(c echo.Context) error
	Get(c echo.Context) error
	Patch(c echo.Context) error
	Delete(c echo.Context) error

	ListLayers(c echo.Context) error
	AddLayer(c echo.Context) error
	PatchLayer(c echo.Context) error
	DeleteLayer(c echo.Context) error
}
