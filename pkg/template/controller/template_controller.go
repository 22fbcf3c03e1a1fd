package controller

import "github.com/labstack/echo/v4"

type TemplateController interface {
	ListDesign(c echo.Context) error
	CreateDesign(c echo.Context) error
	GetDesign(c echo.Context) error
	PatchDesign(c echo.Context) error
	DeleteDesign(c echo.Context) error
	Validate(c echo.Context) error

	ListMaintenance(c echo.Context) error
	CreateMaintenance(c echo.Context) error
	GetMaintenance(c echo.Context) error
	PatchMaintenance(c echo.Context) error
	DeleteMaintenance(c echo.Context) error
}
