package controller

import "github.com/labstack/echo/v4"

type SiteController interface {
	List(c echo.Context) error
	Create(c echo.Context) error
	Get(c echo.Context) error
	Patch(c echo.Context) error
	Delete(c echo.Context) error

	ListTechniques(c echo.Context) error
	AddTechnique(c echo.Context) error
	PatchTechnique(c echo.Context) error
	RemoveTechnique(c echo.Context) error
}
